package plans

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/state"
)

type noop struct{}

func (noop) Type() state.ActionType { return "NOOP" }

var (
	planFree     = Plan{PeriodAgnosticSlug: "free", Title: "Free", IsFree: true}
	planBusiness = Plan{PeriodAgnosticSlug: "business", Title: "Business"}

	productFree            = PlanProduct{ProductID: 1, PeriodAgnosticSlug: "free", BillingPeriod: BillingAnnually}
	productPremiumAnnually = PlanProduct{ProductID: 1003, PeriodAgnosticSlug: "premium", BillingPeriod: BillingAnnually}
	productPremiumMonthly  = PlanProduct{ProductID: 1013, PeriodAgnosticSlug: "premium", BillingPeriod: BillingMonthly}

	groupGeneral   = FeaturesByType{ID: "general", Name: "General"}
	groupCommerce  = FeaturesByType{ID: "commerce", Name: "Commerce"}
	groupMarketing = FeaturesByType{ID: "marketing", Name: "Marketing"}

	featureCustomDomain    = PlanFeature{ID: "custom-domain", Name: "Custom domain"}
	featureLiveSupport     = PlanFeature{ID: "live-support", Name: "Live support"}
	featurePrioritySupport = PlanFeature{ID: "priority-support", Name: "Priority support"}
)

func TestPlans(t *testing.T) {
	t.Run("defaults to no plans info", func(t *testing.T) {
		s := Reduce(InitialSlice(), noop{})
		assert.Equal(t, []Plan{}, s.Plans)
	})

	t.Run("replaces old plans with new plans", func(t *testing.T) {
		s := Reduce(InitialSlice(), SetPlans([]Plan{planFree}))
		s = Reduce(s, SetPlanProducts([]PlanProduct{productFree, productPremiumAnnually, productPremiumMonthly}))

		newFree := planFree
		newFree.Title = "new free"
		s = Reduce(s, SetPlans([]Plan{newFree}))

		require.Len(t, s.Plans, 1)
		assert.Equal(t, "new free", s.Plans[0].Title)
		assert.Len(t, s.PlanProducts, 3, "products are untouched")
	})
}

func TestFeaturesByType(t *testing.T) {
	t.Run("defaults to no featuresByType info", func(t *testing.T) {
		assert.Equal(t, []FeaturesByType{}, Reduce(InitialSlice(), noop{}).FeaturesByType)
	})

	t.Run("replaces old featuresByType info with new featuresByType info", func(t *testing.T) {
		s := Reduce(InitialSlice(), SetFeaturesByType([]FeaturesByType{groupGeneral, groupCommerce}))
		s = Reduce(s, SetFeaturesByType([]FeaturesByType{groupMarketing}))

		if diff := cmp.Diff([]FeaturesByType{groupMarketing}, s.FeaturesByType); diff != "" {
			t.Fatalf("featuresByType (-want +got):\n%s", diff)
		}
	})
}

func TestFeatures(t *testing.T) {
	t.Run("defaults to no feature info", func(t *testing.T) {
		assert.Equal(t, map[string]PlanFeature{}, Reduce(InitialSlice(), noop{}).Features)
	})

	t.Run("replaces old features with new features", func(t *testing.T) {
		s := Reduce(InitialSlice(), SetFeatures(map[string]PlanFeature{
			"free":    featureCustomDomain,
			"premium": featureLiveSupport,
		}))
		s = Reduce(s, SetFeatures(map[string]PlanFeature{"free": featurePrioritySupport}))

		assert.Equal(t, featurePrioritySupport.Name, s.Features["free"].Name)
		_, ok := s.Features["premium"]
		assert.False(t, ok)
	})

	t.Run("nil map resets to empty", func(t *testing.T) {
		s := Reduce(InitialSlice(), SetFeatures(nil))
		assert.NotNil(t, s.Features)
	})
}

func TestResetPlan(t *testing.T) {
	s := Reduce(InitialSlice(), SetPlans([]Plan{planFree, planBusiness}))
	s = Reduce(s, SetFeatures(map[string]PlanFeature{"x": featureCustomDomain}))
	s = Reduce(s, ResetPlan())

	if diff := cmp.Diff(InitialSlice(), s); diff != "" {
		t.Fatalf("reset (-want +got):\n%s", diff)
	}
}

func TestSelectors(t *testing.T) {
	s := Reduce(InitialSlice(), SetPlans([]Plan{planFree, planBusiness}))
	s = Reduce(s, SetPlanProducts([]PlanProduct{productFree, productPremiumAnnually, productPremiumMonthly}))

	p, ok := PlanBySlug(s, "business")
	require.True(t, ok)
	assert.Equal(t, "Business", p.Title)

	_, ok = PlanBySlug(s, "ecommerce")
	assert.False(t, ok)

	assert.Equal(t, []PlanProduct{productPremiumAnnually, productPremiumMonthly}, ProductsForPlan(s, "premium"))
	assert.Empty(t, ProductsForPlan(s, "business"))
}
