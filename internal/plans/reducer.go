package plans

import "portal/internal/state"

// Slice is the plans portion of the portal state.
type Slice struct {
	Features       map[string]PlanFeature `json:"features"`
	FeaturesByType []FeaturesByType       `json:"featuresByType"`
	Plans          []Plan                 `json:"plans"`
	PlanProducts   []PlanProduct          `json:"planProducts"`
}

// InitialSlice returns empty, non-nil collections.
func InitialSlice() Slice {
	return Slice{
		Features:       map[string]PlanFeature{},
		FeaturesByType: []FeaturesByType{},
		Plans:          []Plan{},
		PlanProducts:   []PlanProduct{},
	}
}

func Reduce(s Slice, a state.Action) Slice {
	switch a := a.(type) {
	case SetFeaturesAction:
		s.Features = a.Features
		if s.Features == nil {
			s.Features = map[string]PlanFeature{}
		}
	case SetFeaturesByTypeAction:
		s.FeaturesByType = orEmpty(a.FeaturesByType)
	case SetPlansAction:
		s.Plans = orEmpty(a.Plans)
	case SetPlanProductsAction:
		s.PlanProducts = orEmpty(a.Products)
	case ResetPlanAction:
		return InitialSlice()
	}
	return s
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// PlanBySlug finds a plan by its period-agnostic slug.
func PlanBySlug(s Slice, slug string) (Plan, bool) {
	for _, p := range s.Plans {
		if p.PeriodAgnosticSlug == slug {
			return p, true
		}
	}
	return Plan{}, false
}

// ProductsForPlan lists the products of a plan in catalog order.
func ProductsForPlan(s Slice, slug string) []PlanProduct {
	out := []PlanProduct{}
	for _, p := range s.PlanProducts {
		if p.PeriodAgnosticSlug == slug {
			out = append(out, p)
		}
	}
	return out
}
