// Package plans holds the static plan catalog slice: features, feature
// groups, plans and their products. Each setter replaces its field wholesale.
package plans

import "portal/internal/state"

const (
	ActionSetFeatures       state.ActionType = "SET_FEATURES"
	ActionSetFeaturesByType state.ActionType = "SET_FEATURES_BY_TYPE"
	ActionSetPlans          state.ActionType = "SET_PLANS"
	ActionSetPlanProducts   state.ActionType = "SET_PLAN_PRODUCTS"
	ActionResetPlan         state.ActionType = "RESET_PLAN"
)

type SetFeaturesAction struct {
	Features map[string]PlanFeature
}

func (SetFeaturesAction) Type() state.ActionType { return ActionSetFeatures }

type SetFeaturesByTypeAction struct {
	FeaturesByType []FeaturesByType
}

func (SetFeaturesByTypeAction) Type() state.ActionType { return ActionSetFeaturesByType }

type SetPlansAction struct {
	Plans []Plan
}

func (SetPlansAction) Type() state.ActionType { return ActionSetPlans }

type SetPlanProductsAction struct {
	Products []PlanProduct
}

func (SetPlanProductsAction) Type() state.ActionType { return ActionSetPlanProducts }

type ResetPlanAction struct{}

func (ResetPlanAction) Type() state.ActionType { return ActionResetPlan }

func SetFeatures(features map[string]PlanFeature) SetFeaturesAction {
	return SetFeaturesAction{Features: features}
}

func SetFeaturesByType(groups []FeaturesByType) SetFeaturesByTypeAction {
	return SetFeaturesByTypeAction{FeaturesByType: groups}
}

func SetPlans(plans []Plan) SetPlansAction {
	return SetPlansAction{Plans: plans}
}

func SetPlanProducts(products []PlanProduct) SetPlanProductsAction {
	return SetPlanProductsAction{Products: products}
}

func ResetPlan() ResetPlanAction {
	return ResetPlanAction{}
}
