package plans

// PlanFeature describes one capability a plan can include.
type PlanFeature struct {
	ID                         string `json:"id" yaml:"id"`
	Name                       string `json:"name" yaml:"name"`
	Description                string `json:"description,omitempty" yaml:"description"`
	RequiresAnnuallyBilledPlan bool   `json:"requiresAnnuallyBilledPlan,omitempty" yaml:"requires_annually_billed_plan"`
}

// FeaturesByType groups feature IDs under a heading.
type FeaturesByType struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Features []string `json:"features" yaml:"features"`
}

// Plan is a period-agnostic plan such as "business".
type Plan struct {
	PeriodAgnosticSlug string   `json:"periodAgnosticSlug" yaml:"slug"`
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description,omitempty" yaml:"description"`
	Features           []string `json:"features" yaml:"features"`
	IsFree             bool     `json:"isFree,omitempty" yaml:"is_free"`
	IsPopular          bool     `json:"isPopular,omitempty" yaml:"is_popular"`
}

// BillingPeriod is the renewal interval of a product.
type BillingPeriod string

const (
	BillingMonthly  BillingPeriod = "MONTHLY"
	BillingAnnually BillingPeriod = "ANNUALLY"
)

// PlanProduct is a purchasable product of a plan for one billing period.
// Prices are raw minor units.
type PlanProduct struct {
	ProductID          int64         `json:"productId" yaml:"product_id"`
	StoreSlug          string        `json:"storeSlug" yaml:"store_slug"`
	PeriodAgnosticSlug string        `json:"periodAgnosticSlug" yaml:"plan"`
	BillingPeriod      BillingPeriod `json:"billingPeriod" yaml:"billing_period"`
	RawPrice           int64         `json:"rawPrice" yaml:"raw_price"`
	CurrencyCode       string        `json:"currencyCode" yaml:"currency_code"`
}
