package plans

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"portal/internal/state"
)

// Catalog is the on-disk plans definition.
type Catalog struct {
	Features       map[string]PlanFeature `yaml:"features"`
	FeaturesByType []FeaturesByType       `yaml:"features_by_type"`
	Plans          []Plan                 `yaml:"plans"`
	Products       []PlanProduct          `yaml:"products"`
}

// LoadCatalog reads and validates a YAML catalog.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plans catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates catalog YAML. Feature IDs default to
// their map key.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse plans catalog: %w", err)
	}
	for key, f := range c.Features {
		if f.ID == "" {
			f.ID = key
			c.Features[key] = f
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every reference in the catalog resolves.
func (c *Catalog) Validate() error {
	var errs []error
	slugs := make(map[string]bool, len(c.Plans))
	for _, p := range c.Plans {
		if p.PeriodAgnosticSlug == "" {
			errs = append(errs, fmt.Errorf("plan %q has no slug", p.Title))
			continue
		}
		if slugs[p.PeriodAgnosticSlug] {
			errs = append(errs, fmt.Errorf("duplicate plan %q", p.PeriodAgnosticSlug))
		}
		slugs[p.PeriodAgnosticSlug] = true
		for _, f := range p.Features {
			if _, ok := c.Features[f]; !ok {
				errs = append(errs, fmt.Errorf("plan %q references unknown feature %q", p.PeriodAgnosticSlug, f))
			}
		}
	}
	for _, g := range c.FeaturesByType {
		for _, f := range g.Features {
			if _, ok := c.Features[f]; !ok {
				errs = append(errs, fmt.Errorf("feature group %q references unknown feature %q", g.ID, f))
			}
		}
	}
	for _, p := range c.Products {
		if !slugs[p.PeriodAgnosticSlug] {
			errs = append(errs, fmt.Errorf("product %d references unknown plan %q", p.ProductID, p.PeriodAgnosticSlug))
		}
		switch p.BillingPeriod {
		case BillingMonthly, BillingAnnually:
		default:
			errs = append(errs, fmt.Errorf("product %d has invalid billing period %q", p.ProductID, p.BillingPeriod))
		}
	}
	return errors.Join(errs...)
}

// Apply dispatches one setter per catalog section.
func Apply(ctx context.Context, d state.Dispatcher, c *Catalog) {
	d.Dispatch(ctx, SetFeatures(c.Features))
	d.Dispatch(ctx, SetFeaturesByType(c.FeaturesByType))
	d.Dispatch(ctx, SetPlans(c.Plans))
	d.Dispatch(ctx, SetPlanProducts(c.Products))
}
