// Package model defines the domain types for salon pricelists.
package model

import "strings"

// Category is an ordered group of services on a pricelist. Order is
// significant: it drives the display order of the published list. A
// category has no identity beyond its name in the persisted form.
type Category struct {
	Name     string    `json:"categoryName"`
	Services []Service `json:"services"`
}

// NormalizedName returns the lowercased, trimmed category name used for
// fuzzy matching during reconciliation.
func (c Category) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(c.Name))
}

// Clone returns a deep copy of the category and its services.
func (c Category) Clone() Category {
	out := Category{Name: c.Name}
	if c.Services != nil {
		out.Services = make([]Service, len(c.Services))
		for i, svc := range c.Services {
			out.Services[i] = svc.Clone()
		}
	}
	return out
}

// CloneCategories deep-copies a category slice.
func CloneCategories(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	for i, cat := range categories {
		out[i] = cat.Clone()
	}
	return out
}

// ServiceCount returns the total number of services across categories.
func ServiceCount(categories []Category) int {
	total := 0
	for _, cat := range categories {
		total += len(cat.Services)
	}
	return total
}
