package editor

import (
	"strings"

	"github.com/mirelle/gloss/internal/model"
)

// reconcile merges the proposed category layout with the original
// source-of-truth structure.
//
// When the proposal's first category already carries services the
// proposal is trusted as-is. When the proposal carries only category
// names, each proposed category adopts the services of the first
// original category whose normalized name equals or contains its own.
// Services of an original category with no plausible name match are
// dropped; the loss is deliberate and surfaced in tests. Without any
// proposal the original structure is used unchanged.
func reconcile(original, proposed []model.Category) []EditableCategory {
	if len(proposed) == 0 {
		return wrap(original)
	}

	if len(proposed[0].Services) > 0 {
		return wrap(proposed)
	}

	// Name-keyed service lookup from the original structure. Last writer
	// wins on duplicate names; an accepted ambiguity.
	serviceByKey := make(map[string]model.Service)
	for _, cat := range original {
		for _, svc := range cat.Services {
			serviceByKey[svc.Key()] = svc
		}
	}

	merged := make([]model.Category, len(proposed))
	for i, prop := range proposed {
		cat := model.Category{Name: prop.Name}
		switch {
		case len(prop.Services) > 0:
			// The proposal lists service names; hydrate full data from the
			// original where the name is known.
			cat.Services = make([]model.Service, len(prop.Services))
			for j, svc := range prop.Services {
				if full, ok := serviceByKey[svc.Key()]; ok {
					cat.Services[j] = full.Clone()
				} else {
					cat.Services[j] = svc.Clone()
				}
			}
		default:
			if match, ok := matchOriginal(original, prop.Name); ok {
				cat.Services = match.Clone().Services
			}
		}
		merged[i] = cat
	}
	return wrap(merged)
}

// matchOriginal finds the first original category whose normalized name
// equals or contains the proposed name. A proposed name that merely
// extends an original one ("Fryzury Damskie" against "Fryzury") does
// not match; that category's services are dropped.
func matchOriginal(original []model.Category, proposedName string) (model.Category, bool) {
	want := strings.ToLower(strings.TrimSpace(proposedName))
	if want == "" {
		return model.Category{}, false
	}
	for _, cat := range original {
		got := cat.NormalizedName()
		if got == "" {
			continue
		}
		if got == want || strings.Contains(got, want) {
			return cat, true
		}
	}
	return model.Category{}, false
}
