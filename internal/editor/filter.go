package editor

import (
	"strings"

	"github.com/mirelle/gloss/internal/model"
)

// Filter returns a read-only projection of the structure for a search
// query. A category is retained when its own name matches or when at
// least one of its services matches by name or description,
// case-insensitively; retained categories carry only their matching
// services unless the category name itself matched. Mutations always
// act on the unfiltered structure, never on this view.
func (s *Session) Filter(query string) []EditableCategory {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Categories()
	}

	var out []EditableCategory
	for _, cat := range s.categories {
		nameMatches := strings.Contains(strings.ToLower(cat.Name), query)

		var matching []model.Service
		for _, svc := range cat.Services {
			if strings.Contains(strings.ToLower(svc.Name), query) ||
				strings.Contains(strings.ToLower(svc.Description), query) {
				matching = append(matching, svc.Clone())
			}
		}

		if !nameMatches && len(matching) == 0 {
			continue
		}

		view := cat.Clone()
		if !nameMatches {
			view.Services = matching
		}
		out = append(out, view)
	}
	return out
}
