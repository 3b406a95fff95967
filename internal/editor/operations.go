package editor

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mirelle/gloss/internal/model"
)

// RenameCategory sets a category's name and clears its editing flag.
// A blank name is a no-op. Services are unaffected.
func (s *Session) RenameCategory(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	i := s.indexByID(id)
	if i < 0 {
		return false
	}
	s.snapshot()
	s.categories[i].Name = name
	s.categories[i].Editing = false
	return true
}

// AddCategory appends a new empty category, expanded by default, and
// returns its synthetic id. A blank name is a no-op.
func (s *Session) AddCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	s.snapshot()
	cat := EditableCategory{
		ID:       uuid.NewString(),
		Name:     name,
		Services: []model.Service{},
		Expanded: true,
	}
	s.categories = append(s.categories, cat)
	return cat.ID, true
}

// DeleteCategory removes a category. Its services are appended to the
// first remaining category in list order; when no other category exists
// they are dropped.
func (s *Session) DeleteCategory(id string) bool {
	i := s.indexByID(id)
	if i < 0 {
		return false
	}
	s.snapshot()

	removed := s.categories[i]
	s.categories = append(s.categories[:i], s.categories[i+1:]...)

	if len(removed.Services) > 0 {
		if len(s.categories) > 0 {
			s.categories[0].Services = append(s.categories[0].Services, removed.Services...)
		} else {
			slog.Warn("deleted the only category; its services are dropped",
				"category", removed.Name,
				"services", len(removed.Services))
		}
	}

	s.clearSelection()
	return true
}

// ToggleExpand flips a category's expansion flag. Pure UI state; no
// snapshot is taken.
func (s *Session) ToggleExpand(id string) {
	if i := s.indexByID(id); i >= 0 {
		s.categories[i].Expanded = !s.categories[i].Expanded
	}
}

// StartEditing puts one category into name-editing mode and takes every
// other category out of it.
func (s *Session) StartEditing(id string) {
	for i := range s.categories {
		s.categories[i].Editing = s.categories[i].ID == id
	}
}

// StopEditing clears editing mode on all categories.
func (s *Session) StopEditing() {
	for i := range s.categories {
		s.categories[i].Editing = false
	}
}

// ReorderCategories replaces the category order with the supplied id
// permutation. The call is a no-op unless ids is an exact permutation
// of the current category ids.
func (s *Session) ReorderCategories(ids []string) bool {
	if len(ids) != len(s.categories) {
		return false
	}
	byID := make(map[string]int, len(s.categories))
	for i, cat := range s.categories {
		byID[cat.ID] = i
	}
	seen := make(map[string]struct{}, len(ids))
	reordered := make([]EditableCategory, 0, len(ids))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
		reordered = append(reordered, s.categories[i])
	}
	s.snapshot()
	s.categories = reordered
	s.clearSelection()
	return true
}

// ReorderServices replaces one category's service order with the
// supplied index permutation. Other categories are unaffected.
func (s *Session) ReorderServices(id string, order []int) bool {
	i := s.indexByID(id)
	if i < 0 {
		return false
	}
	services := s.categories[i].Services
	if len(order) != len(services) {
		return false
	}
	seen := make(map[int]struct{}, len(order))
	reordered := make([]model.Service, 0, len(order))
	for _, j := range order {
		if j < 0 || j >= len(services) {
			return false
		}
		if _, dup := seen[j]; dup {
			return false
		}
		seen[j] = struct{}{}
		reordered = append(reordered, services[j])
	}
	s.snapshot()
	s.categories[i].Services = reordered
	s.clearSelection()
	return true
}

// MergeCategories appends the source category's services to the target,
// target's existing services first, then removes the source entirely.
// Unknown ids make the call a no-op.
func (s *Session) MergeCategories(sourceID, targetID string) bool {
	if sourceID == targetID {
		return false
	}
	src := s.indexByID(sourceID)
	dst := s.indexByID(targetID)
	if src < 0 || dst < 0 {
		return false
	}
	s.snapshot()

	s.categories[dst].Services = append(s.categories[dst].Services, s.categories[src].Services...)
	s.categories = append(s.categories[:src], s.categories[src+1:]...)

	s.clearSelection()
	return true
}
