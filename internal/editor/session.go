// Package editor implements the category reconciliation and editing
// engine for pricelist restructuring. A session merges an AI-proposed
// category layout with the authoritative imported structure, then offers
// interactive mutations (rename, merge, move, reorder, delete, undo)
// over the merged structure before committing it back as a flat
// category list.
package editor

import (
	"github.com/google/uuid"

	"github.com/mirelle/gloss/internal/model"
)

// defaultExpanded is how many categories open expanded in a new session.
const defaultExpanded = 5

// EditableCategory is a category plus session-local state. The ID is
// synthetic, unique for the lifetime of the session, and never reused
// after deletion; it must not leak into the persisted output.
type EditableCategory struct {
	ID       string
	Name     string
	Services []model.Service
	Expanded bool
	Editing  bool
}

// Clone returns a deep copy of the editable category.
func (c EditableCategory) Clone() EditableCategory {
	out := c
	if c.Services != nil {
		out.Services = make([]model.Service, len(c.Services))
		for i, svc := range c.Services {
			out.Services[i] = svc.Clone()
		}
	}
	return out
}

// Session owns the in-memory editing state for one editor invocation.
// It is single-writer: one session serves one interactive user and is
// discarded on close.
type Session struct {
	selection  map[string]struct{}
	categories []EditableCategory
	history    [][]EditableCategory
	changes    []model.ChangeRecord
}

// NewSession reconciles the original and proposed structures into an
// editable category list. The proposed changes are advisory display
// data; they never drive a mutation.
func NewSession(original, proposed []model.Category, changes []model.ChangeRecord) *Session {
	return &Session{
		categories: reconcile(original, proposed),
		selection:  make(map[string]struct{}),
		changes:    changes,
	}
}

// Categories returns a deep copy of the current editable structure.
func (s *Session) Categories() []EditableCategory {
	out := make([]EditableCategory, len(s.categories))
	for i, cat := range s.categories {
		out[i] = cat.Clone()
	}
	return out
}

// Changes returns the advisory change records supplied at session start.
func (s *Session) Changes() []model.ChangeRecord {
	return s.changes
}

// ServiceCount returns the total number of services across all
// categories in the session.
func (s *Session) ServiceCount() int {
	total := 0
	for _, cat := range s.categories {
		total += len(cat.Services)
	}
	return total
}

// CategoryByID returns a copy of the category with the given id.
func (s *Session) CategoryByID(id string) (EditableCategory, bool) {
	for _, cat := range s.categories {
		if cat.ID == id {
			return cat.Clone(), true
		}
	}
	return EditableCategory{}, false
}

// Commit converts the editable structure back into plain categories,
// stripping synthetic ids and UI flags. The session remains usable
// afterwards so a failed save can be retried.
func (s *Session) Commit() []model.Category {
	out := make([]model.Category, len(s.categories))
	for i, cat := range s.categories {
		services := make([]model.Service, len(cat.Services))
		for j, svc := range cat.Services {
			services[j] = svc.Clone()
		}
		out[i] = model.Category{Name: cat.Name, Services: services}
	}
	return out
}

func (s *Session) indexByID(id string) int {
	for i, cat := range s.categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}

func newEditable(cat model.Category, expanded bool) EditableCategory {
	return EditableCategory{
		ID:       uuid.NewString(),
		Name:     cat.Name,
		Services: cat.Clone().Services,
		Expanded: expanded,
	}
}

func wrap(categories []model.Category) []EditableCategory {
	out := make([]EditableCategory, len(categories))
	for i, cat := range categories {
		out[i] = newEditable(cat, i < defaultExpanded)
	}
	return out
}
