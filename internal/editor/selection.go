package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mirelle/gloss/internal/model"
)

// Selection keys are composite "{categoryID}-{serviceIndex}" strings.
// Keys are index-based, so every structural mutation that shifts
// indices clears the selection rather than leaving stale keys behind.

func selectionKey(categoryID string, index int) string {
	return fmt.Sprintf("%s-%d", categoryID, index)
}

func parseSelectionKey(key string) (categoryID string, index int, ok bool) {
	cut := strings.LastIndexByte(key, '-')
	if cut <= 0 || cut == len(key)-1 {
		return "", 0, false
	}
	index, err := strconv.Atoi(key[cut+1:])
	if err != nil || index < 0 {
		return "", 0, false
	}
	return key[:cut], index, true
}

// ToggleServiceSelection flips membership of one service in the
// selection set. Out-of-range indices and unknown categories are
// ignored.
func (s *Session) ToggleServiceSelection(categoryID string, index int) bool {
	i := s.indexByID(categoryID)
	if i < 0 || index < 0 || index >= len(s.categories[i].Services) {
		return false
	}
	key := selectionKey(categoryID, index)
	if _, selected := s.selection[key]; selected {
		delete(s.selection, key)
	} else {
		s.selection[key] = struct{}{}
	}
	return true
}

// IsSelected reports whether one service is currently selected.
func (s *Session) IsSelected(categoryID string, index int) bool {
	_, ok := s.selection[selectionKey(categoryID, index)]
	return ok
}

// SelectedCount returns the number of selected services.
func (s *Session) SelectedCount() int {
	return len(s.selection)
}

// ClearSelection empties the selection set.
func (s *Session) ClearSelection() {
	s.clearSelection()
}

func (s *Session) clearSelection() {
	if len(s.selection) > 0 {
		s.selection = make(map[string]struct{})
	}
}

// MoveSelected moves every selected service to the target category,
// appending after the target's existing services. Within each source
// category the selected indices are removed in descending order so
// earlier removals cannot shift later ones; moved services keep their
// original relative order, walking source categories in list order.
// The selection is cleared afterwards. An empty selection or an unknown
// target is a no-op.
func (s *Session) MoveSelected(targetID string) bool {
	if len(s.selection) == 0 {
		return false
	}
	dst := s.indexByID(targetID)
	if dst < 0 {
		return false
	}

	// Resolve composite keys into per-category index lists, dropping any
	// key that no longer points at a live service.
	byCategory := make(map[string][]int)
	resolved := 0
	for key := range s.selection {
		categoryID, index, ok := parseSelectionKey(key)
		if !ok {
			continue
		}
		i := s.indexByID(categoryID)
		if i < 0 || index >= len(s.categories[i].Services) {
			continue
		}
		byCategory[categoryID] = append(byCategory[categoryID], index)
		resolved++
	}
	if resolved == 0 {
		return false
	}

	s.snapshot()

	var moved []model.Service
	for i := range s.categories {
		indices := byCategory[s.categories[i].ID]
		if len(indices) == 0 {
			continue
		}
		sort.Ints(indices)
		for _, j := range indices {
			moved = append(moved, s.categories[i].Services[j])
		}
		for k := len(indices) - 1; k >= 0; k-- {
			j := indices[k]
			s.categories[i].Services = append(s.categories[i].Services[:j], s.categories[i].Services[j+1:]...)
		}
	}

	s.categories[dst].Services = append(s.categories[dst].Services, moved...)
	s.clearSelection()
	return true
}
