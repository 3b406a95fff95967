package editor

// maxHistory bounds the undo stack; pushing another snapshot evicts the
// oldest.
const maxHistory = 10

// snapshot pushes a deep copy of the current structure onto the history
// stack. Called before every mutation that is not a no-op.
func (s *Session) snapshot() {
	copied := make([]EditableCategory, len(s.categories))
	for i, cat := range s.categories {
		copied[i] = cat.Clone()
	}
	if len(s.history) >= maxHistory {
		s.history = s.history[len(s.history)-maxHistory+1:]
	}
	s.history = append(s.history, copied)
}

// Undo restores the most recent snapshot. It reports false when no
// history remains. Selection is cleared because restored indices may
// not match the selected keys.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	s.categories = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.clearSelection()
	return true
}

// CanUndo reports whether any prior state is available.
func (s *Session) CanUndo() bool {
	return len(s.history) > 0
}

// HistoryLen returns the number of undoable states.
func (s *Session) HistoryLen() int {
	return len(s.history)
}
