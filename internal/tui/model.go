// Package tui provides the interactive pricelist category editor.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mirelle/gloss/internal/editor"
)

// State represents the current editor state.
type State int

const (
	StateBrowse State = iota
	StateRename
	StateAdd
	StateFilter
	StatePickMoveTarget
	StatePickMergeTarget
	StateConfirmQuit
	StateHelp
)

// row is one visible line in the category list: either a category
// header or a service under an expanded category.
type row struct {
	categoryID   string
	catIndex     int // index into the visible projection
	serviceIndex int // -1 for category rows
}

// Model holds the editor TUI state.
type Model struct {
	session    *editor.Session
	theme      Theme
	keymap     KeyMap
	input      textinput.Model
	rows       []row
	visible    []editor.EditableCategory
	targets    []editor.EditableCategory
	salonName  string
	filter     string
	status     string
	cursor     int
	target     int
	width      int
	height     int
	state      State
	saved      bool
	quitting   bool
	dirty      bool
}

// New creates an editor model over the given session.
func New(session *editor.Session, salonName string) Model {
	input := textinput.New()
	input.CharLimit = 120

	m := Model{
		session:   session,
		theme:     DefaultTheme,
		keymap:    DefaultKeyMap(),
		input:     input,
		salonName: salonName,
		state:     StateBrowse,
	}
	m.rebuildRows()
	return m
}

// Saved reports whether the user chose to save on exit.
func (m Model) Saved() bool {
	return m.saved
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.state {
		case StateBrowse:
			return m.updateBrowse(msg)
		case StateRename, StateAdd, StateFilter:
			return m.updateInput(msg)
		case StatePickMoveTarget, StatePickMergeTarget:
			return m.updatePickTarget(msg)
		case StateConfirmQuit:
			return m.updateConfirmQuit(msg)
		case StateHelp:
			m.state = StateBrowse
			return m, nil
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	m.status = ""

	switch {
	case key.Matches(msg, k.Quit):
		if m.filter != "" {
			m.filter = ""
			m.rebuildRows()
			return m, nil
		}
		if m.dirty {
			m.state = StateConfirmQuit
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Save):
		m.saved = true
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.state = StateHelp
		return m, nil

	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Home):
		m.cursor = 0
	case key.Matches(msg, k.End):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}

	case key.Matches(msg, k.Toggle):
		if r, ok := m.currentRow(); ok && r.serviceIndex < 0 {
			m.session.ToggleExpand(r.categoryID)
			m.rebuildRows()
		}

	case key.Matches(msg, k.ToggleSelect):
		// Filtered rows carry projected service indices, so selection
		// only works against the full view.
		if m.filter != "" {
			m.status = "Clear filter to select services"
			return m, nil
		}
		if r, ok := m.currentRow(); ok && r.serviceIndex >= 0 {
			m.session.ToggleServiceSelection(r.categoryID, r.serviceIndex)
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}

	case key.Matches(msg, k.DeselectAll):
		m.session.ClearSelection()

	case key.Matches(msg, k.Move):
		if m.session.SelectedCount() == 0 {
			m.status = "Nothing selected"
			return m, nil
		}
		m.beginPickTarget(StatePickMoveTarget, "")

	case key.Matches(msg, k.Merge):
		if r, ok := m.currentRow(); ok && r.serviceIndex < 0 {
			m.beginPickTarget(StatePickMergeTarget, r.categoryID)
		}

	case key.Matches(msg, k.Rename):
		if r, ok := m.currentRow(); ok && r.serviceIndex < 0 {
			category, _ := m.session.CategoryByID(r.categoryID)
			m.session.StartEditing(r.categoryID)
			m.input.SetValue(category.Name)
			m.input.CursorEnd()
			m.input.Focus()
			m.state = StateRename
			return m, textinput.Blink
		}

	case key.Matches(msg, k.Add):
		m.input.SetValue("")
		m.input.Focus()
		m.state = StateAdd
		return m, textinput.Blink

	case key.Matches(msg, k.Delete):
		if r, ok := m.currentRow(); ok && r.serviceIndex < 0 {
			if m.session.DeleteCategory(r.categoryID) {
				m.dirty = true
				m.rebuildRows()
				m.clampCursor()
			}
		}

	case key.Matches(msg, k.MoveUp):
		m.shiftCategory(-1)
	case key.Matches(msg, k.MoveDown):
		m.shiftCategory(1)

	case key.Matches(msg, k.Undo):
		if m.session.Undo() {
			m.dirty = true
			m.rebuildRows()
			m.clampCursor()
		} else {
			m.status = "Nothing to undo"
		}

	case key.Matches(msg, k.Filter):
		m.input.SetValue(m.filter)
		m.input.Focus()
		m.state = StateFilter
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.state == StateRename {
			m.session.StopEditing()
		}
		m.input.Blur()
		m.state = StateBrowse
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		switch m.state {
		case StateRename:
			if r, ok := m.currentRow(); ok {
				if m.session.RenameCategory(r.categoryID, value) {
					m.dirty = true
				}
			}
			m.session.StopEditing()
		case StateAdd:
			if _, ok := m.session.AddCategory(value); ok {
				m.dirty = true
			}
		case StateFilter:
			m.filter = value
			m.cursor = 0
		}
		m.input.Blur()
		m.state = StateBrowse
		m.rebuildRows()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePickTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap

	switch {
	case key.Matches(msg, k.Quit):
		m.state = StateBrowse
		return m, nil

	case key.Matches(msg, k.Up):
		if m.target > 0 {
			m.target--
		}
	case key.Matches(msg, k.Down):
		if m.target < len(m.targets)-1 {
			m.target++
		}

	case key.Matches(msg, k.Toggle):
		if m.target >= len(m.targets) {
			m.state = StateBrowse
			return m, nil
		}
		targetID := m.targets[m.target].ID
		switch m.state {
		case StatePickMoveTarget:
			if m.session.MoveSelected(targetID) {
				m.dirty = true
			}
		case StatePickMergeTarget:
			if r, ok := m.currentRow(); ok {
				if m.session.MergeCategories(r.categoryID, targetID) {
					m.dirty = true
				}
			}
		}
		m.state = StateBrowse
		m.rebuildRows()
		m.clampCursor()
	}

	return m, nil
}

func (m Model) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.quitting = true
		return m, tea.Quit
	case "s", "S":
		m.saved = true
		m.quitting = true
		return m, tea.Quit
	default:
		m.state = StateBrowse
		return m, nil
	}
}

// beginPickTarget opens the target picker, excluding excludeID.
func (m *Model) beginPickTarget(state State, excludeID string) {
	targets := make([]editor.EditableCategory, 0)
	for _, category := range m.session.Categories() {
		if category.ID != excludeID {
			targets = append(targets, category)
		}
	}
	if len(targets) == 0 {
		m.status = "No target category available"
		return
	}
	m.targets = targets
	m.target = 0
	m.state = state
}

// shiftCategory moves the category under the cursor one slot up or down.
func (m *Model) shiftCategory(delta int) {
	r, ok := m.currentRow()
	if !ok || r.serviceIndex >= 0 {
		return
	}

	categories := m.session.Categories()
	ids := make([]string, len(categories))
	pos := -1
	for i, category := range categories {
		ids[i] = category.ID
		if category.ID == r.categoryID {
			pos = i
		}
	}
	next := pos + delta
	if pos < 0 || next < 0 || next >= len(ids) {
		return
	}

	ids[pos], ids[next] = ids[next], ids[pos]
	if m.session.ReorderCategories(ids) {
		m.dirty = true
		m.rebuildRows()
		m.moveCursorToCategory(r.categoryID)
	}
}

// rebuildRows recomputes the visible projection and row list.
func (m *Model) rebuildRows() {
	if m.filter != "" {
		m.visible = m.session.Filter(m.filter)
	} else {
		m.visible = m.session.Categories()
	}

	rows := make([]row, 0, len(m.visible))
	for ci, category := range m.visible {
		rows = append(rows, row{categoryID: category.ID, catIndex: ci, serviceIndex: -1})
		if category.Expanded || m.filter != "" {
			for i := range category.Services {
				rows = append(rows, row{categoryID: category.ID, catIndex: ci, serviceIndex: i})
			}
		}
	}
	m.rows = rows
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveCursorToCategory(id string) {
	for i, r := range m.rows {
		if r.categoryID == id && r.serviceIndex < 0 {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}
