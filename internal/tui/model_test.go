package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelle/gloss/internal/editor"
	"github.com/mirelle/gloss/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	original := []model.Category{
		{
			Name: "Strzyżenie",
			Services: []model.Service{
				{Name: "Strzyżenie damskie", Price: "od 120 zł"},
				{Name: "Strzyżenie męskie", Price: "80 zł"},
			},
		},
		{
			Name: "Koloryzacja",
			Services: []model.Service{
				{Name: "Baleyage", Price: "od 250 zł"},
			},
		},
	}

	session := editor.NewSession(original, nil, nil)
	return New(session, "Studio Bella")
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok)
	return result
}

func TestInitialRowsShowExpandedCategories(t *testing.T) {
	m := newTestModel(t)

	// Both categories are within the initial expansion window, so all
	// services are visible.
	require.Len(t, m.rows, 5)
	assert.Equal(t, -1, m.rows[0].serviceIndex)
	assert.Equal(t, 0, m.rows[1].serviceIndex)
	assert.Equal(t, 1, m.rows[2].serviceIndex)
	assert.Equal(t, -1, m.rows[3].serviceIndex)
}

func TestToggleCollapseHidesServices(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.rows, 4, "collapsing the first category hides its services")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.rows, 5)
}

func TestSelectServicesAndMove(t *testing.T) {
	m := newTestModel(t)

	// Move cursor to the first service and select it.
	m = update(t, m, keyRunes("j"))
	m = update(t, m, keyRunes("x"))
	assert.Equal(t, 1, m.session.SelectedCount())

	// Open the move picker.
	m = update(t, m, keyRunes("m"))
	assert.Equal(t, StatePickMoveTarget, m.state)
	require.Len(t, m.targets, 2)

	// Pick Koloryzacja.
	m = update(t, m, keyRunes("j"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateBrowse, m.state)
	categories := m.session.Categories()
	assert.Len(t, categories[0].Services, 1)
	assert.Len(t, categories[1].Services, 2)
	assert.Zero(t, m.session.SelectedCount())
}

func TestMoveWithNothingSelected(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("m"))
	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, "Nothing selected", m.status)
}

func TestRenameCategory(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("r"))
	assert.Equal(t, StateRename, m.state)

	m.input.SetValue("Fryzury damskie")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, "Fryzury damskie", m.session.Categories()[0].Name)
	assert.True(t, m.dirty)
}

func TestRenameCanceledWithEsc(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("r"))
	m.input.SetValue("Ignorowane")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, "Strzyżenie", m.session.Categories()[0].Name)
}

func TestAddCategory(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("a"))
	assert.Equal(t, StateAdd, m.state)

	m.input.SetValue("Pielęgnacja")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	categories := m.session.Categories()
	require.Len(t, categories, 3)
	assert.Equal(t, "Pielęgnacja", categories[2].Name)
}

func TestDeleteRedistributesAndUndo(t *testing.T) {
	m := newTestModel(t)

	// Cursor on Koloryzacja header.
	m = update(t, m, keyRunes("G"))
	m = update(t, m, keyRunes("k"))
	r, ok := m.currentRow()
	require.True(t, ok)
	require.Equal(t, -1, r.serviceIndex)

	m = update(t, m, keyRunes("d"))
	categories := m.session.Categories()
	require.Len(t, categories, 1)
	assert.Len(t, categories[0].Services, 3, "services move to the remaining category")

	m = update(t, m, keyRunes("u"))
	assert.Len(t, m.session.Categories(), 2)
}

func TestMergePicker(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("M"))
	require.Equal(t, StatePickMergeTarget, m.state)
	require.Len(t, m.targets, 1, "source category is excluded")
	assert.Equal(t, "Koloryzacja", m.targets[0].Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	categories := m.session.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, "Koloryzacja", categories[0].Name)
	assert.Len(t, categories[0].Services, 3)
}

func TestFilterDisablesSelection(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("/"))
	m.input.SetValue("baleyage")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.rows, 2, "one category with one matching service")

	m = update(t, m, keyRunes("j"))
	m = update(t, m, keyRunes("x"))
	assert.Zero(t, m.session.SelectedCount())
	assert.NotEmpty(t, m.status)

	// Esc clears the filter before quitting.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.filter)
	assert.Len(t, m.rows, 5)
}

func TestSaveQuit(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(keyRunes("s"))
	m = next.(Model)
	assert.True(t, m.Saved())
	assert.NotNil(t, cmd)
}

func TestDirtyQuitAsksForConfirmation(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("r"))
	m.input.SetValue("Fryzury")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, keyRunes("q"))
	require.Equal(t, StateConfirmQuit, m.state)

	// Any other key cancels.
	m = update(t, m, keyRunes("n"))
	assert.Equal(t, StateBrowse, m.state)

	m = update(t, m, keyRunes("q"))
	m = update(t, m, keyRunes("s"))
	assert.True(t, m.Saved())
}

func TestShiftCategoryDown(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyRunes("J"))
	categories := m.session.Categories()
	assert.Equal(t, "Koloryzacja", categories[0].Name)
	assert.Equal(t, "Strzyżenie", categories[1].Name)

	// Cursor follows the moved category.
	r, ok := m.currentRow()
	require.True(t, ok)
	assert.Equal(t, -1, r.serviceIndex)
	assert.Equal(t, categories[1].ID, r.categoryID)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Studio Bella")
	assert.Contains(t, view, "Strzyżenie")
	assert.Contains(t, view, "Baleyage")
}
