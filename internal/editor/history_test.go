package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoRestoresPreMergeStructure(t *testing.T) {
	session := newTestSession(t)
	before := session.Categories()
	cats := session.Categories()

	require.True(t, session.MergeCategories(cats[2].ID, cats[1].ID))
	require.Len(t, session.Categories(), 2)

	require.True(t, session.Undo())

	// Deep equality: category order, ids, and per-category service order
	// all restored.
	assert.Equal(t, before, session.Categories())
	assert.False(t, session.CanUndo())
}

func TestUndoIsBoundedToTenSnapshots(t *testing.T) {
	session := newTestSession(t)
	id := session.Categories()[0].ID

	// 12 distinct mutations.
	for i := 0; i < 12; i++ {
		require.True(t, session.RenameCategory(id, fmt.Sprintf("Nazwa %d", i)))
	}
	assert.Equal(t, maxHistory, session.HistoryLen())

	undone := 0
	for session.Undo() {
		undone++
	}
	assert.Equal(t, 10, undone)

	// Only the last 10 prior states were recoverable; the two oldest
	// renames are permanent.
	got, _ := session.CategoryByID(id)
	assert.Equal(t, "Nazwa 1", got.Name)
}

func TestUndoOnEmptyHistory(t *testing.T) {
	session := newTestSession(t)
	assert.False(t, session.Undo())
	assert.Equal(t, 3, len(session.Categories()))
}

func TestUndoClearsSelection(t *testing.T) {
	session := newTestSession(t)
	cats := session.Categories()

	require.True(t, session.RenameCategory(cats[0].ID, "Inna"))
	require.True(t, session.ToggleServiceSelection(cats[0].ID, 0))

	require.True(t, session.Undo())
	assert.Equal(t, 0, session.SelectedCount())
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	session := newTestSession(t)
	cats := session.Categories()

	require.True(t, session.RenameCategory(cats[0].ID, "Zmieniona"))
	// Mutate the live structure after the snapshot was taken.
	require.True(t, session.ReorderServices(cats[0].ID, []int{1, 0}))
	require.True(t, session.Undo())
	require.True(t, session.Undo())

	got, _ := session.CategoryByID(cats[0].ID)
	assert.Equal(t, "Strzyżenie", got.Name)
	assert.Equal(t, "Strzyżenie damskie", got.Services[0].Name, "snapshot unaffected by later edits")
}
