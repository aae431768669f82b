package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear_UndoRedoRestoresValue(t *testing.T) {
	h := NewLinear("")
	for _, v := range []string{"add a patio", "add a pond", "remove the shed"} {
		h.SetValue(v)
		assert.True(t, h.Commit())
	}

	before := h.Value()
	assert.True(t, h.Undo())
	assert.Equal(t, "add a pond", h.Value())
	assert.True(t, h.Redo())
	assert.Equal(t, before, h.Value())
	assert.Equal(t, 3, h.Cursor())
}

func TestLinear_CommitSameValueDoesNotGrow(t *testing.T) {
	h := NewLinear("")
	h.SetValue("stone patio")
	h.Commit()
	assert.Equal(t, 2, h.Len())

	assert.False(t, h.Commit())
	assert.Equal(t, 2, h.Len())
}

func TestLinear_EmptyCommitSuppressedButSetAndSaveRecords(t *testing.T) {
	h := NewLinear("")
	h.SetValue("")
	assert.False(t, h.Commit())
	h.SetValue("   \t")
	assert.False(t, h.Commit())
	assert.Equal(t, 1, h.Len())

	h.SetAndSave("")
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "", h.Value())
	assert.True(t, h.CanUndo())
}

func TestLinear_UndoAtStartIsNoop(t *testing.T) {
	h := NewLinear("start")
	h.SetValue("typing")

	assert.False(t, h.Undo())
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, "typing", h.Value())
}

func TestLinear_RedoAtTailIsNoop(t *testing.T) {
	h := NewLinear("")
	h.SetAndSave("one")

	assert.False(t, h.Redo())
	assert.Equal(t, 1, h.Cursor())
	assert.Equal(t, "one", h.Value())
}

func TestLinear_CommitDiscardsRedoBranch(t *testing.T) {
	h := NewLinear("")
	h.SetAndSave("a")
	h.SetAndSave("b")
	h.SetAndSave("c")
	h.Undo()
	h.Undo()
	assert.True(t, h.CanRedo())

	h.SetValue("x")
	assert.True(t, h.Commit())
	assert.False(t, h.CanRedo())
	assert.Equal(t, []string{"", "a", "x"}, h.Entries())
}

func TestLinear_SetAndSaveRecordsDuplicates(t *testing.T) {
	h := NewLinear("")
	h.SetAndSave("same")
	h.SetAndSave("same")
	assert.Equal(t, 3, h.Len())
}

func TestLinear_EntriesIsACopy(t *testing.T) {
	h := NewLinear("")
	h.SetAndSave("kept")
	e := h.Entries()
	e[1] = "mutated"
	assert.Equal(t, "kept", h.Entries()[1])
}
