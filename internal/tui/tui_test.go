package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/simpletodo/internal/idgen"
	"github.com/Makepad-fr/simpletodo/internal/storage"
	"github.com/Makepad-fr/simpletodo/internal/store"
	"github.com/Makepad-fr/simpletodo/internal/ui"
)

func setup(t *testing.T) (Model, *store.Store, *storage.Memory) {
	t.Helper()
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })
	mem := storage.NewMemory()
	s := store.New(mem, store.WithIDGenerator(idgen.NewSequence("t")))
	return New(s), s, mem
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(text string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	del   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}
	quit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestViewShowsControls(t *testing.T) {
	m, _, _ := setup(t)
	view := m.View()
	assert.Contains(t, view, ui.InputLabel)
	assert.Contains(t, view, ui.AddLabel)
	assert.Contains(t, view, "no todos yet")
}

func TestAddTodo(t *testing.T) {
	m, s, mem := setup(t)
	m = send(t, m, typeText("Buy milk"), enter)

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Done)
	assert.Equal(t, "", m.input.Value())
	assert.Contains(t, m.View(), "[ ] Buy milk")

	_, err := mem.GetItem(store.DefaultKey)
	assert.NoError(t, err)
}

func TestAddWhitespaceIsIgnored(t *testing.T) {
	m, s, _ := setup(t)
	m = send(t, m, typeText("   "), enter)
	assert.Equal(t, 0, s.Len())
	assert.False(t, m.failed)
	assert.Equal(t, "", m.status)
}

func TestToggleTodo(t *testing.T) {
	m, s, _ := setup(t)
	m = send(t, m, typeText("Walk dog"), enter, esc)
	assert.Contains(t, m.View(), "[ ] Walk dog")

	m = send(t, m, space)
	assert.True(t, s.Tasks()[0].Done)
	assert.Contains(t, m.View(), "[x] Walk dog")

	m = send(t, m, space)
	assert.False(t, s.Tasks()[0].Done)
	assert.Contains(t, m.View(), "[ ] Walk dog")
}

func TestDeleteTodo(t *testing.T) {
	m, s, mem := setup(t)
	m = send(t, m, typeText("Task to delete"), enter, esc)
	assert.Contains(t, m.View(), ui.DeleteLabel("Task to delete"))

	m = send(t, m, del)
	assert.Equal(t, 0, s.Len())
	assert.NotContains(t, m.View(), "Task to delete")

	blob, err := mem.GetItem(store.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", blob)
}

func TestEveryRowShowsDeleteAction(t *testing.T) {
	m, _, _ := setup(t)
	m = send(t, m, typeText("Buy milk"), enter, typeText("Walk dog"), enter, esc)

	view := m.View()
	assert.Contains(t, view, ui.DeleteLabel("Buy milk"))
	assert.Contains(t, view, "[d] "+ui.DeleteLabel("Walk dog"))
	assert.NotContains(t, view, "[d] "+ui.DeleteLabel("Buy milk"))
}

func TestDeleteKeepsSelectionInRange(t *testing.T) {
	m, s, _ := setup(t)
	m = send(t, m, typeText("one"), enter, typeText("two"), enter, esc)
	require.Equal(t, 1, m.list.Index())

	m = send(t, m, del)
	assert.Equal(t, 0, m.list.Index())
	require.Len(t, s.Tasks(), 1)
	assert.Equal(t, "one", s.Tasks()[0].Text)
}

func TestKeysInsideInputAreText(t *testing.T) {
	m, s, _ := setup(t)
	m = send(t, m, typeText("q d x"), enter)
	require.Len(t, s.Tasks(), 1)
	assert.Equal(t, "q d x", s.Tasks()[0].Text)
}

func TestQuitFromList(t *testing.T) {
	m, _, _ := setup(t)
	m = send(t, m, esc)
	_, cmd := m.Update(quit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLoadsExistingTasks(t *testing.T) {
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })
	mem := storage.NewMemory()
	require.NoError(t, mem.SetItem(store.DefaultKey, `[{"id":"a","text":"from disk","done":true}]`))

	m := New(store.New(mem))
	assert.Contains(t, m.View(), "[x] from disk")
}

func TestWindowResize(t *testing.T) {
	m, _, _ := setup(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.list.Width())
}
