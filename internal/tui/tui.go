// Package tui is the interactive view: a labeled input, an add action, and
// one checkbox and delete action per task. Every action goes straight to
// the store, so what is on screen is what is persisted.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/simpletodo/internal/model"
	"github.com/Makepad-fr/simpletodo/internal/store"
	"github.com/Makepad-fr/simpletodo/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// lines taken by everything around the list, frame included
	chromeHeight = 10
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// listItem adapts model.Task to bubbles/list.Item
type listItem struct{ task model.Task }

func (i listItem) FilterValue() string { return i.task.Text }

// itemDelegate renders one task per line with its delete action; d acts on
// the selected row.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	line := fmt.Sprintf("%s %s", ui.Checkbox(it.task.Done), ui.TaskText(it.task))
	prefix, action := "  ", ui.DeleteLabel(it.task.Text)
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
		action = "[d] " + action
	}
	line += "  " + t.Muted.Render(action)
	fmt.Fprint(w, prefix+line)
}

// Model implements tea.Model over a store.
type Model struct {
	store  *store.Store
	list   list.Model
	input  textinput.Model
	keys   keyMap
	focus  focus
	status string
	failed bool
	width  int
	height int
}

// New builds the view over s with the input focused.
func New(s *store.Store) Model {
	keys := defaultKeys()

	l := list.New(toItems(s.Tasks()), itemDelegate{}, defaultWidth-4, defaultHeight-chromeHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.SetShowHelp(true)
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp
	// q is handled here so it can be typed into the input.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200
	ti.Focus()

	return Model{
		store:  s,
		list:   l,
		input:  ti,
		keys:   keys,
		focus:  focusInput,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(s *store.Store, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(s), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-4, 10), max(msg.Height-chromeHeight, 3))
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		return m.add()
	case key.Matches(msg, m.keys.FocusList):
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()
	case key.Matches(msg, m.keys.Delete):
		return m.remove()
	case key.Matches(msg, m.keys.FocusInput):
		m.focus = focusInput
		return m, m.input.Focus()
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) add() (tea.Model, tea.Cmd) {
	_, ok, err := m.store.Add(m.input.Value())
	if err != nil {
		return m.fail(err)
	}
	if !ok {
		return m, nil
	}
	m.input.SetValue("")
	cmd := m.refresh()
	m.list.Select(len(m.list.Items()) - 1)
	return m.done("added", cmd)
}

func (m Model) toggle() (tea.Model, tea.Cmd) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	if _, err := m.store.Toggle(it.task.ID); err != nil {
		return m.fail(err)
	}
	return m.done("toggled", m.refresh())
}

func (m Model) remove() (tea.Model, tea.Cmd) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	idx := m.list.Index()
	if _, err := m.store.Delete(it.task.ID); err != nil {
		return m.fail(err)
	}
	cmd := m.refresh()
	if n := len(m.list.Items()); n > 0 {
		m.list.Select(min(idx, n-1))
	}
	return m.done("deleted", cmd)
}

func (m Model) done(status string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.status, m.failed = status, false
	return m, cmd
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.status, m.failed = err.Error(), true
	return m, nil
}

func (m *Model) refresh() tea.Cmd {
	return m.list.SetItems(toItems(m.store.Tasks()))
}

func (m Model) View() string {
	t := ui.Current()
	d, p := m.store.Stats()

	var b strings.Builder
	b.WriteString(ui.Header(d, p) + "\n")
	b.WriteString(t.Muted.Render(ui.ProgressBar(d, d+p, 28)) + "\n\n")

	label := t.Accent.Render(ui.InputLabel)
	if m.focus == focusInput {
		label = t.Title.Render(ui.InputLabel)
	}
	b.WriteString(label + "\n")
	b.WriteString(m.input.View() + "  " + t.Muted.Render("[enter] "+ui.AddLabel) + "\n\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(t.Muted.Render("no todos yet") + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}

	switch {
	case m.failed:
		b.WriteString(t.Error.Render("✖ " + m.status))
	case m.status != "":
		b.WriteString(t.Muted.Render(m.status))
	case m.focus == focusInput:
		b.WriteString(t.Muted.Render("enter: add · esc: list · ctrl+c: quit"))
	}
	return ui.Panel([]string{b.String()})
}

func toItems(tasks []model.Task) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, listItem{task: task})
	}
	return items
}
