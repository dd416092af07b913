// Package ui holds the shared look of the CLI and the interactive view.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/simpletodo/internal/model"
)

// Accessible names of the view's controls.
const (
	InputLabel = "todo input"
	AddLabel   = "Add Todo"
)

// DeleteLabel names the delete action of the row showing text.
func DeleteLabel(text string) string { return "Delete " + text }

// maxTitle is counted in runes.
const maxTitle = 80

// Checkbox renders the row checkbox for a done state.
func Checkbox(done bool) string {
	t := Current()
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// TaskText renders the task's text, struck through once done.
func TaskText(task model.Task) string {
	text := task.Text
	if r := []rune(text); len(r) > maxTitle {
		text = string(r[:maxTitle-3]) + "..."
	}
	if task.Done {
		return Current().DoneText.Render(text)
	}
	return text
}

// Row is one numbered line of the flat list.
func Row(index int, task model.Task) string {
	idx := Current().Muted.Render(fmt.Sprintf("%2d.", index))
	return fmt.Sprintf("%s %s %s", idx, Checkbox(task.Done), TaskText(task))
}

// Header shows live counts.
func Header(done, pending int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines in a box using the current theme.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render("✖ "+msg))
}
