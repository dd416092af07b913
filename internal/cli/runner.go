package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Makepad-fr/simpletodo/internal/exitcode"
	"github.com/Makepad-fr/simpletodo/internal/model"
	"github.com/Makepad-fr/simpletodo/internal/store"
	"github.com/Makepad-fr/simpletodo/internal/tui"
	"github.com/Makepad-fr/simpletodo/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

// Runner dispatches subcommands against a store.
type Runner struct {
	Store   *store.Store
	Out     io.Writer
	Err     io.Writer
	Options Options

	// Interactive runs the full-screen view; tui.Run when nil.
	Interactive func(*store.Store) error
}

var errNoRow = errors.New("no such todo")

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(args []string) int {
	if len(args) == 0 {
		PrintHelp(r.Err)
		return exitcode.Usage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.Out)
		return exitcode.Success

	case "ls":
		return r.doList()

	case "add":
		if len(a) == 0 {
			ui.Fail(r.Err, "usage: simpletodo add <text...>")
			return exitcode.Usage
		}
		return r.doAdd(strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			ui.Fail(r.Err, "usage: simpletodo done <index|id>")
			return exitcode.Usage
		}
		return r.doToggle(a[0])

	case "rm":
		if len(a) != 1 {
			ui.Fail(r.Err, "usage: simpletodo rm <index|id>")
			return exitcode.Usage
		}
		return r.doRemove(a[0])

	case "ui":
		return r.doInteractive()
	}

	ui.Fail(r.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.Err)
	PrintHelp(r.Err)
	return exitcode.Usage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `simpletodo - a tiny todo list

Usage:
  simpletodo [flags] <subcommand> [args]

Subcommands:
  add <text...>      Add a todo (text can be multiple words)
  ls                 List todos
  done <index|id>    Toggle done for a todo (1-based index or id)
  rm <index|id>      Delete a todo (1-based index or id)
  ui                 Interactive view

Flags:
  -config <file>     TOML config file
  -data <path>       Data file or database
  -storage <driver>  file|sqlite|memory
  -theme <name>      classic|neon|mono
  -log-level <lvl>   debug|info|warn|error
  -group             Group ls output by pending/done

Examples:
  simpletodo add "Buy milk"
  simpletodo ls
  simpletodo done 2
  simpletodo rm 3
`)
}

// -------------- subcommand impls ----------------

func (r *Runner) doList() int {
	tasks := r.Store.Tasks()
	d, p := r.Store.Stats()

	var lines []string
	lines = append(lines, ui.Header(d, p))
	lines = append(lines, ui.Current().Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if r.Options.Group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Muted.Render("Tip: add with `simpletodo add \"Buy milk\"`"))
	fmt.Fprintln(r.Out, ui.Panel(lines))
	return exitcode.Success
}

// doAdd ignores blank text without complaint.
func (r *Runner) doAdd(text string) int {
	_, ok, err := r.Store.Add(text)
	if err != nil {
		ui.Fail(r.Err, err.Error())
		return exitcode.Failure
	}
	if ok {
		ui.OK(r.Out, "added")
	}
	return exitcode.Success
}

func (r *Runner) doToggle(ref string) int {
	task, code := r.resolve(ref)
	if code != exitcode.Success {
		return code
	}
	if _, err := r.Store.Toggle(task.ID); err != nil {
		ui.Fail(r.Err, err.Error())
		return exitcode.Failure
	}
	ui.OK(r.Out, "toggled")
	return exitcode.Success
}

func (r *Runner) doRemove(ref string) int {
	task, code := r.resolve(ref)
	if code != exitcode.Success {
		return code
	}
	if _, err := r.Store.Delete(task.ID); err != nil {
		ui.Fail(r.Err, err.Error())
		return exitcode.Failure
	}
	ui.OK(r.Out, "removed")
	return exitcode.Success
}

func (r *Runner) doInteractive() int {
	run := r.Interactive
	if run == nil {
		run = func(s *store.Store) error { return tui.Run(s) }
	}
	if err := run(r.Store); err != nil {
		ui.Fail(r.Err, "ui: "+err.Error())
		return exitcode.Failure
	}
	return exitcode.Success
}

// resolve accepts a 1-based index or a task id.
func (r *Runner) resolve(ref string) (model.Task, int) {
	if task, ok := r.Store.Get(ref); ok {
		return task, exitcode.Success
	}
	tasks := r.Store.Tasks()
	n, err := strconv.Atoi(ref)
	if err != nil {
		ui.Fail(r.Err, fmt.Sprintf("%v: %s", errNoRow, ref))
		return model.Task{}, exitcode.Usage
	}
	if n < 1 || n > len(tasks) {
		ui.Fail(r.Err, fmt.Sprintf("index out of range: have %d, got %d", len(tasks), n))
		fmt.Fprintln(r.Err, ui.Current().Muted.Render("Hint: run `simpletodo ls` to see valid indexes"))
		return model.Task{}, exitcode.Usage
	}
	return tasks[n-1], exitcode.Success
}

// -------------- rendering helpers --------------

func flatLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{ui.Current().Muted.Render("no todos")}
	}
	out := make([]string, 0, len(tasks))
	for i, task := range tasks {
		out = append(out, ui.Row(i+1, task))
	}
	return out
}

// groupLines keeps each row's flat index so it can be passed to done/rm.
func groupLines(tasks []model.Task) []string {
	var pend, done []string
	for i, task := range tasks {
		if task.Done {
			done = append(done, ui.Row(i+1, task))
		} else {
			pend = append(pend, ui.Row(i+1, task))
		}
	}
	t := ui.Current()
	section := func(title string, rows []string) []string {
		lines := []string{t.Accent.Render(title)}
		if len(rows) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, rows...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
