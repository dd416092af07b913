package cli

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/simpletodo/internal/config"
	"github.com/Makepad-fr/simpletodo/internal/exitcode"
	"github.com/Makepad-fr/simpletodo/internal/logging"
	"github.com/Makepad-fr/simpletodo/internal/storage"
	"github.com/Makepad-fr/simpletodo/internal/store"
	"github.com/Makepad-fr/simpletodo/internal/ui"
)

// Main wires config, storage and the store, then runs the subcommand in
// args. It returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	// First pass only finds -config; every other flag is applied on top of
	// the loaded file below.
	configPath := os.Getenv("SIMPLETODO_CONFIG")
	pre := newFlagSet(&config.Config{}, &configPath, new(bool))
	pre.SetOutput(io.Discard)
	_ = pre.Parse(args)

	cfg, err := config.Load(configPath, nil)
	if err != nil {
		ui.Fail(stderr, err.Error())
		return exitcode.Failure
	}

	var opt Options
	fs := newFlagSet(cfg, &configPath, &opt.Group)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			PrintHelp(stdout)
			return exitcode.Success
		}
		return exitcode.Usage
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail(stderr, "config: "+err.Error())
		return exitcode.Usage
	}
	rest := fs.Args()

	ui.SetTheme(cfg.UI.Theme)

	logger, closeLog, err := newLogger(cfg, rest, stderr)
	if err != nil {
		ui.Fail(stderr, "log: "+err.Error())
		return exitcode.Failure
	}
	defer closeLog()

	st, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		ui.Fail(stderr, "storage: "+err.Error())
		return exitcode.Failure
	}
	defer st.Close()

	s := store.New(st, store.WithKey(cfg.Storage.Key), store.WithLogger(logger))
	r := &Runner{Store: s, Out: stdout, Err: stderr, Options: opt}
	return r.Run(rest)
}

func newFlagSet(cfg *config.Config, configPath *string, group *bool) *flag.FlagSet {
	fs := flag.NewFlagSet("simpletodo", flag.ContinueOnError)
	fs.StringVar(configPath, "config", *configPath, "TOML config file")
	fs.BoolVar(group, "group", *group, "group ls output by pending/done")
	config.BindFlags(fs, cfg)
	return fs
}

// newLogger logs to stderr, except for the interactive view which owns the
// terminal: there logs go to log.file, or nowhere.
func newLogger(cfg *config.Config, args []string, stderr io.Writer) (*log.Logger, func(), error) {
	if len(args) == 0 || args[0] != "ui" {
		return logging.New(stderr, cfg.Log.Level), func() {}, nil
	}
	if cfg.Log.File == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(f, cfg.Log.Level), func() { _ = f.Close() }, nil
}
