package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/bethropolis/tidefind/internal/app"
	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/textfind"
	"github.com/bethropolis/tidefind/internal/theme"
	"github.com/bethropolis/tidefind/internal/types"
)

const version = "0.1.0"

// Exit codes, grep style.
const (
	exitOK      = 0
	exitNoMatch = 1
	exitError   = 2
)

// invocation is everything a mode needs after setup.
type invocation struct {
	ctx       context.Context
	cfg       *config.Config
	flags     *config.Flags
	buf       *buffer.SliceBuffer
	pattern   string
	selection []types.Range
	stdout    io.Writer
	stderr    io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] PATTERN [FILE]\n       %s -tui [-e PATTERN] [FILE]\n\nFlags:\n", config.AppName, config.AppName)
		fs.PrintDefaults()
	}
	flags := config.NewFlags(fs)
	positional, err := flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	if *flags.Version {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, version)
		return exitOK
	}

	cfg, undecoded, err := config.Load(*flags.ConfigFilePath, flags)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}

	logOutput, closeLog, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}
	defer closeLog()
	logger.SetDebugFilter(*flags.DebugLog)
	logger.Init(cfg.Logger, logOutput)
	if len(undecoded) > 0 {
		logger.Warnf("Unrecognized keys in config file: %v", undecoded)
	}

	inv := &invocation{ctx: ctx, cfg: cfg, flags: flags, stdout: stdout, stderr: stderr}

	if flags.IsSet("e") {
		inv.pattern = *flags.Pattern
	} else if !*flags.TUI {
		if len(positional) == 0 {
			fs.Usage()
			return exitError
		}
		inv.pattern, positional = positional[0], positional[1:]
	}
	if len(positional) > 1 {
		fmt.Fprintf(stderr, "%s: too many arguments\n", config.AppName)
		return exitError
	}

	inv.buf = buffer.NewSliceBuffer()
	if len(positional) == 1 {
		if err := inv.buf.Load(positional[0]); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
			return exitError
		}
	} else {
		if *flags.Write || *flags.TUI {
			fmt.Fprintf(stderr, "%s: -w and -tui need a FILE\n", config.AppName)
			return exitError
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "%s: reading stdin: %v\n", config.AppName, err)
			return exitError
		}
		inv.buf = buffer.NewFromString(string(data))
	}

	if inv.selection, err = parseSelection(*flags.Select, inv.buf.RuneCount()); err != nil {
		fmt.Fprintf(stderr, "%s: -select: %v\n", config.AppName, err)
		return exitError
	}
	if cfg.Find.InSelection && len(inv.selection) == 0 {
		fmt.Fprintf(stderr, "%s: -in-selection needs -select\n", config.AppName)
		return exitError
	}
	logger.Debugf("Running with pattern %q, %d selected range(s), file %q", inv.pattern, len(inv.selection), inv.buf.FilePath())

	switch {
	case *flags.TUI:
		return inv.runTUI()
	case *flags.Next || *flags.Prev:
		return inv.runFind(*flags.Next)
	case flags.IsSet("r"):
		return inv.runReplace()
	default:
		return inv.runList()
	}
}

// fail prints the user-facing form of err.
func (inv *invocation) fail(err error) int {
	msg := err.Error()
	if hint := textfind.RecoverySuggestion(err); hint != "" {
		msg = hint
	}
	fmt.Fprintf(inv.stderr, "%s: %s\n", config.AppName, msg)
	return exitError
}

// colorOutput reports whether stdout is a terminal.
func (inv *invocation) colorOutput() bool {
	f, ok := inv.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (inv *invocation) runTUI() int {
	var th *theme.Theme
	if inv.cfg.UI.ThemeFile != "" {
		loaded, err := theme.LoadThemeFromFile(inv.cfg.UI.ThemeFile)
		if err != nil {
			logger.Warnf("Using the built-in theme: %v", err)
		} else {
			th = loaded
		}
	}

	a, err := app.NewApp(inv.ctx, app.Options{
		Config:      inv.cfg,
		Buffer:      inv.buf,
		Theme:       th,
		FindString:  inv.pattern,
		Replacement: *inv.flags.Replacement,
		Selection:   inv.selection,
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(inv.stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}
	if err := a.Run(inv.ctx); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return exitError
	}
	return exitOK
}
