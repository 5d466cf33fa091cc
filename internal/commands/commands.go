// Package commands holds the ':' command line commands of the find view.
package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/logger"
)

// CommandFunc runs a command with its whitespace-split arguments.
type CommandFunc func(args []string) error

// API is what the commands need from the view.
type API interface {
	FindSettings() config.FindConfig
	SetFindSettings(settings config.FindConfig)
	SetFindString(s string)
	SetReplacement(s string)
	FindNext(forward bool)
	ReplaceAll()
	Save(path string) error
	Quit(force bool) error
	SetStatusMessage(format string, args ...interface{})
}

// Registry maps command names to functions.
type Registry struct {
	commands map[string]CommandFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandFunc)}
}

// Register adds a command. Names must be unique.
func (r *Registry) Register(name string, fn CommandFunc) error {
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	r.commands[name] = fn
	return nil
}

// Execute parses and runs a command line (without the leading ':').
// "s/pat/repl/flags" is split before the command name lookup.
func (r *Registry) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "s/") {
		if fn, ok := r.commands["s"]; ok {
			return fn([]string{line[1:]})
		}
	}

	parts := strings.Fields(line)
	fn, ok := r.commands[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", parts[0])
	}
	logger.DebugTagf("commands", "Executing ':%s' with args %v", parts[0], parts[1:])
	return fn(parts[1:])
}

// RegisterAppCommands registers the built-in commands.
func RegisterAppCommands(r *Registry, api API) {
	register := func(name string, fn CommandFunc) {
		if err := r.Register(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}

	register("s", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: s/pattern/replacement/[flags]")
		}
		sub, err := ParseSubstitute(args[0])
		if err != nil {
			return err
		}
		settings := api.FindSettings()
		settings.Regex = true
		settings.IgnoreCase = sub.IgnoreCase
		api.SetFindSettings(settings)
		api.SetFindString(sub.Pattern)
		api.SetReplacement(sub.Replacement)
		if sub.Global {
			api.ReplaceAll()
		} else {
			api.FindNext(true)
		}
		return nil
	})

	register("w", func(args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return api.Save(path)
	})
	register("q", func([]string) error { return api.Quit(false) })
	register("q!", func([]string) error { return api.Quit(true) })
	register("wq", func([]string) error {
		if err := api.Save(""); err != nil {
			return err
		}
		return api.Quit(false)
	})

	register("set", func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("options: %s", strings.Join(OptionNames(api.FindSettings()), ","))
			return nil
		}
		settings := api.FindSettings()
		for _, arg := range args {
			if err := SetOption(&settings, arg); err != nil {
				return err
			}
		}
		api.SetFindSettings(settings)
		return nil
	})
}
