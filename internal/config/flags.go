// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Config overrides only apply when the flag was set explicitly.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	DebugLog       *bool

	// Find options
	Regex               *bool
	IgnoreCase          *bool
	IgnoreDiacritics    *bool
	IgnoreWidth         *bool
	FullWord            *bool
	Literal             *bool
	DotMatchesNewline   *bool
	AllowComments       *bool
	UnescapeReplacement *bool
	Wrap                *bool
	InSelection         *bool

	// Actions
	Pattern     *string
	Replacement *string
	One         *bool
	Next        *bool
	Prev        *bool
	At          *int
	Write       *bool
	Diff        *bool
	Copy        *bool
	Select      *string
	TUI         *bool
}

// NewFlags defines every flag on fs. A nil fs means flag.CommandLine.
func NewFlags(fs *flag.FlagSet) *Flags {
	if fs == nil {
		fs = flag.CommandLine
	}
	f := &Flags{fs: fs}

	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")

	f.Regex = fs.Bool("regex", false, "Treat the find string as a regular expression")
	f.IgnoreCase = fs.Bool("i", false, "Ignore case")
	f.IgnoreDiacritics = fs.Bool("diacritics", false, "Ignore diacritics (textual mode)")
	f.IgnoreWidth = fs.Bool("width", false, "Ignore full/half width differences (textual mode)")
	f.FullWord = fs.Bool("word", false, "Match full words only (textual mode)")
	f.Literal = fs.Bool("literal", false, "Regex mode: match the pattern as plain text")
	f.DotMatchesNewline = fs.Bool("dotall", false, "Regex mode: '.' also matches line separators")
	f.AllowComments = fs.Bool("x", false, "Regex mode: allow whitespace and #comments in the pattern")
	f.UnescapeReplacement = fs.Bool("unescape", DefaultUnescapeReplacement, "Regex mode: unescape \\n, \\t... in the replacement")
	f.Wrap = fs.Bool("wrap", DefaultWrap, "Wrap around when searching with -next/-prev")
	f.InSelection = fs.Bool("in-selection", false, "Limit find and replace to the -select ranges")

	f.Pattern = fs.String("e", "", "Find string; when unset it is the first argument")
	f.Replacement = fs.String("r", "", "Replacement template; enables replace mode")
	f.One = fs.Bool("one", false, "Replace only the match in the first selection")
	f.Next = fs.Bool("next", false, "Print the next match after -at")
	f.Prev = fs.Bool("prev", false, "Print the previous match before -at")
	f.At = fs.Int("at", 0, "Caret offset (runes) for -next/-prev")
	f.Write = fs.Bool("w", false, "Write the result back to FILE")
	f.Diff = fs.Bool("diff", false, "Print a diff of the replacement instead of the result")
	f.Copy = fs.Bool("copy", false, "Copy the result to the system clipboard")
	f.Select = fs.String("select", "", "Selected ranges as loc:len,loc:len (runes)")
	f.TUI = fs.Bool("tui", false, "Open the interactive view")

	return f
}

// Parse parses args and returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// IsSet reports whether the named flag was given on the command line.
func (f *Flags) IsSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// ApplyOverrides updates cfg with the flags that were set. It runs before
// the logger is initialized and must not log.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)

		case "regex":
			cfg.Find.Regex = *f.Regex
		case "i":
			cfg.Find.IgnoreCase = *f.IgnoreCase
		case "diacritics":
			cfg.Find.IgnoreDiacritics = *f.IgnoreDiacritics
		case "width":
			cfg.Find.IgnoreWidth = *f.IgnoreWidth
		case "word":
			cfg.Find.FullWord = *f.FullWord
		case "literal":
			cfg.Find.Literal = *f.Literal
		case "dotall":
			cfg.Find.DotMatchesNewline = *f.DotMatchesNewline
		case "x":
			cfg.Find.AllowComments = *f.AllowComments
		case "unescape":
			cfg.Find.UnescapeReplacement = *f.UnescapeReplacement
		case "wrap":
			cfg.Find.Wrap = *f.Wrap
		case "in-selection":
			cfg.Find.InSelection = *f.InSelection
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
