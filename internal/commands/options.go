package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidefind/internal/config"
)

// option names accepted by ":set name" and ":set noname".
var options = []struct {
	name  string
	field func(*config.FindConfig) *bool
}{
	{"regex", func(c *config.FindConfig) *bool { return &c.Regex }},
	{"icase", func(c *config.FindConfig) *bool { return &c.IgnoreCase }},
	{"diacritics", func(c *config.FindConfig) *bool { return &c.IgnoreDiacritics }},
	{"width", func(c *config.FindConfig) *bool { return &c.IgnoreWidth }},
	{"word", func(c *config.FindConfig) *bool { return &c.FullWord }},
	{"literal", func(c *config.FindConfig) *bool { return &c.Literal }},
	{"dotall", func(c *config.FindConfig) *bool { return &c.DotMatchesNewline }},
	{"comments", func(c *config.FindConfig) *bool { return &c.AllowComments }},
	{"unescape", func(c *config.FindConfig) *bool { return &c.UnescapeReplacement }},
	{"wrap", func(c *config.FindConfig) *bool { return &c.Wrap }},
	{"insel", func(c *config.FindConfig) *bool { return &c.InSelection }},
}

// SetOption turns an option on ("name") or off ("noname").
func SetOption(c *config.FindConfig, arg string) error {
	value := true
	name := arg
	if strings.HasPrefix(arg, "no") {
		name, value = arg[2:], false
	}
	for _, opt := range options {
		if opt.name == name {
			*opt.field(c) = value
			return nil
		}
	}
	return fmt.Errorf("unknown option: %s", arg)
}

// OptionNames lists the options that are on.
func OptionNames(c config.FindConfig) []string {
	var names []string
	for _, opt := range options {
		if *opt.field(&c) {
			names = append(names, opt.name)
		}
	}
	return names
}
