// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/textfind"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Find   FindConfig    `toml:"find"`
	UI     UIConfig      `toml:"ui"`
}

// FindConfig holds the default find panel options.
type FindConfig struct {
	Regex               bool `toml:"regex"`
	IgnoreCase          bool `toml:"ignore_case"`
	IgnoreDiacritics    bool `toml:"ignore_diacritics"`
	IgnoreWidth         bool `toml:"ignore_width"`
	FullWord            bool `toml:"full_word"`
	Literal             bool `toml:"literal"` // Regex only: pattern is plain text
	DotMatchesNewline   bool `toml:"dot_matches_newline"`
	AllowComments       bool `toml:"allow_comments"`
	UnescapeReplacement bool `toml:"unescape_replacement"`
	Wrap                bool `toml:"wrap"`
	InSelection         bool `toml:"in_selection"`
}

// UIConfig holds settings for the interactive view.
type UIConfig struct {
	MessageTimeoutMS int    `toml:"message_timeout_ms"`
	MaxHistory       int    `toml:"max_history"`
	ThemeFile        string `toml:"theme_file"`
}

// Mode turns the options into a textfind mode.
func (f FindConfig) Mode() textfind.Mode {
	if f.Regex {
		var opts textfind.RegexOptions
		if f.IgnoreCase {
			opts |= textfind.RegexCaseInsensitive
		}
		if f.Literal {
			opts |= textfind.RegexIgnoreMetacharacters
		}
		if f.DotMatchesNewline {
			opts |= textfind.RegexDotMatchesLineSeparators
		}
		if f.AllowComments {
			opts |= textfind.RegexAllowCommentsAndWhitespace
		}
		return textfind.RegularExpression{Options: opts, UnescapesReplacement: f.UnescapeReplacement}
	}

	var opts textfind.TextualOptions
	if f.IgnoreCase {
		opts |= textfind.CaseInsensitive
	}
	if f.IgnoreDiacritics {
		opts |= textfind.DiacriticInsensitive
	}
	if f.IgnoreWidth {
		opts |= textfind.WidthInsensitive
	}
	return textfind.Textual{Options: opts, FullWord: f.FullWord}
}

// MessageTimeout is the status bar message lifetime.
func (u UIConfig) MessageTimeout() time.Duration {
	return time.Duration(u.MessageTimeoutMS) * time.Millisecond
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Find: FindConfig{
			UnescapeReplacement: DefaultUnescapeReplacement,
			Wrap:                DefaultWrap,
		},
		UI: UIConfig{
			MessageTimeoutMS: int(MessageTimeout / time.Millisecond),
			MaxHistory:       DefaultMaxHistory,
		},
	}
}

// DefaultPath is the config file location under the user config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName), nil
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// The undecoded keys are returned so the caller can warn once logging is up.
func loadFromFile(filePath string, cfg *Config) ([]toml.Key, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return metadata.Undecoded(), nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.UI.MessageTimeoutMS <= 0 {
		c.UI.MessageTimeoutMS = defaults.UI.MessageTimeoutMS
	}
	if c.UI.MaxHistory <= 0 {
		c.UI.MaxHistory = defaults.UI.MaxHistory
	}
	if !c.Find.Regex {
		// Regex-only switches have no meaning for textual search.
		c.Find.Literal = false
		c.Find.DotMatchesNewline = false
		c.Find.AllowComments = false
	}
}

// Load builds the configuration: defaults, then the file, then set flags.
// An empty configFilePath means DefaultPath. Logging is not initialized yet,
// so unknown keys are returned to the caller instead of logged.
func Load(configFilePath string, flags *Flags) (*Config, []toml.Key, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	var undecoded []toml.Key
	if path != "" {
		keys, err := loadFromFile(path, cfg)
		if err != nil {
			return nil, nil, err
		}
		undecoded = keys
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, undecoded, nil
}
