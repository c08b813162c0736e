// Package config handles configuration loading and validation for the
// input method engine and its hosts.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the complete engine configuration.
type Config struct {
	// Input configures the composition engine.
	Input InputConfig `toml:"input"`

	// Candidates configures the candidate window.
	Candidates CandidatesConfig `toml:"candidates"`

	// UserPhrases configures user-phrase persistence.
	UserPhrases UserPhrasesConfig `toml:"user_phrases"`

	// Dictionary configures the static dictionary.
	Dictionary DictionaryConfig `toml:"dictionary"`

	// Logging configures log output.
	Logging LoggingConfig `toml:"logging"`
}

// InputConfig holds the per-handler composition settings.
type InputConfig struct {
	// Layout is the keyboard layout: Standard, ETen, Hsu, ETen26,
	// HanyuPinyin, or IBM.
	Layout string `toml:"layout"`

	// SelectPhrase is "before_cursor" or "after_cursor".
	SelectPhrase string `toml:"select_phrase"`

	// LetterMode is "upper" (commit letters) or "lower" (put letters
	// into the composing buffer).
	LetterMode string `toml:"letter_mode"`

	// MoveCursor advances the caret after a candidate selection.
	MoveCursor bool `toml:"move_cursor"`

	// EscClearsBuffer makes ESC drop the entire composing buffer.
	EscClearsBuffer bool `toml:"esc_clears_buffer"`

	// ComposingBufferSize is the buffer width in readings.
	ComposingBufferSize int `toml:"composing_buffer_size"`

	// ChineseConversion enables Traditional/Simplified conversion.
	ChineseConversion bool `toml:"chinese_conversion"`

	// TraditionalMode composes one syllable at a time.
	TraditionalMode bool `toml:"traditional_mode"`

	// CtrlPunctuation enables the Ctrl-punctuation key table.
	CtrlPunctuation bool `toml:"ctrl_punctuation"`

	// LanguageCode is the host UI language, e.g. "zh-TW".
	LanguageCode string `toml:"language_code"`
}

// CandidatesConfig holds candidate window settings.
type CandidatesConfig struct {
	// Keys is the hotkey row, 4-15 unique lowercase characters.
	Keys string `toml:"keys"`

	// Vertical lays the candidate window out vertically.
	Vertical bool `toml:"vertical"`
}

// UserPhrasesConfig holds user-phrase persistence settings.
type UserPhrasesConfig struct {
	// StorePath is the SQLite database path. Empty keeps user
	// phrases in memory only.
	StorePath string `toml:"store_path"`

	// WatchForChanges reloads the store when another process writes
	// to it.
	WatchForChanges bool `toml:"watch_for_changes"`
}

// DictionaryConfig holds static dictionary settings.
type DictionaryConfig struct {
	// Path is the dictionary file path.
	Path string `toml:"path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "console" or "json".
	Format string `toml:"format"`
}

// Load reads a TOML config file over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}
