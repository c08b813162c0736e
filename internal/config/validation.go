package config

import "strings"

const (
	minComposingBufferSize = 4
	maxComposingBufferSize = 100

	minCandidateKeys = 4
	maxCandidateKeys = 15
)

// Validate normalizes the configuration in place. Out-of-range values
// are clamped or reset to defaults rather than rejected: a bad config
// file should degrade the experience, not break typing.
func (c *Config) Validate() {
	switch c.Input.Layout {
	case "Standard", "ETen", "Hsu", "ETen26", "HanyuPinyin", "IBM":
	default:
		c.Input.Layout = "Standard"
	}

	switch c.Input.SelectPhrase {
	case "before_cursor", "after_cursor":
	default:
		c.Input.SelectPhrase = "before_cursor"
	}

	switch c.Input.LetterMode {
	case "upper", "lower":
	default:
		c.Input.LetterMode = "upper"
	}

	if c.Input.ComposingBufferSize < minComposingBufferSize {
		c.Input.ComposingBufferSize = minComposingBufferSize
	}
	if c.Input.ComposingBufferSize > maxComposingBufferSize {
		c.Input.ComposingBufferSize = maxComposingBufferSize
	}

	c.Candidates.Keys = normalizeCandidateKeys(c.Candidates.Keys)

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = "info"
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		c.Logging.Format = "console"
	}
}

// normalizeCandidateKeys lowercases the hotkey row, strips duplicates,
// and falls back to the default row when the result is out of bounds.
func normalizeCandidateKeys(keys string) string {
	lowered := strings.ToLower(keys)
	var unique []rune
	seen := make(map[rune]bool)
	for _, r := range lowered {
		if r < '!' || r > '~' || seen[r] {
			continue
		}
		seen[r] = true
		unique = append(unique, r)
	}
	if len(unique) < minCandidateKeys || len(unique) > maxCandidateKeys {
		return Default().Candidates.Keys
	}
	return string(unique)
}
