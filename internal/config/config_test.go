package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateClampsBufferSize(t *testing.T) {
	cfg := Default()
	cfg.Input.ComposingBufferSize = 1
	cfg.Validate()
	if cfg.Input.ComposingBufferSize != 4 {
		t.Errorf("low clamp = %d, want 4", cfg.Input.ComposingBufferSize)
	}

	cfg.Input.ComposingBufferSize = 1000
	cfg.Validate()
	if cfg.Input.ComposingBufferSize != 100 {
		t.Errorf("high clamp = %d, want 100", cfg.Input.ComposingBufferSize)
	}
}

func TestValidateCandidateKeys(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123456789", "123456789"},
		{"ABCDE", "abcde"},
		{"aabbcc", Default().Candidates.Keys},
		{"abcdefghijklmnop", Default().Candidates.Keys},
		{"", Default().Candidates.Keys},
		{"asdfghjkl", "asdfghjkl"},
	}
	for _, tc := range cases {
		if got := normalizeCandidateKeys(tc.in); got != tc.want {
			t.Errorf("normalizeCandidateKeys(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateFallbacks(t *testing.T) {
	cfg := Default()
	cfg.Input.Layout = "Dvorak"
	cfg.Input.SelectPhrase = "everywhere"
	cfg.Input.LetterMode = "mixed"
	cfg.Logging.Level = "loud"
	cfg.Validate()

	if cfg.Input.Layout != "Standard" {
		t.Errorf("layout fallback = %q", cfg.Input.Layout)
	}
	if cfg.Input.SelectPhrase != "before_cursor" {
		t.Errorf("select_phrase fallback = %q", cfg.Input.SelectPhrase)
	}
	if cfg.Input.LetterMode != "upper" {
		t.Errorf("letter_mode fallback = %q", cfg.Input.LetterMode)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level fallback = %q", cfg.Logging.Level)
	}
}

func TestLoadOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[input]
layout = "Hsu"
composing_buffer_size = 30

[candidates]
keys = "asdf"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input.Layout != "Hsu" {
		t.Errorf("layout = %q", cfg.Input.Layout)
	}
	if cfg.Input.ComposingBufferSize != 30 {
		t.Errorf("buffer size = %d", cfg.Input.ComposingBufferSize)
	}
	if cfg.Candidates.Keys != "asdf" {
		t.Errorf("keys = %q", cfg.Candidates.Keys)
	}
	// Untouched settings keep their defaults.
	if cfg.Input.SelectPhrase != "before_cursor" {
		t.Errorf("select_phrase = %q", cfg.Input.SelectPhrase)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
