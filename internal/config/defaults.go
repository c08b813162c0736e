package config

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Layout:              "Standard",
			SelectPhrase:        "before_cursor",
			LetterMode:          "upper",
			MoveCursor:          false,
			EscClearsBuffer:     false,
			ComposingBufferSize: 10,
			LanguageCode:        "zh-TW",
		},
		Candidates: CandidatesConfig{
			Keys: "123456789",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
