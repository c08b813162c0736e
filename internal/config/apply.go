package config

import (
	"bopomofo/internal/engine"
	"bopomofo/internal/lm"
	"bopomofo/internal/mandarin"
)

// Apply pushes the input settings into a key handler and installs the
// conversion pair on the model when enabled.
func (c *Config) Apply(h *engine.KeyHandler, model *lm.Model) {
	h.SetKeyboardLayout(mandarin.ParseLayoutName(c.Input.Layout))
	h.SetComposingBufferSize(c.Input.ComposingBufferSize)
	h.SetSelectPhraseAfterCursor(c.Input.SelectPhrase == "after_cursor")
	h.SetMoveCursorAfterSelection(c.Input.MoveCursor)
	h.SetPutLowercaseLettersToComposingBuffer(c.Input.LetterMode == "lower")
	h.SetEscClearsEntireComposingBuffer(c.Input.EscClearsBuffer)
	h.SetCtrlPunctuationEnabled(c.Input.CtrlPunctuation)
	h.SetTraditionalMode(c.Input.TraditionalMode)
	h.SetLanguageCode(c.Input.LanguageCode)

	if model != nil {
		if c.Input.ChineseConversion {
			model.SetConverters(
				lm.NewTraditionalToSimplifiedConverter(),
				lm.NewSimplifiedToTraditionalConverter(),
			)
		} else {
			model.SetConverters(nil, nil)
		}
	}
}
