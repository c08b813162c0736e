package lm

import (
	"strings"

	"bopomofo/internal/lattice"
)

// Model merges the static dictionary with the user-phrase model and
// applies the optional converters. It is the language model handed to
// the grid and the key handler.
type Model struct {
	dict *Dictionary
	user *UserPhrases

	// outputConverter rewrites every value returned by a lookup;
	// inputConverter rewrites phrases before they are stored.
	outputConverter StringConverter
	inputConverter  StringConverter

	onChange func()
}

// NewModel creates a model over a dictionary and a user-phrase model.
// Either may be nil.
func NewModel(dict *Dictionary, user *UserPhrases) *Model {
	if dict == nil {
		dict = NewDictionary()
	}
	if user == nil {
		user = NewUserPhrases()
	}
	return &Model{dict: dict, user: user}
}

// SetConverters installs the output and input converters. Nil disables
// a direction.
func (m *Model) SetConverters(output, input StringConverter) {
	m.outputConverter = output
	m.inputConverter = input
}

// SetChangeCallback registers a callback invoked after every
// user-phrase mutation.
func (m *Model) SetChangeCallback(fn func()) {
	m.onChange = fn
}

// UserPhrases returns the underlying user-phrase model.
func (m *Model) UserPhrases() *UserPhrases { return m.user }

// UnigramsForKey returns the merged unigrams for a user-level key:
// user phrases first at score 0, then dictionary entries, deduplicated
// by value with the user entry winning. The key " " returns a single
// identity unigram so a whitespace reading always composes.
func (m *Model) UnigramsForKey(key string) []lattice.Unigram {
	if key == " " {
		return []lattice.Unigram{{Key: " ", Value: " ", Score: 0}}
	}
	if letter, ok := strings.CutPrefix(key, LetterKeyPrefix); ok && letter != "" {
		return []lattice.Unigram{{Key: key, Value: letter, Score: 0}}
	}
	canonical := MaybeAbsoluteOrderKey(key)

	userUnigrams := m.user.UnigramsForKey(canonical)
	dictUnigrams := m.dict.UnigramsForKey(canonical)

	merged := make([]lattice.Unigram, 0, len(userUnigrams)+len(dictUnigrams))
	seen := make(map[string]bool, len(userUnigrams)+len(dictUnigrams))
	for _, u := range userUnigrams {
		if seen[u.Value] {
			continue
		}
		seen[u.Value] = true
		merged = append(merged, u)
	}
	for _, u := range dictUnigrams {
		if seen[u.Value] {
			continue
		}
		seen[u.Value] = true
		merged = append(merged, u)
	}

	if m.outputConverter != nil {
		for i := range merged {
			merged[i].Value = m.outputConverter.Convert(merged[i].Value)
		}
	}
	return merged
}

// HasUnigramsForKey reports whether either source covers the key.
func (m *Model) HasUnigramsForKey(key string) bool {
	if key == " " {
		return true
	}
	if letter, ok := strings.CutPrefix(key, LetterKeyPrefix); ok && letter != "" {
		return true
	}
	canonical := MaybeAbsoluteOrderKey(key)
	return m.user.HasUnigramsForKey(canonical) || m.dict.HasUnigramsForKey(canonical)
}

// HasUserPhrase reports whether the exact phrase is already stored for
// the user-level key, before conversion.
func (m *Model) HasUserPhrase(key, phrase string) bool {
	if m.inputConverter != nil {
		phrase = m.inputConverter.Convert(phrase)
	}
	return m.user.Has(MaybeAbsoluteOrderKey(key), phrase)
}

// AddUserPhrase stores a phrase for a user-level key and fires the
// change callback.
func (m *Model) AddUserPhrase(key, phrase string) {
	if m.inputConverter != nil {
		phrase = m.inputConverter.Convert(phrase)
	}
	if m.user.Add(MaybeAbsoluteOrderKey(key), phrase) && m.onChange != nil {
		m.onChange()
	}
}

// compile-time interface check
var _ lattice.LanguageModel = (*Model)(nil)
