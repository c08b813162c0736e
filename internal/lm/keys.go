package lm

import (
	"strings"

	"bopomofo/internal/mandarin"
)

// Reserved key prefixes for non-syllable readings.
const (
	PunctuationKeyPrefix     = "_punctuation_"
	CtrlPunctuationKeyPrefix = "_ctrl_punctuation_"
	LetterKeyPrefix          = "_letter_"

	// PunctuationListKey opens the punctuation palette.
	PunctuationListKey = "_punctuation_list"
)

// separatorGuard stands in for the literal "_-" while a key is split
// on "-". U+0001 cannot occur in a reading or a reserved key.
const separatorGuard = "\x01"

// MaybeAbsoluteOrderKey canonicalizes a user-level reading key for
// dictionary lookup. Each "-"-separated segment is either a reserved
// "_"-prefixed key, kept verbatim, or a Bopomofo syllable, replaced by
// its absolute-order string. The literal "_-" is protected from the
// split.
func MaybeAbsoluteOrderKey(key string) string {
	guarded := strings.ReplaceAll(key, "_-", separatorGuard)
	segments := strings.Split(guarded, "-")
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, separatorGuard, "_-")
		segments[i] = segment
		if strings.HasPrefix(segment, "_") || segment == "" {
			continue
		}
		s := mandarin.FromString(segment)
		if s.IsEmpty() {
			continue
		}
		segments[i] = s.AbsoluteOrderString()
	}
	return strings.Join(segments, "-")
}
