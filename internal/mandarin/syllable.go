package mandarin

import "strings"

// Component field masks. A syllable packs all four fields into one
// uint16 so that syllables can be compared, combined, and ordered
// cheaply.
const (
	ConsonantMask   Syllable = 0x001f // 21 initial consonants
	MiddleVowelMask Syllable = 0x0060 // ㄧ ㄨ ㄩ
	VowelMask       Syllable = 0x0780 // 13 final vowels
	ToneMarkerMask  Syllable = 0x3800 // tones 2-5; tone 1 is the zero value
)

// Initial consonants.
const (
	B  Syllable = 0x0001 // ㄅ
	P  Syllable = 0x0002 // ㄆ
	M  Syllable = 0x0003 // ㄇ
	F  Syllable = 0x0004 // ㄈ
	D  Syllable = 0x0005 // ㄉ
	T  Syllable = 0x0006 // ㄊ
	N  Syllable = 0x0007 // ㄋ
	L  Syllable = 0x0008 // ㄌ
	G  Syllable = 0x0009 // ㄍ
	K  Syllable = 0x000a // ㄎ
	H  Syllable = 0x000b // ㄏ
	J  Syllable = 0x000c // ㄐ
	Q  Syllable = 0x000d // ㄑ
	X  Syllable = 0x000e // ㄒ
	ZH Syllable = 0x000f // ㄓ
	CH Syllable = 0x0010 // ㄔ
	SH Syllable = 0x0011 // ㄕ
	R  Syllable = 0x0012 // ㄖ
	Z  Syllable = 0x0013 // ㄗ
	C  Syllable = 0x0014 // ㄘ
	S  Syllable = 0x0015 // ㄙ
)

// Middle vowels.
const (
	I  Syllable = 0x0020 // ㄧ
	U  Syllable = 0x0040 // ㄨ
	UE Syllable = 0x0060 // ㄩ
)

// Final vowels.
const (
	A   Syllable = 0x0080 // ㄚ
	O   Syllable = 0x0100 // ㄛ
	ER  Syllable = 0x0180 // ㄜ
	E   Syllable = 0x0200 // ㄝ
	AI  Syllable = 0x0280 // ㄞ
	EI  Syllable = 0x0300 // ㄟ
	AO  Syllable = 0x0380 // ㄠ
	OU  Syllable = 0x0400 // ㄡ
	AN  Syllable = 0x0480 // ㄢ
	EN  Syllable = 0x0500 // ㄣ
	ANG Syllable = 0x0580 // ㄤ
	ENG Syllable = 0x0600 // ㄥ
	ERR Syllable = 0x0680 // ㄦ
)

// Tone markers. Tone 1 is unmarked and encoded as zero.
const (
	Tone1 Syllable = 0x0000
	Tone2 Syllable = 0x0800 // ˊ
	Tone3 Syllable = 0x1000 // ˇ
	Tone4 Syllable = 0x1800 // ˋ
	Tone5 Syllable = 0x2000 // ˙
)

// Syllable is a packed Bopomofo syllable. The zero value is the empty
// syllable.
type Syllable uint16

var componentToRune = map[Syllable]rune{
	B: 'ㄅ', P: 'ㄆ', M: 'ㄇ', F: 'ㄈ',
	D: 'ㄉ', T: 'ㄊ', N: 'ㄋ', L: 'ㄌ',
	G: 'ㄍ', K: 'ㄎ', H: 'ㄏ',
	J: 'ㄐ', Q: 'ㄑ', X: 'ㄒ',
	ZH: 'ㄓ', CH: 'ㄔ', SH: 'ㄕ', R: 'ㄖ',
	Z: 'ㄗ', C: 'ㄘ', S: 'ㄙ',
	I: 'ㄧ', U: 'ㄨ', UE: 'ㄩ',
	A: 'ㄚ', O: 'ㄛ', ER: 'ㄜ', E: 'ㄝ',
	AI: 'ㄞ', EI: 'ㄟ', AO: 'ㄠ', OU: 'ㄡ',
	AN: 'ㄢ', EN: 'ㄣ', ANG: 'ㄤ', ENG: 'ㄥ', ERR: 'ㄦ',
	Tone2: 'ˊ', Tone3: 'ˇ', Tone4: 'ˋ', Tone5: '˙',
}

var runeToComponent = func() map[rune]Syllable {
	m := make(map[rune]Syllable, len(componentToRune))
	for c, r := range componentToRune {
		m[r] = c
	}
	return m
}()

// ComponentFromRune returns the packed component for a Bopomofo symbol
// or tone mark, or zero if the rune is not one.
func ComponentFromRune(r rune) Syllable {
	return runeToComponent[r]
}

// IsEmpty reports whether no component has been set.
func (s Syllable) IsEmpty() bool { return s == 0 }

// HasConsonant reports whether an initial consonant is set.
func (s Syllable) HasConsonant() bool { return s&ConsonantMask != 0 }

// HasMiddleVowel reports whether one of ㄧㄨㄩ is set.
func (s Syllable) HasMiddleVowel() bool { return s&MiddleVowelMask != 0 }

// HasVowel reports whether a final vowel is set.
func (s Syllable) HasVowel() bool { return s&VowelMask != 0 }

// HasToneMarker reports whether a non-first tone is set.
func (s Syllable) HasToneMarker() bool { return s&ToneMarkerMask != 0 }

// Consonant returns the initial consonant field.
func (s Syllable) Consonant() Syllable { return s & ConsonantMask }

// MiddleVowel returns the middle vowel field.
func (s Syllable) MiddleVowel() Syllable { return s & MiddleVowelMask }

// Vowel returns the final vowel field.
func (s Syllable) Vowel() Syllable { return s & VowelMask }

// ToneMarker returns the tone field.
func (s Syllable) ToneMarker() Syllable { return s & ToneMarkerMask }

// BelongsToJQXClass reports whether the initial is one of ㄐㄑㄒ, the
// palatal series that only precedes ㄧ or ㄩ.
func (s Syllable) BelongsToJQXClass() bool {
	c := s.Consonant()
	return c == J || c == Q || c == X
}

// BelongsToGKHClass reports whether the initial is one of ㄍㄎㄏ, the
// velar series that never precedes ㄧ or ㄩ.
func (s Syllable) BelongsToGKHClass() bool {
	c := s.Consonant()
	return c == G || c == K || c == H
}

// Combine merges a component into the syllable, replacing whichever
// field the component occupies.
func (s Syllable) Combine(component Syllable) Syllable {
	mask := maskFor(component)
	return (s &^ mask) | component
}

// maskFor returns the field mask a single component occupies.
func maskFor(component Syllable) Syllable {
	switch {
	case component&ConsonantMask != 0:
		return ConsonantMask
	case component&MiddleVowelMask != 0:
		return MiddleVowelMask
	case component&VowelMask != 0:
		return VowelMask
	case component&ToneMarkerMask != 0:
		return ToneMarkerMask
	}
	return 0
}

// ClearToneMarker removes the tone field.
func (s Syllable) ClearToneMarker() Syllable { return s &^ ToneMarkerMask }

// String renders the syllable as Bopomofo symbols, tone mark last.
// Tone 1 renders no mark.
func (s Syllable) String() string {
	var b strings.Builder
	if c := s.Consonant(); c != 0 {
		b.WriteRune(componentToRune[c])
	}
	if m := s.MiddleVowel(); m != 0 {
		b.WriteRune(componentToRune[m])
	}
	if v := s.Vowel(); v != 0 {
		b.WriteRune(componentToRune[v])
	}
	if t := s.ToneMarker(); t != 0 {
		b.WriteRune(componentToRune[t])
	}
	return b.String()
}

// FromString parses a Bopomofo symbol string back into a syllable.
// Unknown runes are ignored.
func FromString(str string) Syllable {
	var s Syllable
	for _, r := range str {
		if c := runeToComponent[r]; c != 0 {
			s = s.Combine(c)
		}
	}
	return s
}

// absoluteOrder collapses the packed fields into a dense ordinal. The
// multipliers are the field cardinalities (22 consonant, 4 middle, 14
// vowel values), so decoding is a pure divide/modulo chain and the
// largest ordinal stays below 79*79.
func (s Syllable) absoluteOrder() int {
	return int(s&ConsonantMask) +
		int((s&MiddleVowelMask)>>5)*22 +
		int((s&VowelMask)>>7)*88 +
		int((s&ToneMarkerMask)>>11)*1232
}

// AbsoluteOrderString returns the two-character canonical key for this
// syllable, little-endian base 79 over the printable range starting at
// '0'.
func (s Syllable) AbsoluteOrderString() string {
	order := s.absoluteOrder()
	return string([]rune{
		rune(48 + order%79),
		rune(48 + order/79),
	})
}

// FromAbsoluteOrderString decodes a two-character canonical key. The
// second return value is false if the string is not a valid key.
func FromAbsoluteOrderString(str string) (Syllable, bool) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, false
	}
	lo, hi := int(runes[0])-48, int(runes[1])-48
	if lo < 0 || lo >= 79 || hi < 0 {
		return 0, false
	}
	order := lo + hi*79
	consonant := Syllable(order % 22)
	middle := Syllable((order / 22) % 4)
	vowel := Syllable((order / 88) % 14)
	tone := Syllable(order / 1232)
	if consonant > 21 || middle > 3 || vowel > 13 || tone > 4 {
		return 0, false
	}
	return consonant | middle<<5 | vowel<<7 | tone<<11, true
}
