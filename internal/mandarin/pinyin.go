package mandarin

import "strings"

// pinyinInitials maps romanized initials to components, longest first.
var pinyinInitials = []struct {
	spelling  string
	component Syllable
}{
	{"zh", ZH}, {"ch", CH}, {"sh", SH},
	{"b", B}, {"p", P}, {"m", M}, {"f", F},
	{"d", D}, {"t", T}, {"n", N}, {"l", L},
	{"g", G}, {"k", K}, {"h", H},
	{"j", J}, {"q", Q}, {"x", X},
	{"r", R}, {"z", Z}, {"c", C}, {"s", S},
}

// pinyinFinals maps the final spelling (after initial extraction) to the
// middle and final vowel components. The y/w spellings are looked up
// whole in wholeSyllables instead. The ü row is spelled with "v".
var pinyinFinals = map[string]Syllable{
	"a": A, "o": O, "e": ER, "eh": E,
	"ai": AI, "ei": EI, "ao": AO, "ou": OU,
	"an": AN, "en": EN, "ang": ANG, "eng": ENG, "er": ERR,

	"i": I, "ia": I | A, "io": I | O, "ie": I | E, "iai": I | AI,
	"iao": I | AO, "iu": I | OU, "ian": I | AN, "in": I | EN,
	"iang": I | ANG, "ing": I | ENG,

	"u": U, "ua": U | A, "uo": U | O, "uai": U | AI, "ui": U | EI,
	"uan": U | AN, "un": U | EN, "uang": U | ANG, "ong": U | ENG,

	"v": UE, "ve": UE | E, "van": UE | AN, "vn": UE | EN, "iong": UE | ENG,
}

// wholeSyllables are the y/w spellings that have no separable initial.
var wholeSyllables = map[string]Syllable{
	"yi": I, "ya": I | A, "yo": I | O, "ye": I | E, "yai": I | AI,
	"yao": I | AO, "you": I | OU, "yan": I | AN, "yin": I | EN,
	"yang": I | ANG, "ying": I | ENG,
	"wu": U, "wa": U | A, "wo": U | O, "wai": U | AI, "wei": U | EI,
	"wan": U | AN, "wen": U | EN, "wang": U | ANG, "weng": U | ENG,
	"yu": UE, "yue": UE | E, "yuan": UE | AN, "yun": UE | EN, "yong": UE | ENG,
}

// apicalInitials are the initials whose bare-"i" spelling carries no
// vowel component (zhi, chi, shi, ri, zi, ci, si).
var apicalInitials = map[Syllable]bool{
	ZH: true, CH: true, SH: true, R: true, Z: true, C: true, S: true,
}

// jqxInitials respell a written "u" as the ü row.
var jqxInitials = map[Syllable]bool{J: true, Q: true, X: true}

// ParsePinyin converts a toneless lowercase Hanyu Pinyin spelling into
// a packed syllable. The second return value is false when the
// spelling is not a recognized syllable.
func ParsePinyin(spelling string) (Syllable, bool) {
	spelling = strings.ToLower(strings.TrimSpace(spelling))
	if spelling == "" {
		return 0, false
	}

	if s, ok := wholeSyllables[spelling]; ok {
		return s, true
	}

	var initial Syllable
	rest := spelling
	for _, in := range pinyinInitials {
		if strings.HasPrefix(spelling, in.spelling) {
			initial = in.component
			rest = spelling[len(in.spelling):]
			break
		}
	}

	if initial == 0 {
		if s, ok := pinyinFinals[rest]; ok {
			return s, true
		}
		return 0, false
	}

	if rest == "i" && apicalInitials[initial] {
		return initial, true
	}
	if jqxInitials[initial] && strings.HasPrefix(rest, "u") {
		rest = "v" + rest[1:]
	}
	// lüe/nüe accept both "ve" and "ue" spellings; lü/nü are spelled "v".
	if (initial == L || initial == N) && strings.HasPrefix(rest, "ue") {
		rest = "v" + rest[1:]
	}

	final, ok := pinyinFinals[rest]
	if !ok || rest == "" {
		return 0, false
	}
	return initial | final, true
}

// pinyinToneFromDigit maps a trailing tone digit to the tone field.
func pinyinToneFromDigit(d rune) (Syllable, bool) {
	switch d {
	case '1':
		return Tone1, true
	case '2':
		return Tone2, true
	case '3':
		return Tone3, true
	case '4':
		return Tone4, true
	case '5':
		return Tone5, true
	}
	return 0, false
}
