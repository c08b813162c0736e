package mandarin

// LayoutName identifies a keyboard layout.
type LayoutName string

const (
	LayoutStandard    LayoutName = "Standard"
	LayoutETen        LayoutName = "ETen"
	LayoutHsu         LayoutName = "Hsu"
	LayoutETen26      LayoutName = "ETen26"
	LayoutHanyuPinyin LayoutName = "HanyuPinyin"
	LayoutIBM         LayoutName = "IBM"
)

// ParseLayoutName returns the layout for a config string. Unknown
// values fall back to LayoutStandard.
func ParseLayoutName(s string) LayoutName {
	switch LayoutName(s) {
	case LayoutStandard, LayoutETen, LayoutHsu, LayoutETen26, LayoutHanyuPinyin, LayoutIBM:
		return LayoutName(s)
	}
	return LayoutStandard
}

// KeyboardLayout maps typing keys to syllable components. A key may
// carry several candidate components on the compact layouts; the first
// entry is the one used at the start of a syllable, and later entries
// take over once the earlier fields are occupied.
type KeyboardLayout struct {
	name            LayoutName
	keyToComponents map[rune][]Syllable

	// palatalizes enables the ㄍㄎㄏ/ㄓㄔㄕ → ㄐㄑㄒ rewrite when a
	// following ㄧ or ㄩ proves the initial is the palatal series.
	palatalizes bool
}

// Name returns the layout identifier.
func (l *KeyboardLayout) Name() LayoutName { return l.name }

// IsValidKey reports whether the key produces any component.
func (l *KeyboardLayout) IsValidKey(key rune) bool {
	return len(l.keyToComponents[key]) > 0
}

// palatalMap rewrites velar and retroflex initials to the palatal
// series. Only meaningful on layouts that share those keys.
var palatalMap = map[Syllable]Syllable{
	G: J, K: Q, H: X,
	ZH: J, CH: Q, SH: X,
}

// Combine resolves the key against the current partial syllable and
// merges the chosen component. It returns the updated syllable and
// whether the key was consumed.
func (l *KeyboardLayout) Combine(current Syllable, key rune) (Syllable, bool) {
	components := l.keyToComponents[key]
	if len(components) == 0 {
		return current, false
	}

	chosen := components[0]
	if len(components) > 1 {
		chosen = resolveComponent(current, components)
	}

	next := current.Combine(chosen)

	if l.palatalizes {
		m := chosen.MiddleVowel()
		if (m == I || m == UE) && next.HasConsonant() {
			if p, ok := palatalMap[next.Consonant()]; ok {
				next = (next &^ ConsonantMask) | p
			}
		}
	}
	return next, true
}

// resolveComponent picks among a key's candidate components by syllable
// position: a sounded syllable takes a tone reading, a started syllable
// takes a vowel reading, and an empty syllable takes the first entry.
func resolveComponent(current Syllable, components []Syllable) Syllable {
	if current.HasVowel() || current.HasMiddleVowel() {
		for _, c := range components {
			if c.ToneMarker() != 0 {
				return c
			}
		}
	}
	if !current.IsEmpty() {
		for _, c := range components {
			if c&(VowelMask|MiddleVowelMask) != 0 {
				return c
			}
		}
	}
	return components[0]
}

func singles(pairs map[rune]Syllable) map[rune][]Syllable {
	m := make(map[rune][]Syllable, len(pairs))
	for k, c := range pairs {
		m[k] = []Syllable{c}
	}
	return m
}

// StandardLayout is the Dachen layout found on most keycaps.
var StandardLayout = &KeyboardLayout{
	name: LayoutStandard,
	keyToComponents: singles(map[rune]Syllable{
		'1': B, 'q': P, 'a': M, 'z': F,
		'2': D, 'w': T, 's': N, 'x': L,
		'e': G, 'd': K, 'c': H,
		'r': J, 'f': Q, 'v': X,
		'5': ZH, 't': CH, 'g': SH, 'b': R,
		'y': Z, 'h': C, 'n': S,
		'u': I, 'j': U, 'm': UE,
		'8': A, 'i': O, 'k': ER, ',': E,
		'9': AI, 'o': EI, 'l': AO, '.': OU,
		'0': AN, 'p': EN, ';': ANG, '/': ENG, '-': ERR,
		'6': Tone2, '3': Tone3, '4': Tone4, '7': Tone5,
	}),
}

// ETenLayout is the 41-key ETen layout.
var ETenLayout = &KeyboardLayout{
	name: LayoutETen,
	keyToComponents: singles(map[rune]Syllable{
		'b': B, 'p': P, 'm': M, 'f': F,
		'd': D, 't': T, 'n': N, 'l': L,
		'v': G, 'k': K, 'h': H,
		'g': J, '7': Q, 'c': X,
		',': ZH, '.': CH, '/': SH, 'j': R,
		';': Z, '\'': C, 's': S,
		'e': I, 'x': U, 'u': UE,
		'a': A, 'o': O, 'r': ER, 'w': E,
		'i': AI, 'q': EI, 'z': AO, 'y': OU,
		'8': AN, '9': EN, '0': ANG, '-': ENG, '=': ERR,
		'2': Tone2, '3': Tone3, '4': Tone4, '1': Tone5,
	}),
}

// IBMLayout assigns symbols in table order across the key rows.
var IBMLayout = &KeyboardLayout{
	name: LayoutIBM,
	keyToComponents: singles(map[rune]Syllable{
		'1': B, '2': P, '3': M, '4': F,
		'5': D, '6': T, '7': N, '8': L,
		'9': G, '0': K, '-': H,
		'q': J, 'w': Q, 'e': X,
		'r': ZH, 't': CH, 'y': SH, 'u': R,
		'i': Z, 'o': C, 'p': S,
		'a': I, 's': U, 'd': UE,
		'f': A, 'g': O, 'h': ER, 'j': E,
		'k': AI, 'l': EI, ';': AO, 'z': OU,
		'x': AN, 'c': EN, 'v': ANG, 'b': ENG, 'n': ERR,
		'm': Tone2, ',': Tone3, '.': Tone4, '/': Tone5,
	}),
}

// HsuLayout is the 26-key Hsu layout. Ten keys double as an initial
// and a final or tone; the velar and retroflex rows palatalize before
// ㄧ and ㄩ.
var HsuLayout = &KeyboardLayout{
	name:        LayoutHsu,
	palatalizes: true,
	keyToComponents: map[rune][]Syllable{
		'b': {B}, 'p': {P}, 'm': {M, AN}, 'f': {F, Tone3},
		'd': {D, Tone2}, 't': {T}, 'n': {N, EN}, 'l': {L, ENG, Tone4},
		'g': {G, ER}, 'k': {K, ANG}, 'h': {H, ERR},
		'j': {ZH}, 'v': {CH}, 'c': {SH},
		'r': {R}, 'z': {Z}, 'a': {C, EI}, 's': {S, Tone5},
		'e': {I, E}, 'x': {U}, 'u': {UE},
		'y': {A}, 'i': {AI}, 'w': {AO}, 'o': {OU}, 'q': {O},
	},
}

// ETen26Layout folds the 41-key ETen layout onto the letter keys.
var ETen26Layout = &KeyboardLayout{
	name:        LayoutETen26,
	palatalizes: true,
	keyToComponents: map[rune][]Syllable{
		'b': {B}, 'p': {P}, 'm': {M, AN}, 'f': {F, EN},
		'd': {D, Tone2}, 't': {T, ANG}, 'n': {N, ENG}, 'l': {L, ERR},
		'v': {G}, 'k': {K, Tone4}, 'h': {H, Tone3},
		'g': {ZH}, 'q': {CH, EI}, 'c': {SH},
		'j': {R, Tone5}, 'z': {Z, AO}, 'a': {C, A}, 's': {S},
		'e': {I}, 'x': {U}, 'u': {UE},
		'o': {O}, 'r': {ER}, 'w': {E}, 'i': {AI}, 'y': {OU},
	},
}

// LayoutFor returns the keyboard layout for a name, or nil for
// LayoutHanyuPinyin, which is keyed by romanization rather than a
// component table.
func LayoutFor(name LayoutName) *KeyboardLayout {
	switch name {
	case LayoutETen:
		return ETenLayout
	case LayoutHsu:
		return HsuLayout
	case LayoutETen26:
		return ETen26Layout
	case LayoutIBM:
		return IBMLayout
	case LayoutHanyuPinyin:
		return nil
	default:
		return StandardLayout
	}
}
