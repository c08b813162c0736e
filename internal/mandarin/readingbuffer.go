package mandarin

import (
	"strings"
	"unicode"
)

// ReadingBuffer accumulates keystrokes into a single pending syllable.
// It is purely layout logic: the key handler owns when a completed
// syllable is moved into the grid.
type ReadingBuffer struct {
	layoutName LayoutName
	layout     *KeyboardLayout // nil in Hanyu Pinyin mode

	keys     []rune
	syllable Syllable

	// pinyin holds the accumulated romanization, tone digit last.
	pinyin string
}

// NewReadingBuffer creates a buffer for the named layout.
func NewReadingBuffer(name LayoutName) *ReadingBuffer {
	return &ReadingBuffer{
		layoutName: name,
		layout:     LayoutFor(name),
	}
}

// SetLayout switches the layout and clears any pending keys.
func (r *ReadingBuffer) SetLayout(name LayoutName) {
	r.layoutName = name
	r.layout = LayoutFor(name)
	r.Clear()
}

// Layout returns the active layout name.
func (r *ReadingBuffer) Layout() LayoutName { return r.layoutName }

// IsEmpty reports whether no keystrokes are pending.
func (r *ReadingBuffer) IsEmpty() bool { return len(r.keys) == 0 }

// IsValidKey reports whether the keystroke is legal for the current
// partial syllable.
func (r *ReadingBuffer) IsValidKey(key rune) bool {
	if r.layout == nil {
		if key >= 'a' && key <= 'z' {
			return true
		}
		// A tone digit closes a spelled syllable; it cannot open one.
		_, isTone := pinyinToneFromDigit(key)
		return isTone && len(r.pinyin) > 0 && !r.HasToneMarker()
	}
	return r.layout.IsValidKey(key)
}

// CombineKey appends a keystroke. It returns false if the key is not
// legal for the buffer in its current state.
func (r *ReadingBuffer) CombineKey(key rune) bool {
	if !r.IsValidKey(key) {
		return false
	}
	if r.layout == nil {
		r.pinyin += string(key)
		r.keys = append(r.keys, key)
		return true
	}
	next, ok := r.layout.Combine(r.syllable, key)
	if !ok {
		return false
	}
	r.syllable = next
	r.keys = append(r.keys, key)
	return true
}

// Backspace removes the most recent keystroke and reassembles the
// syllable from the survivors.
func (r *ReadingBuffer) Backspace() {
	if len(r.keys) == 0 {
		return
	}
	r.keys = r.keys[:len(r.keys)-1]
	if r.layout == nil {
		r.pinyin = r.pinyin[:len(r.pinyin)-1]
		return
	}
	r.syllable = 0
	for _, k := range r.keys {
		r.syllable, _ = r.layout.Combine(r.syllable, k)
	}
}

// Clear discards all pending keystrokes.
func (r *ReadingBuffer) Clear() {
	r.keys = r.keys[:0]
	r.syllable = 0
	r.pinyin = ""
}

// HasToneMarker reports whether the pending syllable carries a tone.
func (r *ReadingBuffer) HasToneMarker() bool {
	if r.layout == nil {
		if len(r.pinyin) == 0 {
			return false
		}
		return unicode.IsDigit(rune(r.pinyin[len(r.pinyin)-1]))
	}
	return r.syllable.HasToneMarker()
}

// HasToneMarkerOnly reports whether the buffer holds a tone and
// nothing else.
func (r *ReadingBuffer) HasToneMarkerOnly() bool {
	if r.layout == nil {
		return false
	}
	return !r.syllable.IsEmpty() && r.syllable == r.syllable.ToneMarker()
}

// ComposedString is the pending reading as shown to the user: Bopomofo
// symbols, or the raw romanization in Hanyu Pinyin mode.
func (r *ReadingBuffer) ComposedString() string {
	if r.layout == nil {
		return r.pinyin
	}
	return r.syllable.String()
}

// SyllableString is the canonical Bopomofo rendering of the assembled
// syllable, used as the grid reading once composition triggers. In
// Hanyu Pinyin mode the romanization is parsed here; an unparseable
// spelling yields the raw input so the failure surfaces as a missing
// dictionary entry rather than a silent drop.
func (r *ReadingBuffer) SyllableString() string {
	if r.layout != nil {
		return r.syllable.String()
	}

	spelling := r.pinyin
	tone := Tone1
	if r.HasToneMarker() {
		t, _ := pinyinToneFromDigit(rune(spelling[len(spelling)-1]))
		tone = t
		spelling = spelling[:len(spelling)-1]
	}
	s, ok := ParsePinyin(spelling)
	if !ok {
		return strings.TrimSpace(r.pinyin)
	}
	return s.Combine(tone).String()
}
