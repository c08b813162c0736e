package mandarin

import "testing"

func TestReadingBufferBackspace(t *testing.T) {
	r := NewReadingBuffer(LayoutStandard)
	for _, ch := range "su" {
		r.CombineKey(ch)
	}
	if got := r.ComposedString(); got != "ㄋㄧ" {
		t.Fatalf("ComposedString() = %q", got)
	}

	r.Backspace()
	if got := r.ComposedString(); got != "ㄋ" {
		t.Errorf("after backspace = %q, want ㄋ", got)
	}

	r.Backspace()
	if !r.IsEmpty() {
		t.Error("buffer should be empty")
	}
	r.Backspace() // no-op at empty
	if !r.IsEmpty() {
		t.Error("backspace at empty should stay empty")
	}
}

func TestReadingBufferToneMarkerOnly(t *testing.T) {
	r := NewReadingBuffer(LayoutStandard)
	r.CombineKey('3')
	if !r.HasToneMarkerOnly() {
		t.Error("a lone tone key should be tone-marker-only")
	}
	r.CombineKey('s')
	if r.HasToneMarkerOnly() {
		t.Error("adding a consonant should clear tone-marker-only")
	}
}

func TestReadingBufferClearOnLayoutSwitch(t *testing.T) {
	r := NewReadingBuffer(LayoutStandard)
	r.CombineKey('s')
	r.SetLayout(LayoutETen)
	if !r.IsEmpty() {
		t.Error("switching layouts should clear the pending reading")
	}
	if r.Layout() != LayoutETen {
		t.Errorf("Layout() = %s", r.Layout())
	}
}
