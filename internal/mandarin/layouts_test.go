package mandarin

import "testing"

func composeKeys(t *testing.T, layout LayoutName, keys string) string {
	t.Helper()
	r := NewReadingBuffer(layout)
	for _, ch := range keys {
		if !r.CombineKey(ch) {
			t.Fatalf("layout %s rejected key %q in %q", layout, ch, keys)
		}
	}
	return r.SyllableString()
}

func TestStandardLayoutSequences(t *testing.T) {
	cases := []struct {
		keys string
		want string
	}{
		{"su3", "ㄋㄧˇ"},
		{"cl3", "ㄏㄠˇ"},
		{"5j4", "ㄓㄨˋ"},
		{"g0", "ㄕㄢ"},
		{"a87", "ㄇㄚ˙"},
		{"-", "ㄦ"},
	}
	for _, tc := range cases {
		if got := composeKeys(t, LayoutStandard, tc.keys); got != tc.want {
			t.Errorf("Standard %q = %q, want %q", tc.keys, got, tc.want)
		}
	}
}

func TestETenLayoutSequences(t *testing.T) {
	cases := []struct {
		keys string
		want string
	}{
		{"ne3", "ㄋㄧˇ"},
		{"hz3", "ㄏㄠˇ"},
		{"ba4", "ㄅㄚˋ"},
	}
	for _, tc := range cases {
		if got := composeKeys(t, LayoutETen, tc.keys); got != tc.want {
			t.Errorf("ETen %q = %q, want %q", tc.keys, got, tc.want)
		}
	}
}

func TestIBMLayoutSequences(t *testing.T) {
	cases := []struct {
		keys string
		want string
	}{
		{"7a,", "ㄋㄧˇ"},
		{"-;,", "ㄏㄠˇ"},
	}
	for _, tc := range cases {
		if got := composeKeys(t, LayoutIBM, tc.keys); got != tc.want {
			t.Errorf("IBM %q = %q, want %q", tc.keys, got, tc.want)
		}
	}
}

func TestHsuLayoutDualRoleKeys(t *testing.T) {
	// m opens a syllable as ㄇ and closes one as ㄢ.
	if got := composeKeys(t, LayoutHsu, "my"); got != "ㄇㄚ" {
		t.Errorf("Hsu my = %q, want ㄇㄚ", got)
	}
	r := NewReadingBuffer(LayoutHsu)
	for _, ch := range "bm" {
		r.CombineKey(ch)
	}
	if got := r.SyllableString(); got != "ㄅㄢ" {
		t.Errorf("Hsu bm = %q, want ㄅㄢ", got)
	}
}

func TestHsuLayoutPalatalization(t *testing.T) {
	// ㄍ turns into ㄐ in front of ㄧ.
	if got := composeKeys(t, LayoutHsu, "ge"); got != "ㄐㄧ" {
		t.Errorf("Hsu ge = %q, want ㄐㄧ", got)
	}
	// ...and into ㄑ from ㄎ in front of ㄩ.
	if got := composeKeys(t, LayoutHsu, "ku"); got != "ㄑㄩ" {
		t.Errorf("Hsu ku = %q, want ㄑㄩ", got)
	}
	// Without a following ㄧ/ㄩ the velar stays.
	if got := composeKeys(t, LayoutHsu, "gx"); got != "ㄍㄨ" {
		t.Errorf("Hsu gx = %q, want ㄍㄨ", got)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	// Whatever a layout assembles must survive the symbol round trip:
	// parsing the composed string reproduces the same canonical key.
	sequences := map[LayoutName][]string{
		LayoutStandard: {"su3", "cl3", "5j4", "a87", "j94", "m,4"},
		LayoutETen:     {"ne3", "hz3", "ba4", "vu2"},
		LayoutIBM:      {"7a,", "-;,", "1f."},
		LayoutHsu:      {"my", "bmd", "ge", "cx"},
		LayoutETen26:   {"ne", "by", "vx"},
	}
	for layout, seqs := range sequences {
		for _, keys := range seqs {
			r := NewReadingBuffer(layout)
			for _, ch := range keys {
				if !r.CombineKey(ch) {
					t.Fatalf("%s rejected %q in %q", layout, ch, keys)
				}
			}
			composed := r.SyllableString()
			reparsed := FromString(composed)
			if reparsed.AbsoluteOrderString() != r.syllable.AbsoluteOrderString() {
				t.Errorf("%s %q: unstable round trip", layout, keys)
			}
			if composed != reparsed.String() {
				t.Errorf("%s %q: %q reparsed to %q", layout, keys, composed, reparsed.String())
			}
		}
	}
}

func TestParseLayoutName(t *testing.T) {
	if ParseLayoutName("ETen26") != LayoutETen26 {
		t.Error("ETen26 should parse")
	}
	if ParseLayoutName("Qwerty") != LayoutStandard {
		t.Error("unknown layout should fall back to Standard")
	}
}
