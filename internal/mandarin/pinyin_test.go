package mandarin

import "testing"

func TestParsePinyin(t *testing.T) {
	cases := []struct {
		spelling string
		want     string
	}{
		{"ni", "ㄋㄧ"},
		{"hao", "ㄏㄠ"},
		{"zhang", "ㄓㄤ"},
		{"zhi", "ㄓ"},
		{"si", "ㄙ"},
		{"ju", "ㄐㄩ"},
		{"xue", "ㄒㄩㄝ"},
		{"lv", "ㄌㄩ"},
		{"lue", "ㄌㄩㄝ"},
		{"yi", "ㄧ"},
		{"wu", "ㄨ"},
		{"yu", "ㄩ"},
		{"yong", "ㄩㄥ"},
		{"weng", "ㄨㄥ"},
		{"er", "ㄦ"},
		{"an", "ㄢ"},
		{"jiong", "ㄐㄩㄥ"},
		{"shuang", "ㄕㄨㄤ"},
		{"qiu", "ㄑㄧㄡ"},
	}
	for _, tc := range cases {
		s, ok := ParsePinyin(tc.spelling)
		if !ok {
			t.Errorf("ParsePinyin(%q) failed", tc.spelling)
			continue
		}
		if got := s.String(); got != tc.want {
			t.Errorf("ParsePinyin(%q) = %q, want %q", tc.spelling, got, tc.want)
		}
	}
}

func TestParsePinyinRejects(t *testing.T) {
	for _, bad := range []string{"", "ngx", "q", "zh", "xyz"} {
		if _, ok := ParsePinyin(bad); ok {
			t.Errorf("ParsePinyin(%q) should fail", bad)
		}
	}
}

func TestPinyinReadingBuffer(t *testing.T) {
	r := NewReadingBuffer(LayoutHanyuPinyin)
	for _, ch := range "ni3" {
		if !r.CombineKey(ch) {
			t.Fatalf("rejected %q", ch)
		}
	}
	if !r.HasToneMarker() {
		t.Fatal("tone digit should mark the syllable complete")
	}
	if got := r.SyllableString(); got != "ㄋㄧˇ" {
		t.Errorf("SyllableString() = %q, want ㄋㄧˇ", got)
	}
	if got := r.ComposedString(); got != "ni3" {
		t.Errorf("ComposedString() = %q, want the raw spelling", got)
	}
}

func TestPinyinToneCannotOpenSyllable(t *testing.T) {
	r := NewReadingBuffer(LayoutHanyuPinyin)
	if r.IsValidKey('3') {
		t.Error("a tone digit with no spelled syllable should be invalid")
	}
}
