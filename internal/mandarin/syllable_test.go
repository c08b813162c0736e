package mandarin

import "testing"

func TestSyllableCombine(t *testing.T) {
	var s Syllable
	s = s.Combine(N)
	s = s.Combine(I)
	s = s.Combine(Tone3)

	if !s.HasConsonant() || s.Consonant() != N {
		t.Errorf("expected consonant ㄋ, got %v", s.Consonant())
	}
	if !s.HasMiddleVowel() || s.MiddleVowel() != I {
		t.Errorf("expected middle vowel ㄧ, got %v", s.MiddleVowel())
	}
	if !s.HasToneMarker() || s.ToneMarker() != Tone3 {
		t.Errorf("expected tone 3, got %v", s.ToneMarker())
	}
	if got := s.String(); got != "ㄋㄧˇ" {
		t.Errorf("String() = %q, want %q", got, "ㄋㄧˇ")
	}
}

func TestSyllableCombineReplacesField(t *testing.T) {
	s := Syllable(0).Combine(B).Combine(P)
	if s.Consonant() != P {
		t.Errorf("second consonant should replace the first, got %v", s.Consonant())
	}
	s = s.Combine(Tone2).Combine(Tone4)
	if s.ToneMarker() != Tone4 {
		t.Errorf("second tone should replace the first, got %v", s.ToneMarker())
	}
}

func TestFromStringRoundTrip(t *testing.T) {
	inputs := []string{"ㄋㄧˇ", "ㄏㄠˇ", "ㄓㄨㄤˋ", "ㄩㄝˋ", "ㄦ", "ㄙ", "ㄇㄚ˙"}
	for _, in := range inputs {
		s := FromString(in)
		if got := s.String(); got != in {
			t.Errorf("FromString(%q).String() = %q", in, got)
		}
	}
}

func TestAbsoluteOrderRoundTrip(t *testing.T) {
	consonants := []Syllable{0, B, N, H, ZH, S}
	middles := []Syllable{0, I, U, UE}
	vowels := []Syllable{0, A, AO, ENG, ERR}
	tones := []Syllable{Tone1, Tone2, Tone3, Tone4, Tone5}

	for _, c := range consonants {
		for _, m := range middles {
			for _, v := range vowels {
				for _, tn := range tones {
					s := c | m | v | tn
					if s.IsEmpty() {
						continue
					}
					key := s.AbsoluteOrderString()
					back, ok := FromAbsoluteOrderString(key)
					if !ok {
						t.Fatalf("FromAbsoluteOrderString(%q) failed for %s", key, s)
					}
					if back != s {
						t.Errorf("round trip %s: got %s", s, back)
					}
				}
			}
		}
	}
}

func TestFromAbsoluteOrderStringRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "a", "abc", "\x00\x00"} {
		if _, ok := FromAbsoluteOrderString(in); ok {
			t.Errorf("FromAbsoluteOrderString(%q) should fail", in)
		}
	}
}
