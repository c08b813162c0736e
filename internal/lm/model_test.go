package lm

import "testing"

func fixtureModel() *Model {
	d := NewDictionary()
	add := func(userKey, value string, score float64) {
		d.Add(MaybeAbsoluteOrderKey(userKey), value, score)
	}
	add("ㄋㄧˇ", "你", -6.0)
	add("ㄋㄧˇ", "妳", -6.5)
	add("ㄋㄧˇ-ㄏㄠˇ", "你好", -5.0)
	return NewModel(d, NewUserPhrases())
}

func TestModelMergesUserBeforeDictionary(t *testing.T) {
	m := fixtureModel()
	m.AddUserPhrase("ㄋㄧˇ", "妮")

	u := m.UnigramsForKey("ㄋㄧˇ")
	if len(u) != 3 {
		t.Fatalf("entries = %d, want 3", len(u))
	}
	if u[0].Value != "妮" || u[0].Score != 0 {
		t.Errorf("user entry should lead at score 0, got %+v", u[0])
	}
}

func TestModelDedupesByValueUserWins(t *testing.T) {
	m := fixtureModel()
	m.AddUserPhrase("ㄋㄧˇ", "妳")

	u := m.UnigramsForKey("ㄋㄧˇ")
	count := 0
	for _, e := range u {
		if e.Value == "妳" {
			count++
			if e.Score != 0 {
				t.Errorf("deduped entry should keep the user score, got %v", e.Score)
			}
		}
	}
	if count != 1 {
		t.Errorf("妳 appears %d times, want 1", count)
	}
}

func TestModelSpaceIdentity(t *testing.T) {
	m := fixtureModel()
	if !m.HasUnigramsForKey(" ") {
		t.Fatal("space key must always compose")
	}
	u := m.UnigramsForKey(" ")
	if len(u) != 1 || u[0].Value != " " {
		t.Errorf("space unigram = %+v", u)
	}
}

func TestModelLetterIdentity(t *testing.T) {
	m := fixtureModel()
	if !m.HasUnigramsForKey("_letter_x") {
		t.Fatal("letter keys must compose")
	}
	u := m.UnigramsForKey("_letter_x")
	if len(u) != 1 || u[0].Value != "x" {
		t.Errorf("letter unigram = %+v", u)
	}
}

func TestModelOutputConverter(t *testing.T) {
	m := fixtureModel()
	m.SetConverters(NewTraditionalToSimplifiedConverter(), nil)

	u := m.UnigramsForKey("ㄋㄧˇ-ㄏㄠˇ")
	if len(u) == 0 || u[0].Value != "你好" {
		t.Fatalf("unexpected conversion result %+v", u)
	}

	m2 := fixtureModel()
	m2.SetConverters(NewTraditionalToSimplifiedConverter(), nil)
	got := m2.UnigramsForKey("ㄋㄧˇ")
	for _, e := range got {
		if e.Value == "妳" {
			t.Error("妳 should have been converted to 你 and deduped away or rewritten")
		}
	}
}

func TestModelChangeCallback(t *testing.T) {
	m := fixtureModel()
	fired := 0
	m.SetChangeCallback(func() { fired++ })

	m.AddUserPhrase("ㄋㄧˇ", "祢")
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
	// Re-adding the newest phrase is a no-op.
	m.AddUserPhrase("ㄋㄧˇ", "祢")
	if fired != 1 {
		t.Errorf("no-op add should not fire the callback, fired %d", fired)
	}
}

func TestUserPhrasesPrependDedupe(t *testing.T) {
	u := NewUserPhrases()
	u.Add("k", "a")
	u.Add("k", "b")
	u.Add("k", "a")

	got := u.UnigramsForKey("k")
	if len(got) != 2 || got[0].Value != "a" || got[1].Value != "b" {
		t.Errorf("unexpected order %+v", got)
	}
}
