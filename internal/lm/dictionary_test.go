package lm

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseDictionary(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"k1 你 -6.0 妳 -6.5",
		"k2 好 -6.3",
		"broken 你",         // odd pair count
		"k3 行 not-a-score", // bad score
	}, "\n")

	d, err := ParseDictionary(strings.NewReader(input), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	u := d.UnigramsForKey("k1")
	if len(u) != 2 {
		t.Fatalf("k1 entries = %d, want 2", len(u))
	}
	if u[0].Value != "你" || u[0].Score != -6.0 {
		t.Errorf("k1[0] = %+v", u[0])
	}
	if !d.HasUnigramsForKey("k2") {
		t.Error("k2 should exist")
	}
	if d.HasUnigramsForKey("broken") {
		t.Error("malformed line should be skipped")
	}
	if d.HasUnigramsForKey("k3") {
		t.Error("unparseable score should skip the whole line's entry")
	}
	if d.HasUnigramsForKey("missing") {
		t.Error("unknown key should be absent")
	}
}
