package candidates

import "testing"

func listOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func TestPagination(t *testing.T) {
	c := NewController(listOf(10), "1234")

	if c.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", c.PageCount())
	}
	if got := c.CurrentPageCandidates(); len(got) != 4 || got[0] != "A" {
		t.Fatalf("first page = %v", got)
	}

	if !c.NextPage() {
		t.Fatal("NextPage should succeed")
	}
	if got := c.CurrentPageCandidates(); got[0] != "E" {
		t.Errorf("second page starts with %q", got[0])
	}

	c.NextPage()
	if got := c.CurrentPageCandidates(); len(got) != 2 {
		t.Errorf("last page has %d items, want 2", len(got))
	}
	if c.NextPage() {
		t.Error("NextPage past the end should fail")
	}
	if !c.PrevPage() {
		t.Error("PrevPage should succeed")
	}
}

func TestHotkeySelection(t *testing.T) {
	c := NewController(listOf(10), "1234")

	if got := c.SelectedCandidateWithKey('2'); got != "B" {
		t.Errorf("hotkey 2 = %q, want B", got)
	}
	if got := c.SelectedCandidateWithKey('x'); got != "" {
		t.Errorf("unconfigured hotkey = %q, want empty", got)
	}

	c.NextPage()
	c.NextPage()
	// Last page holds two items; hotkey 3 points past the end.
	if got := c.SelectedCandidateWithKey('3'); got != "" {
		t.Errorf("out-of-page hotkey = %q, want empty", got)
	}
	if got := c.SelectedCandidateWithKey('1'); got != "I" {
		t.Errorf("hotkey 1 on last page = %q, want I", got)
	}
}

func TestItemNavigationAndBounds(t *testing.T) {
	c := NewController(listOf(3), "12345")

	if c.PrevItem() {
		t.Error("PrevItem at start should fail")
	}
	if !c.NextItem() || c.SelectedCandidate() != "B" {
		t.Errorf("NextItem landed on %q", c.SelectedCandidate())
	}
	c.End()
	if c.SelectedCandidate() != "C" {
		t.Errorf("End landed on %q", c.SelectedCandidate())
	}
	if c.NextItem() {
		t.Error("NextItem at end should fail")
	}
	c.Home()
	if c.SelectedCandidate() != "A" {
		t.Errorf("Home landed on %q", c.SelectedCandidate())
	}
}

func TestOrientationFlipsDirections(t *testing.T) {
	c := NewController(listOf(10), "1234")
	if !c.HandleDirection(DirRight) || c.SelectedIndex() != 1 {
		t.Error("horizontal window: right should step an item")
	}
	if !c.HandleDirection(DirDown) || c.CurrentPage() != 1 {
		t.Error("horizontal window: down should flip a page")
	}

	v := NewController(listOf(10), "1234")
	v.SetVertical(true)
	if !v.HandleDirection(DirDown) || v.SelectedIndex() != 1 {
		t.Error("vertical window: down should step an item")
	}
	if !v.HandleDirection(DirRight) || v.CurrentPage() != 1 {
		t.Error("vertical window: right should flip a page")
	}
}

func TestEmptyKeysFallsBackToDefault(t *testing.T) {
	c := NewController(listOf(1), "")
	if c.Keys() != DefaultKeys {
		t.Errorf("Keys() = %q, want default", c.Keys())
	}
}
