package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkValues(anchors []NodeAnchor) []string {
	values := make([]string, len(anchors))
	for i, a := range anchors {
		values[i] = a.Node.CurrentValue()
	}
	return values
}

func TestWalkPrefersPhrase(t *testing.T) {
	g := NewGrid(fixtureLM())
	g.InsertReadingAtCursor("a")
	g.InsertReadingAtCursor("b")

	anchors := NewWalker(g).Walk()
	require.Len(t, anchors, 1)
	assert.Equal(t, []string{"AB"}, walkValues(anchors))
}

func TestWalkPartitionsGrid(t *testing.T) {
	g := NewGrid(fixtureLM())
	for _, r := range []string{"a", "b", "c", "zzz", "a"} {
		g.InsertReadingAtCursor(r)
	}
	anchors := NewWalker(g).Walk()

	pos := 0
	for _, a := range anchors {
		require.Equal(t, pos, a.Location)
		pos += a.SpanningLength
	}
	assert.Equal(t, g.Length(), pos)
}

func TestWalkEmptyGrid(t *testing.T) {
	g := NewGrid(fixtureLM())
	assert.Nil(t, NewWalker(g).Walk())
}

func TestWalkTieBreakPrefersLongerSpan(t *testing.T) {
	lm := mapLM{
		"x":   {{Key: "x", Value: "X", Score: -1}},
		"y":   {{Key: "y", Value: "Y", Score: -1}},
		"x-y": {{Key: "x-y", Value: "XY", Score: -2}},
	}
	g := NewGrid(lm)
	g.InsertReadingAtCursor("x")
	g.InsertReadingAtCursor("y")

	anchors := NewWalker(g).Walk()
	require.Len(t, anchors, 1)
	assert.Equal(t, "XY", anchors[0].Node.CurrentValue())
}

func TestWalkIsRepeatable(t *testing.T) {
	// Walking the same grid twice yields the same path.
	lm := mapLM{
		"x": {
			{Key: "x", Value: "b", Score: -1},
		},
		"y": {{Key: "y", Value: "Y", Score: -1}},
	}
	g := NewGrid(lm)
	g.InsertReadingAtCursor("x")

	first := NewWalker(g).Walk()
	second := NewWalker(g).Walk()
	assert.Equal(t, walkValues(first), walkValues(second))
}

func TestWalkRespectsPinnedCandidate(t *testing.T) {
	lm := mapLM{
		"x": {
			{Key: "x", Value: "X1", Score: -1},
			{Key: "x", Value: "X2", Score: -3},
		},
		"y":   {{Key: "y", Value: "Y", Score: -1}},
		"x-y": {{Key: "x-y", Value: "XY", Score: -1.5}},
	}
	g := NewGrid(lm)
	g.InsertReadingAtCursor("x")
	g.InsertReadingAtCursor("y")

	// The phrase wins by default.
	anchors := NewWalker(g).Walk()
	require.Equal(t, []string{"XY"}, walkValues(anchors))

	// Pinning the unit candidate outranks it.
	require.NotNil(t, g.FixNodeSelectedCandidate(1, "X2"))
	anchors = NewWalker(g).Walk()
	require.Equal(t, []string{"X2", "Y"}, walkValues(anchors))
}

func TestDumpPathsSorted(t *testing.T) {
	g := NewGrid(fixtureLM())
	g.InsertReadingAtCursor("a")
	g.InsertReadingAtCursor("b")

	paths := NewWalker(g).DumpPaths()
	require.NotEmpty(t, paths)
	for i := 1; i < len(paths); i++ {
		assert.GreaterOrEqual(t, paths[i-1].Score, paths[i].Score)
	}
	// The best dumped path agrees with the walk.
	assert.Equal(t, walkValues(NewWalker(g).Walk()), walkValues(paths[0].Anchors))
}
