package lattice

import "strings"

// span holds the nodes beginning at one grid position, indexed by
// spanning length. Index 0 is unused.
type span struct {
	nodes [MaximumSpanLength + 1]*Node
}

func (s *span) clear() {
	for i := range s.nodes {
		s.nodes[i] = nil
	}
}

// removeNodesLongerThan drops nodes whose span exceeds the given
// length, used to invalidate nodes that straddle a mutated position.
func (s *span) removeNodesLongerThan(length int) {
	for i := length + 1; i <= MaximumSpanLength; i++ {
		s.nodes[i] = nil
	}
}

// NodeAnchor is a node at a concrete grid location, as produced by the
// walker and by node enumeration.
type NodeAnchor struct {
	Node           *Node
	Location       int
	SpanningLength int
}

// Grid is the ordered reading sequence plus the node DAG spanning it.
// Mutations are incremental so that pinned selections on untouched
// nodes survive edits elsewhere in the buffer.
type Grid struct {
	lm       LanguageModel
	readings []string
	spans    []span
	cursor   int
}

// NewGrid creates an empty grid over the given language model.
func NewGrid(lm LanguageModel) *Grid {
	return &Grid{lm: lm}
}

// Length returns the grid width in readings.
func (g *Grid) Length() int { return len(g.readings) }

// Readings returns the reading sequence. The slice is shared; callers
// must not mutate it.
func (g *Grid) Readings() []string { return g.readings }

// CursorIndex returns the cursor, in grid units.
func (g *Grid) CursorIndex() int { return g.cursor }

// SetCursorIndex moves the cursor, clamped to [0, Length].
func (g *Grid) SetCursorIndex(cursor int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(g.readings) {
		cursor = len(g.readings)
	}
	g.cursor = cursor
}

// Clear resets the grid to empty.
func (g *Grid) Clear() {
	g.readings = nil
	g.spans = nil
	g.cursor = 0
}

// joinReadings builds a node key from consecutive readings.
func joinReadings(readings []string) string {
	return strings.Join(readings, JoinSeparator)
}

// InsertReadingAtCursor inserts a reading at the cursor and advances
// the cursor past it. Nodes straddling the insertion point are
// invalidated and the neighborhood is re-materialized.
func (g *Grid) InsertReadingAtCursor(reading string) {
	p := g.cursor
	g.readings = append(g.readings, "")
	copy(g.readings[p+1:], g.readings[p:])
	g.readings[p] = reading

	g.spans = append(g.spans, span{})
	copy(g.spans[p+1:], g.spans[p:])
	g.spans[p].clear()

	g.dropNodesCrossing(p)
	g.cursor = p + 1
	g.materializeAround(p)
}

// DeleteReadingBeforeCursor removes the reading to the cursor's left.
// It returns false at the left boundary.
func (g *Grid) DeleteReadingBeforeCursor() bool {
	if g.cursor == 0 {
		return false
	}
	g.removeReadingAt(g.cursor - 1)
	g.cursor--
	return true
}

// DeleteReadingAfterCursor removes the reading to the cursor's right.
// It returns false at the right boundary.
func (g *Grid) DeleteReadingAfterCursor() bool {
	if g.cursor >= len(g.readings) {
		return false
	}
	g.removeReadingAt(g.cursor)
	return true
}

// RemoveHeadReadings evicts the first n readings. Nodes rooted in the
// evicted range disappear with their spans; the cursor shifts left.
func (g *Grid) RemoveHeadReadings(n int) {
	if n <= 0 {
		return
	}
	if n > len(g.readings) {
		n = len(g.readings)
	}
	g.readings = g.readings[n:]
	g.spans = g.spans[n:]
	g.cursor -= n
	if g.cursor < 0 {
		g.cursor = 0
	}
}

func (g *Grid) removeReadingAt(p int) {
	g.readings = append(g.readings[:p], g.readings[p+1:]...)
	g.spans = append(g.spans[:p], g.spans[p+1:]...)
	g.dropNodesCrossing(p)
	g.materializeAround(p)
}

// dropNodesCrossing invalidates nodes that span across position p
// without beginning there.
func (g *Grid) dropNodesCrossing(p int) {
	for j := p - MaximumSpanLength + 1; j < p; j++ {
		if j < 0 {
			continue
		}
		g.spans[j].removeNodesLongerThan(p - j)
	}
}

// materializeAround creates every missing node that includes position
// p. A reading run the language model knows becomes a real node; a
// single unknown reading gets a literal fallback node so every
// position stays coverable.
func (g *Grid) materializeAround(p int) {
	width := len(g.readings)
	begin := p - MaximumSpanLength + 1
	if begin < 0 {
		begin = 0
	}
	for j := begin; j <= p && j < width; j++ {
		maxLen := MaximumSpanLength
		if j+maxLen > width {
			maxLen = width - j
		}
		for length := 1; length <= maxLen; length++ {
			if g.spans[j].nodes[length] != nil {
				continue
			}
			key := joinReadings(g.readings[j : j+length])
			if g.lm.HasUnigramsForKey(key) {
				g.spans[j].nodes[length] = newNode(key, length, g.lm.UnigramsForKey(key))
			} else if length == 1 {
				g.spans[j].nodes[length] = newNode(key, 1, []Unigram{
					{Key: key, Value: key, Score: LiteralFallbackScore},
				})
			}
		}
	}
}

// NodesCrossingOrEndingAt returns every node whose span touches grid
// index i, in location order then length order.
func (g *Grid) NodesCrossingOrEndingAt(i int) []NodeAnchor {
	var anchors []NodeAnchor
	begin := i - MaximumSpanLength
	if begin < 0 {
		begin = 0
	}
	for j := begin; j < i && j < len(g.spans); j++ {
		for length := 1; length <= MaximumSpanLength; length++ {
			node := g.spans[j].nodes[length]
			if node == nil {
				continue
			}
			if j+length >= i {
				anchors = append(anchors, NodeAnchor{Node: node, Location: j, SpanningLength: length})
			}
		}
	}
	return anchors
}

// FixNodeSelectedCandidate pins the given value on the node at index i
// that carries it, returning that node. When several match, the node
// starting latest wins, and at one location the longer node wins; nil
// means no node at i offers the value.
func (g *Grid) FixNodeSelectedCandidate(i int, value string) *Node {
	anchors := g.NodesCrossingOrEndingAt(i)
	for k := len(anchors) - 1; k >= 0; k-- {
		if anchors[k].Node.SelectCandidateValue(value) {
			return anchors[k].Node
		}
	}
	return nil
}

// OverrideNodeScoreForSelectedCandidate selects the value on the node
// at index i and forces the given walk score onto it.
func (g *Grid) OverrideNodeScoreForSelectedCandidate(i int, value string, score float64) {
	anchors := g.NodesCrossingOrEndingAt(i)
	for k := len(anchors) - 1; k >= 0; k-- {
		if anchors[k].Node.OverrideScoreForValue(value, score) {
			return
		}
	}
}

// nodeAt returns the node beginning at location with the given length.
func (g *Grid) nodeAt(location, length int) *Node {
	if location < 0 || location >= len(g.spans) || length < 1 || length > MaximumSpanLength {
		return nil
	}
	return g.spans[location].nodes[length]
}
