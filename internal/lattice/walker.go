package lattice

import "sort"

// Walker runs a Viterbi pass over a grid, maximizing the summed node
// score of a path that partitions the full reading range.
type Walker struct {
	grid *Grid
}

// NewWalker creates a walker over the given grid.
func NewWalker(grid *Grid) *Walker {
	return &Walker{grid: grid}
}

// vertex is the best known way to reach one grid position.
type vertex struct {
	score     float64
	reachable bool

	// prev describes the last edge on the best path to this position.
	prevLocation int
	prevLength   int
	prevNode     *Node
}

// Walk returns the best path as anchors head to tail. Ties are broken
// toward the longer final span, then toward the lexicographically
// smaller selected candidate, so equal-score grids walk the same way
// every time.
func (w *Walker) Walk() []NodeAnchor {
	width := w.grid.Length()
	if width == 0 {
		return nil
	}

	vertices := make([]vertex, width+1)
	vertices[0].reachable = true

	for pos := 0; pos < width; pos++ {
		if !vertices[pos].reachable {
			continue
		}
		for length := 1; length <= MaximumSpanLength && pos+length <= width; length++ {
			node := w.grid.nodeAt(pos, length)
			if node == nil {
				continue
			}
			end := pos + length
			score := vertices[pos].score + node.Score()
			if w.better(score, node, length, &vertices[end]) {
				vertices[end] = vertex{
					score:        score,
					reachable:    true,
					prevLocation: pos,
					prevLength:   length,
					prevNode:     node,
				}
			}
		}
	}

	if !vertices[width].reachable {
		return nil
	}

	var reversed []NodeAnchor
	for pos := width; pos > 0; {
		v := vertices[pos]
		reversed = append(reversed, NodeAnchor{
			Node:           v.prevNode,
			Location:       v.prevLocation,
			SpanningLength: v.prevLength,
		})
		pos = v.prevLocation
	}

	anchors := make([]NodeAnchor, len(reversed))
	for i, a := range reversed {
		anchors[len(reversed)-1-i] = a
	}
	return anchors
}

// better reports whether the candidate edge should replace the
// incumbent at a vertex.
func (w *Walker) better(score float64, node *Node, length int, incumbent *vertex) bool {
	if !incumbent.reachable {
		return true
	}
	if score != incumbent.score {
		return score > incumbent.score
	}
	if length != incumbent.prevLength {
		return length > incumbent.prevLength
	}
	return node.CurrentValue() < incumbent.prevNode.CurrentValue()
}

// Path is one complete segmentation with its accumulated score.
type Path struct {
	Anchors []NodeAnchor
	Score   float64
}

// DumpPaths enumerates every maximal path through the grid, sorted by
// accumulated score descending. Debugging aid; cost is exponential in
// the worst case, so callers keep the grid short.
func (w *Walker) DumpPaths() []Path {
	width := w.grid.Length()
	var paths []Path
	var current []NodeAnchor

	var visit func(pos int, score float64)
	visit = func(pos int, score float64) {
		if pos == width {
			anchors := make([]NodeAnchor, len(current))
			copy(anchors, current)
			paths = append(paths, Path{Anchors: anchors, Score: score})
			return
		}
		for length := 1; length <= MaximumSpanLength && pos+length <= width; length++ {
			node := w.grid.nodeAt(pos, length)
			if node == nil {
				continue
			}
			current = append(current, NodeAnchor{Node: node, Location: pos, SpanningLength: length})
			visit(pos+length, score+node.Score())
			current = current[:len(current)-1]
		}
	}
	visit(0, 0)

	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Score > paths[j].Score
	})
	return paths
}
