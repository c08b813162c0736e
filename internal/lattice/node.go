package lattice

import "sort"

const (
	// SelectedCandidateScore is the pin sentinel. A node whose score
	// reaches it has had its candidate chosen explicitly, and the
	// walker can no longer out-score it with dictionary probabilities.
	SelectedCandidateScore = 99.0

	// LiteralFallbackScore keeps a synthesized unit node below every
	// real dictionary entry so it only carries positions nothing else
	// covers.
	LiteralFallbackScore = -130.0

	// MaximumSpanLength bounds node width, in readings.
	MaximumSpanLength = 6

	// JoinSeparator joins consecutive readings into a node key.
	JoinSeparator = "-"
)

// Unigram is a dictionary entry: a reading key, the phrase it
// produces, and a log-probability score.
type Unigram struct {
	Key   string
	Value string
	Score float64
}

// LanguageModel is the read surface the grid consumes.
type LanguageModel interface {
	UnigramsForKey(key string) []Unigram
	HasUnigramsForKey(key string) bool
}

// Node spans one or more consecutive readings and carries the unigrams
// for the joined key. It remembers which candidate is currently
// selected and the score the walker should use for it.
type Node struct {
	key            string
	spanningLength int
	unigrams       []Unigram

	selectedIndex int
	score         float64
}

// newNode creates a node with its unigrams sorted by score descending,
// selecting the highest-scoring candidate.
func newNode(key string, spanningLength int, unigrams []Unigram) *Node {
	sorted := make([]Unigram, len(unigrams))
	copy(sorted, unigrams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	n := &Node{
		key:            key,
		spanningLength: spanningLength,
		unigrams:       sorted,
	}
	if len(sorted) > 0 {
		n.score = sorted[0].Score
	}
	return n
}

// Key returns the joined reading key.
func (n *Node) Key() string { return n.key }

// SpanningLength returns the node width in readings.
func (n *Node) SpanningLength() int { return n.spanningLength }

// Unigrams returns the candidate list, highest score first.
func (n *Node) Unigrams() []Unigram { return n.unigrams }

// Candidates returns the candidate values in list order.
func (n *Node) Candidates() []string {
	values := make([]string, len(n.unigrams))
	for i, u := range n.unigrams {
		values[i] = u.Value
	}
	return values
}

// CurrentValue is the value of the selected candidate, or the node key
// itself if the node has no unigrams.
func (n *Node) CurrentValue() string {
	if len(n.unigrams) == 0 {
		return n.key
	}
	return n.unigrams[n.selectedIndex].Value
}

// CurrentUnigram returns the selected candidate.
func (n *Node) CurrentUnigram() Unigram {
	if len(n.unigrams) == 0 {
		return Unigram{Key: n.key, Value: n.key}
	}
	return n.unigrams[n.selectedIndex]
}

// Score is the value the walker sums along a path.
func (n *Node) Score() float64 { return n.score }

// IsPinned reports whether the candidate was selected explicitly.
func (n *Node) IsPinned() bool { return n.score >= SelectedCandidateScore }

// SelectCandidate pins the candidate at index, raising the node score
// to the pin sentinel.
func (n *Node) SelectCandidate(index int) {
	if index < 0 || index >= len(n.unigrams) {
		return
	}
	n.selectedIndex = index
	n.score = SelectedCandidateScore
}

// SelectCandidateValue pins the candidate with the given value. It
// returns false if the value is not in the candidate list.
func (n *Node) SelectCandidateValue(value string) bool {
	for i, u := range n.unigrams {
		if u.Value == value {
			n.SelectCandidate(i)
			return true
		}
	}
	return false
}

// OverrideScoreForValue selects the candidate and forces the given
// walk score onto the node without pinning it. Used for recency-based
// suggestions. The score is not cleared after a walk; it stays in force
// until the node is pinned, overridden again, or dropped from the grid.
func (n *Node) OverrideScoreForValue(value string, score float64) bool {
	for i, u := range n.unigrams {
		if u.Value == value {
			n.selectedIndex = i
			n.score = score
			return true
		}
	}
	return false
}
