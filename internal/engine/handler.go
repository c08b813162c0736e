package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"bopomofo/internal/lattice"
	"bopomofo/internal/lm"
	"bopomofo/internal/mandarin"
	"bopomofo/internal/override"
)

const (
	// minComposingBufferSize and maxComposingBufferSize clamp the
	// configurable buffer width, in readings.
	minComposingBufferSize     = 4
	maxComposingBufferSize     = 100
	defaultComposingBufferSize = 10

	// maxComposingBufferNeedsToWalkSize is the window, measured from
	// the buffer's right end, inside which the walk may still revise
	// its mind. Anchors left of it get pinned so settled history stops
	// shifting under the user.
	maxComposingBufferNeedsToWalkSize = 10

	// epsilon lifts an override suggestion just above the best
	// competing unigram. The lifted score stays on the node for later
	// walks as well; it is not reset after one walk.
	epsilon = 0.000001

	// minMarkedPhraseLength and maxMarkedPhraseLength bound what can
	// be saved as a user phrase, in readings.
	minMarkedPhraseLength = 2
	maxMarkedPhraseLength = 6
)

// StateCallback receives every state the handler emits during one
// Handle call. It must not re-enter the handler.
type StateCallback func(State)

// ErrorCallback signals a non-fatal input error (typically a beep).
type ErrorCallback func()

// KeyHandler is the composition state machine. It owns the reading
// buffer, the grid, the walked path, and the user-override cache, and
// is driven one key event at a time. It is single-threaded: each
// Handle call runs to completion before the next.
type KeyHandler struct {
	model   *lm.Model
	grid    *lattice.Grid
	reading *mandarin.ReadingBuffer
	cache   *override.Cache
	walked  []lattice.NodeAnchor

	clock func() time.Time

	composingBufferSize                  int
	selectPhraseAfterCursor              bool
	moveCursorAfterSelection             bool
	putLowercaseLettersToComposingBuffer bool
	escClearsEntireComposingBuffer       bool
	ctrlPunctuationEnabled               bool
	traditionalMode                      bool
	languageCode                         string
}

// NewKeyHandler creates a handler over a language model, with the
// Standard layout and default settings.
func NewKeyHandler(model *lm.Model) *KeyHandler {
	return &KeyHandler{
		model:               model,
		grid:                lattice.NewGrid(model),
		reading:             mandarin.NewReadingBuffer(mandarin.LayoutStandard),
		cache:               override.NewCache(),
		clock:               time.Now,
		composingBufferSize: defaultComposingBufferSize,
	}
}

// SetKeyboardLayout switches the layout, clearing the pending reading.
func (h *KeyHandler) SetKeyboardLayout(name mandarin.LayoutName) {
	h.reading.SetLayout(name)
}

// KeyboardLayout returns the active layout name.
func (h *KeyHandler) KeyboardLayout() mandarin.LayoutName {
	return h.reading.Layout()
}

// SetComposingBufferSize sets the buffer width in readings, clamped to
// the supported range.
func (h *KeyHandler) SetComposingBufferSize(size int) {
	if size < minComposingBufferSize {
		size = minComposingBufferSize
	}
	if size > maxComposingBufferSize {
		size = maxComposingBufferSize
	}
	h.composingBufferSize = size
}

// ComposingBufferSize returns the clamped buffer width.
func (h *KeyHandler) ComposingBufferSize() int { return h.composingBufferSize }

// SetSelectPhraseAfterCursor chooses which side of the caret candidate
// lookup favors.
func (h *KeyHandler) SetSelectPhraseAfterCursor(after bool) { h.selectPhraseAfterCursor = after }

// SetMoveCursorAfterSelection makes a candidate selection advance the
// caret to the end of the chosen phrase.
func (h *KeyHandler) SetMoveCursorAfterSelection(move bool) { h.moveCursorAfterSelection = move }

// SetPutLowercaseLettersToComposingBuffer routes plain letters into
// the buffer instead of committing them.
func (h *KeyHandler) SetPutLowercaseLettersToComposingBuffer(put bool) {
	h.putLowercaseLettersToComposingBuffer = put
}

// SetEscClearsEntireComposingBuffer makes ESC drop the whole buffer
// rather than just the pending reading.
func (h *KeyHandler) SetEscClearsEntireComposingBuffer(clear bool) {
	h.escClearsEntireComposingBuffer = clear
}

// SetCtrlPunctuationEnabled enables the Ctrl-punctuation key table.
func (h *KeyHandler) SetCtrlPunctuationEnabled(enabled bool) { h.ctrlPunctuationEnabled = enabled }

// SetTraditionalMode switches to one-syllable-at-a-time composition.
func (h *KeyHandler) SetTraditionalMode(traditional bool) { h.traditionalMode = traditional }

// SetLanguageCode records the host UI language, passed through to
// tooltip construction.
func (h *KeyHandler) SetLanguageCode(code string) { h.languageCode = code }

// LanguageCode returns the host UI language.
func (h *KeyHandler) LanguageCode() string { return h.languageCode }

// SetClock injects the time source used for override observations.
func (h *KeyHandler) SetClock(clock func() time.Time) {
	if clock != nil {
		h.clock = clock
	}
}

// OverrideCache exposes the user-override cache.
func (h *KeyHandler) OverrideCache() *override.Cache { return h.cache }

// WalkedAnchors returns the current walked path.
func (h *KeyHandler) WalkedAnchors() []lattice.NodeAnchor { return h.walked }

// Grid exposes the underlying grid.
func (h *KeyHandler) Grid() *lattice.Grid { return h.grid }

// Reset drops the grid, the pending reading, and the walked path. The
// override cache survives; it is session state, not buffer state.
func (h *KeyHandler) Reset() {
	h.grid.Clear()
	h.reading.Clear()
	h.walked = nil
}

// Handle consumes one key event against the current logical state and
// emits successor states through stateCb. It returns false only when
// the key is not consumed and should be passed back to the host.
func (h *KeyHandler) Handle(key Key, state State, stateCb StateCallback, errCb ErrorCallback) bool {
	// Ctrl chords are punctuation or nothing.
	if key.Ctrl {
		if key.Name == KeyASCII && key.Ascii != 0 {
			return h.handlePunctuation(key, state, stateCb, errCb)
		}
		if isNotEmpty(state) {
			errCb()
			stateCb(h.buildInputtingState())
			return true
		}
		return false
	}

	if key.Name == KeySpace && key.Shift {
		return h.handleShiftSpace(state, stateCb)
	}
	if key.Name == KeySpace {
		return h.handleSpace(state, stateCb, errCb)
	}

	// A key the reading buffer accepts starts or extends a syllable.
	if key.Name == KeyASCII && h.reading.IsValidKey(key.Ascii) {
		return h.handleComposition(key.Ascii, stateCb, errCb)
	}

	if key.Name == KeyASCII && key.Ascii == '`' {
		return h.handlePunctuationList(state, stateCb, errCb)
	}

	switch key.Name {
	case KeyEsc:
		return h.handleEsc(state, stateCb)
	case KeyTab:
		return h.handleTab(key, state, stateCb, errCb)
	case KeyLeft, KeyRight, KeyHome, KeyEnd:
		return h.handleCursorKey(key, state, stateCb, errCb)
	case KeyDown:
		if isNotEmpty(state) && h.reading.IsEmpty() {
			return h.handleChoosingCandidate(stateCb, errCb)
		}
	case KeyBackspace:
		return h.handleBackspace(state, stateCb, errCb)
	case KeyDelete:
		return h.handleDelete(state, stateCb, errCb)
	case KeyReturn:
		return h.handleEnter(state, stateCb, errCb)
	}

	if key.Name == KeyASCII && key.Ascii != 0 {
		return h.handlePunctuation(key, state, stateCb, errCb)
	}

	if isNotEmpty(state) {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}
	return false
}

// isInputting reports whether the state is ordinary composition.
func isInputting(state State) bool {
	switch state.(type) {
	case Inputting, *Inputting:
		return true
	}
	return false
}

// isNotEmpty reports whether the state carries a composing buffer.
func isNotEmpty(state State) bool {
	switch state.(type) {
	case Inputting, ChoosingCandidate, Marking:
		return true
	case *Inputting, *ChoosingCandidate, *Marking:
		return true
	}
	return false
}

// handleComposition implements the reading-legal-key transition: feed
// the keystroke, and compose once a tone marker lands.
func (h *KeyHandler) handleComposition(ch rune, stateCb StateCallback, errCb ErrorCallback) bool {
	h.reading.CombineKey(ch)

	if !h.reading.HasToneMarker() {
		stateCb(h.buildInputtingState())
		return true
	}
	return h.composeReading(stateCb, errCb)
}

// composeReading moves the assembled syllable into the grid, re-walks,
// applies any override suggestion, pins settled history, and emits the
// resulting state.
func (h *KeyHandler) composeReading(stateCb StateCallback, errCb ErrorCallback) bool {
	syllable := h.reading.SyllableString()
	h.reading.Clear()

	if !h.model.HasUnigramsForKey(syllable) {
		errCb()
		if h.grid.Length() == 0 {
			stateCb(EmptyIgnoringPrevious{})
		} else {
			stateCb(h.buildInputtingState())
		}
		return true
	}

	h.grid.InsertReadingAtCursor(syllable)
	evicted := h.popEvictedTextAndWalk()

	suggestion := h.cache.Suggest(h.walked, h.grid.CursorIndex(), h.clock())
	if suggestion != "" {
		score := h.highestUnigramScoreAt(h.grid.CursorIndex()) + epsilon
		h.grid.OverrideNodeScoreForSelectedCandidate(h.grid.CursorIndex(), suggestion, score)
		h.walk()
	}

	h.fixSettledNodes()

	if h.traditionalMode {
		return h.presentCandidatesOrCommit(stateCb, errCb)
	}

	inputting := h.buildInputtingState()
	inputting.EvictedText = evicted
	stateCb(inputting)
	return true
}

// presentCandidatesOrCommit is the traditional-mode tail of a compose:
// one candidate commits outright, several open the candidate window.
func (h *KeyHandler) presentCandidatesOrCommit(stateCb StateCallback, errCb ErrorCallback) bool {
	candidates := h.candidatesAt(h.actualCandidateCursorIndex())
	switch len(candidates) {
	case 0:
		errCb()
		h.Reset()
		stateCb(EmptyIgnoringPrevious{})
	case 1:
		h.Reset()
		stateCb(Committing{Text: candidates[0]})
		stateCb(Empty{})
	default:
		state := ChoosingCandidate{
			NotEmpty:   h.buildInputtingState().NotEmpty,
			Candidates: candidates,
		}
		stateCb(state)
	}
	return true
}

// handleShiftSpace either buffers a literal space reading or commits
// the buffer followed by a space.
func (h *KeyHandler) handleShiftSpace(state State, stateCb StateCallback) bool {
	if h.putLowercaseLettersToComposingBuffer {
		h.grid.InsertReadingAtCursor(" ")
		evicted := h.popEvictedTextAndWalk()
		inputting := h.buildInputtingState()
		inputting.EvictedText = evicted
		stateCb(inputting)
		return true
	}

	if isNotEmpty(state) {
		stateCb(Committing{Text: h.buildInputtingState().Buffer})
	}
	stateCb(Committing{Text: " "})
	h.Reset()
	stateCb(Empty{})
	return true
}

// handleSpace composes a pending toneless syllable, or opens the
// candidate window over a non-empty buffer.
func (h *KeyHandler) handleSpace(state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if !h.reading.IsEmpty() {
		if h.reading.HasToneMarkerOnly() {
			errCb()
			stateCb(h.buildInputtingState())
			return true
		}
		return h.composeReading(stateCb, errCb)
	}
	if isNotEmpty(state) {
		return h.handleChoosingCandidate(stateCb, errCb)
	}
	return false
}

// handleChoosingCandidate emits the candidate window for the phrase
// under the caret.
func (h *KeyHandler) handleChoosingCandidate(stateCb StateCallback, errCb ErrorCallback) bool {
	candidates := h.candidatesAt(h.actualCandidateCursorIndex())
	if len(candidates) == 0 {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}
	stateCb(ChoosingCandidate{
		NotEmpty:   h.buildInputtingState().NotEmpty,
		Candidates: candidates,
	})
	return true
}

// handleEsc clears the reading, or the whole buffer when configured.
func (h *KeyHandler) handleEsc(state State, stateCb StateCallback) bool {
	if !isNotEmpty(state) {
		return false
	}

	if h.escClearsEntireComposingBuffer {
		h.Reset()
		stateCb(EmptyIgnoringPrevious{})
		return true
	}

	if !h.reading.IsEmpty() {
		h.reading.Clear()
		if h.grid.Length() == 0 {
			stateCb(EmptyIgnoringPrevious{})
			return true
		}
	}
	stateCb(h.buildInputtingState())
	return true
}

// handleTab rotates the candidate on the phrase under the caret,
// pinning the choice without moving the caret. Shift reverses the
// rotation.
func (h *KeyHandler) handleTab(key Key, state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if !isInputting(state) {
		errCb()
		if isNotEmpty(state) {
			stateCb(h.buildInputtingState())
		}
		return true
	}
	if !h.reading.IsEmpty() || h.grid.Length() == 0 {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}

	cursor := h.actualCandidateCursorIndex()
	anchor, ok := h.walkedAnchorContaining(cursor)
	if !ok || len(anchor.Node.Unigrams()) == 0 {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}

	node := anchor.Node
	candidates := node.Candidates()
	current := node.CurrentValue()

	var next int
	if node.Score() < lattice.SelectedCandidateScore {
		// Never manually chosen: start the rotation from the top of
		// the list, skipping over the value already on display.
		if candidates[0] != current {
			next = 0
		} else if key.Shift {
			next = len(candidates) - 1
		} else {
			next = 1 % len(candidates)
		}
	} else {
		at := 0
		for i, c := range candidates {
			if c == current {
				at = i
				break
			}
		}
		if key.Shift {
			next = (at - 1 + len(candidates)) % len(candidates)
		} else {
			next = (at + 1) % len(candidates)
		}
	}

	node.SelectCandidate(next)
	h.walk()
	stateCb(h.buildInputtingState())
	return true
}

// handleCursorKey moves the grid cursor. With Shift held, movement
// away from the anchor becomes a Marking selection.
func (h *KeyHandler) handleCursorKey(key Key, state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if !isNotEmpty(state) {
		return false
	}
	if !h.reading.IsEmpty() {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}

	markAnchor := h.grid.CursorIndex()
	if m, ok := state.(Marking); ok {
		markAnchor = m.markStartGridCursor
	} else if m, ok := state.(*Marking); ok {
		markAnchor = m.markStartGridCursor
	}

	cursor := h.grid.CursorIndex()
	moved := false
	switch key.Name {
	case KeyLeft:
		if cursor > 0 {
			cursor--
			moved = true
		}
	case KeyRight:
		if cursor < h.grid.Length() {
			cursor++
			moved = true
		}
	case KeyHome:
		cursor = 0
		moved = true
	case KeyEnd:
		cursor = h.grid.Length()
		moved = true
	}

	if !moved {
		errCb()
		if key.Shift && h.grid.CursorIndex() != markAnchor {
			stateCb(h.buildMarkingState(markAnchor))
		} else {
			stateCb(h.buildInputtingState())
		}
		return true
	}

	h.grid.SetCursorIndex(cursor)
	if key.Shift && (key.Name == KeyLeft || key.Name == KeyRight) && cursor != markAnchor {
		stateCb(h.buildMarkingState(markAnchor))
	} else {
		stateCb(h.buildInputtingState())
	}
	return true
}

// handleBackspace trims the reading first, then the grid.
func (h *KeyHandler) handleBackspace(state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if !isNotEmpty(state) {
		return false
	}

	switch {
	case h.reading.HasToneMarkerOnly():
		h.reading.Clear()
	case !h.reading.IsEmpty():
		h.reading.Backspace()
	default:
		if !h.grid.DeleteReadingBeforeCursor() {
			errCb()
			stateCb(h.buildInputtingState())
			return true
		}
		h.walk()
	}

	if h.reading.IsEmpty() && h.grid.Length() == 0 {
		stateCb(EmptyIgnoringPrevious{})
	} else {
		stateCb(h.buildInputtingState())
	}
	return true
}

// handleDelete removes the reading after the caret. A pending reading
// blocks it.
func (h *KeyHandler) handleDelete(state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if !isNotEmpty(state) {
		return false
	}

	if h.reading.HasToneMarkerOnly() {
		h.reading.Clear()
		if h.grid.Length() == 0 {
			stateCb(EmptyIgnoringPrevious{})
		} else {
			stateCb(h.buildInputtingState())
		}
		return true
	}
	if !h.reading.IsEmpty() {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}

	if !h.grid.DeleteReadingAfterCursor() {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}
	h.walk()

	if h.grid.Length() == 0 {
		stateCb(EmptyIgnoringPrevious{})
	} else {
		stateCb(h.buildInputtingState())
	}
	return true
}

// handleEnter saves a marked phrase, or commits the buffer.
func (h *KeyHandler) handleEnter(state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if m, ok := asMarking(state); ok {
		if !m.Acceptable {
			errCb()
			stateCb(m)
			return true
		}
		key := h.markedReadingKey(m.markStartGridCursor)
		h.model.AddUserPhrase(key, m.Marked)
		stateCb(h.buildInputtingState())
		return true
	}

	if !isNotEmpty(state) {
		return false
	}

	stateCb(Committing{Text: h.buildInputtingState().Buffer})
	h.Reset()
	stateCb(Empty{})
	return true
}

func asMarking(state State) (Marking, bool) {
	if m, ok := state.(Marking); ok {
		return m, true
	}
	if m, ok := state.(*Marking); ok {
		return *m, true
	}
	return Marking{}, false
}

// handlePunctuationList inserts the punctuation palette reading and
// opens its candidates.
func (h *KeyHandler) handlePunctuationList(state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if !h.reading.IsEmpty() {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}
	if !h.model.HasUnigramsForKey(lm.PunctuationListKey) {
		if isNotEmpty(state) {
			errCb()
			stateCb(h.buildInputtingState())
			return true
		}
		return false
	}

	h.grid.InsertReadingAtCursor(lm.PunctuationListKey)
	evicted := h.popEvictedTextAndWalk()
	inputting := h.buildInputtingState()
	inputting.EvictedText = evicted
	stateCb(inputting)
	return h.handleChoosingCandidate(stateCb, errCb)
}

// handlePunctuation resolves an ASCII key through the punctuation and
// letter tables.
func (h *KeyHandler) handlePunctuation(key Key, state State, stateCb StateCallback, errCb ErrorCallback) bool {
	ch := key.Ascii

	if key.Ctrl {
		if !h.ctrlPunctuationEnabled {
			if isNotEmpty(state) {
				errCb()
				stateCb(h.buildInputtingState())
				return true
			}
			return false
		}
		return h.insertReservedReading(lm.CtrlPunctuationKeyPrefix+string(ch), state, stateCb, errCb)
	}

	layoutKey := fmt.Sprintf("%s%s_%c", lm.PunctuationKeyPrefix, h.reading.Layout(), ch)
	if h.model.HasUnigramsForKey(layoutKey) {
		return h.insertReservedReading(layoutKey, state, stateCb, errCb)
	}
	genericKey := lm.PunctuationKeyPrefix + string(ch)
	if h.model.HasUnigramsForKey(genericKey) {
		return h.insertReservedReading(genericKey, state, stateCb, errCb)
	}

	if unicode.IsLetter(ch) && ch < 128 {
		if h.putLowercaseLettersToComposingBuffer {
			letterKey := lm.LetterKeyPrefix + string(unicode.ToLower(ch))
			return h.insertReservedReading(letterKey, state, stateCb, errCb)
		}
		if isNotEmpty(state) {
			stateCb(Committing{Text: h.buildInputtingState().Buffer})
			h.Reset()
		}
		stateCb(Committing{Text: string(ch)})
		stateCb(Empty{})
		return true
	}

	if isNotEmpty(state) {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}
	return false
}

// insertReservedReading inserts a "_"-prefixed reading into the grid
// the same way a composed syllable goes in.
func (h *KeyHandler) insertReservedReading(readingKey string, state State, stateCb StateCallback, errCb ErrorCallback) bool {
	if !h.reading.IsEmpty() {
		errCb()
		stateCb(h.buildInputtingState())
		return true
	}
	if !h.model.HasUnigramsForKey(readingKey) {
		if isNotEmpty(state) {
			errCb()
			stateCb(h.buildInputtingState())
			return true
		}
		return false
	}

	h.grid.InsertReadingAtCursor(readingKey)
	evicted := h.popEvictedTextAndWalk()
	h.fixSettledNodes()

	if h.traditionalMode {
		return h.presentCandidatesOrCommit(stateCb, errCb)
	}

	inputting := h.buildInputtingState()
	inputting.EvictedText = evicted
	stateCb(inputting)
	return true
}

// HandleCandidateSelected applies a choice made in the candidate
// window and emits the follow-up state.
func (h *KeyHandler) HandleCandidateSelected(candidate string, stateCb StateCallback) {
	if h.traditionalMode {
		h.Reset()
		stateCb(Committing{Text: candidate})
		stateCb(Empty{})
		return
	}
	h.pinNode(candidate, true)
	stateCb(h.buildInputtingState())
}

// HandleCandidatePanelCancelled closes the candidate window and
// returns to composition.
func (h *KeyHandler) HandleCandidatePanelCancelled(stateCb StateCallback) {
	if h.traditionalMode {
		h.Reset()
		stateCb(EmptyIgnoringPrevious{})
		return
	}
	stateCb(h.buildInputtingState())
}

// pinNode fixes the candidate on the phrase under the caret, records
// the choice for future override suggestions, and re-walks.
func (h *KeyHandler) pinNode(candidate string, useMoveCursor bool) {
	cursor := h.actualCandidateCursorIndex()
	node := h.grid.FixNodeSelectedCandidate(cursor, candidate)
	if node == nil {
		return
	}
	if node.CurrentUnigram().Score > override.MinObservableScore {
		h.cache.Observe(h.walked, cursor, candidate, h.clock())
	}
	h.walk()

	if useMoveCursor && h.moveCursorAfterSelection {
		for _, anchor := range h.walked {
			if anchor.Location < cursor && cursor <= anchor.Location+anchor.SpanningLength {
				h.grid.SetCursorIndex(anchor.Location + anchor.SpanningLength)
				break
			}
		}
	}
}

// walk recomputes the walked path. Every grid mutation is followed by
// one before the next state is emitted.
func (h *KeyHandler) walk() {
	h.walked = lattice.NewWalker(h.grid).Walk()
}

// popEvictedTextAndWalk enforces the buffer width: when an accepted
// reading pushes the grid past it, the leading walked phrase is
// evicted and returned for the host to commit.
func (h *KeyHandler) popEvictedTextAndWalk() string {
	evicted := ""
	if h.grid.Length() > h.composingBufferSize {
		h.walk()
		if len(h.walked) > 0 {
			head := h.walked[0]
			evicted = head.Node.CurrentValue()
			h.grid.RemoveHeadReadings(head.SpanningLength)
		}
	}
	h.walk()
	return evicted
}

// fixSettledNodes pins the selection on every walked anchor that has
// drifted outside the revision window, so long-settled history cannot
// silently change on a later walk.
func (h *KeyHandler) fixSettledNodes() {
	width := h.grid.Length()
	for _, anchor := range h.walked {
		if width-anchor.Location <= maxComposingBufferNeedsToWalkSize {
			break
		}
		if !anchor.Node.IsPinned() {
			anchor.Node.SelectCandidateValue(anchor.Node.CurrentValue())
		}
	}
}

// actualCandidateCursorIndex adjusts the grid cursor so candidate
// lookup lands inside or at the right edge of a node.
func (h *KeyHandler) actualCandidateCursorIndex() int {
	cursor := h.grid.CursorIndex()
	if h.selectPhraseAfterCursor {
		if cursor < h.grid.Length() {
			cursor++
		}
	} else if cursor == 0 && h.grid.Length() > 0 {
		cursor++
	}
	return cursor
}

// candidatesAt enumerates candidate values from every node touching
// the index, deduplicated in first-seen order.
func (h *KeyHandler) candidatesAt(index int) []string {
	var values []string
	seen := make(map[string]bool)
	for _, anchor := range h.grid.NodesCrossingOrEndingAt(index) {
		for _, u := range anchor.Node.Unigrams() {
			if seen[u.Value] {
				continue
			}
			seen[u.Value] = true
			values = append(values, u.Value)
		}
	}
	return values
}

// highestUnigramScoreAt returns the best unigram score among the nodes
// touching the index.
func (h *KeyHandler) highestUnigramScoreAt(index int) float64 {
	best := lattice.LiteralFallbackScore
	for _, anchor := range h.grid.NodesCrossingOrEndingAt(index) {
		unigrams := anchor.Node.Unigrams()
		if len(unigrams) > 0 && unigrams[0].Score > best {
			best = unigrams[0].Score
		}
	}
	return best
}

// walkedAnchorContaining locates the walked anchor covering a
// candidate cursor index.
func (h *KeyHandler) walkedAnchorContaining(index int) (lattice.NodeAnchor, bool) {
	for _, anchor := range h.walked {
		if anchor.Location < index && index <= anchor.Location+anchor.SpanningLength {
			return anchor, true
		}
	}
	return lattice.NodeAnchor{}, false
}

// composedStringUpTo renders the walked values before a grid position,
// returning the string and its codepoint length.
func (h *KeyHandler) composedStringUpTo(gridPos int) (string, int) {
	var b strings.Builder
	codepoints := 0
	running := 0
	for _, anchor := range h.walked {
		value := anchor.Node.CurrentValue()
		begin, end := running, running+anchor.SpanningLength
		if end <= gridPos {
			b.WriteString(value)
			codepoints += len([]rune(value))
		} else if begin < gridPos {
			runes := []rune(value)
			take := gridPos - begin
			if take > len(runes) {
				take = len(runes)
			}
			b.WriteString(string(runes[:take]))
			codepoints += take
		}
		running = end
	}
	return b.String(), codepoints
}

// buildInputtingState assembles the composing buffer per the walked
// path, splicing the pending reading in at the caret.
func (h *KeyHandler) buildInputtingState() Inputting {
	cursor := h.grid.CursorIndex()

	var head strings.Builder
	var tail strings.Builder
	headCodepoints := 0
	tooltip := ""
	running := 0

	for _, anchor := range h.walked {
		value := anchor.Node.CurrentValue()
		runes := []rune(value)
		begin, end := running, running+anchor.SpanningLength

		switch {
		case end <= cursor:
			head.WriteString(value)
			headCodepoints += len(runes)
		case begin >= cursor:
			tail.WriteString(value)
		default:
			// The caret falls inside this node. Split its value, and
			// flag the in-between position when the value is shorter
			// than its reading span.
			distance := cursor - begin
			take := distance
			if take > len(runes) {
				take = len(runes)
			}
			head.WriteString(string(runes[:take]))
			headCodepoints += take
			tail.WriteString(string(runes[take:]))
			if len(runes) < anchor.SpanningLength {
				readings := h.grid.Readings()
				tooltip = fmt.Sprintf("Cursor is between syllables %s and %s.",
					readings[cursor-1], readings[cursor])
			}
		}
		running = end
	}

	readingText := h.reading.ComposedString()
	buffer := head.String() + readingText + tail.String()
	cursorCodepoints := headCodepoints + len([]rune(readingText))

	return Inputting{
		NotEmpty: NotEmpty{
			Buffer:  buffer,
			Cursor:  cursorCodepoints,
			Tooltip: tooltip,
		},
	}
}

// markedReadingKey joins the readings of the marked range with the
// storage separator.
func (h *KeyHandler) markedReadingKey(markStart int) string {
	begin, end := markStart, h.grid.CursorIndex()
	if begin > end {
		begin, end = end, begin
	}
	return strings.Join(h.grid.Readings()[begin:end], "-")
}

// buildMarkingState renders the shift-selection between the mark
// anchor and the current caret.
func (h *KeyHandler) buildMarkingState(markStartGridCursor int) Marking {
	inputting := h.buildInputtingState()

	_, cpAtMark := h.composedStringUpTo(markStartGridCursor)
	_, cpAtCursor := h.composedStringUpTo(h.grid.CursorIndex())

	headEnd, markedEnd := cpAtMark, cpAtCursor
	if headEnd > markedEnd {
		headEnd, markedEnd = markedEnd, headEnd
	}

	runes := []rune(inputting.Buffer)
	head := string(runes[:headEnd])
	marked := string(runes[headEnd:markedEnd])
	tail := string(runes[markedEnd:])

	begin, end := markStartGridCursor, h.grid.CursorIndex()
	if begin > end {
		begin, end = end, begin
	}
	readingSlice := h.grid.Readings()[begin:end]
	readingUI := strings.Join(readingSlice, " ")
	readingKey := strings.Join(readingSlice, "-")

	length := end - begin
	acceptable := length >= minMarkedPhraseLength &&
		length <= maxMarkedPhraseLength &&
		!h.model.HasUserPhrase(readingKey, marked)

	tooltip := fmt.Sprintf("Marked: %s, syllables: %s.", marked, readingUI)
	if !acceptable {
		if length < minMarkedPhraseLength {
			tooltip = "The phrase being marked is too short."
		} else if length > maxMarkedPhraseLength {
			tooltip = "The phrase being marked is too long."
		} else {
			tooltip = "The phrase already exists."
		}
	}

	return Marking{
		NotEmpty: NotEmpty{
			Buffer:  inputting.Buffer,
			Cursor:  inputting.Cursor,
			Tooltip: tooltip,
		},
		MarkStart:           cpAtMark,
		Head:                head,
		Marked:              marked,
		Tail:                tail,
		Reading:             readingUI,
		Acceptable:          acceptable,
		markStartGridCursor: markStartGridCursor,
	}
}
