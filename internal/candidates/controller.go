// Package candidates paginates a flat candidate list over a hotkey
// row and tracks the highlighted item.
package candidates

import "strings"

// DefaultKeys is the hotkey row used when none is configured.
const DefaultKeys = "123456789"

// Controller pages through candidates. Key count determines page
// size. The prev/next-item mapping flips when the candidate window is
// vertical, which the host signals through the orientation flag.
type Controller struct {
	candidates []string
	keys       []rune
	current    int
	vertical   bool
}

// NewController creates a controller over a candidate list with the
// given hotkey row.
func NewController(candidates []string, keys string) *Controller {
	if keys == "" {
		keys = DefaultKeys
	}
	return &Controller{
		candidates: candidates,
		keys:       []rune(keys),
	}
}

// SetVertical sets the candidate window orientation.
func (c *Controller) SetVertical(vertical bool) { c.vertical = vertical }

// Candidates returns the full list.
func (c *Controller) Candidates() []string { return c.candidates }

// Keys returns the hotkey row.
func (c *Controller) Keys() string { return string(c.keys) }

// pageSize is the number of hotkeys.
func (c *Controller) pageSize() int { return len(c.keys) }

// CurrentPage returns the zero-based page of the highlighted item.
func (c *Controller) CurrentPage() int {
	if c.pageSize() == 0 {
		return 0
	}
	return c.current / c.pageSize()
}

// PageCount returns the number of pages.
func (c *Controller) PageCount() int {
	size := c.pageSize()
	if size == 0 || len(c.candidates) == 0 {
		return 0
	}
	return (len(c.candidates) + size - 1) / size
}

// CurrentPageCandidates returns the candidates on the current page.
func (c *Controller) CurrentPageCandidates() []string {
	size := c.pageSize()
	start := c.CurrentPage() * size
	end := start + size
	if end > len(c.candidates) {
		end = len(c.candidates)
	}
	if start >= end {
		return nil
	}
	return c.candidates[start:end]
}

// SelectedIndex returns the highlighted item's index in the full list.
func (c *Controller) SelectedIndex() int { return c.current }

// SelectedCandidate returns the highlighted candidate, or "" when the
// list is empty.
func (c *Controller) SelectedCandidate() string {
	if c.current < 0 || c.current >= len(c.candidates) {
		return ""
	}
	return c.candidates[c.current]
}

// SelectedCandidateWithKey returns the candidate on the current page
// at the hotkey's slot, or "" if the key is not a configured hotkey or
// the slot is past the end of the list.
func (c *Controller) SelectedCandidateWithKey(key rune) string {
	slot := strings.IndexRune(string(c.keys), key)
	if slot < 0 {
		return ""
	}
	index := c.CurrentPage()*c.pageSize() + slot
	if index >= len(c.candidates) {
		return ""
	}
	return c.candidates[index]
}

// NextPage advances a page, highlighting its first item. It returns
// false at the last page.
func (c *Controller) NextPage() bool {
	next := (c.CurrentPage() + 1) * c.pageSize()
	if next >= len(c.candidates) {
		return false
	}
	c.current = next
	return true
}

// PrevPage backs up a page, highlighting its first item. It returns
// false at the first page.
func (c *Controller) PrevPage() bool {
	if c.CurrentPage() == 0 {
		return false
	}
	c.current = (c.CurrentPage() - 1) * c.pageSize()
	return true
}

// NextItem highlights the following candidate.
func (c *Controller) NextItem() bool {
	if c.current+1 >= len(c.candidates) {
		return false
	}
	c.current++
	return true
}

// PrevItem highlights the preceding candidate.
func (c *Controller) PrevItem() bool {
	if c.current == 0 {
		return false
	}
	c.current--
	return true
}

// Home highlights the first candidate.
func (c *Controller) Home() {
	c.current = 0
}

// End highlights the last candidate.
func (c *Controller) End() {
	if len(c.candidates) > 0 {
		c.current = len(c.candidates) - 1
	}
}

// Direction is an arrow key. HandleDirection maps it onto the page/item
// operations according to orientation: in a horizontal window
// left/right step items and up/down flip pages; vertical flips the
// mapping.
type Direction int

// Directions, from the host's point of view.
const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// HandleDirection applies an arrow key. It returns false when the move
// is blocked at a boundary.
func (c *Controller) HandleDirection(d Direction) bool {
	horizontalWindow := !c.vertical
	switch d {
	case DirLeft:
		if horizontalWindow {
			return c.PrevItem()
		}
		return c.PrevPage()
	case DirRight:
		if horizontalWindow {
			return c.NextItem()
		}
		return c.NextPage()
	case DirUp:
		if horizontalWindow {
			return c.PrevPage()
		}
		return c.PrevItem()
	case DirDown:
		if horizontalWindow {
			return c.NextPage()
		}
		return c.NextItem()
	}
	return false
}
