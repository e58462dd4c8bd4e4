// Package popup implements the scrollable session statistics popup.
package popup

// ScrollState is a windowing cursor over a logical list. The list length
// and visible row budget are supplied per call rather than stored: both
// vary independently of the cursor (the row budget changes whenever the
// terminal is resized).
type ScrollState struct {
	// Selected is the index navigation keys move. -1 means no selection.
	Selected int
	// ScrollTop is the index of the first visible row.
	ScrollTop int
}

// NewScrollState returns a ScrollState with no selection.
func NewScrollState() ScrollState {
	return ScrollState{Selected: -1}
}

// MoveUpWrap moves the selection up one row, wrapping from the top to the
// bottom. No-op on an empty list.
func (s *ScrollState) MoveUpWrap(listLen int) {
	if listLen == 0 {
		return
	}
	if s.Selected <= 0 {
		s.Selected = listLen - 1
		return
	}
	s.Selected--
}

// MoveDownWrap moves the selection down one row, wrapping from the bottom
// to the top. No-op on an empty list.
func (s *ScrollState) MoveDownWrap(listLen int) {
	if listLen == 0 {
		return
	}
	if s.Selected < 0 || s.Selected >= listLen-1 {
		s.Selected = 0
		return
	}
	s.Selected++
}

// EnsureVisible adjusts ScrollTop by the minimum amount that puts the
// selection inside [ScrollTop, ScrollTop+viewportRows) and clamps
// ScrollTop into [0, max(0, listLen-viewportRows)]. Call it after every
// selection move and before every render: a row budget that shrank since
// the last call can invalidate a previously fine ScrollTop.
func (s *ScrollState) EnsureVisible(listLen, viewportRows int) {
	if listLen == 0 {
		s.ScrollTop = 0
		return
	}
	if viewportRows <= 0 {
		// Degenerate viewport shows nothing; keep the committed position.
		return
	}

	if s.Selected >= listLen {
		s.Selected = listLen - 1
	}

	maxTop := listLen - viewportRows
	if maxTop < 0 {
		maxTop = 0
	}
	if s.ScrollTop > maxTop {
		s.ScrollTop = maxTop
	}
	if s.ScrollTop < 0 {
		s.ScrollTop = 0
	}

	if s.Selected < 0 {
		return
	}
	if s.Selected < s.ScrollTop {
		s.ScrollTop = s.Selected
	} else if s.Selected >= s.ScrollTop+viewportRows {
		s.ScrollTop = s.Selected - viewportRows + 1
	}
}
