package crop

// Direction identifies the axis and sense of a move or resize action.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Editor is the interactive crop state machine. It is either idle or
// editing one image's pending crop; the pending rectangle is shared
// across images and reset to a centered 50x50 default whenever the
// selection changes. The selected index survives cancel and commit, so
// re-entering crop mode resumes at the image edited last.
//
// All adjustment methods are no-ops while idle. Adjustments are guarded
// rather than clamped: a step that would cross a boundary is simply not
// taken.
type Editor struct {
	editing bool
	index   int
	pending Rect
}

// NewEditor returns an idle editor selecting the first image.
func NewEditor() *Editor {
	return &Editor{}
}

// Editing reports whether an image is selected for interactive cropping.
func (e *Editor) Editing() bool { return e.editing }

// Index returns the selected image index. Meaningful only while editing.
func (e *Editor) Index() int { return e.index }

// Pending returns the in-progress crop rectangle.
func (e *Editor) Pending() Rect { return e.pending }

// DefaultPending is the centered rectangle shown when editing begins.
func DefaultPending() Rect {
	var r Rect
	r.W = 50
	r.H = 50
	r.X = 50 - r.W/2
	r.Y = 50 - r.H/2
	return r
}

// Next begins editing, or advances the selection to the following image
// if already editing. The pending crop resets either way.
func (e *Editor) Next(imageCount int) {
	if imageCount <= 0 {
		return
	}
	if e.editing {
		if e.index == imageCount-1 {
			e.index = 0
		} else {
			e.index++
		}
	}
	e.pending = DefaultPending()
	e.editing = true
}

// Prev begins editing, or moves the selection to the preceding image if
// already editing. The pending crop resets either way.
func (e *Editor) Prev(imageCount int) {
	if imageCount <= 0 {
		return
	}
	if e.editing {
		if e.index == 0 {
			e.index = imageCount - 1
		} else {
			e.index--
		}
	}
	e.pending = DefaultPending()
	e.editing = true
}

// Move translates the pending crop one step in the given direction,
// refusing steps that would push the rectangle past the image edge.
func (e *Editor) Move(d Direction) {
	if !e.editing {
		return
	}
	switch d {
	case Up:
		if e.pending.Y > 0 {
			e.pending.Y -= Step
		}
	case Down:
		if e.pending.Y+e.pending.H < 100 {
			e.pending.Y += Step
		}
	case Left:
		if e.pending.X > 0 {
			e.pending.X -= Step
		}
	case Right:
		if e.pending.X+e.pending.W < 100 {
			e.pending.X += Step
		}
	}
}

// Resize adjusts one dimension of the pending crop about its center:
// Up grows the height, Down shrinks it, Right grows the width, Left
// shrinks it. The origin shifts by half a step so the center holds.
// Shrinking stops at MinSize; growing stops at the image edge.
func (e *Editor) Resize(d Direction) {
	if !e.editing {
		return
	}
	switch d {
	case Up:
		if e.pending.Y+e.pending.H < 100 && e.pending.Y > 0 {
			e.pending.H += Step
			e.pending.Y -= Step / 2
		}
	case Down:
		if e.pending.H > MinSize {
			e.pending.H -= Step
			e.pending.Y += Step / 2
		}
	case Left:
		if e.pending.W > MinSize {
			e.pending.W -= Step
			e.pending.X += Step / 2
		}
	case Right:
		if e.pending.X+e.pending.W < 100 && e.pending.X > 0 {
			e.pending.W += Step
			e.pending.X -= Step / 2
		}
	}
}

// Shrink reduces both dimensions one step about the center, refusing to
// go below MinSize on either axis.
func (e *Editor) Shrink() {
	if !e.editing {
		return
	}
	if e.pending.W > MinSize && e.pending.H > MinSize {
		e.pending.W -= Step
		e.pending.H -= Step
		e.pending.X += Step / 2
		e.pending.Y += Step / 2
	}
}

// Grow enlarges both dimensions one step about the center, refusing if
// either axis would cross an image edge.
func (e *Editor) Grow() {
	if !e.editing {
		return
	}
	if (e.pending.Y+e.pending.H < 100 && e.pending.Y > 0) &&
		(e.pending.X+e.pending.W < 100 && e.pending.X > 0) {
		e.pending.W += Step
		e.pending.H += Step
		e.pending.X -= Step / 2
		e.pending.Y -= Step / 2
	}
}

// Cancel discards the pending crop and returns to idle. It reports
// whether the editor was editing.
func (e *Editor) Cancel() bool {
	was := e.editing
	e.editing = false
	return was
}

// Commit composes the pending crop into old and returns the combined
// crop, leaving the editor idle. The second result is false when the
// editor was not editing, in which case old is returned unchanged.
func (e *Editor) Commit(old Rect) (Rect, bool) {
	if !e.editing {
		return old, false
	}
	e.editing = false
	return old.Compose(e.pending), true
}

// Sanitize clamps the pending crop. Run once per frame regardless of
// state.
func (e *Editor) Sanitize() {
	e.pending = e.pending.Sanitize()
}
