package compose

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/imgrid/imgrid/pkg/crop"
	"github.com/imgrid/imgrid/pkg/errors"
	imgio "github.com/imgrid/imgrid/pkg/io"
	"github.com/imgrid/imgrid/pkg/layout"
	"github.com/imgrid/imgrid/pkg/observability"
	"github.com/imgrid/imgrid/pkg/render"
)

// Session holds the full state of one compositing run: the image slots
// with their committed crops, the crop editor, the current grid
// settings, and the per-slot tile cache.
//
// A Session is not safe for concurrent use. The serve entry point
// builds a fresh Session per request instead of sharing one.
type Session struct {
	logger *log.Logger
	mode   layout.Mode
	border render.Border
	output string

	images []*Image
	editor *crop.Editor

	cols    int
	canvasW int
	canvasH int

	tiles []image.Image
}

// New validates the options, resolves the initial geometry, and returns
// a session with one unloaded slot per path.
func New(paths []string, opts Options) (*Session, error) {
	opts.setDefaults()

	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "at least one input image is required")
	}
	if err := errors.ValidateImageCount(len(paths), MaxImages); err != nil {
		return nil, err
	}
	if _, err := imgio.FormatForPath(opts.OutputPath); err != nil {
		return nil, err
	}

	initial, err := layout.Resolve(opts.Mode, len(paths), opts.Cols, opts.Sizing)
	if err != nil {
		return nil, err
	}

	s := &Session{
		logger:  opts.Logger,
		mode:    opts.Mode,
		border:  opts.Border,
		output:  opts.OutputPath,
		editor:  crop.NewEditor(),
		cols:    initial.Cols,
		canvasW: initial.CanvasWidth,
		canvasH: initial.CanvasHeight,
		images:  make([]*Image, len(paths)),
		tiles:   make([]image.Image, len(paths)),
	}
	for i, p := range paths {
		s.images[i] = &Image{Path: p, Crop: crop.Uncropped()}
	}

	for _, cs := range opts.Crops {
		if cs.Index < 0 {
			return nil, errors.New(errors.ErrCodeInvalidCrop, "crop index %d is negative", cs.Index)
		}
		if err := errors.ValidateCropValues(cs.Rect.X, cs.Rect.Y, cs.Rect.W, cs.Rect.H); err != nil {
			return nil, err
		}
		if cs.Index >= len(paths) {
			s.logger.Warn("preset crop ignored", "index", cs.Index, "images", len(paths))
			continue
		}
		s.images[cs.Index].Crop = cs.Rect
	}

	return s, nil
}

// Load decodes every image slot. Decode failures are logged and leave
// the slot unloaded; its pane renders empty. Load fails only when the
// context is cancelled.
func (s *Session) Load(ctx context.Context) error {
	for _, im := range s.images {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		observability.Session().OnLoadStart(ctx, im.Path)
		img, err := imgio.Load(im.Path)
		if err != nil {
			observability.Session().OnLoadComplete(ctx, im.Path, 0, 0, time.Since(start), err)
			s.logger.Warn("could not read image", "path", im.Path, "error", err)
			continue
		}

		b := img.Bounds()
		if b.Dx() > MaxImageDim || b.Dy() > MaxImageDim {
			img = imaging.Fit(img, MaxImageDim, MaxImageDim, imaging.Lanczos)
			b = img.Bounds()
			s.logger.Warn("downscaled oversized image",
				"path", im.Path, "width", b.Dx(), "height", b.Dy())
		}
		im.Pixels = img
		im.Width = b.Dx()
		im.Height = b.Dy()
		observability.Session().OnLoadComplete(ctx, im.Path, im.Width, im.Height, time.Since(start), nil)
		s.logger.Info("read image", "path", im.Path, "width", im.Width, "height", im.Height)
	}
	return nil
}

// Plan returns the pane placement for the current canvas and columns.
func (s *Session) Plan() layout.Plan {
	return layout.PlanPanes(s.mode, len(s.images), s.canvasW, s.canvasH, s.cols)
}

// CheckLayout verifies that the planned grid seats every image. A
// failure is a defect in the layout policy rather than bad input, and
// callers abort on it.
func (s *Session) CheckLayout() error {
	plan := s.Plan()
	if plan.PaneCount() < len(s.images) {
		return errors.New(errors.ErrCodeInternal,
			"layout produced %d panes for %d images", plan.PaneCount(), len(s.images))
	}
	return nil
}

// Frame renders one composite frame: the pending crop is sanitized,
// panes are planned, stale tiles are rebuilt, and everything is drawn
// onto the canvas. The crop overlay appears only while editing.
func (s *Session) Frame(ctx context.Context) (image.Image, error) {
	s.editor.Sanitize()

	if err := s.CheckLayout(); err != nil {
		return nil, err
	}
	plan := s.Plan()

	start := time.Now()
	observability.Session().OnComposeStart(ctx, len(s.images), plan.PaneCount())

	for i, im := range s.images {
		if s.tiles[i] != nil || !im.Loaded() {
			continue
		}
		dest := render.Target(plan, i, s.border)
		s.tiles[i] = render.Tile(im.Pixels, im.Crop, dest.W, dest.H)
	}

	opts := []render.Option{render.WithBorder(s.border)}
	if s.editor.Editing() {
		opts = append(opts, render.WithOverlay(s.editor.Index(), s.editor.Pending()))
	}
	frame := render.Compose(plan, s.tiles, opts...)

	observability.Session().OnComposeComplete(ctx, plan.UsedWidth, plan.UsedHeight, time.Since(start))
	return frame, nil
}

// Write renders the final composite and encodes it to the configured
// output path. Any in-progress crop is discarded first so the overlay
// never appears in output files. The reproduction command line is
// logged alongside the write.
func (s *Session) Write(ctx context.Context) error {
	s.editor.Cancel()

	frame, err := s.Frame(ctx)
	if err != nil {
		return err
	}

	plan := s.Plan()
	s.logger.Info("writing output", "path", s.output, "width", plan.UsedWidth, "height", plan.UsedHeight)
	s.logger.Info(s.Command())

	start := time.Now()
	observability.Session().OnWriteStart(ctx, s.output)
	err = imgio.Write(s.output, frame)
	observability.Session().OnWriteComplete(ctx, s.output, time.Since(start), err)
	return err
}

// =============================================================================
// Crop Editing
// =============================================================================

// NextImage begins crop editing, or selects the following image when
// already editing. The pending crop resets to the centered default.
func (s *Session) NextImage() {
	s.editor.Next(len(s.images))
}

// PrevImage begins crop editing, or selects the preceding image when
// already editing. The pending crop resets to the centered default.
func (s *Session) PrevImage() {
	s.editor.Prev(len(s.images))
}

// MoveCrop nudges the pending crop. No-op while idle.
func (s *Session) MoveCrop(d crop.Direction) {
	s.editor.Move(d)
}

// ResizeCrop adjusts one axis of the pending crop about its center.
// No-op while idle.
func (s *Session) ResizeCrop(d crop.Direction) {
	s.editor.Resize(d)
}

// ShrinkCrop shrinks the pending crop on both axes. No-op while idle.
func (s *Session) ShrinkCrop() {
	s.editor.Shrink()
}

// GrowCrop grows the pending crop on both axes. No-op while idle.
func (s *Session) GrowCrop() {
	s.editor.Grow()
}

// CommitCrop composes the pending crop into the selected image's
// committed crop and leaves editing. The slot's tile is rebuilt on the
// next frame. Reports whether a commit happened.
func (s *Session) CommitCrop() bool {
	i := s.editor.Index()
	combined, ok := s.editor.Commit(s.images[i].Crop)
	if !ok {
		return false
	}
	s.images[i].Crop = combined
	s.invalidate(i)
	return true
}

// CancelCrop discards the pending crop and leaves editing. The selected
// index is kept, so editing resumes at the same image.
func (s *Session) CancelCrop() bool {
	return s.editor.Cancel()
}

// ResetCrop restores the selected image to uncropped. It only applies
// while editing and only when the committed crop differs from the
// default. Editing stays active.
func (s *Session) ResetCrop() bool {
	if !s.editor.Editing() {
		return false
	}
	i := s.editor.Index()
	if s.images[i].Crop.IsFull() {
		return false
	}
	s.images[i].Crop = crop.Uncropped()
	s.invalidate(i)
	return true
}

// ResetAllCrops restores every image to uncropped, in any state.
// Reports whether any crop actually changed.
func (s *Session) ResetAllCrops() bool {
	changed := false
	for i, im := range s.images {
		if im.Crop.IsFull() {
			continue
		}
		im.Crop = crop.Uncropped()
		s.invalidate(i)
		changed = true
	}
	return changed
}

// =============================================================================
// Grid Adjustment
// =============================================================================

// FewerCols narrows the grid by one column, refusing to cross the
// mode's lower bound. A change invalidates every tile.
func (s *Session) FewerCols() bool {
	minCols, _ := s.mode.Bounds()
	if s.cols <= minCols {
		return false
	}
	s.cols--
	s.invalidateAll()
	return true
}

// MoreCols widens the grid by one column, refusing to cross the mode's
// upper bound. A change invalidates every tile.
func (s *Session) MoreCols() bool {
	_, maxCols := s.mode.Bounds()
	if s.cols >= maxCols {
		return false
	}
	s.cols++
	s.invalidateAll()
	return true
}

// SetCanvasSize resizes the canvas, typically in response to a window
// size change. Non-positive sizes are ignored. A change invalidates
// every tile.
func (s *Session) SetCanvasSize(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if w == s.canvasW && h == s.canvasH {
		return false
	}
	s.canvasW = w
	s.canvasH = h
	s.invalidateAll()
	return true
}

func (s *Session) invalidate(i int) {
	s.tiles[i] = nil
}

func (s *Session) invalidateAll() {
	for i := range s.tiles {
		s.tiles[i] = nil
	}
}

// =============================================================================
// Accessors
// =============================================================================

// Images returns the image slots in pane order. Callers must treat the
// slice and its entries as read-only.
func (s *Session) Images() []*Image { return s.images }

// Cols returns the current column count.
func (s *Session) Cols() int { return s.cols }

// Rows returns the row count for the current column count.
func (s *Session) Rows() int { return s.mode.Rows(len(s.images), s.cols) }

// Mode returns the grid policy.
func (s *Session) Mode() layout.Mode { return s.mode }

// Border returns the configured pane border.
func (s *Session) Border() render.Border { return s.border }

// OutputPath returns the configured output filename.
func (s *Session) OutputPath() string { return s.output }

// CanvasSize returns the requested canvas dimensions. The rendered
// frame may be slightly smaller; see layout.Plan.
func (s *Session) CanvasSize() (w, h int) { return s.canvasW, s.canvasH }

// Editing reports whether crop editing is active.
func (s *Session) Editing() bool { return s.editor.Editing() }

// SelectedIndex returns the crop editor's selected image index.
func (s *Session) SelectedIndex() int { return s.editor.Index() }

// PendingCrop returns the in-progress crop rectangle.
func (s *Session) PendingCrop() crop.Rect { return s.editor.Pending() }
