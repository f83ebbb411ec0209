package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imgrid/imgrid/pkg/compose"
	"github.com/imgrid/imgrid/pkg/crop"
	"github.com/imgrid/imgrid/pkg/errors"
)

// chromeRows is the number of terminal rows reserved below the preview
// for the status and key legend lines.
const chromeRows = 2

// =============================================================================
// ComposerModel - Interactive grid and crop editing
// =============================================================================

// composerModel is the bubbletea model for the interactive editor. The
// session pointer is shared with the caller, which reads the final grid
// and crop state back out after the program exits.
type composerModel struct {
	sess *compose.Session

	termW, termH int

	// First observed terminal size, and the canvas size at that moment.
	// Later resizes scale the canvas proportionally against this
	// baseline, mirroring a window resize in a windowed editor.
	baseW, baseH             int
	baseCanvasW, baseCanvasH int

	status    string
	statusErr bool
	wrote     bool

	// fatal is a layout defect detected during editing. runInteractive
	// returns it after the terminal is restored, so the process still
	// exits nonzero.
	fatal error
}

// newComposerModel wraps a loaded session for interactive editing.
func newComposerModel(sess *compose.Session) composerModel {
	w, h := sess.CanvasSize()
	return composerModel{sess: sess, baseCanvasW: w, baseCanvasH: h}
}

func (m composerModel) Init() tea.Cmd {
	return nil
}

func (m composerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if m.baseW == 0 {
			m.baseW, m.baseH = msg.Width, msg.Height
		} else if msg.Width > 0 && msg.Height > 0 {
			m.sess.SetCanvasSize(
				m.baseCanvasW*msg.Width/m.baseW,
				m.baseCanvasH*msg.Height/m.baseH,
			)
		}
		m.termW, m.termH = msg.Width, msg.Height
		return m.guard()
	}
	return m, nil
}

// guard quits the editor when the planned layout can no longer seat
// every image, carrying the error out of the program loop.
func (m composerModel) guard() (tea.Model, tea.Cmd) {
	if err := m.sess.CheckLayout(); err != nil {
		m.fatal = err
		return m, tea.Quit
	}
	return m, nil
}

func (m composerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "w":
		if err := m.sess.Write(context.Background()); err != nil {
			m.status, m.statusErr = errors.UserMessage(err), true
		} else {
			m.status, m.statusErr = fmt.Sprintf("wrote %s", m.sess.OutputPath()), false
			m.wrote = true
		}

	case "tab":
		m.sess.NextImage()
		m.status = ""
	case "shift+tab":
		m.sess.PrevImage()
		m.status = ""

	case "up":
		m.sess.MoveCrop(crop.Up)
	case "down":
		m.sess.MoveCrop(crop.Down)
	case "left":
		m.sess.MoveCrop(crop.Left)
	case "right":
		m.sess.MoveCrop(crop.Right)

	case "shift+up":
		m.sess.ResizeCrop(crop.Up)
	case "shift+down":
		m.sess.ResizeCrop(crop.Down)
	case "shift+left":
		m.sess.ResizeCrop(crop.Left)
	case "shift+right":
		m.sess.ResizeCrop(crop.Right)

	case "-":
		m.sess.ShrinkCrop()
	case "+", "=":
		m.sess.GrowCrop()

	case "enter":
		if m.sess.CommitCrop() {
			m.status, m.statusErr = fmt.Sprintf("applied crop to image %d", m.sess.SelectedIndex()+1), false
		}
	case "esc":
		if m.sess.CancelCrop() {
			m.status = ""
		}

	case "r":
		if m.sess.ResetCrop() {
			m.status, m.statusErr = fmt.Sprintf("reset crop on image %d", m.sess.SelectedIndex()+1), false
		}
	case "R":
		if m.sess.ResetAllCrops() {
			m.status, m.statusErr = "reset all crops", false
		}

	case "c":
		if m.sess.FewerCols() {
			m.status, m.statusErr = fmt.Sprintf("%d columns", m.sess.Cols()), false
		}
	case "C":
		if m.sess.MoreCols() {
			m.status, m.statusErr = fmt.Sprintf("%d columns", m.sess.Cols()), false
		}
	}
	return m.guard()
}

func (m composerModel) View() string {
	if m.termW <= 0 || m.termH <= chromeRows {
		return "starting editor..."
	}

	var b strings.Builder

	frame, err := m.sess.Frame(context.Background())
	if err != nil {
		b.WriteString(StyleError.Render(errors.UserMessage(err)))
		b.WriteString("\n")
		b.WriteString(m.legendLine())
		return b.String()
	}

	b.WriteString(renderHalfBlocks(frame, m.termW, 2*(m.termH-chromeRows)))
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.legendLine())
	return b.String()
}

// statusLine summarizes the grid and, while editing, the pending crop.
func (m composerModel) statusLine() string {
	w, h := m.sess.CanvasSize()
	parts := []string{
		fmt.Sprintf("%d images", len(m.sess.Images())),
		fmt.Sprintf("%dx%d grid", m.sess.Cols(), m.sess.Rows()),
		fmt.Sprintf("%dx%d px", w, h),
		m.sess.OutputPath(),
	}
	line := StyleDim.Render(strings.Join(parts, " · "))

	if m.sess.Editing() {
		i := m.sess.SelectedIndex()
		p := m.sess.PendingCrop()
		name := filepath.Base(m.sess.Images()[i].Path)
		line += "  " + StyleHighlight.Render(fmt.Sprintf("editing %d/%d %s", i+1, len(m.sess.Images()), name))
		line += " " + StyleValue.Render(fmt.Sprintf("%.1f,%.1f %.1fx%.1f", p.X, p.Y, p.W, p.H))
	}

	if m.status != "" {
		style := StyleValue
		if m.statusErr {
			style = StyleError
		}
		line += "  " + style.Render(m.status)
	}
	return line
}

func (m composerModel) legendLine() string {
	return StyleDim.Render("tab: select image · arrows: move · shift+arrows: resize · +/-: scale · enter: apply · esc: cancel · r/R: reset · c/C: columns · w: write · q: quit")
}
