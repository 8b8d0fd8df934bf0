package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"OverlayBoard/internal/state"
)

// Viewport is the on-screen element a surface is displayed in. DisplaySize
// reports its current laid-out size in display units.
type Viewport interface {
	DisplaySize() (width, height float64)
}

// Prompter asks the user for a line of text. answer is called exactly once,
// possibly later, with ok false when the user cancelled.
type Prompter interface {
	PromptText(answer func(text string, ok bool))
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(answer func(text string, ok bool))

func (f PromptFunc) PromptText(answer func(text string, ok bool)) { f(answer) }

// Option configures a Controller.
type Option func(*Controller)

func WithPrompter(p Prompter) Option {
	return func(c *Controller) { c.prompter = p }
}

func WithStyle(s state.Style) Option {
	return func(c *Controller) {
		c.style = s
		c.style.Thickness = state.ClampThickness(s.Thickness)
	}
}

func WithTool(t state.Tool) Option {
	return func(c *Controller) { c.tool = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithOnChange registers a hook called after every pixel mutation.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

func WithFont(src *text.FontSource) Option {
	return func(c *Controller) { c.font = src }
}

var (
	defaultFontOnce sync.Once
	defaultFont     *text.FontSource
	defaultFontErr  error
)

func loadDefaultFont() (*text.FontSource, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = text.NewFontSource(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// Controller owns one surface and interprets pointer gestures on it with the
// current tool and style.
type Controller struct {
	surface  *Surface
	viewport Viewport
	prompter Prompter
	font     *text.FontSource

	tool    state.Tool
	style   state.Style
	gesture state.Gesture

	onChange func()
	log      *slog.Logger
}

// NewController creates a controller whose surface matches the viewport's
// current displayed size.
func NewController(vp Viewport, opts ...Option) (*Controller, error) {
	c := &Controller{
		viewport: vp,
		tool:     state.ToolPen,
		style:    state.DefaultStyle(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "surface")

	if c.font == nil {
		src, err := loadDefaultFont()
		if err != nil {
			return nil, fmt.Errorf("load default font: %w", err)
		}
		c.font = src
	}

	w, h := c.displaySize()
	c.surface = NewSurface(w, h)
	return c, nil
}

func (c *Controller) displaySize() (int, int) {
	if c.viewport == nil {
		return 1, 1
	}
	w, h := c.viewport.DisplaySize()
	return int(math.Round(w)), int(math.Round(h))
}

func (c *Controller) Surface() *Surface      { return c.surface }
func (c *Controller) Tool() state.Tool       { return c.tool }
func (c *Controller) Style() state.Style     { return c.style }
func (c *Controller) Gesture() state.Gesture { return c.gesture }
func (c *Controller) Image() *image.RGBA     { return c.surface.Image() }

// ImageInto copies the raster into dst, reusing it when the size matches.
func (c *Controller) ImageInto(dst *image.RGBA) *image.RGBA { return c.surface.CopyTo(dst) }

// SetTool selects the tool for the next gesture.
func (c *Controller) SetTool(t state.Tool) {
	c.tool = t
}

func (c *Controller) SetColor(col color.Color) {
	c.style.Color = color.NRGBAModel.Convert(col).(color.NRGBA)
}

func (c *Controller) SetThickness(t int) {
	c.style.Thickness = state.ClampThickness(t)
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) toRaster(x, y float64) state.Point {
	var dw, dh float64
	if c.viewport != nil {
		dw, dh = c.viewport.DisplaySize()
	}
	return ToRaster(state.Point{X: x, Y: y}, c.surface.Width(), c.surface.Height(), dw, dh)
}

// PointerDown starts a gesture at a displayed position. The text tool does
// not start a gesture; it prompts and renders when the answer arrives.
func (c *Controller) PointerDown(x, y float64) {
	p := c.toRaster(x, y)

	if c.tool == state.ToolText {
		c.gesture = state.Gesture{}
		c.promptText(p)
		return
	}

	c.gesture = state.Gesture{ID: state.NewID(), Active: true, Start: p, Last: p}
	if c.tool.Previews() {
		c.gesture.Snapshot = c.surface.Snapshot()
	}
	c.log.Debug("gesture started", "gesture", c.gesture.ID, "tool", c.tool, "x", p.X, "y", p.Y)
}

// PointerMove extends the pen stroke or redraws the shape preview. Moves
// outside a gesture are ignored.
func (c *Controller) PointerMove(x, y float64) {
	if !c.gesture.Active {
		return
	}
	p := c.toRaster(x, y)

	dc := c.surface.context()
	dc.SetColor(c.style.Color)
	dc.SetLineWidth(float64(c.style.Thickness))

	switch {
	case c.tool == state.ToolPen:
		c.stroke(Segment{From: c.gesture.Last, To: p})
	case c.tool.Previews():
		if !c.surface.Restore(c.gesture.Snapshot) {
			return
		}
		c.drawShape(c.gesture.Start, p)
	default:
		return
	}

	c.gesture.Last = p
	c.changed()
}

// PointerUp ends the gesture. Whatever is on the surface stays.
func (c *Controller) PointerUp() {
	if !c.gesture.Active {
		return
	}
	c.log.Debug("gesture committed", "gesture", c.gesture.ID, "tool", c.tool)
	c.gesture = state.Gesture{}
}

// PointerLeave ends the gesture like PointerUp.
func (c *Controller) PointerLeave() {
	c.PointerUp()
}

func (c *Controller) drawShape(start, end state.Point) {
	dc := c.surface.context()
	switch c.tool {
	case state.ToolLine:
		c.stroke(Segment{From: start, To: end})
	case state.ToolRectangle:
		x, y, w, h := Rect(start, end)
		dc.ClearPath()
		dc.DrawRectangle(x, y, w, h)
		c.strokePath()
	case state.ToolCircle:
		center, r := Circle(start, end)
		dc.ClearPath()
		dc.DrawCircle(center.X, center.Y, r)
		c.strokePath()
	case state.ToolArrow:
		head := ArrowHead(start, end, HeadLength(c.style.Thickness))
		c.stroke(Segment{From: start, To: end})
		c.stroke(head[0], head[1])
	case state.ToolDoubleArrow:
		length := HeadLength(c.style.Thickness)
		end2 := ArrowHead(start, end, length)
		start2 := StartHead(start, end, length)
		c.stroke(Segment{From: start, To: end})
		c.stroke(end2[0], end2[1])
		c.stroke(start2[0], start2[1])
	}
}

// stroke draws the segments as one path with the current style.
func (c *Controller) stroke(segs ...Segment) {
	dc := c.surface.context()
	dc.ClearPath()
	for _, s := range segs {
		dc.MoveTo(s.From.X, s.From.Y)
		dc.LineTo(s.To.X, s.To.Y)
	}
	c.strokePath()
}

func (c *Controller) strokePath() {
	if err := c.surface.context().Stroke(); err != nil {
		c.log.Warn("stroke failed", "tool", c.tool, "err", err)
	}
}

func (c *Controller) promptText(at state.Point) {
	if c.prompter == nil {
		c.log.Debug("no text prompt available")
		return
	}
	c.prompter.PromptText(func(s string, ok bool) {
		if !ok || s == "" {
			return
		}
		c.DrawText(s, at)
	})
}

// DrawText renders s with its baseline starting at p (raster pixels).
func (c *Controller) DrawText(s string, p state.Point) {
	dc := c.surface.context()
	dc.SetFont(c.font.Face(FontSize(c.style.Thickness)))
	dc.SetColor(c.style.Color)
	dc.DrawString(s, p.X, p.Y)
	c.changed()
}

// Resize matches the raster to the viewport's displayed size. The surface
// content, and any preview snapshot, is lost.
func (c *Controller) Resize() error {
	w, h := c.displaySize()
	if err := c.surface.Resize(w, h); err != nil {
		return err
	}
	c.gesture.Snapshot = nil
	c.log.Debug("surface resized", "width", c.surface.Width(), "height", c.surface.Height())
	c.changed()
	return nil
}

// Clear wipes the surface to transparent.
func (c *Controller) Clear() {
	c.surface.Clear()
	c.changed()
}

// Export writes the surface as PNG.
func (c *Controller) Export(w io.Writer) error {
	return c.surface.EncodePNG(w)
}
