package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"OverlayBoard/internal/overlay"
	"OverlayBoard/internal/surface"
)

// SurfaceWidget shows a session's raster and feeds it pointer events. It is
// the session's Viewport.
type SurfaceWidget struct {
	widget.BaseWidget
	session *overlay.Session
	ctrl    *surface.Controller
	img     *canvas.Image
	frame   *image.RGBA
	pressed bool
	left    bool
}

var _ fyne.Widget = (*SurfaceWidget)(nil)
var _ fyne.Draggable = (*SurfaceWidget)(nil)
var _ desktop.Mouseable = (*SurfaceWidget)(nil)
var _ desktop.Hoverable = (*SurfaceWidget)(nil)
var _ desktop.Cursorable = (*SurfaceWidget)(nil)
var _ surface.Viewport = (*SurfaceWidget)(nil)

// NewSurfaceWidget binds s to a new widget. The text tool asks for its text
// through p.
func NewSurfaceWidget(s *overlay.Session, p surface.Prompter) (*SurfaceWidget, error) {
	w := &SurfaceWidget{session: s}
	w.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	w.img.FillMode = canvas.ImageFillStretch
	w.img.ScaleMode = canvas.ImageScalePixels
	w.ExtendBaseWidget(w)

	ctrl, err := s.Bind(w, p, w.showRaster)
	if err != nil {
		return nil, err
	}
	w.ctrl = ctrl
	w.showRaster()
	return w, nil
}

// DisplaySize is the widget's laid-out size.
func (w *SurfaceWidget) DisplaySize() (float64, float64) {
	size := w.Size()
	return float64(size.Width), float64(size.Height)
}

func (w *SurfaceWidget) showRaster() {
	if w.ctrl == nil {
		return
	}
	w.frame = w.ctrl.ImageInto(w.frame)
	w.img.Image = w.frame
	w.img.Refresh()
}

// Resize re-measures the raster once layout settles.
func (w *SurfaceWidget) Resize(size fyne.Size) {
	if size == w.Size() {
		return
	}
	w.BaseWidget.Resize(size)
	w.session.ScheduleResize()
}

func (w *SurfaceWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.pressed = true
	w.left = false
	w.ctrl.PointerDown(float64(e.Position.X), float64(e.Position.Y))
}

func (w *SurfaceWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.pressed = false
	w.ctrl.PointerUp()
}

func (w *SurfaceWidget) MouseIn(*desktop.MouseEvent) {}

func (w *SurfaceWidget) MouseMoved(e *desktop.MouseEvent) {
	w.ctrl.PointerMove(float64(e.Position.X), float64(e.Position.Y))
}

func (w *SurfaceWidget) MouseOut() {
	w.pressed = false
	w.ctrl.PointerLeave()
}

// Dragged also covers touch input, where no MouseDown arrives first. No
// MouseOut arrives during a drag, so leaving the widget is detected here and
// ends the gesture until the drag is released.
func (w *SurfaceWidget) Dragged(e *fyne.DragEvent) {
	if w.left {
		return
	}
	if !w.inside(e.Position) {
		w.left = true
		w.ctrl.PointerLeave()
		return
	}
	if !w.pressed {
		w.pressed = true
		start := e.Position.Subtract(e.Dragged)
		w.ctrl.PointerDown(float64(start.X), float64(start.Y))
	}
	w.ctrl.PointerMove(float64(e.Position.X), float64(e.Position.Y))
}

func (w *SurfaceWidget) DragEnd() {
	w.pressed = false
	w.left = false
	w.ctrl.PointerUp()
}

func (w *SurfaceWidget) inside(p fyne.Position) bool {
	size := w.Size()
	return p.X >= 0 && p.Y >= 0 && p.X < size.Width && p.Y < size.Height
}

func (w *SurfaceWidget) Cursor() desktop.Cursor {
	return cursorFor(w.ctrl.Tool())
}

func (w *SurfaceWidget) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 255, A: 96}
	border.StrokeWidth = 1
	return &surfaceRenderer{w: w, border: border}
}

type surfaceRenderer struct {
	w      *SurfaceWidget
	border *canvas.Rectangle
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.w.img, r.border}
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.w.img.Resize(size)
	r.border.Resize(size)
}

func (r *surfaceRenderer) MinSize() fyne.Size { return fyne.NewSize(100, 100) }
func (r *surfaceRenderer) Refresh()           { canvas.Refresh(r.w) }
func (r *surfaceRenderer) Destroy()           {}
