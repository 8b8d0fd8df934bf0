package ui

import (
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OverlayBoard/internal/config"
	"OverlayBoard/internal/overlay"
	"OverlayBoard/internal/state"
)

func immediate(_ time.Duration, fn func()) { fn() }

func newTestWidget(t *testing.T) (*overlay.Session, *SurfaceWidget) {
	t.Helper()
	test.NewTempApp(t)
	cfg := config.Defaults()
	cfg.ExportDir = t.TempDir()
	s := overlay.NewSession(cfg, overlay.WithScheduler(immediate))
	w, err := NewSurfaceWidget(s, nil)
	require.NoError(t, err)
	w.Resize(fyne.NewSize(200, 100))
	return s, w
}

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestSurfaceWidgetResizesRaster(t *testing.T) {
	s, _ := newTestWidget(t)
	sf := s.Controller().Surface()
	assert.Equal(t, 200, sf.Width())
	assert.Equal(t, 100, sf.Height())
}

func TestSurfaceWidgetDrawsWithMouse(t *testing.T) {
	s, w := newTestWidget(t)

	w.MouseDown(press(20, 50))
	w.MouseMoved(press(180, 50))
	w.MouseUp(press(180, 50))

	sf := s.Controller().Surface()
	assert.NotZero(t, sf.Alpha(100, 50))
	assert.False(t, s.Controller().Gesture().Active)
}

func TestSurfaceWidgetDragWithoutMouseDown(t *testing.T) {
	s, w := newTestWidget(t)

	w.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(60, 50)},
		Dragged:    fyne.NewDelta(40, 0),
	})
	assert.True(t, s.Controller().Gesture().Active)
	assert.Equal(t, state.Point{X: 20, Y: 50}, s.Controller().Gesture().Start)
	w.DragEnd()
	assert.False(t, s.Controller().Gesture().Active)
	assert.NotZero(t, s.Controller().Surface().Alpha(40, 50))
}

func TestSurfaceWidgetMouseOutEndsGesture(t *testing.T) {
	s, w := newTestWidget(t)
	require.NoError(t, s.SetTool("line"))

	w.MouseDown(press(10, 10))
	w.MouseOut()
	w.MouseMoved(press(150, 90))
	assert.True(t, s.Controller().Surface().Empty())
}

func TestCursorFollowsTool(t *testing.T) {
	s, w := newTestWidget(t)
	pen := w.Cursor()
	assert.Equal(t, PenCursor, pen)

	require.NoError(t, s.SetTool("text"))
	text := w.Cursor()
	assert.Equal(t, desktop.TextCursor, text)

	require.NoError(t, s.SetTool("circle"))
	shape := w.Cursor()
	assert.Equal(t, desktop.CrosshairCursor, shape)

	assert.NotEqual(t, pen, shape)
	assert.NotEqual(t, pen, text)
	assert.NotEqual(t, text, shape)

	for _, tool := range []string{"line", "arrow", "doublearrow", "rectangle"} {
		require.NoError(t, s.SetTool(tool))
		assert.Equal(t, desktop.CrosshairCursor, w.Cursor(), tool)
	}
}

func TestPenCursorImage(t *testing.T) {
	img, x, y := PenCursor.Image()
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, penCursorSize, penCursorSize), img.Bounds())
	_, _, _, a := img.At(x+1, y-1).RGBA()
	assert.NotZero(t, a, "nib reaches the hot spot")
}

func TestDragLeavingSurfaceEndsGesture(t *testing.T) {
	for _, tool := range []string{"pen", "line"} {
		t.Run(tool, func(t *testing.T) {
			s, w := newTestWidget(t)
			require.NoError(t, s.SetTool(tool))

			w.MouseDown(press(20, 50))
			w.Dragged(drag(100, 50, 80, 0))
			require.True(t, s.Controller().Gesture().Active)
			before := s.Controller().Image()

			w.Dragged(drag(100, 300, 0, 250))
			assert.False(t, s.Controller().Gesture().Active)

			// coming back with the button still held does not resume
			w.Dragged(drag(150, 20, 50, -280))
			assert.False(t, s.Controller().Gesture().Active)
			assert.Equal(t, before.Pix, s.Controller().Image().Pix)

			w.DragEnd()
			w.MouseDown(press(10, 10))
			w.Dragged(drag(60, 60, 50, 50))
			assert.True(t, s.Controller().Gesture().Active, "next press draws again")
		})
	}
}

func TestShowRasterReusesFrame(t *testing.T) {
	_, w := newTestWidget(t)
	frame := w.frame
	require.NotNil(t, frame)
	assert.Equal(t, image.Rect(0, 0, 200, 100), frame.Rect)

	w.MouseDown(press(20, 50))
	w.MouseMoved(press(180, 50))
	w.MouseUp(press(180, 50))

	assert.Same(t, frame, w.frame)
	assert.Same(t, frame, w.img.Image)
	_, _, _, a := frame.At(100, 50).RGBA()
	assert.NotZero(t, a)
}

func TestToolbarHighlightsOneTool(t *testing.T) {
	s, _ := newTestWidget(t)
	tb := NewToolbar(s, test.NewWindow(nil), nil)
	tb.Build()

	tb.run(overlay.CmdTool, "arrow")
	for tool, btn := range tb.tools {
		if tool == state.ToolArrow {
			assert.Equal(t, widget.HighImportance, btn.Importance, tool)
		} else {
			assert.Equal(t, widget.MediumImportance, btn.Importance, tool)
		}
	}
}

func TestToolbarThicknessLabel(t *testing.T) {
	s, _ := newTestWidget(t)
	tb := NewToolbar(s, test.NewWindow(nil), nil)
	tb.Build()
	assert.Equal(t, "3px", tb.thickness.Text)

	tb.run(overlay.CmdThickness, "7")
	assert.Equal(t, "7px", tb.thickness.Text)
	assert.Equal(t, 7.0, tb.slider.Value)
	assert.Equal(t, 7, s.Controller().Style().Thickness)
}

func TestToolbarReportsErrors(t *testing.T) {
	s, _ := newTestWidget(t)
	tb := NewToolbar(s, test.NewWindow(nil), nil)
	tb.Build()

	tb.run(overlay.CmdColor, "mauve")
	assert.Contains(t, tb.status.Text, "Error:")

	tb.run(overlay.CmdSave, "")
	assert.Contains(t, tb.status.Text, "Saved ")
}
