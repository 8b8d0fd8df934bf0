package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2/driver/desktop"
	"github.com/gogpu/gg"

	"OverlayBoard/internal/state"
)

const penCursorSize = 24

// penCursor is a slanted pen nib with its hot spot on the tip.
type penCursor struct{}

var (
	penCursorOnce sync.Once
	penCursorImg  image.Image
)

func (penCursor) Image() (image.Image, int, int) {
	penCursorOnce.Do(func() {
		dc := gg.NewContext(penCursorSize, penCursorSize)
		dc.SetLineCap(gg.LineCapRound)
		dc.MoveTo(21, 3)
		dc.LineTo(4, 20)
		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(5)
		_ = dc.Stroke()
		dc.MoveTo(21, 3)
		dc.LineTo(4, 20)
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		_ = dc.Stroke()
		penCursorImg = dc.ResizeTarget().ToImage()
	})
	return penCursorImg, 2, penCursorSize - 2
}

// PenCursor is shown over the surface while the pen is selected.
var PenCursor desktop.Cursor = penCursor{}

func cursorFor(t state.Tool) desktop.Cursor {
	switch t.Cursor() {
	case state.CursorText:
		return desktop.TextCursor
	case state.CursorPen:
		return PenCursor
	case state.CursorShape:
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}
