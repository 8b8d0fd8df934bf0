package ui

import (
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"OverlayBoard/internal/overlay"
)

// ToggleShortcut shows and hides the overlay.
var ToggleShortcut = &desktop.CustomShortcut{KeyName: fyne.KeySpace, Modifier: fyne.KeyModifierControl}

// Schedule runs fn on the UI goroutine after delay.
func Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() { fyne.Do(fn) })
}

// SyncDispatcher runs session commands on the UI goroutine and waits for
// the result. It is safe to call from any goroutine.
func SyncDispatcher(s *overlay.Session) func(command, arg string) (string, error) {
	type result struct {
		out string
		err error
	}
	return func(command, arg string) (string, error) {
		ch := make(chan result, 1)
		fyne.Do(func() {
			out, err := s.Dispatch(command, arg)
			ch <- result{out, err}
		})
		r := <-ch
		return r.out, r.err
	}
}

// NewApp creates the fyne application the overlay runs in.
func NewApp() fyne.App {
	return app.NewWithID("io.overlayboard")
}

// RunApp builds the window for s over the page image at pagePath (blank
// when empty) and blocks until it closes.
func RunApp(a fyne.App, s *overlay.Session, pagePath string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	win := a.NewWindow("OverlayBoard")
	win.Resize(fyne.NewSize(1024, 768))

	board, err := NewSurfaceWidget(s, TextPrompt(win))
	if err != nil {
		return err
	}
	toolbar := NewToolbar(s, win, log)
	layer := container.NewBorder(toolbar.Build(), nil, nil, nil, board)
	layer.Hide()

	hint := widget.NewLabel("Ctrl+Space to annotate")
	s.OnVisibilityChange(func(active bool) {
		if active {
			layer.Show()
			hint.Hide()
		} else {
			layer.Hide()
			hint.Show()
		}
	})

	win.Canvas().AddShortcut(ToggleShortcut, func(fyne.Shortcut) { s.Toggle() })
	win.SetContent(container.NewStack(page(pagePath, log), container.NewVBox(hint), layer))
	win.ShowAndRun()
	return nil
}

func page(path string, log *slog.Logger) fyne.CanvasObject {
	bg := canvas.NewRectangle(color.White)
	if path == "" {
		return bg
	}
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain
	log.Info("page loaded", "path", path)
	return container.NewStack(bg, img)
}
