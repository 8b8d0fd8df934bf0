package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"OverlayBoard/internal/overlay"
	"OverlayBoard/internal/state"
)

var toolLabels = map[state.Tool]string{
	state.ToolPen:         "Pen",
	state.ToolLine:        "Line",
	state.ToolArrow:       "Arrow",
	state.ToolDoubleArrow: "Double Arrow",
	state.ToolRectangle:   "Rectangle",
	state.ToolCircle:      "Circle",
	state.ToolText:        "Text",
}

var palette = []color.NRGBA{
	{R: 255, A: 255},
	{R: 255, G: 200, A: 255},
	{G: 160, A: 255},
	{B: 255, A: 255},
	{A: 255},
}

// colorSwatch is a tappable square of one color.
type colorSwatch struct {
	widget.BaseWidget
	rect     *canvas.Rectangle
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c color.Color) {
	s.Color = c
	if s.rect != nil {
		s.rect.FillColor = c
		s.rect.Refresh()
	}
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	s.rect = canvas.NewRectangle(s.Color)
	s.rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the overlay's controls. Every control goes through the
// session's named commands.
type Toolbar struct {
	session *overlay.Session
	window  fyne.Window
	log     *slog.Logger

	tools     map[state.Tool]*widget.Button
	current   *colorSwatch
	slider    *widget.Slider
	thickness *widget.Label
	status    *widget.Label
}

func NewToolbar(s *overlay.Session, win fyne.Window, log *slog.Logger) *Toolbar {
	if log == nil {
		log = slog.Default()
	}
	tb := &Toolbar{
		session:   s,
		window:    win,
		log:       log.With("component", "ui"),
		tools:     make(map[state.Tool]*widget.Button, len(state.Tools)),
		thickness: widget.NewLabel(fmt.Sprintf("%dpx", state.DefaultThickness)),
		status:    widget.NewLabel("Ready"),
	}
	s.OnToolChange(tb.highlight)
	s.OnStyleChange(tb.showStyle)
	return tb
}

// run dispatches one command and reports the outcome in the status label.
func (tb *Toolbar) run(name, arg string) {
	result, err := tb.session.Dispatch(name, arg)
	if err != nil {
		tb.log.Warn("command failed", "command", name, "arg", arg, "err", err)
		tb.SetStatus("Error: " + err.Error())
		return
	}
	switch name {
	case overlay.CmdSave, overlay.CmdPDF:
		if result == "" {
			return
		}
		tb.SetStatus("Saved " + result)
	case overlay.CmdClear:
		tb.SetStatus("Cleared")
	}
}

func (tb *Toolbar) SetStatus(text string) { tb.status.SetText(text) }

func (tb *Toolbar) highlight(current state.Tool) {
	for tool, btn := range tb.tools {
		if tool == current {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func (tb *Toolbar) showStyle(st state.Style) {
	if tb.current != nil {
		tb.current.SetColor(st.Color)
	}
	tb.thickness.SetText(fmt.Sprintf("%dpx", st.Thickness))
	if tb.slider != nil && int(tb.slider.Value) != st.Thickness {
		tb.slider.SetValue(float64(st.Thickness))
	}
}

func (tb *Toolbar) pickColor() {
	picker := dialog.NewColorPicker("Stroke color", "", func(c color.Color) {
		tb.run(overlay.CmdColor, state.HexColor(c))
	}, tb.window)
	picker.Advanced = true
	picker.Show()
}

// Build lays the controls out in one row.
func (tb *Toolbar) Build() fyne.CanvasObject {
	toolRow := container.NewHBox()
	for _, tool := range state.Tools {
		name := string(tool)
		btn := widget.NewButton(toolLabels[tool], func() { tb.run(overlay.CmdTool, name) })
		tb.tools[tool] = btn
		toolRow.Add(btn)
	}

	onColorTapped := func(c color.Color) { tb.run(overlay.CmdColor, state.HexColor(c)) }
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}
	tb.current = newColorSwatch(state.DefaultColor, func(color.Color) { tb.pickColor() })

	tb.slider = widget.NewSlider(state.MinThickness, state.MaxThickness)
	tb.slider.Step = 1
	tb.slider.SetValue(state.DefaultThickness)
	tb.slider.OnChanged = func(val float64) {
		tb.run(overlay.CmdThickness, strconv.Itoa(int(val)))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), tb.slider)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), func() { tb.run(overlay.CmdClear, "") }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { tb.run(overlay.CmdSave, "") }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { tb.run(overlay.CmdPDF, "") }),
	)

	if ctrl := tb.session.Controller(); ctrl != nil {
		tb.highlight(ctrl.Tool())
		tb.showStyle(ctrl.Style())
	}

	return container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Tool:"),
			toolRow,
			widget.NewSeparator(),
			widget.NewLabel("Color:"),
			tb.current,
			colorBox,
			widget.NewSeparator(),
			widget.NewLabel("Size:"),
			sliderContainer,
			tb.thickness,
			widget.NewSeparator(),
			actions,
			layout.NewSpacer(),
			widget.NewLabel("Exit: Ctrl+Space"),
		),
		tb.status,
	)
}
