package state

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrUnknownTool  = errors.New("unknown tool")
	ErrInvalidColor = errors.New("invalid color")
)

const (
	MinThickness     = 1
	MaxThickness     = 20
	DefaultThickness = 3
)

// DefaultColor is the red the overlay starts with.
var DefaultColor = color.NRGBA{R: 255, A: 255}

type Point struct{ X, Y float64 }

// Tool names the drawing tool that interprets the next gesture.
type Tool string

const (
	ToolPen         Tool = "pen"
	ToolLine        Tool = "line"
	ToolArrow       Tool = "arrow"
	ToolDoubleArrow Tool = "doublearrow"
	ToolRectangle   Tool = "rectangle"
	ToolCircle      Tool = "circle"
	ToolText        Tool = "text"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPen, ToolLine, ToolArrow, ToolDoubleArrow, ToolRectangle, ToolCircle, ToolText}

func ParseTool(name string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Tools {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Previews reports whether the tool draws a provisional shape that is
// erased and redrawn on every pointer move.
func (t Tool) Previews() bool {
	switch t {
	case ToolLine, ToolArrow, ToolDoubleArrow, ToolRectangle, ToolCircle:
		return true
	}
	return false
}

// Cursor is the pointer affordance shown over the surface.
type Cursor int

const (
	CursorShape Cursor = iota
	CursorPen
	CursorText
)

func (t Tool) Cursor() Cursor {
	switch t {
	case ToolPen:
		return CursorPen
	case ToolText:
		return CursorText
	}
	return CursorShape
}

func (c Cursor) String() string {
	switch c {
	case CursorPen:
		return "pen-cursor"
	case CursorText:
		return "text-cursor"
	}
	return "shape-cursor"
}

// Style is applied to the next and every later draw until changed.
type Style struct {
	Color     color.NRGBA
	Thickness int
}

func DefaultStyle() Style {
	return Style{Color: DefaultColor, Thickness: DefaultThickness}
}

func ClampThickness(t int) int {
	if t < MinThickness {
		return MinThickness
	}
	if t > MaxThickness {
		return MaxThickness
	}
	return t
}

// ParseHexColor accepts #rgb and #rrggbb, with or without the leading '#'.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Gesture is the transient record of one pointer-down to pointer-up
// interaction. Snapshot is only set for tools that preview.
type Gesture struct {
	ID       string
	Active   bool
	Start    Point
	Last     Point
	Snapshot []byte
}
