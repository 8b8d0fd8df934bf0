package state

import (
	"image/color"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTool(t *testing.T) {
	for _, tool := range Tools {
		got, err := ParseTool(" " + string(tool) + " ")
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}
	got, err := ParseTool("DoubleArrow")
	require.NoError(t, err)
	assert.Equal(t, ToolDoubleArrow, got)

	_, err = ParseTool("eraser")
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestToolPreviewsAndCursor(t *testing.T) {
	tests := []struct {
		tool     Tool
		previews bool
		cursor   string
	}{
		{ToolPen, false, "pen-cursor"},
		{ToolLine, true, "shape-cursor"},
		{ToolArrow, true, "shape-cursor"},
		{ToolDoubleArrow, true, "shape-cursor"},
		{ToolRectangle, true, "shape-cursor"},
		{ToolCircle, true, "shape-cursor"},
		{ToolText, false, "text-cursor"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tool), func(t *testing.T) {
			assert.Equal(t, tt.previews, tt.tool.Previews())
			assert.Equal(t, tt.cursor, tt.tool.Cursor().String())
		})
	}
}

func TestClampThickness(t *testing.T) {
	assert.Equal(t, 1, ClampThickness(-4))
	assert.Equal(t, 1, ClampThickness(0))
	assert.Equal(t, 7, ClampThickness(7))
	assert.Equal(t, 20, ClampThickness(21))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}},
		{"00ff00", color.NRGBA{G: 255, A: 255}},
		{"#00F", color.NRGBA{B: 255, A: 255}},
		{" #123456 ", color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "red", "#ff00", "#gg0000", "#ff00000"} {
		_, err := ParseHexColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	assert.Equal(t, "#ff0000", HexColor(DefaultColor))
	assert.Equal(t, "#000000", HexColor(color.Black))
	c, err := ParseHexColor(HexColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, c)
}

func TestDefaultStyle(t *testing.T) {
	assert.Equal(t, Style{Color: color.NRGBA{R: 255, A: 255}, Thickness: 3}, DefaultStyle())
}

func TestClockAndIDs(t *testing.T) {
	before := time.Now()
	assert.False(t, SystemClock{}.Now().Before(before))

	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
