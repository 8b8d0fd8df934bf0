package surface

import (
	"math"

	"OverlayBoard/internal/state"
)

// headAngle is the angle between an arrowhead barb and the shaft.
const headAngle = math.Pi / 6

// HeadLength is the arrowhead barb length for a stroke thickness.
func HeadLength(thickness int) float64 {
	return math.Max(float64(thickness)*3, 10)
}

// FontSize is the text size in pixels for a stroke thickness.
func FontSize(thickness int) float64 {
	return math.Max(float64(thickness)*5, 16)
}

// Segment is a straight line between two points.
type Segment struct {
	From, To state.Point
}

// ArrowHead returns the two barbs at the tip of an arrow pointing from
// tail to tip.
func ArrowHead(tail, tip state.Point, length float64) [2]Segment {
	angle := math.Atan2(tip.Y-tail.Y, tip.X-tail.X)
	return [2]Segment{
		{From: tip, To: state.Point{
			X: tip.X - length*math.Cos(angle-headAngle),
			Y: tip.Y - length*math.Sin(angle-headAngle),
		}},
		{From: tip, To: state.Point{
			X: tip.X - length*math.Cos(angle+headAngle),
			Y: tip.Y - length*math.Sin(angle+headAngle),
		}},
	}
}

// StartHead returns the barbs at the start of a double arrow. They share the
// shaft angle and open toward the end point.
func StartHead(start, end state.Point, length float64) [2]Segment {
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	return [2]Segment{
		{From: start, To: state.Point{
			X: start.X + length*math.Cos(angle-headAngle),
			Y: start.Y + length*math.Sin(angle-headAngle),
		}},
		{From: start, To: state.Point{
			X: start.X + length*math.Cos(angle+headAngle),
			Y: start.Y + length*math.Sin(angle+headAngle),
		}},
	}
}

// Rect returns the top-left corner and size of the axis-aligned rectangle
// spanned by two opposite corners, whichever order they come in.
func Rect(a, b state.Point) (x, y, w, h float64) {
	return math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Abs(b.X - a.X), math.Abs(b.Y - a.Y)
}

// Circle treats a and b as diametrically opposite points.
func Circle(a, b state.Point) (center state.Point, radius float64) {
	center = state.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	radius = math.Hypot(b.X-a.X, b.Y-a.Y) / 2
	return center, radius
}

// ToRaster maps a point from displayed coordinates into raster pixels.
// A zero displayed size leaves the point unscaled.
func ToRaster(p state.Point, rasterW, rasterH int, displayW, displayH float64) state.Point {
	if displayW > 0 {
		p.X *= float64(rasterW) / displayW
	}
	if displayH > 0 {
		p.Y *= float64(rasterH) / displayH
	}
	return p
}
