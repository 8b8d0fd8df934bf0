// Package surface implements the raster drawing surface of the overlay and
// the controller that turns pointer gestures into pixels on it.
package surface

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/gg"
)

// Surface is an RGBA raster with explicit pixel dimensions. Every draw goes
// straight into its pixels; there is no retained scene.
type Surface struct {
	dc *gg.Context
}

// NewSurface allocates a transparent surface of at least 1×1 pixels.
func NewSurface(width, height int) *Surface {
	width, height = max(width, 1), max(height, 1)
	s := &Surface{dc: gg.NewContext(width, height)}
	s.applyDefaults()
	return s
}

func (s *Surface) applyDefaults() {
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
}

func (s *Surface) Width() int  { return s.dc.Width() }
func (s *Surface) Height() int { return s.dc.Height() }

// Resize reallocates the raster. Content is always discarded, including when
// the dimensions are unchanged.
func (s *Surface) Resize(width, height int) error {
	width, height = max(width, 1), max(height, 1)
	if err := s.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	s.dc.Clear()
	s.dc.ClearPath()
	s.applyDefaults()
	return nil
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	s.dc.Clear()
}

// pixels returns the backing RGBA bytes once pending accelerator work has
// landed in them.
func (s *Surface) pixels() []byte {
	_ = s.dc.FlushGPU()
	return s.dc.ResizeTarget().Data()
}

// Snapshot copies the current pixel content.
func (s *Surface) Snapshot() []byte {
	data := s.pixels()
	snap := make([]byte, len(data))
	copy(snap, data)
	return snap
}

// Restore reinstates a snapshot. It reports false when the snapshot does not
// fit the current dimensions, which happens after a resize.
func (s *Surface) Restore(snap []byte) bool {
	data := s.pixels()
	if snap == nil || len(snap) != len(data) {
		return false
	}
	copy(data, snap)
	return true
}

// Alpha returns the alpha byte of one pixel, 0 outside the raster.
func (s *Surface) Alpha(x, y int) uint8 {
	if x < 0 || y < 0 || x >= s.Width() || y >= s.Height() {
		return 0
	}
	return s.pixels()[(y*s.Width()+x)*4+3]
}

// Empty reports whether every pixel is fully transparent.
func (s *Surface) Empty() bool {
	data := s.pixels()
	for i := 3; i < len(data); i += 4 {
		if data[i] != 0 {
			return false
		}
	}
	return true
}

// Image returns a copy of the raster.
func (s *Surface) Image() *image.RGBA {
	return s.CopyTo(nil)
}

// CopyTo copies the raster into dst and returns it. dst is reallocated when
// it is nil or its size no longer matches.
func (s *Surface) CopyTo(dst *image.RGBA) *image.RGBA {
	data := s.pixels()
	w, h := s.Width(), s.Height()
	if dst == nil || dst.Rect != image.Rect(0, 0, w, h) || dst.Stride != w*4 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	copy(dst.Pix, data)
	return dst
}

// EncodePNG writes the raster as a lossless PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}

// context exposes the drawing context to the controller.
func (s *Surface) context() *gg.Context { return s.dc }
