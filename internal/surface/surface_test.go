package surface

import (
	"image"
	"sync/atomic"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flushCounter accelerates nothing, so every draw stays on the CPU, and
// counts the flushes readers request.
type flushCounter struct {
	flushes atomic.Int32
}

func (f *flushCounter) Name() string                         { return "flush-counter" }
func (f *flushCounter) Init() error                          { return nil }
func (f *flushCounter) Close()                               {}
func (f *flushCounter) CanAccelerate(gg.AcceleratedOp) bool { return false }

func (f *flushCounter) FillPath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

func (f *flushCounter) StrokePath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

func (f *flushCounter) FillShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

func (f *flushCounter) StrokeShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}

func (f *flushCounter) Flush(gg.GPURenderTarget) error {
	f.flushes.Add(1)
	return nil
}

func TestReadsFlushPendingAcceleratorWork(t *testing.T) {
	acc := &flushCounter{}
	require.NoError(t, gg.RegisterAccelerator(acc))

	s := NewSurface(8, 8)
	reads := []struct {
		name string
		read func()
	}{
		{"snapshot", func() { s.Snapshot() }},
		{"restore", func() { s.Restore(make([]byte, 8*8*4)) }},
		{"image", func() { s.Image() }},
		{"alpha", func() { s.Alpha(1, 1) }},
		{"empty", func() { s.Empty() }},
	}
	for _, r := range reads {
		t.Run(r.name, func(t *testing.T) {
			before := acc.flushes.Load()
			r.read()
			assert.Equal(t, before+1, acc.flushes.Load())
		})
	}
}

func TestCopyToReusesFrame(t *testing.T) {
	s := NewSurface(10, 6)
	frame := s.CopyTo(nil)
	require.Equal(t, image.Rect(0, 0, 10, 6), frame.Rect)
	assert.Zero(t, frame.Pix[(2*10+3)*4+3])

	dc := s.context()
	dc.SetRGB(0, 0, 1)
	dc.DrawRectangle(0, 0, 10, 6)
	require.NoError(t, dc.Fill())

	again := s.CopyTo(frame)
	assert.Same(t, frame, again)
	assert.Equal(t, uint8(255), again.Pix[(2*10+3)*4+3])

	require.NoError(t, s.Resize(12, 6))
	resized := s.CopyTo(frame)
	assert.NotSame(t, frame, resized)
	assert.Equal(t, image.Rect(0, 0, 12, 6), resized.Rect)
	assert.Zero(t, resized.Pix[(2*12+3)*4+3])
}
