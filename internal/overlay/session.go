// Package overlay manages the drawing layer's visibility and the single
// surface controller bound to it.
package overlay

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"OverlayBoard/internal/config"
	"OverlayBoard/internal/export"
	"OverlayBoard/internal/state"
	"OverlayBoard/internal/surface"
)

var ErrAlreadyBound = errors.New("session already bound to a surface")

// Scheduler runs fn once after delay. Implementations decide which
// goroutine fn runs on.
type Scheduler func(delay time.Duration, fn func())

// AfterFunc schedules on a timer goroutine.
func AfterFunc(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

type Option func(*Session)

func WithScheduler(s Scheduler) Option {
	return func(sess *Session) { sess.schedule = s }
}

func WithClock(c state.Clock) Option {
	return func(sess *Session) { sess.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(sess *Session) {
		if l != nil {
			sess.log = l
		}
	}
}

// Session owns one overlay: whether it is shown and the controller of its
// surface. Methods must be called from a single goroutine.
type Session struct {
	id     string
	cfg    config.Config
	active bool
	ctrl   *surface.Controller

	schedule Scheduler
	clock    state.Clock
	log      *slog.Logger

	onTool       []func(state.Tool)
	onVisibility []func(bool)
	onStyle      []func(state.Style)
}

func NewSession(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		id:       state.NewID(),
		cfg:      cfg,
		schedule: AfterFunc,
		clock:    state.SystemClock{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "overlay", "session", s.id)
	return s
}

func (s *Session) ID() string                      { return s.id }
func (s *Session) Active() bool                    { return s.active }
func (s *Session) Config() config.Config           { return s.cfg }
func (s *Session) Controller() *surface.Controller { return s.ctrl }

// OnToolChange registers fn to run after every tool selection.
func (s *Session) OnToolChange(fn func(state.Tool)) { s.onTool = append(s.onTool, fn) }

// OnVisibilityChange registers fn to run after every toggle.
func (s *Session) OnVisibilityChange(fn func(bool)) { s.onVisibility = append(s.onVisibility, fn) }

// OnStyleChange registers fn to run after color or thickness changes.
func (s *Session) OnStyleChange(fn func(state.Style)) { s.onStyle = append(s.onStyle, fn) }

// Bind constructs the session's controller on vp. It can only happen once.
func (s *Session) Bind(vp surface.Viewport, p surface.Prompter, onChange func()) (*surface.Controller, error) {
	if s.ctrl != nil {
		return nil, ErrAlreadyBound
	}
	style, err := s.cfg.Style()
	if err != nil {
		s.log.Warn("invalid configured style, using defaults", "err", err)
		style = state.DefaultStyle()
	}
	ctrl, err := surface.NewController(vp,
		surface.WithPrompter(p),
		surface.WithStyle(style),
		surface.WithLogger(s.log),
		surface.WithOnChange(onChange),
	)
	if err != nil {
		return nil, fmt.Errorf("bind surface: %w", err)
	}
	s.ctrl = ctrl
	s.log.Info("surface bound", "width", ctrl.Surface().Width(), "height", ctrl.Surface().Height())
	s.notifyTool(ctrl.Tool())
	s.notifyStyle(ctrl.Style())
	return ctrl, nil
}

// Toggle flips the overlay on or off and returns the new state. Turning it
// on re-measures the surface once layout has settled.
func (s *Session) Toggle() bool {
	s.active = !s.active
	s.log.Info("overlay toggled", "active", s.active)
	for _, fn := range s.onVisibility {
		fn(s.active)
	}
	if s.active {
		s.ScheduleResize()
	}
	return s.active
}

// ScheduleResize resizes the surface after the configured delay. Calls are
// never cancelled; overlapping ones all run and the last one wins.
func (s *Session) ScheduleResize() {
	if s.ctrl == nil {
		return
	}
	s.schedule(s.cfg.ResizeDelay.Duration, func() {
		if err := s.ctrl.Resize(); err != nil {
			s.log.Warn("resize failed", "err", err)
		}
	})
}

// SetTool selects a tool by name. Unbound sessions ignore it.
func (s *Session) SetTool(name string) error {
	if s.ctrl == nil {
		return nil
	}
	tool, err := state.ParseTool(name)
	if err != nil {
		return err
	}
	s.ctrl.SetTool(tool)
	s.notifyTool(tool)
	return nil
}

func (s *Session) SetColor(c color.Color) {
	if s.ctrl == nil {
		return
	}
	s.ctrl.SetColor(c)
	s.notifyStyle(s.ctrl.Style())
}

func (s *Session) SetThickness(t int) {
	if s.ctrl == nil {
		return
	}
	s.ctrl.SetThickness(t)
	s.notifyStyle(s.ctrl.Style())
}

func (s *Session) Clear() {
	if s.ctrl == nil {
		return
	}
	s.ctrl.Clear()
}

// Export writes the surface as PNG and returns the path, or "" when unbound.
func (s *Session) Export() (string, error) {
	if s.ctrl == nil {
		return "", nil
	}
	name := export.FileName(s.cfg.FilePrefix, s.clock.Now(), "png")
	path, err := export.Write(s.cfg.ExportDir, name, s.ctrl.Export)
	if err != nil {
		return "", err
	}
	s.log.Info("exported png", "path", path)
	return path, nil
}

// ExportPDF writes the surface as a one-page PDF.
func (s *Session) ExportPDF() (string, error) {
	if s.ctrl == nil {
		return "", nil
	}
	path, err := export.PDF(s.cfg.ExportDir, s.cfg.FilePrefix, s.clock.Now(), s.ctrl.Image())
	if err != nil {
		return "", err
	}
	s.log.Info("exported pdf", "path", path)
	return path, nil
}

// ApplyConfig adopts a reloaded config. Export settings and the resize
// delay apply at once; the style defaults only matter before Bind.
func (s *Session) ApplyConfig(cfg config.Config) {
	s.cfg = cfg
	s.log.Info("config applied", "export_dir", cfg.ExportDir, "file_prefix", cfg.FilePrefix)
}

func (s *Session) notifyTool(t state.Tool) {
	for _, fn := range s.onTool {
		fn(t)
	}
}

func (s *Session) notifyStyle(st state.Style) {
	for _, fn := range s.onStyle {
		fn(st)
	}
}
