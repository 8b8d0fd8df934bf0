package overlay

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"OverlayBoard/internal/state"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command names accepted by Dispatch.
const (
	CmdToggle    = "toggle"
	CmdTool      = "tool"
	CmdColor     = "color"
	CmdThickness = "thickness"
	CmdClear     = "clear"
	CmdSave      = "save"
	CmdPDF       = "pdf"
)

// Handler runs one command with its optional argument and returns a short
// result for display.
type Handler func(arg string) (string, error)

// Commands returns the named handlers controls bind to.
func (s *Session) Commands() map[string]Handler {
	return map[string]Handler{
		CmdToggle: func(string) (string, error) {
			if s.Toggle() {
				return "on", nil
			}
			return "off", nil
		},
		CmdTool: func(arg string) (string, error) {
			if err := s.SetTool(arg); err != nil {
				return "", err
			}
			return arg, nil
		},
		CmdColor: func(arg string) (string, error) {
			c, err := state.ParseHexColor(arg)
			if err != nil {
				return "", err
			}
			s.SetColor(c)
			return state.HexColor(c), nil
		},
		CmdThickness: func(arg string) (string, error) {
			n, err := strconv.Atoi(strings.TrimSpace(arg))
			if err != nil {
				return "", fmt.Errorf("thickness %q: %w", arg, err)
			}
			n = state.ClampThickness(n)
			s.SetThickness(n)
			return strconv.Itoa(n), nil
		},
		CmdClear: func(string) (string, error) {
			s.Clear()
			return "cleared", nil
		},
		CmdSave: func(string) (string, error) { return s.Export() },
		CmdPDF:  func(string) (string, error) { return s.ExportPDF() },
	}
}

// CommandNames lists the command names in sorted order.
func CommandNames() []string {
	names := make([]string, 0, 7)
	for name := range (&Session{}).Commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named command.
func (s *Session) Dispatch(name, arg string) (string, error) {
	h, ok := s.Commands()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return h(arg)
}
