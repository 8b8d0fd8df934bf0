// Package config loads the overlay's TOML settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"OverlayBoard/internal/state"
)

// EnvExportDir overrides export_dir when set.
const EnvExportDir = "OVERLAYBOARD_EXPORT_DIR"

const (
	DefaultFilePrefix  = "annotation"
	DefaultResizeDelay = 100 * time.Millisecond
	DefaultRemotePort  = 8888
)

// Duration decodes TOML strings such as "100ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	ExportDir   string   `toml:"export_dir"`
	FilePrefix  string   `toml:"file_prefix"`
	Color       string   `toml:"color"`
	Thickness   int      `toml:"thickness"`
	ResizeDelay Duration `toml:"resize_delay"`
	LogLevel    string   `toml:"log_level"`
	LogFormat   string   `toml:"log_format"`
	Remote      Remote   `toml:"remote"`
}

// Remote configures the websocket command endpoint.
type Remote struct {
	Enabled   bool   `toml:"enabled"`
	Port      int    `toml:"port"`
	Advertise bool   `toml:"advertise"`
	Instance  string `toml:"instance"`
}

func Defaults() Config {
	return Config{
		ExportDir:   ".",
		FilePrefix:  DefaultFilePrefix,
		Color:       state.HexColor(state.DefaultColor),
		Thickness:   state.DefaultThickness,
		ResizeDelay: Duration{DefaultResizeDelay},
		LogLevel:    "info",
		LogFormat:   "text",
		Remote: Remote{
			Port:      DefaultRemotePort,
			Advertise: true,
		},
	}
}

// Load reads path over the defaults. An empty path, or a path that does not
// exist, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if dir := strings.TrimSpace(os.Getenv(EnvExportDir)); dir != "" {
		cfg.ExportDir = dir
	}
	if err := cfg.Validate().Error(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Style is the stroke style the configured defaults describe.
func (c Config) Style() (state.Style, error) {
	col, err := state.ParseHexColor(c.Color)
	if err != nil {
		return state.Style{}, err
	}
	return state.Style{Color: col, Thickness: state.ClampThickness(c.Thickness)}, nil
}
