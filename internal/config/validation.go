package config

import (
	"fmt"
	"strings"

	"OverlayBoard/internal/state"
)

// ValidationError is one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

type ValidationResult struct {
	Errors []ValidationError
}

func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error combines every validation error, or returns nil.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

func (c Config) Validate() *ValidationResult {
	vr := &ValidationResult{}

	if strings.TrimSpace(c.ExportDir) == "" {
		vr.AddError("export_dir", "must not be empty")
	}
	if c.FilePrefix == "" {
		vr.AddError("file_prefix", "must not be empty")
	} else if strings.ContainsAny(c.FilePrefix, `/\`) {
		vr.AddError("file_prefix", "must not contain path separators")
	}
	if _, err := state.ParseHexColor(c.Color); err != nil {
		vr.AddError("color", err.Error())
	}
	if c.Thickness < state.MinThickness || c.Thickness > state.MaxThickness {
		vr.AddError("thickness", fmt.Sprintf("must be between %d and %d", state.MinThickness, state.MaxThickness))
	}
	if c.ResizeDelay.Duration < 0 {
		vr.AddError("resize_delay", "must not be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		vr.AddError("log_level", fmt.Sprintf("unknown level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		vr.AddError("log_format", fmt.Sprintf("unknown format %q", c.LogFormat))
	}
	if c.Remote.Enabled && (c.Remote.Port <= 0 || c.Remote.Port > 65535) {
		vr.AddError("remote.port", "must be between 1 and 65535")
	}

	return vr
}
