package config

import (
	"fmt"
	"strings"

	"keyline/internal/input"
	"keyline/internal/render"
	"keyline/internal/timeline"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration. Opacity is clamped into range;
// dimensions, unknown keys, and malformed colors are rejected. The core
// may assume a validated config.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Width <= 0 {
		errs = append(errs, ValidationError{"width", fmt.Sprintf("must be positive, got %d", c.Width)})
	}
	if c.Height <= 0 {
		errs = append(errs, ValidationError{"height", fmt.Sprintf("must be positive, got %d", c.Height)})
	}

	if c.BgAlpha < 0 {
		c.BgAlpha = 0
	}
	if c.BgAlpha > 1 {
		c.BgAlpha = 1
	}

	if _, err := render.ParseHex(c.BgColor, 1); err != nil {
		errs = append(errs, ValidationError{"bg_color", err.Error()})
	}

	if len(c.Rows) > timeline.RowCount {
		errs = append(errs, ValidationError{"rows", fmt.Sprintf("at most %d rows, got %d", timeline.RowCount, len(c.Rows))})
	}
	for i, row := range c.Rows {
		if i >= timeline.RowCount {
			break
		}
		field := fmt.Sprintf("rows[%d]", i)
		if row.Key == "" {
			errs = append(errs, ValidationError{field + ".key", "missing key name"})
		} else if input.KeyCodeByName(row.Key) == 0 {
			errs = append(errs, ValidationError{field + ".key", fmt.Sprintf("unknown key %q", row.Key)})
		}
		if _, err := render.ParseHex(row.Color, 1); err != nil {
			errs = append(errs, ValidationError{field + ".color", err.Error()})
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level)})
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, ValidationError{"logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
