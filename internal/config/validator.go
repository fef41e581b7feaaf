package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.max_size_mb")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidPreviewThemes returns the list of valid preview themes.
// It must match styles.ValidThemes (kept separate to avoid an import cycle).
func ValidPreviewThemes() []string {
	return []string{"default", "dracula", "nord", "solarized-light"}
}

// maxTargetLength bounds render target identifiers.
const maxTargetLength = 256

// problems collects validation failures in the order they are found.
type problems []ValidationError

func (p *problems) add(field string, value any, format string, args ...any) {
	*p = append(*p, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var p problems
	c.validateLogging(&p)
	c.validatePreview(&p)
	// An empty render target means wait for the host's first render request
	validateTargetLength(&p, "serve.render_target", c.Serve.RenderTarget)
	return p
}

func (c *Config) validateLogging(p *problems) {
	l := c.Logging
	if l.Level != "" && !slices.Contains(ValidLogLevels(), l.Level) {
		p.add("logging.level", l.Level, "must be one of: %s", strings.Join(ValidLogLevels(), ", "))
	}

	const maxLogSizeMB = 1000
	switch {
	case l.MaxSizeMB <= 0:
		p.add("logging.max_size_mb", l.MaxSizeMB, "must be positive")
	case l.MaxSizeMB > maxLogSizeMB:
		p.add("logging.max_size_mb", l.MaxSizeMB, "exceeds maximum of %dMB", maxLogSizeMB)
	}

	if l.MaxBackups < 0 {
		p.add("logging.max_backups", l.MaxBackups, "must be non-negative")
	}

	if !l.Enabled {
		return
	}
	if l.Dir == "" {
		p.add("logging.dir", l.Dir, "must be set when file logging is enabled")
	}
	if strings.ContainsRune(l.Dir, '\x00') {
		p.add("logging.dir", l.Dir, "path contains invalid null character")
	}
}

func (c *Config) validatePreview(p *problems) {
	if strings.TrimSpace(c.Preview.Target) == "" {
		p.add("preview.target", c.Preview.Target, "must not be empty")
	}
	validateTargetLength(p, "preview.target", c.Preview.Target)

	if c.Preview.Theme != "" && !slices.Contains(ValidPreviewThemes(), c.Preview.Theme) {
		p.add("preview.theme", c.Preview.Theme, "must be one of: %s", strings.Join(ValidPreviewThemes(), ", "))
	}
}

func validateTargetLength(p *problems, field, target string) {
	if len(target) > maxTargetLength {
		p.add(field, target, "exceeds maximum length of %d characters", maxTargetLength)
	}
}
