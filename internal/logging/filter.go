// Package logging provides zerolog helpers that keep credentials out of the
// cadence log file. Task titles, descriptions and quick-capture text are free
// text and end up in log fields, so anything that looks like a secret is
// redacted before it is written to disk.
package logging

import (
	"io"
	"regexp"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

//nolint:gochecknoglobals // Package-level patterns for reuse
var sensitivePatterns = []*regexp.Regexp{
	// Provider API keys (sk-..., sk-ant-...)
	regexp.MustCompile(`sk-(ant-)?[a-zA-Z0-9_-]{20,}`),

	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_)
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// key=value style secrets
	regexp.MustCompile(`(?i)(api[_-]?key|secret|password|passwd|token)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value with RedactedValue.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// SensitiveDataHook flags events whose message looks like it carries a secret.
// zerolog hooks cannot rewrite a message, so the flag is all it can do;
// the FilteringWriter does the actual redaction.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// FilteringWriter redacts sensitive data from everything written through it.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter wraps w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when the
// redacted output is shorter, so callers never see a short write.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	if _, err := fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
