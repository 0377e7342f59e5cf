// Package logging provides zerolog helpers that keep personal data and
// credentials out of the assetrack log file.
//
// Assignees and actors are email addresses, and notes are free text that
// users sometimes paste tokens into. The CLI wraps its rotating log file in
// a FilteringWriter so neither reaches disk in the clear.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// secretPatterns match credential formats that may appear in pasted notes.
var secretPatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// key=value style secrets
	regexp.MustCompile(`(?i)(api[_-]?key|secret|password|passwd|token)\s*[:=]\s*[^\s"',]{8,}`),

	// PEM private key headers
	regexp.MustCompile(`(?i)-----BEGIN[A-Z\s]+PRIVATE KEY-----`),

	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_)
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),
}

// emailPattern matches an email address, capturing the first character of
// the local part and the domain.
var emailPattern = regexp.MustCompile(`\b([a-zA-Z0-9])[a-zA-Z0-9._%+-]*@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})\b`) //nolint:gochecknoglobals // Package-level pattern for reuse

// sensitiveFieldNames are log field names whose values are always redacted.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"note",
	"justification",
	"reason",
	"password",
	"secret",
	"token",
	"api_key",
}

// SensitiveDataHook flags log events whose message contains a credential.
// Field values cannot be rewritten from a hook; the FilteringWriter handles
// those on the way to disk.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s contains a credential pattern.
// Email addresses alone do not count.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range secretPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// MaskEmail rewrites every email address in s to its first character and
// domain, so "dana@studio.example" becomes "d***@studio.example".
func MaskEmail(s string) string {
	return emailPattern.ReplaceAllString(s, "$1***@$2")
}

// FilterSensitiveValue redacts credentials and masks email addresses in value.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range secretPatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return MaskEmail(result)
}

// IsSensitiveFieldName reports whether a field with this name holds free text
// or a credential.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns value ready for a log field: redacted entirely for
// sensitive field names, otherwise filtered.
//
//	logger.Debug().Str("assignee", logging.SafeValue("assignee", email)).Msg("assigned")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and filters sensitive data from output.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when the
// filtered output is shorter.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	if _, err = fw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	return len(p), nil
}
