package features

import (
	"fmt"

	"go.uber.org/zap"
)

// WarningKind classifies a recoverable diagnostic.
type WarningKind string

// Warning kinds.
const (
	WarnInvalidType   WarningKind = "invalid_type"
	WarnInvalidLength WarningKind = "invalid_length"
	WarnNoMatch       WarningKind = "no_match"
	WarnNoValidTerms  WarningKind = "no_valid_terms"
	WarnFallback      WarningKind = "fallback"
)

// Filter names used on warnings.
const (
	FilterName = "name"
	FilterID   = "id"
	FilterAll  = "all"
)

// Warning is a skipped input, an unmatched term or a fallback decision.
// Warnings never change the outcome beyond the fallback rules.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Filter  string      `json:"filter"`
	Term    string      `json:"term,omitempty"`
	Message string      `json:"message"`
}

// String returns the warning message.
func (w Warning) String() string {
	return w.Message
}

func newWarning(kind WarningKind, filter, term, format string, args ...any) Warning {
	return Warning{
		Kind:    kind,
		Filter:  filter,
		Term:    term,
		Message: fmt.Sprintf(format, args...),
	}
}

// logWarnings writes each warning to log at warn level.
func logWarnings(log *zap.Logger, warnings []Warning) {
	for _, w := range warnings {
		log.Warn(w.Message,
			zap.String("kind", string(w.Kind)),
			zap.String("filter", w.Filter),
			zap.String("term", w.Term),
		)
	}
}
