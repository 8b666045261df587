package validation

import (
	"strings"

	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"golang.org/x/text/language"
)

// Kind tags the rule a field violated.
type Kind string

const (
	KindRequired   Kind = "required"
	KindFormat     Kind = "format"
	KindMinLength  Kind = "minLength"
	KindRange      Kind = "range"
	KindPastDate   Kind = "pastDate"
	KindFutureDate Kind = "futureDate"
	KindMinAge     Kind = "minAge"
	KindMaxAge     Kind = "maxAge"
	KindOrder      Kind = "order"
	KindEnum       Kind = "enum"
	KindImmutable  Kind = "immutable"
	KindReference  Kind = "reference"
)

// FieldError is one rule violation. Args carries the rule bounds, in the order the
// localized message expects them.
type FieldError struct {
	Field string `json:"field"`
	Kind  Kind   `json:"kind"`
	Args  []any  `json:"args,omitempty"`
}

// Error renders the violation in English.
func (e FieldError) Error() string {
	return e.Message(NewPrinter(language.English))
}

// Errors is the ordered list of violations found on one payload.
type Errors struct {
	Fields []FieldError `json:"errors"`
}

// Add records a violation.
func (e *Errors) Add(field string, kind Kind, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Kind: kind, Args: args})
}

// Valid reports whether no violation was recorded.
func (e *Errors) Valid() bool {
	return e == nil || len(e.Fields) == 0
}

// Has reports whether field failed with kind.
func (e *Errors) Has(field string, kind Kind) bool {
	if e == nil {
		return false
	}
	for _, fe := range e.Fields {
		if fe.Field == field && fe.Kind == kind {
			return true
		}
	}
	return false
}

// Err returns e as an error, or nil when there is nothing to report.
func (e *Errors) Err() error {
	if e.Valid() {
		return nil
	}
	return e
}

// Messages renders every violation with the printer for tag.
func (e *Errors) Messages(tag language.Tag) []string {
	if e == nil {
		return nil
	}
	p := NewPrinter(tag)
	out := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		out = append(out, fe.Message(p))
	}
	return out
}

func (e *Errors) Error() string {
	return apperrors.ErrValidationFailed.Error() + ": " + strings.Join(e.Messages(language.English), "; ")
}

// Unwrap lets callers match apperrors.ErrValidationFailed.
func (e *Errors) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Single builds an error holding one violation.
func Single(field string, kind Kind, args ...any) *Errors {
	errs := &Errors{}
	errs.Add(field, kind, args...)
	return errs
}
