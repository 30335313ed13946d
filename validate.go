package main

import (
	"regexp"
	"time"
)

// Violation describes a single schema check failure on one field.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator accumulates violations in the order checks run, so the
// same payload always produces the same ordered list. A validator with
// no violations means the input passed its schema.
type Validator struct {
	Violations []Violation
}

// NewValidator creates and returns a fresh, empty Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Valid returns true when no violation was recorded.
func (v *Validator) Valid() bool {
	return len(v.Violations) == 0
}

// Add records a violation for field. Only the first failure of a
// field is kept, so follow-up checks do not pile up noise.
func (v *Validator) Add(field, reason string) {
	for _, violation := range v.Violations {
		if violation.Field == field {
			return
		}
	}
	v.Violations = append(v.Violations, Violation{Field: field, Reason: reason})
}

// Check records a violation for field only when ok is false.
func (v *Validator) Check(ok bool, field, reason string) {
	if !ok {
		v.Add(field, reason)
	}
}

// EmailRX is a compiled regular expression for basic email validation.
var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// NullableString carries the three states an explicitly nullable field
// can take in a partial update: absent, set to null, or set to a value.
type NullableString struct {
	Defined bool
	Valid   bool
	Value   string
}

// NullableTime is the date counterpart of NullableString.
type NullableTime struct {
	Defined bool
	Valid   bool
	Value   time.Time
}

// rawInput is an untyped decoded json body. The readers below coerce
// fields to their target type and record a violation on mismatch, so
// a bad payload never aborts validation halfway.
type rawInput map[string]any

// stringField reads an optional string field. Explicit null counts as
// a violation since the field is not nullable.
func (in rawInput) stringField(v *Validator, field string) (string, bool) {
	raw, present := in[field]
	if !present {
		return "", false
	}
	if raw == nil {
		v.Add(field, "must not be null")
		return "", false
	}
	s, err := toString(raw)
	if err != nil {
		v.Add(field, "must be a string")
		return "", false
	}
	return s, true
}

// requireString reads a mandatory string field.
func (in rawInput) requireString(v *Validator, field string) string {
	if _, present := in[field]; !present {
		v.Add(field, "must be provided")
		return ""
	}
	s, _ := in.stringField(v, field)
	return s
}

// floatField reads an optional numeric field. Numeric strings are
// accepted and coerced, matching what loosely-typed clients send.
func (in rawInput) floatField(v *Validator, field string) (float64, bool) {
	raw, present := in[field]
	if !present {
		return 0, false
	}
	if raw == nil {
		v.Add(field, "must not be null")
		return 0, false
	}
	f, err := toFloat(raw)
	if err != nil {
		v.Add(field, "must be a number")
		return 0, false
	}
	return f, true
}

// requireFloat reads a mandatory numeric field.
func (in rawInput) requireFloat(v *Validator, field string) float64 {
	if _, present := in[field]; !present {
		v.Add(field, "must be provided")
		return 0
	}
	f, _ := in.floatField(v, field)
	return f
}

// intField reads an optional integer field. Fractional numbers are a
// violation, not a silent truncation.
func (in rawInput) intField(v *Validator, field string) (int64, bool) {
	raw, present := in[field]
	if !present {
		return 0, false
	}
	if raw == nil {
		v.Add(field, "must not be null")
		return 0, false
	}
	n, err := toInt(raw)
	if err != nil {
		v.Add(field, "must be an integer")
		return 0, false
	}
	return n, true
}

// requireInt reads a mandatory integer field.
func (in rawInput) requireInt(v *Validator, field string) int64 {
	if _, present := in[field]; !present {
		v.Add(field, "must be provided")
		return 0
	}
	n, _ := in.intField(v, field)
	return n
}

// boolField reads an optional boolean field accepting the usual
// encodings: true/false, "t"/"f", "true"/"false" and 0/1.
func (in rawInput) boolField(v *Validator, field string) (bool, bool) {
	raw, present := in[field]
	if !present {
		return false, false
	}
	if raw == nil {
		v.Add(field, "must not be null")
		return false, false
	}
	b, err := toBool(raw)
	if err != nil {
		v.Add(field, "must be a boolean")
		return false, false
	}
	return b, true
}

// requireBool reads a mandatory boolean field.
func (in rawInput) requireBool(v *Validator, field string) bool {
	if _, present := in[field]; !present {
		v.Add(field, "must be provided")
		return false
	}
	b, _ := in.boolField(v, field)
	return b
}

// nullableStringField reads a field where explicit null is a legal
// value meaning "clear it".
func (in rawInput) nullableStringField(v *Validator, field string) NullableString {
	raw, present := in[field]
	if !present {
		return NullableString{}
	}
	if raw == nil {
		return NullableString{Defined: true}
	}
	s, err := toString(raw)
	if err != nil {
		v.Add(field, "must be a string or null")
		return NullableString{}
	}
	return NullableString{Defined: true, Valid: true, Value: s}
}

// nullableDateField reads a nullable date field given as a string.
func (in rawInput) nullableDateField(v *Validator, field string) NullableTime {
	raw, present := in[field]
	if !present {
		return NullableTime{}
	}
	if raw == nil {
		return NullableTime{Defined: true}
	}
	t, err := toTime(raw)
	if err != nil {
		v.Add(field, "must be a valid date or null")
		return NullableTime{}
	}
	return NullableTime{Defined: true, Valid: true, Value: t}
}
