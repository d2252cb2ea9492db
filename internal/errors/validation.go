package errors

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// MetaValidation is the metadata key holding the per-field messages of a
// failed validation, as map[string][]string.
const MetaValidation = "validation_errors"

// ValidationError lists field failures. Build turns it into an
// InvalidArgument *Error; it is exported for callers that format it alone.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// Error reports fields in sorted order so messages are stable
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range slices.Sorted(maps.Keys(v.Fields)) {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", field, strings.Join(v.Fields[field], ", "))
	}
	return b.String()
}

// ValidationBuilder accumulates field failures for a config or an input
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records a failure message for field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// Fieldf records a formatted failure message for field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records a field whose value is rejected
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Has reports whether field already failed
func (vb *ValidationBuilder) Has(field string) bool {
	return len(vb.fields[field]) > 0
}

// Build returns nil when nothing failed, otherwise an InvalidArgument error
// carrying the field map under MetaValidation.
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}
	ve := &ValidationError{Fields: vb.fields}
	return InvalidArgument(ve.Error()).WithMeta(MetaValidation, ve.Fields)
}

// ValidateRequired rejects a blank string
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange rejects a value outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateMin rejects a value below minValue
func ValidateMin(field string, value, minValue int, vb *ValidationBuilder) {
	if value < minValue {
		vb.Fieldf(field, "must be at least %d", minValue)
	}
}

// ValidateEnum rejects a value not in allowed. It takes any string kind, so
// topologies and patterns are checked without conversion.
func ValidateEnum[T ~string](field string, value T, allowed []T, vb *ValidationBuilder) {
	if slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(names, ", "))
}
