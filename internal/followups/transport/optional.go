package transport

import (
	"encoding/json"
	"time"
)

// OptionalString distinguishes an absent JSON field from an explicit null.
// Set is true when the field was present; Value is nil for null.
type OptionalString struct {
	Value *string
	Set   bool
}

// IsZero reports whether the field was absent.
func (o OptionalString) IsZero() bool { return !o.Set }

// UnmarshalJSON is only called when the field is present, so Set is always
// true here; a JSON null leaves Value nil.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// OptionalTime distinguishes an absent JSON field from an explicit null.
type OptionalTime struct {
	Value *time.Time
	Set   bool
}

// IsZero reports whether the field was absent.
func (o OptionalTime) IsZero() bool { return !o.Set }

// UnmarshalJSON is only called when the field is present, so Set is always
// true here; a JSON null leaves Value nil.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}
