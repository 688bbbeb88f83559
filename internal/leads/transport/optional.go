package transport

import "encoding/json"

// OptionalString distinguishes an absent JSON field from an explicit null,
// which PATCH bodies need for nullable columns.
type OptionalString struct {
	Value *string
	Set   bool
}

func (o OptionalString) IsZero() bool {
	return !o.Set
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.Value = &raw
	return nil
}
