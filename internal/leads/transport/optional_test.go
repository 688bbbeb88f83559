package transport

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringDistinguishesAbsentFromNull(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"phone": null}`, true, nil},
		{"value", `{"phone": "+12125550171"}`, true, strPtr("+12125550171")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateLeadRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}

			if req.Phone.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", req.Phone.Set, tt.wantSet)
			}
			switch {
			case tt.wantValue == nil && req.Phone.Value != nil:
				t.Errorf("Value = %q, want nil", *req.Phone.Value)
			case tt.wantValue != nil && (req.Phone.Value == nil || *req.Phone.Value != *tt.wantValue):
				t.Errorf("Value = %v, want %q", req.Phone.Value, *tt.wantValue)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
