package models

import (
	"encoding/json"
	"testing"
)

func TestNullableString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue string
	}{
		{
			name:      "field present with string value",
			json:      `{"outcome": "calmer afterwards"}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "calmer afterwards",
		},
		{
			name:      "field present with null value",
			json:      `{"outcome": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field present with empty string",
			json:      `{"outcome": ""}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Outcome NullableString `json:"outcome"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Outcome.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Outcome.Set, tt.wantSet)
			}
			if result.Outcome.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Outcome.Valid, tt.wantValid)
			}
			if result.Outcome.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", result.Outcome.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableString_ToPtr(t *testing.T) {
	tests := []struct {
		name    string
		ns      NullableString
		wantNil bool
		wantVal string
	}{
		{
			name:    "valid string",
			ns:      NullableString{Value: "hello", Valid: true, Set: true},
			wantNil: false,
			wantVal: "hello",
		},
		{
			name:    "null value",
			ns:      NullableString{Valid: false, Set: true},
			wantNil: true,
		},
		{
			name:    "not set",
			ns:      NullableString{Valid: false, Set: false},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ptr := tt.ns.ToPtr()
			if tt.wantNil {
				if ptr != nil {
					t.Errorf("ToPtr() = %v, want nil", *ptr)
				}
			} else {
				if ptr == nil {
					t.Errorf("ToPtr() = nil, want %q", tt.wantVal)
				} else if *ptr != tt.wantVal {
					t.Errorf("ToPtr() = %q, want %q", *ptr, tt.wantVal)
				}
			}
		})
	}
}

func TestUpdateRecommendationRequest_NullableOutcome(t *testing.T) {
	var cleared UpdateRecommendationRequest
	if err := json.Unmarshal([]byte(`{"applied": true, "outcome": null}`), &cleared); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if cleared.Applied == nil || !*cleared.Applied {
		t.Error("Expected Applied to be true")
	}
	if !cleared.Outcome.Set || cleared.Outcome.Valid {
		t.Errorf("Outcome = %+v, want set and null", cleared.Outcome)
	}

	var untouched UpdateRecommendationRequest
	if err := json.Unmarshal([]byte(`{"applied": false}`), &untouched); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if untouched.Outcome.Set {
		t.Error("Expected Outcome.Set to be false when field is absent")
	}
}
