package models

import "encoding/json"

// NullableString distinguishes the three states a JSON string field can be in
// on a partial update:
//   - absent:        Set=false, Valid=false
//   - explicit null: Set=true,  Valid=false
//   - value:         Set=true,  Valid=true
//
// A *string collapses the first two, which makes "clear the outcome"
// indistinguishable from "leave the outcome alone".
type NullableString struct {
	Value string
	Valid bool
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true

	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = s
	ns.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

// ToPtr returns nil for null or absent values, otherwise a pointer to Value
func (ns NullableString) ToPtr() *string {
	if !ns.Valid {
		return nil
	}
	return &ns.Value
}
