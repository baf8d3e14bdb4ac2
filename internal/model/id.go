package model

import (
	"encoding/json"
	"fmt"
)

// ID is a server identifier. The storefront API is not consistent about
// sending ids as numbers or strings, so both decode into the same value.
type ID string

// String returns the id as text.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as bare numbers so the server sees the
// same type it sent. Everything else is written as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 && len(s) > 1 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	// leading zeros are not valid JSON numbers
	digits := s
	if digits[0] == '-' {
		digits = digits[1:]
	}
	return len(digits) == 1 || digits[0] != '0'
}
