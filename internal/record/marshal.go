package record

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RawReading is the unstructured sensor payload attached to a thermal
// analysis. The store persists it as text and nothing else ever parses
// it; the textual form is an implementation detail of this package.
type RawReading map[string]any

// MarshalRawReading serializes a raw sensor payload for storage.
// A nil payload serializes to an empty object so the column is never NULL.
//
// encoding/json sorts map keys, so equal payloads always produce equal
// text.
func MarshalRawReading(r RawReading) (string, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal raw reading: %w", err)
	}
	return string(b), nil
}

// UnmarshalRawReading restores a raw sensor payload from its stored text.
// Empty text yields a nil payload.
func UnmarshalRawReading(s string) (RawReading, error) {
	if strings.TrimSpace(s) == "" || s == "{}" {
		return nil, nil
	}
	var r RawReading
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, fmt.Errorf("unmarshal raw reading: %w", err)
	}
	return r, nil
}

// NormalizeName returns the NFC-normalized, whitespace-trimmed form of a
// testing-center name. Names arrive from seed files in whatever encoding
// the editor produced; normalizing before storage keeps ordering and
// lookups stable across composed/decomposed Unicode.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
