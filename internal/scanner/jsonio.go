package scanner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EachObjectField decodes a top-level JSON object and calls fn for every
// field in document order. encoding/json maps lose that order, and license
// reports list packages in the order the tool emitted them.
func EachObjectField(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// FirstByte returns the first non-whitespace byte of data, or 0.
func FirstByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// LicenseList decodes a license field that tools emit either as a single
// string or as an array of strings, and joins multiple entries with ", ".
func LicenseList(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return JoinLicenses(list)
	}
	return ""
}

// JoinLicenses trims entries, drops empty ones and joins the rest with ", ".
func JoinLicenses(list []string) string {
	out := make([]string, 0, len(list))
	for _, l := range list {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, ", ")
}
