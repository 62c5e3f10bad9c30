// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Row is one key/value pairing parsed from a model section. Values are
// stringified regardless of their JSON type.
type Row map[string]string

// ParseSectionRows extracts the named top-level object from a JSON
// document and returns its keys as single-entry rows in document order.
// Nested objects contribute their leaf keys as rows; array values are
// joined with commas, ignoring non-scalar elements. A document without
// the section yields no rows and no error.
func ParseSectionRows(text, section string) ([]Row, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse section %q: %w", section, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("failed to parse section %q: document is not a JSON object", section)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse section %q: %w", section, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse section %q: unexpected token %v", section, keyTok)
		}

		if key == section {
			rows, err := decodeRows(dec)
			if err != nil {
				return nil, fmt.Errorf("failed to parse section %q: %w", section, err)
			}
			return rows, nil
		}
		if err := skipValue(dec); err != nil {
			return nil, fmt.Errorf("failed to parse section %q: %w", section, err)
		}
	}

	return nil, nil
}

// decodeRows consumes one object value from the decoder and flattens it
// into rows.
func decodeRows(dec *json.Decoder) ([]Row, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("section is not an object")
	}

	var rows []Row
	if err := collectRows(dec, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// collectRows walks the members of an already-opened object, appending
// one row per leaf key. The closing brace is consumed.
func collectRows(dec *json.Decoder, rows *[]Row) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}

		switch v := valTok.(type) {
		case json.Delim:
			switch v {
			case '{':
				if err := collectRows(dec, rows); err != nil {
					return err
				}
			case '[':
				joined, err := joinArray(dec)
				if err != nil {
					return err
				}
				*rows = append(*rows, Row{key: joined})
			}
		default:
			*rows = append(*rows, Row{key: stringify(v)})
		}
	}

	// closing brace
	_, err := dec.Token()
	return err
}

// joinArray consumes the elements of an already-opened array and returns
// the scalar elements joined with commas.
func joinArray(dec *json.Decoder) (string, error) {
	var parts []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{':
				if err := skipOpened(dec); err != nil {
					return "", err
				}
			case '[':
				if err := skipOpened(dec); err != nil {
					return "", err
				}
			}
			continue
		}
		parts = append(parts, stringify(tok))
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return "", err
	}
	return strings.Join(parts, ","), nil
}

// skipValue consumes one complete value, scalar or composite.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
		return skipOpened(dec)
	}
	return nil
}

// skipOpened consumes the remainder of a composite value whose opening
// delimiter has already been read.
func skipOpened(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func stringify(tok json.Token) string {
	switch v := tok.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
