package indexer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Category is one indexer category attached to a hit.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Hit is a single candidate release returned by the indexer. Age and Seeders
// keep their raw JSON form because indexers disagree on whether they are
// numbers or strings.
type Hit struct {
	Title      string     `json:"title"`
	FileName   string     `json:"fileName"`
	Indexer    string     `json:"indexer"`
	Categories []Category `json:"categories"`
	Age        Value      `json:"age"`
	Seeders    Value      `json:"seeders"`
	Size       int64      `json:"size"`
	InfoURL    string     `json:"infoUrl"`
}

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindNumber
	kindString
	kindOther
)

// Value is a JSON scalar that remembers whether it was present and whether it
// arrived as a number or a string.
type Value struct {
	kind valueKind
	text string
}

// IntValue returns a present numeric Value.
func IntValue(n int) Value {
	return Value{kind: kindNumber, text: strconv.Itoa(n)}
}

// StringValue returns a present string Value.
func StringValue(s string) Value {
	return Value{kind: kindString, text: s}
}

// UnmarshalJSON never fails: unexpected shapes are kept as opaque text so a
// single odd field cannot discard the whole response.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*v = Value{}
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*v = Value{kind: kindOther, text: string(trimmed)}
			return nil
		}
		*v = Value{kind: kindString, text: s}
	case trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9'):
		*v = Value{kind: kindNumber, text: string(trimmed)}
	default:
		*v = Value{kind: kindOther, text: string(trimmed)}
	}
	return nil
}

// MarshalJSON writes the value back in its original shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindAbsent:
		return []byte("null"), nil
	case kindString:
		return json.Marshal(v.text)
	default:
		return []byte(v.text), nil
	}
}

// Present reports whether the field existed with a non-null value.
func (v Value) Present() bool {
	return v.kind != kindAbsent
}

// String returns the literal text, or "" when absent.
func (v Value) String() string {
	return v.text
}

// Int interprets the value as a whole number. Numbers are truncated toward
// zero; strings are trimmed and parsed in base 10. Anything else reports false.
func (v Value) Int() (int, bool) {
	switch v.kind {
	case kindNumber:
		if n, err := strconv.Atoi(v.text); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		f = math.Trunc(f)
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int(f), true
	case kindString:
		n, err := strconv.Atoi(strings.TrimSpace(v.text))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
