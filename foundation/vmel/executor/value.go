// File: value.go
// Title: vmel Output Values
// Description: Values emitted by keyword statements and the rendering of
//              an output sequence to text.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package executor

import (
	"encoding/json"
	"fmt"
	"strconv"

	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
)

// ValueKind tells whether a Value is text or an integer
type ValueKind int

const (
	KindText ValueKind = iota
	KindInt
)

// String returns "text" or "int"
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ValueKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "text":
		*k = KindText
	case "int":
		*k = KindInt
	default:
		return fmt.Errorf("unknown value kind %q", text)
	}
	return nil
}

// Value is a single emitted value
type Value struct {
	Kind ValueKind
	Text string
	Int  int64
}

// TextValue returns a text value
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// IntValue returns an integer value
func IntValue(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

// String returns the value as it is printed
func (v Value) String() string {
	if v.Kind == KindInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Text
}

// MarshalJSON encodes the value as {"kind": ..., "value": ...} with a JSON
// number for integers
func (v Value) MarshalJSON() ([]byte, error) {
	var payload interface{} = v.Text
	if v.Kind == KindInt {
		payload = v.Int
	}
	return json.Marshal(struct {
		Kind  ValueKind   `json:"kind"`
		Value interface{} `json:"value"`
	}{v.Kind, payload})
}

// UnmarshalJSON decodes the form written by MarshalJSON
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind  ValueKind       `json:"kind"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*v = Value{Kind: raw.Kind}
	if raw.Kind == KindText {
		return json.Unmarshal(raw.Value, &v.Text)
	}
	// integers may arrive as 3 or 3.0 after passing through a float codec
	var n json.Number
	if err := json.Unmarshal(raw.Value, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		v.Int = i
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	v.Int = int64(f)
	return nil
}

// OutputItem is one value emitted by a keyword statement
type OutputItem struct {
	Keyword string `json:"keyword"`
	Value   Value  `json:"value"`
	Line    int    `json:"line"`
	Newline bool   `json:"newline"`
}

// Render concatenates the output items, ending a line after each item
// that asks for it
func Render(items []OutputItem) string {
	buf := mdwstringx.NewBuffer("")
	for _, item := range items {
		buf.PushString(item.Value.String())
		if item.Newline {
			buf.PushByte('\n')
		}
	}
	return buf.String()
}
