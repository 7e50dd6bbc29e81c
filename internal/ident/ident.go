// Package ident defines the identifier used to key simulated entities.
package ident

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

type kind uint8

const (
	kindInt kind = iota
	kindString
)

// ID identifies an entity. It is either an integer or a string; two IDs are
// equal only when both the variant and the value match, so Int(1) != String("1").
// The zero value is Int(0). ID is comparable and safe to use as a map key.
type ID struct {
	kind kind
	num  int64
	str  string
}

// ErrInvalidID is returned when a JSON value cannot be decoded into an ID.
var ErrInvalidID = errors.New("ident: id must be an integer or a string")

// Int returns the integer variant of an ID.
func Int(n int64) ID { return ID{kind: kindInt, num: n} }

// String returns the string variant of an ID.
func String(s string) ID { return ID{kind: kindString, str: s} }

// IsInt reports whether id holds the integer variant.
func (id ID) IsInt() bool { return id.kind == kindInt }

// AsInt returns the integer payload and whether id is the integer variant.
func (id ID) AsInt() (int64, bool) {
	return id.num, id.kind == kindInt
}

// AsString returns the string payload and whether id is the string variant.
func (id ID) AsString() (string, bool) {
	return id.str, id.kind == kindString
}

func (id ID) String() string {
	if id.kind == kindString {
		return id.str
	}
	return strconv.FormatInt(id.num, 10)
}

// MarshalJSON encodes integer IDs as JSON numbers and string IDs as JSON strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.kind == kindString {
		return json.Marshal(id.str)
	}
	return []byte(strconv.FormatInt(id.num, 10)), nil
}

// UnmarshalJSON accepts a JSON string or an integral JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidID
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string id: %w", err)
		}
		*id = String(s)
		return nil
	}

	n := json.Number(data)
	if i, err := n.Int64(); err == nil {
		*id = Int(i)
		return nil
	}
	// 1.0 and 1e3 are integral even though ParseInt rejects them
	f, err := n.Float64()
	if err != nil || math.Trunc(f) != f || f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("%w: got %s", ErrInvalidID, data)
	}
	*id = Int(int64(f))
	return nil
}
