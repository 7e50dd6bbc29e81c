package ident

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestIDEquality(t *testing.T) {
	tests := []struct {
		name string
		a, b ID
		want bool
	}{
		{"same int", Int(7), Int(7), true},
		{"different int", Int(7), Int(8), false},
		{"same string", String("a"), String("a"), true},
		{"different string", String("a"), String("b"), false},
		{"int vs string with same text", Int(1), String("1"), false},
		{"zero value is Int(0)", ID{}, Int(0), true},
		{"zero int vs empty string", Int(0), String(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a == tt.b; got != tt.want {
				t.Errorf("%v == %v: got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIDAsMapKey(t *testing.T) {
	m := map[ID]int{
		Int(1):      1,
		String("1"): 2,
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d", len(m))
	}
	if m[Int(1)] != 1 || m[String("1")] != 2 {
		t.Errorf("unexpected lookups: %v", m)
	}
}

func TestIDAccessors(t *testing.T) {
	n, ok := Int(42).AsInt()
	if !ok || n != 42 {
		t.Errorf("AsInt = %d, %v", n, ok)
	}
	if _, ok := Int(42).AsString(); ok {
		t.Error("AsString should fail on an int id")
	}
	s, ok := String("node").AsString()
	if !ok || s != "node" {
		t.Errorf("AsString = %q, %v", s, ok)
	}
	if String("node").IsInt() {
		t.Error("string id should not report IsInt")
	}
	if Int(-3).String() != "-3" || String("x").String() != "x" {
		t.Error("String() rendering mismatch")
	}
}

func TestIDJSON(t *testing.T) {
	ids := []ID{Int(3), String("three")}
	data, err := json.Marshal(ids)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[3,"three"]` {
		t.Errorf("marshal = %s", data)
	}

	var decoded []ID
	if err := json.Unmarshal([]byte(`[ 12, "abc" ]`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0] != Int(12) || decoded[1] != String("abc") {
		t.Errorf("unmarshal = %v", decoded)
	}
}

func TestIDJSONIntegralForms(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`7`, Int(7)},
		{`1.0`, Int(1)},
		{`1e3`, Int(1000)},
		{`-2E2`, Int(-200)},
		{`0.0`, Int(0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if id != tt.want {
				t.Errorf("unmarshal %s = %v, want %v", tt.in, id, tt.want)
			}
		})
	}
}

func TestIDJSONRejects(t *testing.T) {
	for _, in := range []string{`1.5`, `1e-1`, `1e30`, `true`, `null`, `{}`} {
		t.Run(in, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(in), &id)
			if err == nil {
				t.Fatalf("expected error decoding %s", in)
			}
			if !errors.Is(err, ErrInvalidID) {
				t.Errorf("expected ErrInvalidID, got %v", err)
			}
		})
	}
}
