// Package value implements the runtime value variant shared by every
// symbol in a genome: a tagged union over void, bool, int, double and
// string. void denotes a runtime failure (division by zero, domain
// error, non-finite result) and propagates through evaluation.
package value

import (
	"fmt"
	"math"
)

// Kind names the active variant of a Value.
type Kind uint8

const (
	Void Kind = iota
	Bool
	Int
	Double
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return "void"
	}
}

// Value is an immutable tagged variant. The zero Value is Void.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    float64
	s    string
}

// VoidValue is the canonical void value.
var VoidValue = Value{kind: Void}

func OfBool(b bool) Value     { return Value{kind: Bool, b: b} }
func OfInt(i int64) Value     { return Value{kind: Int, i: i} }
func OfString(s string) Value { return Value{kind: String, s: s} }

// OfDouble wraps f, collapsing any non-finite result to Void: the
// interpreter must never observe inf/NaN, per the evaluator's
// never-throw contract.
func OfDouble(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return VoidValue
	}
	return Value{kind: Double, d: f}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsVoid() bool { return v.kind == Void }

func (v Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsInt() (int64, bool) {
	if v.kind != Int {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsDouble() (float64, bool) {
	if v.kind != Double {
		return 0, false
	}
	return v.d, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

func (v Value) String() string {
	switch v.kind {
	case Bool:
		return fmt.Sprintf("%t", v.b)
	case Int:
		return fmt.Sprintf("%d", v.i)
	case Double:
		return fmt.Sprintf("%g", v.d)
	case String:
		return v.s
	default:
		return "void"
	}
}

// Equal reports whether two values carry the same kind and payload.
// Two void values are always equal to each other.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Bool:
		return a.b == b.b
	case Int:
		return a.i == b.i
	case Double:
		return a.d == b.d
	case String:
		return a.s == b.s
	default:
		return true
	}
}

// AnyVoid reports whether any argument is Void — the propagation rule
// every function symbol must apply before touching its arguments.
func AnyVoid(args ...Value) bool {
	for _, a := range args {
		if a.IsVoid() {
			return true
		}
	}
	return false
}
