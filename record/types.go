package record

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindUndefined is the zero Kind: the value of a field that is not set.
	// An undefined component participates in key ordering as the low boundary.
	KindUndefined Kind = iota
	// KindNull represents an explicit null value.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindArray represents an array value.
	KindArray
	// KindDocument represents a nested document value.
	KindDocument
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDocument:
		return "document"
	default:
		return "invalid"
	}
}

// Value is a small typed value used for record fields, index keys and filters.
//
// The representation is designed to make comparison fast and predictable:
// no reflection and no fmt-based stringification. The zero Value is undefined,
// which is exactly what an absent field projects into an index key.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	s    unique.Handle[string] // private interned string
	B    bool
	A    []Value
	D    Document
}

// Undefined returns the undefined Value. It is identical to the zero Value.
func Undefined() Value { return Value{} }

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value. The string is interned.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Object returns a nested document Value.
func Object(d Document) Value { return Value{Kind: KindDocument, D: d} }

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsDocument returns the nested document if Kind is KindDocument.
func (v Value) AsDocument() (Document, bool) {
	if v.Kind != KindDocument {
		return nil, false
	}
	return v.D, true
}

// StringValue returns the string value if Kind is KindString, otherwise "".
func (v Value) StringValue() string {
	if v.Kind == KindString {
		return v.s.Value()
	}
	return ""
}

// String returns a display form of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.s.Value()
	case KindArray:
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDocument:
		fields := make([]string, 0, len(v.D))
		for f := range v.D {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = f + ": " + v.D[f].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "invalid"
	}
}

// MarshalJSON implements json.Marshaler. Values marshal as natural JSON:
// undefined and null become null, numbers stay numbers, nested documents
// become objects. There is no kinded envelope.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindUndefined, KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.B), nil
	case KindInt:
		return strconv.AppendInt(nil, v.I64, 10), nil
	case KindFloat:
		if math.IsNaN(v.F64) || math.IsInf(v.F64, 0) {
			return nil, &json.UnsupportedValueError{Str: v.String()}
		}
		return strconv.AppendFloat(nil, v.F64, 'g', -1, 64), nil
	case KindString:
		return json.Marshal(v.s.Value())
	case KindArray:
		return json.Marshal(v.A)
	case KindDocument:
		return json.Marshal(v.D)
	default:
		return nil, &json.UnsupportedValueError{Str: v.Kind.String()}
	}
}

// UnmarshalJSON implements json.Unmarshaler. Integral numbers decode as
// KindInt, all other numbers as KindFloat.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	vv, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = vv

	return nil
}

// Document is a typed field map: the plain form of a record's content.
type Document map[string]Value

// Clone creates a deep copy of the document. Arrays and nested documents are
// copied recursively, so the clone is completely independent of the original.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v.clone()
	}
	return clone
}

// clone creates a deep copy of a Value, including nested arrays and documents.
func (v Value) clone() Value {
	switch v.Kind {
	case KindArray:
		if len(v.A) == 0 {
			return v
		}
		arrayCopy := make([]Value, len(v.A))
		for i := range v.A {
			arrayCopy[i] = v.A[i].clone()
		}
		return Value{Kind: KindArray, A: arrayCopy}
	case KindDocument:
		return Value{Kind: KindDocument, D: v.D.Clone()}
	default:
		// Scalar values are copied by value semantics.
		return v
	}
}
