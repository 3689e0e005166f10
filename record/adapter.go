package record

import (
	"encoding/json"
	"fmt"
	"math"
)

// FromAny converts an arbitrary Go value into a Value. Signed and unsigned
// integers become KindInt, floats become KindFloat, json.Number keeps its
// integral or fractional form, and maps become nested documents.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, fmt.Errorf("uint64 value %d overflows int64", x)
		}
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("parse number %q: %w", x.String(), err)
		}
		return Float(f), nil
	case []Value:
		return Array(x), nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Array(elems), nil
	case []string:
		elems := make([]Value, len(x))
		for i, s := range x {
			elems[i] = String(s)
		}
		return Array(elems), nil
	case Document:
		return Object(x), nil
	case map[string]any:
		doc, err := DocumentFromAny(x)
		if err != nil {
			return Value{}, err
		}
		return Object(doc), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// DocumentFromAny converts a plain map into a Document.
func DocumentFromAny(m map[string]any) (Document, error) {
	doc := make(Document, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		doc[k] = vv
	}
	return doc, nil
}
