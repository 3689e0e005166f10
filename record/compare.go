package record

import (
	"cmp"
	"math"
	"strings"
)

// Kinds order into ranks for cross-kind comparison. Int and Float share the
// number rank and compare numerically against each other.
const (
	rankUndefined = iota
	rankNull
	rankBool
	rankNumber
	rankString
	rankArray
	rankDocument
)

func (v Value) rank() int {
	switch v.Kind {
	case KindUndefined:
		return rankUndefined
	case KindNull:
		return rankNull
	case KindBool:
		return rankBool
	case KindInt, KindFloat:
		return rankNumber
	case KindString:
		return rankString
	case KindArray:
		return rankArray
	default:
		return rankDocument
	}
}

// Compare returns -1, 0 or +1 ordering v before, equal to or after other.
//
// The order is total and deterministic across kinds:
//
//	undefined < null < bool < number < string < array < document
//
// Within a rank: false sorts before true; numbers compare numerically with
// int-to-int comparisons staying exact and NaN sorting after every other
// number (NaN equals NaN); strings compare bytewise; arrays compare
// element-wise with the shorter array first on a shared prefix; documents
// compare by sorted field name, then field value.
func (v Value) Compare(other Value) int {
	if c := cmp.Compare(v.rank(), other.rank()); c != 0 {
		return c
	}

	switch v.Kind {
	case KindBool:
		return compareBool(v.B, other.B)
	case KindInt, KindFloat:
		return compareNumber(v, other)
	case KindString:
		return strings.Compare(v.s.Value(), other.s.Value())
	case KindArray:
		return compareArray(v.A, other.A)
	case KindDocument:
		return compareDocument(v.D, other.D)
	default:
		// Undefined and null are singletons within their rank.
		return 0
	}
}

// Equal reports whether v and other compare as equal. Int and Float values
// holding the same numeric value are equal.
func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareNumber(a, b Value) int {
	if a.Kind == KindInt && b.Kind == KindInt {
		return cmp.Compare(a.I64, b.I64)
	}

	af := a.asFloat()
	bf := b.asFloat()

	aNaN := math.IsNaN(af)
	bNaN := math.IsNaN(bf)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	default:
		return cmp.Compare(af, bf)
	}
}

func (v Value) asFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.I64)
	}
	return v.F64
}

func compareArray(a, b []Value) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareDocument(a, b Document) int {
	af := sortedFields(a)
	bf := sortedFields(b)

	n := min(len(af), len(bf))
	for i := 0; i < n; i++ {
		if c := strings.Compare(af[i], bf[i]); c != 0 {
			return c
		}
		if c := a[af[i]].Compare(b[bf[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(af), len(bf))
}
