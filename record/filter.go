package record

import "strings"

// Operator defines the comparison operators usable in filters.
type Operator string

const (
	// OpEqual matches values that equal the filter value.
	OpEqual Operator = "eq"
	// OpNotEqual matches values that do not equal the filter value.
	OpNotEqual Operator = "ne"
	// OpGreaterThan matches values greater than the filter value.
	OpGreaterThan Operator = "gt"
	// OpGreaterEqual matches values greater than or equal to the filter value.
	OpGreaterEqual Operator = "gte"
	// OpLessThan matches values less than the filter value.
	OpLessThan Operator = "lt"
	// OpLessEqual matches values less than or equal to the filter value.
	OpLessEqual Operator = "lte"
	// OpIn matches values contained in the filter's array value.
	OpIn Operator = "in"
	// OpContains matches string values containing the filter value as a
	// substring, and array values containing the filter value as an element.
	OpContains Operator = "contains"
)

// Filter is a single field predicate.
type Filter struct {
	Field    string
	Operator Operator
	Value    Value
}

// Eq creates an equality filter.
func Eq(field string, value Value) Filter {
	return Filter{Field: field, Operator: OpEqual, Value: value}
}

// Ne creates an inequality filter.
func Ne(field string, value Value) Filter {
	return Filter{Field: field, Operator: OpNotEqual, Value: value}
}

// Gt creates a greater-than filter.
func Gt(field string, value Value) Filter {
	return Filter{Field: field, Operator: OpGreaterThan, Value: value}
}

// Gte creates a greater-than-or-equal filter.
func Gte(field string, value Value) Filter {
	return Filter{Field: field, Operator: OpGreaterEqual, Value: value}
}

// Lt creates a less-than filter.
func Lt(field string, value Value) Filter {
	return Filter{Field: field, Operator: OpLessThan, Value: value}
}

// Lte creates a less-than-or-equal filter.
func Lte(field string, value Value) Filter {
	return Filter{Field: field, Operator: OpLessEqual, Value: value}
}

// In creates a membership filter over the given values.
func In(field string, values ...Value) Filter {
	return Filter{Field: field, Operator: OpIn, Value: Array(values)}
}

// Contains creates a containment filter.
func Contains(field string, value Value) Filter {
	return Filter{Field: field, Operator: OpContains, Value: value}
}

// Matches checks whether a record satisfies the filter. A record that does
// not carry the filter's field never matches, regardless of the operator.
func (f *Filter) Matches(r Record) bool {
	value, ok := r.Get(f.Field)
	if !ok {
		return false
	}

	switch f.Operator {
	case OpEqual:
		return value.Equal(f.Value)
	case OpNotEqual:
		return !value.Equal(f.Value)
	case OpGreaterThan:
		return ordered(value, f.Value) && value.Compare(f.Value) > 0
	case OpGreaterEqual:
		return ordered(value, f.Value) && value.Compare(f.Value) >= 0
	case OpLessThan:
		return ordered(value, f.Value) && value.Compare(f.Value) < 0
	case OpLessEqual:
		return ordered(value, f.Value) && value.Compare(f.Value) <= 0
	case OpIn:
		return compareIn(value, f.Value)
	case OpContains:
		return compareContains(value, f.Value)
	default:
		return false
	}
}

// FilterSet is a conjunction of filters: a record matches the set only when
// it matches every filter.
type FilterSet struct {
	Filters []Filter
}

// NewFilterSet creates a filter set from the given filters.
func NewFilterSet(filters ...Filter) *FilterSet {
	return &FilterSet{Filters: filters}
}

// Add appends a filter and returns the set for chaining.
func (fs *FilterSet) Add(f Filter) *FilterSet {
	fs.Filters = append(fs.Filters, f)
	return fs
}

// Matches checks whether a record satisfies every filter in the set. The
// empty set matches everything.
func (fs *FilterSet) Matches(r Record) bool {
	for i := range fs.Filters {
		if !fs.Filters[i].Matches(r) {
			return false
		}
	}
	return true
}

// ordered reports whether a and b are mutually orderable for the relational
// operators: both numbers or both strings. Other kind pairings rank-compare
// for index ordering but are not considered ordered for filtering.
func ordered(a, b Value) bool {
	ra := a.rank()
	if ra != b.rank() {
		return false
	}
	return ra == rankNumber || ra == rankString
}

func compareIn(value, filterValue Value) bool {
	if filterValue.Kind != KindArray {
		return false
	}
	for _, candidate := range filterValue.A {
		if value.Equal(candidate) {
			return true
		}
	}
	return false
}

func compareContains(value, filterValue Value) bool {
	switch value.Kind {
	case KindString:
		if filterValue.Kind != KindString {
			return false
		}
		return strings.Contains(value.StringValue(), filterValue.StringValue())
	case KindArray:
		for _, element := range value.A {
			if element.Equal(filterValue) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
