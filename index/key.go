package index

import "github.com/ready-research/js-data/record"

// Key is a composite key tuple: one value per indexed field, in field order.
type Key []record.Value

// KeyFunc derives the key tuple for a record, overriding the plain field
// projection an index performs by default.
type KeyFunc func(rec record.Record) Key

// Compare orders key tuples component-wise. Tuples of different lengths
// compare with the missing components treated as undefined, which sorts
// before everything else. A record missing an indexed field therefore lands
// at the low end of that field's key space.
func (k Key) Compare(other Key) int {
	n := max(len(k), len(other))
	for i := 0; i < n; i++ {
		if c := component(k, i).Compare(component(other, i)); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether two key tuples compare as equal.
func (k Key) Equal(other Key) bool {
	return k.Compare(other) == 0
}

// comparePrefix compares key against the first len(prefix) components only.
// Any key that starts with prefix compares equal to it, which makes a short
// boundary tuple span its whole subtree in a range scan.
func comparePrefix(key, prefix Key) int {
	for i := range prefix {
		if c := component(key, i).Compare(prefix[i]); c != 0 {
			return c
		}
	}
	return 0
}

func component(k Key, i int) record.Value {
	if i < len(k) {
		return k[i]
	}
	return record.Value{}
}
