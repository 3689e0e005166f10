package index

import (
	"iter"
	"slices"

	"github.com/ready-research/js-data/record"
)

// Options configures an Index.
type Options struct {
	// KeyFunc overrides the plain field projection used to derive a record's
	// key tuple.
	KeyFunc KeyFunc
}

// WithKeyFunc sets a custom key derivation function.
func WithKeyFunc(fn KeyFunc) func(o *Options) {
	return func(o *Options) {
		o.KeyFunc = fn
	}
}

// bucket holds the records sharing one key tuple, in insertion order.
type bucket struct {
	key  Key
	recs []record.Record
}

// slot tracks a known record: the key it was last indexed under and its
// insertion ordinal.
type slot struct {
	key Key
	ord uint32
}

// Index is an ordered multi-value index: a sorted set of key tuples, each
// holding the records that share the tuple in insertion order, plus a
// reference-identity map from record to its last-indexed key.
//
// An index never watches records. Keys are derived from a record's field
// values at the moment of each call, so a caller that mutates indexed fields
// must remove the record before mutating or reposition it with Update
// afterwards. Removing after the mutation derives a key that no longer
// matches the bucket the record sits in, and the removal misses.
//
// The zero Index is not usable; create one with New. An Index is not safe
// for concurrent use.
type Index struct {
	fields  []string
	keyFn   KeyFunc
	buckets []*bucket
	slots   map[record.Record]slot
	nextOrd uint32
}

// New creates an empty index over the given fields.
func New(fields []string, optFns ...func(o *Options)) *Index {
	opts := Options{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Index{
		fields: slices.Clone(fields),
		keyFn:  opts.KeyFunc,
		slots:  make(map[record.Record]slot),
	}
}

// Fields returns the fields projected into this index's key tuples.
func (x *Index) Fields() []string {
	return slices.Clone(x.fields)
}

// Len returns the number of records currently indexed.
func (x *Index) Len() int {
	return len(x.slots)
}

// Key derives rec's key tuple as this index sees it right now. Fields the
// record does not carry project as undefined components.
func (x *Index) Key(rec record.Record) Key {
	if x.keyFn != nil {
		return x.keyFn(rec)
	}

	key := make(Key, len(x.fields))
	for i, field := range x.fields {
		if v, ok := rec.Get(field); ok {
			key[i] = v
		}
	}
	return key
}

// Insert adds rec under its current key tuple, at the end of the tuple's
// bucket. A record must be inserted at most once; repositioning a record
// whose fields changed is Update's job.
func (x *Index) Insert(rec record.Record) {
	x.insert(rec, x.Key(rec))
}

// Remove deletes rec from the index, deriving the bucket from rec's current
// field values. It reports whether the record was found under that key. The
// identity entry is dropped either way, so a missed removal does not leak it.
func (x *Index) Remove(rec record.Record) bool {
	removed := x.removeAt(x.Key(rec), rec)
	delete(x.slots, rec)
	return removed
}

// Update repositions rec after its fields changed: it removes the record
// from the bucket recorded at the last insert or update and re-adds it at
// the end of the bucket for its current key. A record the index has never
// seen is simply inserted.
func (x *Index) Update(rec record.Record) {
	if s, ok := x.slots[rec]; ok {
		x.removeAt(s.key, rec)
	}
	x.insert(rec, x.Key(rec))
}

// Get returns the records stored under the given key tuples, in tuple order
// and insertion order within each tuple. Every tuple resolves independently;
// a record reachable through several of the tuples appears once. The result
// is a fresh slice.
func (x *Index) Get(keys ...Key) []record.Record {
	if len(keys) == 1 {
		pos, found := x.search(keys[0])
		if !found {
			return nil
		}
		return slices.Clone(x.buckets[pos].recs)
	}

	var out []record.Record
	seen := NewBitmap()

	for _, key := range keys {
		pos, found := x.search(key)
		if !found {
			continue
		}
		for _, rec := range x.buckets[pos].recs {
			ord := x.slots[rec].ord
			if seen.Contains(ord) {
				continue
			}
			seen.Add(ord)
			out = append(out, rec)
		}
	}
	return out
}

// Range returns the records whose key tuples fall between left and right,
// in ascending key order and insertion order within a key. Each boundary is
// included or excluded by its own flag. A boundary tuple shorter than the
// index's field list bounds by prefix: every key starting with the tuple
// counts as exactly at the boundary, so an inclusive short bound spans its
// whole subtree.
func (x *Index) Range(left, right Key, leftInclusive, rightInclusive bool) iter.Seq[record.Record] {
	return func(yield func(record.Record) bool) {
		lo := x.lowerBound(left)
		if !leftInclusive {
			lo = x.upperBound(left)
		}

		hi := x.lowerBound(right)
		if rightInclusive {
			hi = x.upperBound(right)
		}

		for i := lo; i < hi; i++ {
			for _, rec := range x.buckets[i].recs {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// lowerBound returns the position of the first bucket whose key does not
// sort before the boundary prefix.
func (x *Index) lowerBound(boundary Key) int {
	pos, _ := slices.BinarySearchFunc(x.buckets, boundary, func(b *bucket, k Key) int {
		return comparePrefix(b.key, k)
	})
	return pos
}

// upperBound returns the position of the first bucket whose key sorts after
// the boundary prefix.
func (x *Index) upperBound(boundary Key) int {
	pos, _ := slices.BinarySearchFunc(x.buckets, boundary, func(b *bucket, k Key) int {
		if comparePrefix(b.key, k) <= 0 {
			return -1
		}
		return 1
	})
	return pos
}

// All returns every record in ascending key order, insertion order within a
// key.
func (x *Index) All() iter.Seq[record.Record] {
	return func(yield func(record.Record) bool) {
		for _, b := range x.buckets {
			for _, rec := range b.recs {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// Keys returns the distinct key tuples currently in the index, in ascending
// order.
func (x *Index) Keys() []Key {
	keys := make([]Key, len(x.buckets))
	for i, b := range x.buckets {
		keys[i] = b.key
	}
	return keys
}

// search locates the bucket position for key: the index of the bucket with
// that exact key when found is true, otherwise the position such a bucket
// would be inserted at.
func (x *Index) search(key Key) (int, bool) {
	return slices.BinarySearchFunc(x.buckets, key, func(b *bucket, k Key) int {
		return b.key.Compare(k)
	})
}

func (x *Index) insert(rec record.Record, key Key) {
	pos, found := x.search(key)
	if found {
		b := x.buckets[pos]
		b.recs = append(b.recs, rec)
	} else {
		x.buckets = slices.Insert(x.buckets, pos, &bucket{key: key, recs: []record.Record{rec}})
	}

	s, ok := x.slots[rec]
	if !ok {
		s = slot{ord: x.nextOrd}
		x.nextOrd++
	}
	s.key = key
	x.slots[rec] = s
}

// removeAt deletes rec from the bucket at key, dropping the bucket when it
// empties.
func (x *Index) removeAt(key Key, rec record.Record) bool {
	pos, found := x.search(key)
	if !found {
		return false
	}

	b := x.buckets[pos]
	for i, r := range b.recs {
		if r == rec {
			b.recs = slices.Delete(b.recs, i, i+1)
			if len(b.recs) == 0 {
				x.buckets = slices.Delete(x.buckets, pos, pos+1)
			}
			return true
		}
	}
	return false
}
