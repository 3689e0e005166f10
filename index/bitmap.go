package index

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap is a set of record ordinals backed by a 32-bit roaring bitmap.
// Multi-key lookups use it to de-duplicate records that appear under more
// than one of the requested key tuples.
type Bitmap struct {
	bm *roaring.Bitmap
}

// NewBitmap creates an empty ordinal set.
func NewBitmap() *Bitmap {
	return &Bitmap{bm: roaring.New()}
}

// Add inserts an ordinal into the set.
func (b *Bitmap) Add(ord uint32) {
	b.bm.Add(ord)
}

// Contains checks whether an ordinal is in the set.
func (b *Bitmap) Contains(ord uint32) bool {
	return b.bm.Contains(ord)
}

// IsEmpty checks whether the set is empty.
func (b *Bitmap) IsEmpty() bool {
	return b.bm.IsEmpty()
}

// Cardinality returns the number of ordinals in the set.
func (b *Bitmap) Cardinality() uint64 {
	return b.bm.GetCardinality()
}

// Iterator returns an iterator over the ordinals in ascending order.
func (b *Bitmap) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := b.bm.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
