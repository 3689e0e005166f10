package jsdata

import (
	"fmt"
	"slices"
	"time"

	"github.com/ready-research/js-data/index"
	"github.com/ready-research/js-data/record"
)

// SortKey orders query results by one field.
type SortKey struct {
	Field string
	Desc  bool
}

// Asc creates an ascending sort key.
func Asc(field string) SortKey {
	return SortKey{Field: field}
}

// Desc creates a descending sort key.
func Desc(field string) SortKey {
	return SortKey{Field: field, Desc: true}
}

type selection uint8

const (
	selectAll selection = iota
	selectKeys
	selectRange
)

// Query is a deferred pipeline over a collection: at most one selection,
// any number of filters, an optional sort, then skip and limit. Nothing
// evaluates until Run, which reads the index content current at that
// moment. A query can be re-run; results are never cached.
//
// Chaining never fails in place. Invalid combinations, like a second
// selection or an unknown index name, surface as errors from Run.
type Query struct {
	coll      *Collection
	indexName string

	sel            selection
	keys           []index.Key
	left, right    index.Key
	leftInclusive  bool
	rightInclusive bool

	filters  []func(rec record.Record) bool
	sortKeys []SortKey
	sortFn   func(a, b record.Record) int

	skip     int
	hasSkip  bool
	limit    int
	hasLimit bool

	err error
}

func newQuery(c *Collection) *Query {
	return &Query{
		coll:          c,
		leftInclusive: true,
	}
}

func (q *Query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

func (q *Query) selectOnce(sel selection) bool {
	if q.sel != selectAll {
		q.fail(fmt.Errorf("%w: query already has a selection", ErrInvalidArgument))
		return false
	}
	q.sel = sel
	return true
}

// Index resolves the query against the named secondary index instead of the
// primary index.
func (q *Query) Index(name string) *Query {
	q.indexName = name
	return q
}

// Get selects the records stored under a single-value key.
func (q *Query) Get(id record.Value) *Query {
	return q.GetAll(index.Key{id})
}

// GetAll selects the union of the records stored under the given key
// tuples. Each tuple resolves independently; overlaps appear once.
func (q *Query) GetAll(keys ...index.Key) *Query {
	if q.selectOnce(selectKeys) {
		q.keys = keys
	}
	return q
}

// Between selects the records whose keys fall between the boundary tuples.
// The left boundary is inclusive and the right exclusive unless changed
// with LeftInclusive and RightInclusive. A boundary tuple shorter than the
// index's field list bounds by prefix.
func (q *Query) Between(left, right index.Key) *Query {
	if q.selectOnce(selectRange) {
		q.left, q.right = left, right
	}
	return q
}

// LeftInclusive sets whether a Between selection includes records exactly at
// the left boundary.
func (q *Query) LeftInclusive(v bool) *Query {
	q.leftInclusive = v
	return q
}

// RightInclusive sets whether a Between selection includes records exactly
// at the right boundary.
func (q *Query) RightInclusive(v bool) *Query {
	q.rightInclusive = v
	return q
}

// Where appends a filter set as a predicate stage.
func (q *Query) Where(fs *record.FilterSet) *Query {
	if fs != nil {
		q.filters = append(q.filters, fs.Matches)
	}
	return q
}

// Filter appends an arbitrary predicate stage.
func (q *Query) Filter(fn func(rec record.Record) bool) *Query {
	if fn != nil {
		q.filters = append(q.filters, fn)
	}
	return q
}

// OrderBy sorts the results by the given keys. The sort is stable, so equal
// records keep their selection order. A later OrderBy or SortFunc replaces
// the ordering entirely.
func (q *Query) OrderBy(keys ...SortKey) *Query {
	q.sortKeys = keys
	q.sortFn = nil
	return q
}

// SortFunc sorts the results with a custom comparison. The sort is stable.
func (q *Query) SortFunc(cmp func(a, b record.Record) int) *Query {
	q.sortFn = cmp
	q.sortKeys = nil
	return q
}

// Skip drops the first n results. Non-positive values are ignored.
func (q *Query) Skip(n int) *Query {
	if n > 0 {
		q.skip = n
		q.hasSkip = true
	}
	return q
}

// Limit caps the results at n; zero means no results. Negative values are
// ignored.
func (q *Query) Limit(n int) *Query {
	if n >= 0 {
		q.limit = n
		q.hasLimit = true
	}
	return q
}

// Run evaluates the pipeline against the collection's current content:
// selection, then filters, then sort, then skip, then limit.
func (q *Query) Run() ([]record.Record, error) {
	start := time.Now()

	out, err := q.run()

	q.coll.metrics.RecordQuery(time.Since(start), err)
	q.coll.logger.LogQuery(q.indexName, len(out), err)

	return out, err
}

func (q *Query) run() ([]record.Record, error) {
	if q.err != nil {
		return nil, q.err
	}

	idx, err := q.coll.indexFor(q.indexName)
	if err != nil {
		return nil, err
	}

	var out []record.Record
	switch q.sel {
	case selectKeys:
		out = idx.Get(q.keys...)
	case selectRange:
		for rec := range idx.Range(q.left, q.right, q.leftInclusive, q.rightInclusive) {
			out = append(out, rec)
		}
	default:
		for rec := range idx.All() {
			out = append(out, rec)
		}
	}

	// Every selection path built a fresh slice, so the stages below may
	// shrink and reorder it in place.
	for _, pred := range q.filters {
		n := 0
		for _, rec := range out {
			if pred(rec) {
				out[n] = rec
				n++
			}
		}
		out = out[:n]
	}

	switch {
	case q.sortFn != nil:
		slices.SortStableFunc(out, q.sortFn)
	case len(q.sortKeys) > 0:
		slices.SortStableFunc(out, q.compareRecords)
	}

	if q.hasSkip {
		if q.skip >= len(out) {
			out = out[:0]
		} else {
			out = out[q.skip:]
		}
	}
	if q.hasLimit && q.limit < len(out) {
		out = out[:q.limit]
	}

	return out, nil
}

func (q *Query) compareRecords(a, b record.Record) int {
	for _, key := range q.sortKeys {
		av, _ := a.Get(key.Field)
		bv, _ := b.Get(key.Field)

		c := av.Compare(bv)
		if key.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Count runs the query and returns the number of results.
func (q *Query) Count() (int, error) {
	out, err := q.Run()
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// ForEach runs the query and visits every result.
func (q *Query) ForEach(fn func(rec record.Record)) error {
	out, err := q.Run()
	if err != nil {
		return err
	}
	for _, rec := range out {
		fn(rec)
	}
	return nil
}

// Map runs the query and applies fn to every result.
func (q *Query) Map(fn func(rec record.Record) any) ([]any, error) {
	out, err := q.Run()
	if err != nil {
		return nil, err
	}

	mapped := make([]any, len(out))
	for i, rec := range out {
		mapped[i] = fn(rec)
	}
	return mapped, nil
}

// queryOptions carries the per-call settings of the convenience reads.
type queryOptions struct {
	index          string
	leftInclusive  *bool
	rightInclusive *bool
	skip           *int
	limit          *int
}

// QueryOption configures a convenience read on the collection.
type QueryOption func(*queryOptions)

// WithIndex resolves the read against the named secondary index.
func WithIndex(name string) QueryOption {
	return func(o *queryOptions) {
		o.index = name
	}
}

// WithLeftInclusive overrides whether a range read includes its left
// boundary.
func WithLeftInclusive(v bool) QueryOption {
	return func(o *queryOptions) {
		o.leftInclusive = &v
	}
}

// WithRightInclusive overrides whether a range read includes its right
// boundary.
func WithRightInclusive(v bool) QueryOption {
	return func(o *queryOptions) {
		o.rightInclusive = &v
	}
}

// WithSkip drops the first n results of a convenience read.
func WithSkip(n int) QueryOption {
	return func(o *queryOptions) {
		o.skip = &n
	}
}

// WithLimit caps the results of a convenience read.
func WithLimit(n int) QueryOption {
	return func(o *queryOptions) {
		o.limit = &n
	}
}

func applyQueryOptions(optFns []QueryOption) queryOptions {
	o := queryOptions{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o queryOptions) configure(q *Query) {
	if o.index != "" {
		q.Index(o.index)
	}
	if o.leftInclusive != nil {
		q.LeftInclusive(*o.leftInclusive)
	}
	if o.rightInclusive != nil {
		q.RightInclusive(*o.rightInclusive)
	}
	if o.skip != nil {
		q.Skip(*o.skip)
	}
	if o.limit != nil {
		q.Limit(*o.limit)
	}
}
