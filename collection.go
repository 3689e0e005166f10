package jsdata

import (
	"fmt"
	"time"

	"github.com/ready-research/js-data/codec"
	"github.com/ready-research/js-data/index"
	"github.com/ready-research/js-data/record"
)

// DefaultIDAttribute is the field a collection keys records by unless
// configured otherwise.
const DefaultIDAttribute = "id"

// ConflictPolicy decides what Add does with an incoming record whose primary
// key is already taken by a different record instance.
type ConflictPolicy string

const (
	// ConflictMerge recursively copies the incoming record's fields onto the
	// existing record. Existing fields the incoming record does not carry
	// survive.
	ConflictMerge ConflictPolicy = "merge"
	// ConflictReplace rewrites the existing record to match the incoming
	// one: its fields other than the id attribute that the incoming record
	// does not carry are removed first.
	ConflictReplace ConflictPolicy = "replace"
)

func (p ConflictPolicy) valid() bool {
	return p == ConflictMerge || p == ConflictReplace
}

// Collection is an in-memory, ordered, multi-index record store. Records are
// held by reference and keyed by a primary index over the id attribute;
// secondary indexes over arbitrary field lists can be created at any time
// and answer ordered scans and exact lookups.
//
// All operations are synchronous and complete before returning. A
// Collection is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
type Collection struct {
	idAttribute string
	onConflict  ConflictPolicy
	mapper      Mapper
	broadcaster Broadcaster
	hooks       Hooks
	codec       codec.Codec
	metrics     MetricsCollector
	logger      *Logger

	primary  *index.Index
	indexes  map[string]*index.Index
	forwards map[record.Record]func()
}

// New creates an empty collection.
func New(optFns ...Option) (*Collection, error) {
	opts := applyOptions(optFns)

	if opts.idAttribute == "" {
		return nil, fmt.Errorf("%w: id attribute must not be empty", ErrInvalidArgument)
	}
	if !opts.onConflict.valid() {
		return nil, &ErrInvalidConflictPolicy{Policy: opts.onConflict}
	}

	c := &Collection{
		idAttribute: opts.idAttribute,
		onConflict:  opts.onConflict,
		mapper:      opts.mapper,
		broadcaster: opts.broadcaster,
		hooks:       opts.hooks,
		codec:       opts.codec,
		metrics:     opts.metricsCollector,
		logger:      opts.logger,
		indexes:     make(map[string]*index.Index),
		forwards:    make(map[record.Record]func()),
	}

	// The primary index keys every record by its id value alone, whatever
	// the effective id attribute is.
	attr := c.IDAttribute()
	c.primary = index.New([]string{attr}, index.WithKeyFunc(func(rec record.Record) index.Key {
		v, _ := rec.Get(attr)
		return index.Key{v}
	}))

	return c, nil
}

// IDAttribute returns the effective id attribute. A bound mapper's setting
// takes precedence over the collection's own.
func (c *Collection) IDAttribute() string {
	if c.mapper != nil {
		if attr := c.mapper.IDAttribute(); attr != "" {
			return attr
		}
	}
	return c.idAttribute
}

// RecordID returns rec's primary key value. A record without the id
// attribute yields the undefined value.
func (c *Collection) RecordID(rec record.Record) record.Value {
	if rec == nil {
		return record.Value{}
	}
	v, _ := rec.Get(c.IDAttribute())
	return v
}

// Len returns the number of records in the collection.
func (c *Collection) Len() int {
	return c.primary.Len()
}

// writeOptions carries the per-call settings of the mutating operations.
type writeOptions struct {
	onConflict ConflictPolicy
	silent     bool
}

// WriteOption configures a single mutating call.
type WriteOption func(*writeOptions)

// OnConflict overrides the collection's conflict policy for one add call.
func OnConflict(policy ConflictPolicy) WriteOption {
	return func(o *writeOptions) {
		o.onConflict = policy
	}
}

// Silent suppresses the events a mutating call would emit. Hooks still run.
func Silent() WriteOption {
	return func(o *writeOptions) {
		o.silent = true
	}
}

func (c *Collection) applyWriteOptions(optFns []WriteOption) writeOptions {
	o := writeOptions{onConflict: c.onConflict}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Add inserts one record, or resolves it against an existing record with the
// same primary key. It returns the record instance that now represents the
// key inside the collection: the incoming record when it was new, the
// already-stored instance on a re-add or conflict.
//
// Emits "add" with the resulting record unless the call is silent.
func (c *Collection) Add(rec record.Record, optFns ...WriteOption) (record.Record, error) {
	start := time.Now()

	opts := c.applyWriteOptions(optFns)
	out, err := c.addBatch([]record.Record{rec}, opts)

	c.metrics.RecordAdd(1, time.Since(start), err)
	c.logger.LogAdd(1, err)

	if err != nil {
		return nil, err
	}

	if !opts.silent {
		switch len(out) {
		case 0:
		case 1:
			c.broadcaster.Emit(EventAdd, out[0])
		default:
			// A hook rewrote the cardinality; fall back to the plural shape.
			c.broadcaster.Emit(EventAdd, out)
		}
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// AddAll inserts a batch of records with the same semantics as Add, applied
// per record in order. On error, records processed before the failing one
// remain in the collection.
//
// Emits a single "add" with the resulting slice unless the call is silent.
func (c *Collection) AddAll(recs []record.Record, optFns ...WriteOption) ([]record.Record, error) {
	start := time.Now()

	opts := c.applyWriteOptions(optFns)
	out, err := c.addBatch(recs, opts)

	c.metrics.RecordAdd(len(recs), time.Since(start), err)
	c.logger.LogAdd(len(recs), err)

	if err != nil {
		return nil, err
	}

	if !opts.silent {
		c.broadcaster.Emit(EventAdd, out)
	}
	return out, nil
}

func (c *Collection) addBatch(recs []record.Record, opts writeOptions) ([]record.Record, error) {
	if !opts.onConflict.valid() {
		return nil, &ErrInvalidConflictPolicy{Policy: opts.onConflict}
	}

	if c.hooks.BeforeAdd != nil {
		var err error
		if recs, err = c.hooks.BeforeAdd(recs); err != nil {
			return nil, err
		}
	}

	out := make([]record.Record, 0, len(recs))
	for _, rec := range recs {
		added, err := c.addOne(rec, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, added)
	}

	if c.hooks.AfterAdd != nil {
		var err error
		if out, err = c.hooks.AfterAdd(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Collection) addOne(rec record.Record, opts writeOptions) (record.Record, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}

	id, err := c.validID(rec)
	if err != nil {
		return nil, err
	}

	existing := c.getByID(id)
	switch {
	case existing == nil:
		if c.mapper != nil {
			rec = c.mapper.CreateRecord(rec)
			if rec == nil {
				return nil, ErrNilRecord
			}
		}
		c.primary.Insert(rec)
		for _, idx := range c.indexes {
			idx.Insert(rec)
		}
		c.watch(rec)
		return rec, nil

	case existing == rec:
		// Same reference added again: nothing to resolve.
		return existing, nil

	default:
		switch opts.onConflict {
		case ConflictMerge:
			record.Merge(existing, rec)
		case ConflictReplace:
			record.Replace(existing, rec, c.IDAttribute())
		}
		c.primary.Update(existing)
		for _, idx := range c.indexes {
			idx.Update(existing)
		}
		return existing, nil
	}
}

// validID extracts rec's primary key and rejects records whose key is
// missing or not a string or number.
func (c *Collection) validID(rec record.Record) (record.Value, error) {
	id, ok := rec.Get(c.IDAttribute())
	if !ok {
		return record.Value{}, &ErrInvalidID{Value: id}
	}

	switch id.Kind {
	case record.KindInt, record.KindFloat, record.KindString:
		return id, nil
	default:
		return record.Value{}, &ErrInvalidID{Value: id}
	}
}

func (c *Collection) getByID(id record.Value) record.Record {
	recs := c.primary.Get(index.Key{id})
	if len(recs) == 0 {
		return nil
	}
	return recs[0]
}

// watch wires event forwarding for records that expose the capability.
func (c *Collection) watch(rec record.Record) {
	obs, ok := rec.(record.Observable)
	if !ok {
		return
	}

	cancel := obs.SubscribeAll(func(event string, args ...any) {
		c.broadcaster.Emit(event, args...)
	})
	c.forwards[rec] = cancel
}

func (c *Collection) unwatch(rec record.Record) {
	if cancel, ok := c.forwards[rec]; ok {
		cancel()
		delete(c.forwards, rec)
	}
}

// Remove deletes the record with the given primary key from every index and
// returns it. A key that matches nothing removes nothing and returns nil
// without error.
//
// Emits "remove" with the removed record unless the call is silent.
func (c *Collection) Remove(id record.Value, optFns ...WriteOption) (record.Record, error) {
	start := time.Now()

	opts := c.applyWriteOptions(optFns)
	rec, err := c.removeOne(id, opts)

	removed := 0
	if rec != nil {
		removed = 1
	}
	c.metrics.RecordRemove(removed, time.Since(start), err)
	c.logger.LogRemove(id, rec != nil, err)

	return rec, err
}

func (c *Collection) removeOne(id record.Value, opts writeOptions) (record.Record, error) {
	if c.hooks.BeforeRemove != nil {
		if err := c.hooks.BeforeRemove(id); err != nil {
			return nil, err
		}
	}

	rec := c.getByID(id)
	if rec != nil {
		c.primary.Remove(rec)
		for _, idx := range c.indexes {
			idx.Remove(rec)
		}
		c.unwatch(rec)

		if !opts.silent {
			c.broadcaster.Emit(EventRemove, rec)
		}
	}

	if c.hooks.AfterRemove != nil {
		replaced, err := c.hooks.AfterRemove(id, rec)
		if err != nil {
			return nil, err
		}
		if replaced != nil {
			rec = replaced
		}
	}
	return rec, nil
}

// RemoveAll deletes every record the query selects and returns them. A nil
// query removes all records. Each target goes through the same per-record
// path as Remove, so per-record hooks run and a "remove" fires per record.
func (c *Collection) RemoveAll(q *Query, optFns ...WriteOption) ([]record.Record, error) {
	start := time.Now()

	opts := c.applyWriteOptions(optFns)
	out, err := c.removeBatch(q, opts)

	c.metrics.RecordRemove(len(out), time.Since(start), err)
	c.logger.LogRemoveAll(len(out), err)

	return out, err
}

func (c *Collection) removeBatch(q *Query, opts writeOptions) ([]record.Record, error) {
	if q == nil {
		q = c.Query()
	}

	if c.hooks.BeforeRemoveAll != nil {
		if err := c.hooks.BeforeRemoveAll(q); err != nil {
			return nil, err
		}
	}

	targets, err := q.Run()
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(targets))
	for _, rec := range targets {
		// Removal is idempotent per key, so a record selected twice is
		// removed once and reported once.
		removed, err := c.removeOne(c.RecordID(rec), opts)
		if err != nil {
			return nil, err
		}
		if removed != nil {
			out = append(out, removed)
		}
	}

	if c.hooks.AfterRemoveAll != nil {
		if out, err = c.hooks.AfterRemoveAll(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CreateIndex adds a secondary index over the given fields and backfills it
// from the primary index before returning. With no fields, the index name
// doubles as the single indexed field.
func (c *Collection) CreateIndex(name string, fields ...string) error {
	start := time.Now()

	err := c.createIndex(name, fields)

	c.metrics.RecordIndexBuild(c.primary.Len(), time.Since(start), err)
	c.logger.LogCreateIndex(name, fields, c.primary.Len(), err)

	return err
}

func (c *Collection) createIndex(name string, fields []string) error {
	if name == "" {
		return fmt.Errorf("%w: index name must not be empty", ErrInvalidArgument)
	}
	if _, ok := c.indexes[name]; ok {
		return &ErrIndexExists{Name: name}
	}

	if len(fields) == 0 {
		fields = []string{name}
	}

	idx := index.New(fields)
	for rec := range c.primary.All() {
		idx.Insert(rec)
	}
	c.indexes[name] = idx

	return nil
}

// UpdateIndex repositions a record in one index after its fields changed.
// The empty index name targets the primary index. Re-indexing is
// cooperative: the collection never detects field mutations on its own.
func (c *Collection) UpdateIndex(rec record.Record, optFns ...QueryOption) error {
	if rec == nil {
		return ErrNilRecord
	}

	opts := applyQueryOptions(optFns)
	idx, err := c.indexFor(opts.index)
	if err != nil {
		return err
	}

	idx.Update(rec)
	return nil
}

// UpdateIndexes repositions a record in the primary and every secondary
// index after its fields changed.
func (c *Collection) UpdateIndexes(rec record.Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	c.primary.Update(rec)
	for _, idx := range c.indexes {
		idx.Update(rec)
	}

	c.logger.LogUpdateIndexes(c.RecordID(rec))
	return nil
}

func (c *Collection) indexFor(name string) (*index.Index, error) {
	if name == "" {
		return c.primary, nil
	}
	idx, ok := c.indexes[name]
	if !ok {
		return nil, &ErrUnknownIndex{Name: name}
	}
	return idx, nil
}

// Query starts an empty query against the collection.
func (c *Collection) Query() *Query {
	return newQuery(c)
}

// Get returns the record with the given primary key.
func (c *Collection) Get(id record.Value) (record.Record, bool) {
	rec := c.getByID(id)
	return rec, rec != nil
}

// GetAll returns the records stored under the given key tuples, resolved
// against the primary index or the index named with WithIndex.
func (c *Collection) GetAll(keys []index.Key, optFns ...QueryOption) ([]record.Record, error) {
	q := c.Query().GetAll(keys...)
	applyQueryOptions(optFns).configure(q)
	return q.Run()
}

// Between returns the records whose keys fall between the boundary tuples,
// against the primary index or the index named with WithIndex. The left
// boundary is inclusive and the right exclusive unless overridden; a short
// boundary tuple bounds by prefix.
func (c *Collection) Between(left, right index.Key, optFns ...QueryOption) ([]record.Record, error) {
	q := c.Query().Between(left, right)
	applyQueryOptions(optFns).configure(q)
	return q.Run()
}

// Filter returns the records satisfying fn, in primary key order.
func (c *Collection) Filter(fn func(rec record.Record) bool) []record.Record {
	var out []record.Record
	for rec := range c.primary.All() {
		if fn(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Where returns the records matching the filter set, in primary key order.
func (c *Collection) Where(fs *record.FilterSet) []record.Record {
	return c.Filter(fs.Matches)
}

// Limit returns the first n records in primary key order.
func (c *Collection) Limit(n int) []record.Record {
	var out []record.Record
	for rec := range c.primary.All() {
		if len(out) >= n {
			break
		}
		out = append(out, rec)
	}
	return out
}

// Skip returns the records after the first n, in primary key order.
func (c *Collection) Skip(n int) []record.Record {
	var out []record.Record
	i := 0
	for rec := range c.primary.All() {
		if i >= n {
			out = append(out, rec)
		}
		i++
	}
	return out
}

// ForEach visits every record in primary key order.
func (c *Collection) ForEach(fn func(rec record.Record)) {
	for rec := range c.primary.All() {
		fn(rec)
	}
}

// Map applies fn to every record in primary key order and collects the
// results.
func (c *Collection) Map(fn func(rec record.Record) any) []any {
	out := make([]any, 0, c.Len())
	for rec := range c.primary.All() {
		out = append(out, fn(rec))
	}
	return out
}

// MapCall invokes a named accessor on every record in primary key order.
// Supported methods are "Document" (export the record's fields), "ID" (the
// primary key value) and "Get" (the value of the field named by the single
// argument).
func (c *Collection) MapCall(method string, args ...record.Value) ([]any, error) {
	var fn func(rec record.Record) any

	switch method {
	case "Document":
		fn = func(rec record.Record) any { return record.Export(rec) }
	case "ID":
		fn = func(rec record.Record) any { return c.RecordID(rec) }
	case "Get":
		if len(args) != 1 || args[0].Kind != record.KindString {
			return nil, fmt.Errorf("%w: Get takes exactly one field name argument", ErrInvalidArgument)
		}
		field := args[0].StringValue()
		fn = func(rec record.Record) any {
			v, _ := rec.Get(field)
			return v
		}
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", ErrInvalidArgument, method)
	}

	return c.Map(fn), nil
}

// Reduce folds every record in primary key order into an accumulator.
func (c *Collection) Reduce(fn func(acc any, rec record.Record) any, initial any) any {
	acc := initial
	for rec := range c.primary.All() {
		acc = fn(acc, rec)
	}
	return acc
}

// Export returns a deep copy of every record's fields, in primary key order.
func (c *Collection) Export() []record.Document {
	out := make([]record.Document, 0, c.Len())
	for rec := range c.primary.All() {
		out = append(out, record.Export(rec))
	}
	return out
}

// ToJSON encodes the collection's records with the configured codec, in
// primary key order.
func (c *Collection) ToJSON() ([]byte, error) {
	return c.codec.Marshal(c.Export())
}
