package record

import "sort"

// EventFunc receives an event re-emitted by an observable record.
type EventFunc func(event string, args ...any)

// Record is the unit of storage. A record is a mutable bag of named fields
// shared by reference: indexes and query results hold the same instance the
// caller added, never a copy.
//
// Implementations must be comparable, in practice pointer-shaped, because
// collections and indexes track records by reference identity in maps.
type Record interface {
	// Get returns the value of a field. ok is false when the field is not set.
	Get(field string) (Value, bool)
	// Set stores a field value, replacing any previous value.
	Set(field string, value Value)
	// Unset removes a field.
	Unset(field string)
	// Fields returns the set field names in ascending order.
	Fields() []string
	// Len returns the number of set fields.
	Len() int
}

// Observable is implemented by records that expose their own event stream.
// A collection checks for this capability when a record is added and, if
// present, forwards the record's events to its broadcaster until the record
// is removed.
type Observable interface {
	Record

	// SubscribeAll registers fn for every event the record emits and returns
	// a cancel function that removes the subscription.
	SubscribeAll(fn EventFunc) (cancel func())
}

// Plain is the basic record variant: a field map with no event capability.
type Plain struct {
	fields Document
}

var _ Record = (*Plain)(nil)

// NewPlain creates a record around doc. The document is used directly, not
// copied, so later Set calls are visible through doc and vice versa.
func NewPlain(doc Document) *Plain {
	if doc == nil {
		doc = Document{}
	}
	return &Plain{fields: doc}
}

// Get returns the value of a field.
func (p *Plain) Get(field string) (Value, bool) {
	v, ok := p.fields[field]
	return v, ok
}

// Set stores a field value.
func (p *Plain) Set(field string, value Value) {
	p.fields[field] = value
}

// Unset removes a field.
func (p *Plain) Unset(field string) {
	delete(p.fields, field)
}

// Fields returns the set field names in ascending order.
func (p *Plain) Fields() []string {
	return sortedFields(p.fields)
}

// Len returns the number of set fields.
func (p *Plain) Len() int {
	return len(p.fields)
}

// Observed is a record variant with an event stream. Emitting is explicit:
// call EmitEvent after mutating the record to notify subscribers. Delivery is
// synchronous and runs on the caller's goroutine.
type Observed struct {
	Plain

	subs    map[int]EventFunc
	nextSub int
}

var _ Observable = (*Observed)(nil)

// NewObserved creates an observable record around doc.
func NewObserved(doc Document) *Observed {
	o := &Observed{Plain: *NewPlain(doc)}
	o.subs = make(map[int]EventFunc)
	return o
}

// SubscribeAll registers fn for every event. The returned cancel function
// removes the subscription and is safe to call more than once.
func (o *Observed) SubscribeAll(fn EventFunc) (cancel func()) {
	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn

	return func() {
		delete(o.subs, id)
	}
}

// EmitEvent delivers an event to all subscribers.
func (o *Observed) EmitEvent(event string, args ...any) {
	for _, fn := range o.subs {
		fn(event, args...)
	}
}

// Export returns a deep copy of r's fields as a plain document.
func Export(r Record) Document {
	doc := make(Document, r.Len())
	for _, field := range r.Fields() {
		v, _ := r.Get(field)
		doc[field] = v.clone()
	}
	return doc
}

// Merge copies src's fields onto dst. Fields holding nested documents on
// both sides merge recursively in place; every other field is overwritten
// with src's value by reference.
func Merge(dst, src Record) {
	for _, field := range src.Fields() {
		sv, _ := src.Get(field)

		if dv, ok := dst.Get(field); ok && dv.Kind == KindDocument && sv.Kind == KindDocument {
			mergeDocument(dv.D, sv.D)
			continue
		}
		dst.Set(field, sv)
	}
}

func mergeDocument(dst, src Document) {
	for field, sv := range src {
		if dv, ok := dst[field]; ok && dv.Kind == KindDocument && sv.Kind == KindDocument {
			mergeDocument(dv.D, sv.D)
			continue
		}
		dst[field] = sv
	}
}

// Replace rewrites dst to match src while keeping its identity: fields of
// dst other than idField that src does not carry are removed, then all of
// src's fields are assigned.
func Replace(dst, src Record, idField string) {
	for _, field := range dst.Fields() {
		if field == idField {
			continue
		}
		if _, ok := src.Get(field); !ok {
			dst.Unset(field)
		}
	}

	for _, field := range src.Fields() {
		v, _ := src.Get(field)
		dst.Set(field, v)
	}
}

func sortedFields(d Document) []string {
	fields := make([]string, 0, len(d))
	for f := range d {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
