package jsdata

import "github.com/ready-research/js-data/record"

// Hooks are injected strategy points around the mutating operations. Every
// hook is optional; a nil hook is skipped. A hook returning an error aborts
// the operation and the error propagates to the caller unchanged.
//
// The Before hooks run before any state changes, the After hooks run after
// all of them. Hooks that return records may rewrite the sequence the
// operation works on or reports.
type Hooks struct {
	// BeforeAdd runs before records are normalized into the collection. The
	// returned slice replaces the incoming one.
	BeforeAdd func(recs []record.Record) ([]record.Record, error)

	// AfterAdd runs after all records were added. The returned slice
	// replaces the operation's result.
	AfterAdd func(recs []record.Record) ([]record.Record, error)

	// BeforeRemove runs before a record is removed by primary key. It also
	// runs once per target during RemoveAll.
	BeforeRemove func(id record.Value) error

	// AfterRemove runs after a removal attempt. removed is nil when the key
	// matched nothing. A non-nil return value replaces the operation's
	// result.
	AfterRemove func(id record.Value, removed record.Record) (record.Record, error)

	// BeforeRemoveAll runs before a query-scoped removal, with the query
	// about to be evaluated.
	BeforeRemoveAll func(q *Query) error

	// AfterRemoveAll runs after a query-scoped removal. The returned slice
	// replaces the operation's result.
	AfterRemoveAll func(recs []record.Record) ([]record.Record, error)
}
