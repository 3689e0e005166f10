// Package jsdata provides an in-memory, ordered, multi-index record store
// for Go.
//
// A Collection holds mutable records shared by reference, keyed by a primary
// index over a configurable id attribute. Secondary indexes over arbitrary
// field lists keep records in composite key order and answer exact lookups
// and range scans. All operations are synchronous and complete before
// returning.
//
// # Quick Start
//
//	coll, _ := jsdata.New()
//
//	ann := record.NewPlain(record.Document{
//	    "id":   record.Int(1),
//	    "name": record.String("Ann"),
//	    "age":  record.Int(30),
//	})
//	coll.Add(ann)
//
//	rec, ok := coll.Get(record.Int(1))
//
// # Secondary Indexes
//
// Indexes are created on demand and backfilled immediately:
//
//	coll.CreateIndex("age")
//	coll.CreateIndex("byLocation", "country", "city")
//
//	teens, _ := coll.Between(
//	    index.Key{record.Int(13)},
//	    index.Key{record.Int(20)},
//	    jsdata.WithIndex("age"),
//	)
//
// Records are plain mutable values, so the collection cannot observe field
// changes. After mutating indexed fields, reposition the record explicitly:
//
//	ann.Set("age", record.Int(31))
//	coll.UpdateIndexes(ann)
//
// # Queries
//
// A Query is a deferred pipeline: one selection, filters, an optional stable
// sort, then skip and limit. Nothing runs until Run:
//
//	adults, _ := coll.Query().
//	    Index("age").
//	    Between(index.Key{record.Int(18)}, index.Key{record.Int(65)}).
//	    Where(record.NewFilterSet(record.Eq("active", record.Bool(true)))).
//	    OrderBy(jsdata.Desc("age")).
//	    Limit(10).
//	    Run()
//
// # Conflicts
//
// Adding a record whose primary key already exists resolves against the
// existing instance: merge (the default) copies fields over recursively,
// replace rewrites the record. The policy is set per collection and can be
// overridden per call:
//
//	coll.Add(rec, jsdata.OnConflict(jsdata.ConflictReplace))
//
// # Events
//
// With a broadcaster configured, the collection emits "add" and "remove"
// events, and forwards the events of records implementing
// record.Observable for as long as they are in the collection:
//
//	coll, _ := jsdata.New(jsdata.WithBroadcaster(
//	    jsdata.BroadcasterFunc(func(event string, args ...any) {
//	        log.Println(event, args)
//	    }),
//	))
//
// # Key Features
//
//   - Ordered composite-key indexes with deterministic cross-kind ordering
//   - Exact lookup, range scan and full scan per index
//   - Merge/replace conflict resolution with per-call override
//   - Deferred, re-runnable query pipeline with stable sorting
//   - Lifecycle hooks and synchronous event emission
//   - JSON export via pluggable codecs
package jsdata
