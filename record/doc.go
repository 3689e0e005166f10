// Package record defines the typed value model and the record variants a
// collection stores: plain records and observable records with an event
// stream. Values carry a total, deterministic ordering across kinds so that
// any field can serve as an index key component.
package record
