package jsdata

import "github.com/ready-research/js-data/record"

// Mapper materializes records for a collection. When bound, its id attribute
// wins over the collection's own setting, and every genuinely new record
// passes through CreateRecord before it is indexed. Records that already
// exist in the collection never go through the mapper again; conflicts are
// resolved against the existing instance.
type Mapper interface {
	// IDAttribute returns the field holding the primary key. An empty string
	// defers to the collection's configuration.
	IDAttribute() string

	// CreateRecord turns the incoming record into the instance the
	// collection should store, for example an observable variant. Returning
	// the input unchanged is valid. The primary key must survive the
	// conversion.
	CreateRecord(rec record.Record) record.Record
}
