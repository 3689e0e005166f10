package testutil

import (
	"fmt"

	"github.com/ready-research/js-data/record"
)

var (
	firstNames = []string{"Ann", "Bob", "Cleo", "Dan", "Eva", "Finn", "Gus", "Hana", "Ivo", "Judy"}
	cities     = []string{"Rome", "Oslo", "Lima", "Kyoto", "Perth"}
)

// Person returns one deterministic person record.
func Person(id int64) record.Record {
	return record.NewPlain(PersonDocument(id))
}

// PersonDocument returns the field map of the deterministic person with the
// given id. The same id always yields the same fields, so tests can assert
// exact index positions.
func PersonDocument(id int64) record.Document {
	i := int(id)
	return record.Document{
		"id":     record.Int(id),
		"name":   record.String(firstNames[(i-1)%len(firstNames)]),
		"age":    record.Int(int64(18 + (i*7)%50)),
		"city":   record.String(cities[(i-1)%len(cities)]),
		"active": record.Bool(i%2 == 1),
	}
}

// People returns n deterministic person records with ids 1..n.
func People(n int) []record.Record {
	recs := make([]record.Record, n)
	for i := range recs {
		recs[i] = Person(int64(i + 1))
	}
	return recs
}

// Documents generates n pseudo-random documents keyed by UUID strings. The
// field values are driven by the RNG, so runs with the same seed produce the
// same shapes, while the ids stay globally unique.
func (r *RNG) Documents(n int) []record.Document {
	docs := make([]record.Document, n)
	for i := range docs {
		docs[i] = record.Document{
			"id":     record.String(RandomID()),
			"name":   record.String(Pick(r, firstNames)),
			"city":   record.String(Pick(r, cities)),
			"score":  record.Float(r.Float64() * 100),
			"active": record.Bool(r.Bool()),
		}
	}
	return docs
}

// Tagged returns a record with an id and an array-valued tags field.
func Tagged(id int64, tags ...string) record.Record {
	values := make([]record.Value, len(tags))
	for i, tag := range tags {
		values[i] = record.String(tag)
	}
	return record.NewPlain(record.Document{
		"id":   record.Int(id),
		"tags": record.Array(values),
	})
}

// Sequence returns n records whose single payload field counts up from
// offset, for tests that assert scan order.
func Sequence(offset, n int) []record.Record {
	recs := make([]record.Record, n)
	for i := range recs {
		recs[i] = record.NewPlain(record.Document{
			"id":  record.String(fmt.Sprintf("seq-%03d", offset+i)),
			"pos": record.Int(int64(offset + i)),
		})
	}
	return recs
}
