package jsdata_test

import (
	"fmt"
	"log"

	jsdata "github.com/ready-research/js-data"
	"github.com/ready-research/js-data/index"
	"github.com/ready-research/js-data/record"
)

// Example_basic demonstrates adding records and looking them up by primary key.
func Example_basic() {
	c, err := jsdata.New()
	if err != nil {
		log.Fatal(err)
	}

	// Add records keyed by the default "id" attribute
	c.Add(record.NewPlain(record.Document{
		"id":   record.Int(1),
		"name": record.String("Ann"),
	}))
	c.Add(record.NewPlain(record.Document{
		"id":   record.Int(2),
		"name": record.String("Bob"),
	}))

	rec, ok := c.Get(record.Int(1))
	if !ok {
		log.Fatal("record not found")
	}

	name, _ := rec.Get("name")
	fmt.Println(name)
	fmt.Println(c.Len())
	// Output:
	// Ann
	// 2
}

// Example_conflictPolicies demonstrates how merge and replace resolve a
// primary key collision.
func Example_conflictPolicies() {
	c, _ := jsdata.New()

	ann := record.NewPlain(record.Document{
		"id":   record.Int(1),
		"name": record.String("Ann"),
		"age":  record.Int(30),
	})
	c.Add(ann)

	// Merge keeps fields the incoming record does not carry
	c.Add(record.NewPlain(record.Document{
		"id":  record.Int(1),
		"age": record.Int(31),
	}))

	name, _ := ann.Get("name")
	age, _ := ann.Get("age")
	fmt.Printf("after merge: name=%s age=%s\n", name, age)

	// Replace drops them
	c.Add(record.NewPlain(record.Document{
		"id":  record.Int(1),
		"age": record.Int(32),
	}), jsdata.OnConflict(jsdata.ConflictReplace))

	_, hasName := ann.Get("name")
	fmt.Printf("after replace: has name=%t\n", hasName)
	// Output:
	// after merge: name=Ann age=31
	// after replace: has name=false
}

// Example_secondaryIndex demonstrates creating an index and scanning a key
// range through it.
func Example_secondaryIndex() {
	c, _ := jsdata.New()

	// Index over the "age" field; existing records are backfilled
	if err := c.CreateIndex("age"); err != nil {
		log.Fatal(err)
	}

	c.Add(record.NewPlain(record.Document{"id": record.Int(1), "age": record.Int(25)}))
	c.Add(record.NewPlain(record.Document{"id": record.Int(2), "age": record.Int(32)}))
	c.Add(record.NewPlain(record.Document{"id": record.Int(3), "age": record.Int(40)}))

	// Ages in [25, 40): the left boundary is inclusive, the right exclusive
	recs, err := c.Between(
		index.Key{record.Int(25)}, index.Key{record.Int(40)},
		jsdata.WithIndex("age"),
	)
	if err != nil {
		log.Fatal(err)
	}

	for _, rec := range recs {
		fmt.Println(c.RecordID(rec))
	}
	// Output:
	// 1
	// 2
}

// Example_query demonstrates the deferred query pipeline.
func Example_query() {
	c, _ := jsdata.New()

	people := []struct {
		id   int64
		name string
		age  int64
	}{
		{1, "Ann", 25},
		{2, "Bob", 32},
		{3, "Cleo", 25},
		{4, "Dan", 40},
		{5, "Eva", 32},
	}
	for _, p := range people {
		c.Add(record.NewPlain(record.Document{
			"id":   record.Int(p.id),
			"name": record.String(p.name),
			"age":  record.Int(p.age),
		}))
	}

	// Nothing runs until Run
	recs, err := c.Query().
		Where(record.NewFilterSet(record.Gte("age", record.Int(30)))).
		OrderBy(jsdata.Desc("age")).
		Limit(2).
		Run()
	if err != nil {
		log.Fatal(err)
	}

	for _, rec := range recs {
		name, _ := rec.Get("name")
		fmt.Println(name)
	}
	// Output:
	// Dan
	// Bob
}

// Example_events demonstrates observing collection mutations.
func Example_events() {
	c, _ := jsdata.New(jsdata.WithBroadcaster(jsdata.BroadcasterFunc(
		func(event string, args ...any) {
			fmt.Println("event:", event)
		},
	)))

	c.Add(record.NewPlain(record.Document{"id": record.Int(1)}))
	c.Remove(record.Int(1))
	// Output:
	// event: add
	// event: remove
}

// Example_reindex demonstrates cooperative re-indexing after a field mutation.
func Example_reindex() {
	c, _ := jsdata.New()
	c.CreateIndex("score")

	a := record.NewPlain(record.Document{"id": record.Int(1), "score": record.Int(10)})
	b := record.NewPlain(record.Document{"id": record.Int(2), "score": record.Int(20)})
	c.AddAll([]record.Record{a, b})

	// The index does not watch records; tell the collection after mutating
	a.Set("score", record.Int(30))
	c.UpdateIndexes(a)

	recs, _ := c.Query().Index("score").Run()
	for _, rec := range recs {
		fmt.Println(c.RecordID(rec))
	}
	// Output:
	// 2
	// 1
}

// Example_toJSON demonstrates exporting a collection with the configured codec.
func Example_toJSON() {
	c, _ := jsdata.New()

	c.Add(record.NewPlain(record.Document{
		"id":   record.Int(1),
		"name": record.String("Ann"),
	}))

	data, err := c.ToJSON()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(data))
	// Output: [{"id":1,"name":"Ann"}]
}
