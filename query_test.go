package jsdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ready-research/js-data/index"
	"github.com/ready-research/js-data/record"
	"github.com/ready-research/js-data/testutil"
)

// queryFixture builds a collection with an "age" index and five people:
//
//	id 1 Ann  25 Rome
//	id 2 Bob  32 Oslo
//	id 3 Cleo 25 Rome
//	id 4 Dan  40 Lima
//	id 5 Eva  32 Rome
//
// Age order with insertion order inside equal ages: 1, 3, 2, 5, 4.
func queryFixture(t *testing.T) *Collection {
	t.Helper()

	c := newCollection(t)
	require.NoError(t, c.CreateIndex("age"))

	people := []struct {
		id   int64
		name string
		age  int64
		city string
	}{
		{1, "Ann", 25, "Rome"},
		{2, "Bob", 32, "Oslo"},
		{3, "Cleo", 25, "Rome"},
		{4, "Dan", 40, "Lima"},
		{5, "Eva", 32, "Rome"},
	}

	for _, p := range people {
		_, err := c.Add(record.NewPlain(record.Document{
			"id":   record.Int(p.id),
			"name": record.String(p.name),
			"age":  record.Int(p.age),
			"city": record.String(p.city),
		}))
		require.NoError(t, err)
	}
	return c
}

func TestQuerySelections(t *testing.T) {
	c := queryFixture(t)

	t.Run("all follows the index order", func(t *testing.T) {
		got, err := c.Query().Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, idsOf(t, got))

		got, err = c.Query().Index("age").Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 2, 5, 4}, idsOf(t, got))
	})

	t.Run("get", func(t *testing.T) {
		got, err := c.Query().Get(record.Int(3)).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, idsOf(t, got))

		got, err = c.Query().Index("age").Get(record.Int(32)).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 5}, idsOf(t, got))
	})

	t.Run("get all resolves tuples in call order", func(t *testing.T) {
		got, err := c.Query().Index("age").
			GetAll(index.Key{record.Int(40)}, index.Key{record.Int(25)}).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{4, 1, 3}, idsOf(t, got))
	})

	t.Run("overlapping tuples appear once", func(t *testing.T) {
		got, err := c.Query().Index("age").
			GetAll(index.Key{record.Int(25)}, index.Key{record.Int(25)}).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, idsOf(t, got))
	})

	t.Run("between defaults to half open", func(t *testing.T) {
		got, err := c.Query().Index("age").
			Between(index.Key{record.Int(25)}, index.Key{record.Int(32)}).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, idsOf(t, got))
	})

	t.Run("between boundary flags", func(t *testing.T) {
		got, err := c.Query().Index("age").
			Between(index.Key{record.Int(25)}, index.Key{record.Int(32)}).
			RightInclusive(true).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 2, 5}, idsOf(t, got))

		got, err = c.Query().Index("age").
			Between(index.Key{record.Int(25)}, index.Key{record.Int(32)}).
			LeftInclusive(false).
			RightInclusive(true).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 5}, idsOf(t, got))
	})

	t.Run("empty left boundary spans from the low end", func(t *testing.T) {
		got, err := c.Query().Index("age").
			Between(index.Key{}, index.Key{record.Int(100)}).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 2, 5, 4}, idsOf(t, got))
	})

	t.Run("second selection surfaces at run", func(t *testing.T) {
		q := c.Query().
			Get(record.Int(1)).
			Between(index.Key{record.Int(1)}, index.Key{record.Int(3)})

		_, err := q.Run()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "already has a selection")

		// The error sticks across re-runs.
		_, err = q.Run()
		assert.Error(t, err)
	})

	t.Run("unknown index surfaces at run", func(t *testing.T) {
		q := c.Query().Index("ghost").Get(record.Int(1))

		_, err := q.Run()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestQueryFilters(t *testing.T) {
	c := queryFixture(t)

	t.Run("filters are conjunctive", func(t *testing.T) {
		got, err := c.Query().Index("age").
			Filter(func(rec record.Record) bool {
				v, _ := rec.Get("city")
				return v.StringValue() == "Rome"
			}).
			Where(record.NewFilterSet(record.Gte("age", record.Int(30)))).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, idsOf(t, got))
	})

	t.Run("filtering preserves selection order", func(t *testing.T) {
		got, err := c.Query().Index("age").
			Where(record.NewFilterSet(record.Eq("city", record.String("Rome")))).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 5}, idsOf(t, got))
	})

	t.Run("contains on array fields", func(t *testing.T) {
		fresh := newCollection(t)
		_, err := fresh.AddAll([]record.Record{
			testutil.Tagged(1, "go", "db"),
			testutil.Tagged(2, "js"),
			testutil.Tagged(3, "db"),
		})
		require.NoError(t, err)

		got, err := fresh.Query().
			Where(record.NewFilterSet(record.Contains("tags", record.String("db")))).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, idsOf(t, got))
	})

	t.Run("nil stages are ignored", func(t *testing.T) {
		got, err := c.Query().Filter(nil).Where(nil).Run()
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})
}

func TestQueryOrderBy(t *testing.T) {
	c := queryFixture(t)

	t.Run("stable on equal keys", func(t *testing.T) {
		got, err := c.Query().OrderBy(Asc("age")).Run()
		require.NoError(t, err)
		// Equal ages keep the selection order, here the primary key order.
		assert.Equal(t, []int64{1, 3, 2, 5, 4}, idsOf(t, got))
	})

	t.Run("descending", func(t *testing.T) {
		got, err := c.Query().OrderBy(Desc("age")).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{4, 2, 5, 1, 3}, idsOf(t, got))
	})

	t.Run("multiple keys", func(t *testing.T) {
		got, err := c.Query().OrderBy(Asc("age"), Desc("name")).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1, 5, 2, 4}, idsOf(t, got))
	})

	t.Run("later order replaces the earlier one", func(t *testing.T) {
		got, err := c.Query().OrderBy(Desc("age")).OrderBy(Asc("name")).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, idsOf(t, got))
	})

	t.Run("sort func replaces order by", func(t *testing.T) {
		got, err := c.Query().
			OrderBy(Asc("age")).
			SortFunc(func(a, b record.Record) int {
				av, _ := a.Get("name")
				bv, _ := b.Get("name")
				return strings.Compare(bv.StringValue(), av.StringValue())
			}).
			Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{5, 4, 3, 2, 1}, idsOf(t, got))
	})

	t.Run("absent field sorts before any value", func(t *testing.T) {
		fresh := newCollection(t)
		_, err := fresh.AddAll([]record.Record{
			record.NewPlain(record.Document{"id": record.Int(1), "age": record.Int(30)}),
			record.NewPlain(record.Document{"id": record.Int(2)}),
			record.NewPlain(record.Document{"id": record.Int(3), "age": record.Int(20)}),
		})
		require.NoError(t, err)

		got, err := fresh.Query().OrderBy(Asc("age")).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3, 1}, idsOf(t, got))

		got, err = fresh.Query().OrderBy(Desc("age")).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 2}, idsOf(t, got))
	})
}

func TestQuerySkipLimit(t *testing.T) {
	c := queryFixture(t)

	t.Run("skip then limit", func(t *testing.T) {
		got, err := c.Query().Index("age").Skip(1).Limit(2).Run()
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2}, idsOf(t, got))
	})

	t.Run("skip past the end", func(t *testing.T) {
		got, err := c.Query().Skip(99).Run()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("limit zero yields nothing", func(t *testing.T) {
		got, err := c.Query().Limit(0).Run()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("out of range values are ignored", func(t *testing.T) {
		got, err := c.Query().Skip(0).Skip(-2).Limit(-1).Run()
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})
}

func TestQueryRerun(t *testing.T) {
	c := queryFixture(t)

	q := c.Query().Index("age").
		Where(record.NewFilterSet(record.Gte("age", record.Int(30))))

	got, err := q.Run()
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 4}, idsOf(t, got))

	// The pipeline holds no results; a re-run sees the collection as it is
	// now.
	_, err = c.Add(record.NewPlain(record.Document{"id": record.Int(6), "age": record.Int(90)}))
	require.NoError(t, err)
	_, err = c.Remove(record.Int(2))
	require.NoError(t, err)

	got, err = q.Run()
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 6}, idsOf(t, got))
}

func TestQueryConveniences(t *testing.T) {
	c := queryFixture(t)

	t.Run("count", func(t *testing.T) {
		n, err := c.Query().Count()
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		_, err = c.Query().Index("ghost").Count()
		assert.Error(t, err)
	})

	t.Run("for each", func(t *testing.T) {
		var seen []record.Record
		err := c.Query().Index("age").Limit(2).ForEach(func(rec record.Record) {
			seen = append(seen, rec)
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, idsOf(t, seen))

		err = c.Query().Index("ghost").ForEach(func(record.Record) {})
		assert.Error(t, err)
	})

	t.Run("map", func(t *testing.T) {
		names, err := c.Query().OrderBy(Asc("name")).Map(func(rec record.Record) any {
			v, _ := rec.Get("name")
			return v.StringValue()
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"Ann", "Bob", "Cleo", "Dan", "Eva"}, names)
	})
}

func TestCollectionReads(t *testing.T) {
	c := queryFixture(t)

	t.Run("get all on the primary index", func(t *testing.T) {
		got, err := c.GetAll([]index.Key{{record.Int(1)}, {record.Int(4)}})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 4}, idsOf(t, got))
	})

	t.Run("get all on a secondary index", func(t *testing.T) {
		got, err := c.GetAll([]index.Key{{record.Int(25)}}, WithIndex("age"))
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, idsOf(t, got))
	})

	t.Run("between with options", func(t *testing.T) {
		got, err := c.Between(
			index.Key{record.Int(25)}, index.Key{record.Int(32)},
			WithIndex("age"), WithRightInclusive(true),
		)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 2, 5}, idsOf(t, got))

		got, err = c.Between(
			index.Key{record.Int(25)}, index.Key{record.Int(32)},
			WithIndex("age"), WithRightInclusive(true), WithSkip(1), WithLimit(2),
		)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2}, idsOf(t, got))
	})

	t.Run("between on the primary index", func(t *testing.T) {
		got, err := c.Between(index.Key{record.Int(2)}, index.Key{record.Int(4)})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3}, idsOf(t, got))
	})
}
