package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nan() float64 { return math.NaN() }

func TestValueCompare(t *testing.T) {
	t.Run("kind order", func(t *testing.T) {
		// undefined < null < bool < number < string < array < document
		ladder := []Value{
			Undefined(),
			Null(),
			Bool(false),
			Int(math.MaxInt64),
			String(""),
			Array([]Value{}),
			Object(Document{}),
		}

		for i := 0; i < len(ladder)-1; i++ {
			assert.Equal(t, -1, ladder[i].Compare(ladder[i+1]), "%s < %s", ladder[i].Kind, ladder[i+1].Kind)
			assert.Equal(t, 1, ladder[i+1].Compare(ladder[i]), "%s > %s", ladder[i+1].Kind, ladder[i].Kind)
		}
	})

	t.Run("numbers", func(t *testing.T) {
		assert.Equal(t, 0, Int(3).Compare(Int(3)))
		assert.Equal(t, -1, Int(2).Compare(Int(3)))
		assert.Equal(t, 1, Int(4).Compare(Int(3)))

		// Int and Float compare numerically across kinds.
		assert.Equal(t, 0, Int(3).Compare(Float(3)))
		assert.Equal(t, -1, Float(2.5).Compare(Int(3)))
		assert.Equal(t, 1, Float(3.5).Compare(Int(3)))

		// Large int64 values must not lose precision against each other.
		assert.Equal(t, -1, Int(math.MaxInt64-1).Compare(Int(math.MaxInt64)))
	})

	t.Run("NaN sorts after every number and equals itself", func(t *testing.T) {
		assert.Equal(t, 1, Float(nan()).Compare(Float(math.Inf(1))))
		assert.Equal(t, -1, Int(0).Compare(Float(nan())))
		assert.Equal(t, 0, Float(nan()).Compare(Float(nan())))
	})

	t.Run("bool", func(t *testing.T) {
		assert.Equal(t, -1, Bool(false).Compare(Bool(true)))
		assert.Equal(t, 0, Bool(true).Compare(Bool(true)))
	})

	t.Run("strings", func(t *testing.T) {
		assert.Equal(t, -1, String("a").Compare(String("b")))
		assert.Equal(t, 0, String("a").Compare(String("a")))
		assert.Equal(t, 1, String("b").Compare(String("a")))
	})

	t.Run("arrays element-wise then by length", func(t *testing.T) {
		a := Array([]Value{Int(1), Int(2)})
		b := Array([]Value{Int(1), Int(3)})
		c := Array([]Value{Int(1)})

		assert.Equal(t, -1, a.Compare(b))
		assert.Equal(t, 1, a.Compare(c))
		assert.Equal(t, 0, a.Compare(Array([]Value{Int(1), Int(2)})))
	})

	t.Run("documents by sorted field then value", func(t *testing.T) {
		a := Object(Document{"a": Int(1)})
		b := Object(Document{"a": Int(2)})
		c := Object(Document{"b": Int(1)})

		assert.Equal(t, -1, a.Compare(b))
		assert.Equal(t, -1, a.Compare(c))
		assert.Equal(t, 0, a.Compare(Object(Document{"a": Int(1)})))
	})

	t.Run("deterministic regardless of operand order", func(t *testing.T) {
		values := []Value{
			Undefined(), Null(), Bool(true), Int(-1), Float(0.5),
			String("x"), Array([]Value{Int(1)}), Object(Document{"k": Null()}),
		}
		for _, a := range values {
			for _, b := range values {
				assert.Equal(t, a.Compare(b), -b.Compare(a))
			}
		}
	})
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Int(3).Equal(Float(3)))
	assert.True(t, Null().Equal(Null()))
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(Int(1)))
	assert.True(t, Array([]Value{Int(1)}).Equal(Array([]Value{Float(1)})))
}
