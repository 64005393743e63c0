package interval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/objfn/interval"
)

// TestNew_InvalidBounds verifies that reversed or NaN bounds are rejected.
func TestNew_InvalidBounds(t *testing.T) {
	_, err := interval.New(2, 1)
	assert.ErrorIs(t, err, interval.ErrInvalidBounds, "lo > hi must error")

	_, err = interval.New(math.NaN(), 1)
	assert.ErrorIs(t, err, interval.ErrInvalidBounds, "NaN lower bound must error")

	_, err = interval.New(0, math.NaN())
	assert.ErrorIs(t, err, interval.ErrInvalidBounds, "NaN upper bound must error")
}

// TestPoint_IsDegenerate verifies Point builds a zero-width interval.
func TestPoint_IsDegenerate(t *testing.T) {
	p := interval.Point(3.5)
	assert.Equal(t, 3.5, p.Lo)
	assert.Equal(t, 3.5, p.Hi)
	assert.Zero(t, p.Width())
}

// TestAdd_ContainsExactSum checks containment and outward widening.
func TestAdd_ContainsExactSum(t *testing.T) {
	a, err := interval.New(1, 2)
	require.NoError(t, err)
	b, err := interval.New(10, 20)
	require.NoError(t, err)

	sum := a.Add(b)
	assert.True(t, sum.Contains(11), "lower endpoint sum must be enclosed")
	assert.True(t, sum.Contains(22), "upper endpoint sum must be enclosed")
	assert.LessOrEqual(t, sum.Lo, 11.0)
	assert.GreaterOrEqual(t, sum.Hi, 22.0)
}

// TestSub_Antisymmetric checks a-b = -(b-a) up to widening.
func TestSub_Antisymmetric(t *testing.T) {
	a, _ := interval.New(1, 2)
	b, _ := interval.New(5, 7)

	d := a.Sub(b)
	n := b.Sub(a).Neg()
	assert.InDelta(t, n.Lo, d.Lo, 1e-12)
	assert.InDelta(t, n.Hi, d.Hi, 1e-12)
	assert.True(t, d.Contains(-6), "exact lower endpoint must be enclosed")
	assert.True(t, d.Contains(-3), "exact upper endpoint must be enclosed")
}

// TestMul_SignCombinations exercises all four endpoint-product cases.
func TestMul_SignCombinations(t *testing.T) {
	a, _ := interval.New(-2, 3)
	b, _ := interval.New(-5, 4)

	p := a.Mul(b)
	// Endpoint products: 10, -8, -15, 12 → [-15, 12].
	assert.True(t, p.Contains(-15))
	assert.True(t, p.Contains(12))
	assert.InDelta(t, -15, p.Lo, 1e-12)
	assert.InDelta(t, 12, p.Hi, 1e-12)
}

// TestMul_ZeroTimesInfinity verifies that endpoint products of 0 and
// ±Inf contribute 0 instead of NaN.
func TestMul_ZeroTimesInfinity(t *testing.T) {
	a, _ := interval.New(0, 1)
	b, _ := interval.New(2, math.Inf(1))

	p := a.Mul(b)
	assert.False(t, math.IsNaN(p.Lo), "no NaN endpoint: %v", p)
	assert.True(t, math.IsInf(p.Hi, 1))
	assert.True(t, p.Contains(0))
	assert.True(t, p.Contains(1e300))

	z := interval.Point(0).Mul(interval.Entire())
	assert.False(t, math.IsNaN(z.Lo))
	assert.False(t, math.IsNaN(z.Hi))
	assert.True(t, z.Contains(0), "0 times anything encloses 0")
}

// TestDiv_SpanningZeroIsEntire verifies division by a zero-spanning
// interval yields the whole real line.
func TestDiv_SpanningZeroIsEntire(t *testing.T) {
	a, _ := interval.New(1, 2)
	b, _ := interval.New(-1, 1)

	q := a.Div(b)
	assert.True(t, math.IsInf(q.Lo, -1), "quotient must be unbounded below")
	assert.True(t, math.IsInf(q.Hi, 1), "quotient must be unbounded above")
}

// TestDiv_PositiveDenominator checks an ordinary quotient.
func TestDiv_PositiveDenominator(t *testing.T) {
	a, _ := interval.New(1, 2)
	b, _ := interval.New(4, 8)

	q := a.Div(b)
	assert.InDelta(t, 0.125, q.Lo, 1e-12)
	assert.InDelta(t, 0.5, q.Hi, 1e-12)
}

// TestSquare_SpansZero verifies the lower bound clamps at zero.
func TestSquare_SpansZero(t *testing.T) {
	a, _ := interval.New(-2, 3)

	s := a.Square()
	assert.Zero(t, s.Lo, "square of zero-spanning interval starts at 0")
	assert.True(t, s.Contains(9))
	assert.InDelta(t, 9, s.Hi, 1e-12)
}

// TestPow_MatchesRepeatedMul verifies Pow against explicit products.
func TestPow_MatchesRepeatedMul(t *testing.T) {
	a, _ := interval.New(1, 2)

	cube := a.Pow(3)
	ref := a.Mul(a).Mul(a)
	assert.InDelta(t, ref.Lo, cube.Lo, 1e-12)
	assert.InDelta(t, ref.Hi, cube.Hi, 1e-12)

	assert.Equal(t, interval.Point(1), a.Pow(0), "zeroth power is [1,1]")
}

// TestSqrt_Domain verifies clamping and the negative-domain error.
func TestSqrt_Domain(t *testing.T) {
	a, _ := interval.New(-1, 4)
	r, err := a.Sqrt()
	require.NoError(t, err)
	assert.Zero(t, r.Lo, "negative part clamps to zero")
	assert.True(t, r.Contains(2))

	neg, _ := interval.New(-4, -1)
	_, err = neg.Sqrt()
	assert.ErrorIs(t, err, interval.ErrNegativeSqrt)
}

// TestHullIntersect verifies hull/intersection identities.
func TestHullIntersect(t *testing.T) {
	a, _ := interval.New(0, 2)
	b, _ := interval.New(1, 5)

	h := a.Hull(b)
	assert.Equal(t, 0.0, h.Lo)
	assert.Equal(t, 5.0, h.Hi)

	x, ok := a.Intersect(b)
	require.True(t, ok)
	assert.Equal(t, 1.0, x.Lo)
	assert.Equal(t, 2.0, x.Hi)

	c, _ := interval.New(10, 11)
	_, ok = a.Intersect(c)
	assert.False(t, ok, "disjoint intervals have empty intersection")
}

// TestMidWidth verifies the midpoint and width accessors.
func TestMidWidth(t *testing.T) {
	a, _ := interval.New(2, 6)
	assert.Equal(t, 4.0, a.Mid())
	assert.Equal(t, 4.0, a.Width())
}
