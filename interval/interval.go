package interval

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for interval construction and partial operations.
var (
	// ErrInvalidBounds indicates lo > hi or a NaN bound.
	ErrInvalidBounds = errors.New("interval: invalid bounds")

	// ErrNegativeSqrt indicates a square root of an interval with hi < 0.
	ErrNegativeSqrt = errors.New("interval: square root of negative interval")
)

// Interval is a closed interval [Lo, Hi] on the extended real line.
// The zero value is the degenerate point interval [0, 0].
type Interval struct {
	Lo float64
	Hi float64
}

// New returns [lo, hi]. It fails with ErrInvalidBounds when lo > hi or
// either bound is NaN.
func New(lo, hi float64) (Interval, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return Interval{}, ErrInvalidBounds
	}

	return Interval{Lo: lo, Hi: hi}, nil
}

// Point returns the degenerate interval [v, v].
func Point(v float64) Interval {
	return Interval{Lo: v, Hi: v}
}

// Entire returns (-Inf, +Inf), the interval containing every real.
func Entire() Interval {
	return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)}
}

// nextDown returns the largest float64 strictly below v.
// -Inf is a fixed point.
func nextDown(v float64) float64 {
	return math.Nextafter(v, math.Inf(-1))
}

// nextUp returns the smallest float64 strictly above v.
// +Inf is a fixed point.
func nextUp(v float64) float64 {
	return math.Nextafter(v, math.Inf(1))
}

// outward widens [lo, hi] by one ulp in each direction.
func outward(lo, hi float64) Interval {
	return Interval{Lo: nextDown(lo), Hi: nextUp(hi)}
}

// Add returns iv + o, outward rounded.
func (iv Interval) Add(o Interval) Interval {
	return outward(iv.Lo+o.Lo, iv.Hi+o.Hi)
}

// AddScalar returns iv + c, outward rounded.
func (iv Interval) AddScalar(c float64) Interval {
	return outward(iv.Lo+c, iv.Hi+c)
}

// Sub returns iv - o, outward rounded.
func (iv Interval) Sub(o Interval) Interval {
	return outward(iv.Lo-o.Hi, iv.Hi-o.Lo)
}

// Neg returns -iv. Negation is exact; no widening is applied.
func (iv Interval) Neg() Interval {
	return Interval{Lo: -iv.Hi, Hi: -iv.Lo}
}

// Mul returns iv * o, outward rounded. The bounds are the min and max
// over the four endpoint products; a 0·±Inf endpoint product counts as
// 0, not NaN, so unbounded intervals multiply to valid enclosures.
func (iv Interval) Mul(o Interval) Interval {
	a := mulBound(iv.Lo, o.Lo)
	b := mulBound(iv.Lo, o.Hi)
	c := mulBound(iv.Hi, o.Lo)
	d := mulBound(iv.Hi, o.Hi)

	return outward(min4(a, b, c, d), max4(a, b, c, d))
}

// mulBound is the endpoint product with the interval convention
// 0·±Inf = 0.
func mulBound(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}

	return a * b
}

// MulScalar returns iv * c, outward rounded.
func (iv Interval) MulScalar(c float64) Interval {
	if c < 0 {
		return outward(iv.Hi*c, iv.Lo*c)
	}

	return outward(iv.Lo*c, iv.Hi*c)
}

// Div returns iv / o, outward rounded. When o spans zero the quotient
// is unbounded and Entire() is returned.
func (iv Interval) Div(o Interval) Interval {
	if o.Lo <= 0 && o.Hi >= 0 {
		return Entire()
	}

	a := iv.Lo / o.Lo
	b := iv.Lo / o.Hi
	c := iv.Hi / o.Lo
	d := iv.Hi / o.Hi

	return outward(min4(a, b, c, d), max4(a, b, c, d))
}

// Square returns iv², outward rounded. The lower bound is clamped at
// zero when the interval spans zero.
func (iv Interval) Square() Interval {
	a := iv.Lo * iv.Lo
	b := iv.Hi * iv.Hi
	lo := math.Min(a, b)
	hi := math.Max(a, b)
	if iv.Lo <= 0 && iv.Hi >= 0 {
		lo = 0
	}

	out := outward(lo, hi)
	if out.Lo < 0 {
		out.Lo = 0
	}

	return out
}

// Pow returns iv^n for a non-negative integer exponent, outward
// rounded. Pow(0) is the point interval [1, 1].
func (iv Interval) Pow(n int) Interval {
	if n <= 0 {
		return Point(1)
	}

	out := iv
	for i := 1; i < n; i++ {
		out = out.Mul(iv)
	}
	if n%2 == 0 && out.Lo < 0 {
		// Even powers are non-negative; clamp accumulated slack.
		out.Lo = 0
	}

	return out
}

// Sqrt returns the square root of iv, outward rounded, clamping the
// lower bound at zero. It fails with ErrNegativeSqrt when hi < 0.
func (iv Interval) Sqrt() (Interval, error) {
	if iv.Hi < 0 {
		return Interval{}, ErrNegativeSqrt
	}
	lo := iv.Lo
	if lo < 0 {
		lo = 0
	}

	out := outward(math.Sqrt(lo), math.Sqrt(iv.Hi))
	if out.Lo < 0 {
		out.Lo = 0
	}

	return out, nil
}

// Contains reports whether v lies inside [Lo, Hi].
func (iv Interval) Contains(v float64) bool {
	return iv.Lo <= v && v <= iv.Hi
}

// Width returns Hi - Lo.
func (iv Interval) Width() float64 {
	return iv.Hi - iv.Lo
}

// Mid returns the midpoint of the interval.
func (iv Interval) Mid() float64 {
	return iv.Lo + (iv.Hi-iv.Lo)/2
}

// Hull returns the smallest interval containing both iv and o.
func (iv Interval) Hull(o Interval) Interval {
	return Interval{Lo: math.Min(iv.Lo, o.Lo), Hi: math.Max(iv.Hi, o.Hi)}
}

// Intersect returns the intersection of iv and o and whether it is
// non-empty.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	lo := math.Max(iv.Lo, o.Lo)
	hi := math.Min(iv.Hi, o.Hi)
	if lo > hi {
		return Interval{}, false
	}

	return Interval{Lo: lo, Hi: hi}, true
}

// String renders the interval as [lo, hi].
func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Lo, iv.Hi)
}

func min4(a, b, c, d float64) float64 {
	return math.Min(math.Min(a, b), math.Min(c, d))
}

func max4(a, b, c, d float64) float64 {
	return math.Max(math.Max(a, b), math.Max(c, d))
}
