package function_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/objfn/function"
)

// TestEvaluateWithSparseHessian_MatchesDense compares the coalesced
// sparse Hessian against the dense one entry by entry, on a function
// with off-diagonal structure and overlapping terms.
func TestEvaluateWithSparseHessian_MatchesDense(t *testing.T) {
	f := function.New()
	a := []float64{1}
	b := []float64{2}
	c := []float64{3}
	require.NoError(t, f.AddTerm(crossTerm{}, a, b))
	require.NoError(t, f.AddTerm(crossTerm{}, b, c))
	// Two bindings over a: their (0,0) triplets must coalesce into one
	// summed entry.
	require.NoError(t, f.AddTerm(mustSquaredNorm(1), a))
	require.NoError(t, f.AddTerm(mustSquaredNorm(1), a))

	x := []float64{1.5, -2, 0.5}
	n := f.NumScalars()
	require.Equal(t, 3, n)

	gradDense := make([]float64, n)
	var dense mat.Dense
	vDense, err := f.EvaluateWithHessian(x, gradDense, &dense)
	require.NoError(t, err)

	gradSparse := make([]float64, n)
	vSparse, hessian, err := f.EvaluateWithSparseHessian(x, gradSparse)
	require.NoError(t, err)
	require.NotNil(t, hessian)

	assert.Equal(t, vDense, vSparse)
	assert.Equal(t, gradDense, gradSparse)

	r, cDim := hessian.Dims()
	require.Equal(t, n, r)
	require.Equal(t, n, cDim)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, dense.At(i, j), hessian.At(i, j), "entry (%d,%d)", i, j)
		}
	}

	// Spot checks on the structure itself.
	assert.Equal(t, 4.0, hessian.At(0, 0), "two x² terms over a coalesce to 2+2")
	assert.Equal(t, 1.0, hessian.At(0, 1), "∂²(ab)/∂a∂b")
	assert.Equal(t, 0.0, hessian.At(0, 2), "a and c never share a term")
}

// TestEvaluateWithSparseHessian_CoalescesDuplicates stacks several
// bindings over one block: each contributes a triplet at the same
// coordinate, and the assembled entry must be their sum.
func TestEvaluateWithSparseHessian_CoalescesDuplicates(t *testing.T) {
	f := function.New()
	x := []float64{2}
	for i := 0; i < 3; i++ {
		require.NoError(t, f.AddTerm(mustSquaredNorm(1), x))
	}

	grad := make([]float64, 1)
	var dense mat.Dense
	_, err := f.EvaluateWithHessian([]float64{2}, grad, &dense)
	require.NoError(t, err)
	require.Equal(t, 6.0, dense.At(0, 0), "three x² terms: curvature 2+2+2")

	_, hessian, err := f.EvaluateWithSparseHessian([]float64{2}, grad)
	require.NoError(t, err)
	assert.Equal(t, 6.0, hessian.At(0, 0))
	assert.Equal(t, 1, hessian.NNZ(), "one entry per distinct coordinate")

	pattern := f.SparseHessianStructure()
	assert.Equal(t, 1.0, pattern.At(0, 0))
	assert.Equal(t, 1, pattern.NNZ())
}

// TestEvaluateWithSparseHessian_ConstantVariable drops the pinned
// block's rows and columns.
func TestEvaluateWithSparseHessian_ConstantVariable(t *testing.T) {
	f := function.New()
	a := []float64{2}
	b := []float64{5}
	require.NoError(t, f.AddTerm(crossTerm{}, a, b))
	require.NoError(t, f.AddTerm(mustSquaredNorm(1), a))
	require.NoError(t, f.SetConstant(b, true))

	grad := make([]float64, 1)
	v, hessian, err := f.EvaluateWithSparseHessian([]float64{3}, grad)
	require.NoError(t, err)
	assert.Equal(t, 24.0, v, "3·5 + 3²")
	assert.Equal(t, []float64{11}, grad, "5 + 2·3")

	r, c := hessian.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, 2.0, hessian.At(0, 0), "only the x² curvature survives")
}

// TestEvaluateWithSparseHessian_Guards covers the disabled-Hessian and
// change-of-variables errors.
func TestEvaluateWithSparseHessian_Guards(t *testing.T) {
	f := function.New(function.WithHessianDisabled())
	x := []float64{1}
	require.NoError(t, f.AddTerm(mustSquaredNorm(1), x))

	grad := make([]float64, 1)
	_, _, err := f.EvaluateWithSparseHessian([]float64{1}, grad)
	assert.ErrorIs(t, err, function.ErrHessianDisabled)

	g := function.New()
	y := make([]float64, 1)
	_, err = g.AddVariable(y, function.WithChangeOfVariables(scaleChange{dim: 1, factor: 2}))
	require.NoError(t, err)
	require.NoError(t, g.AddTerm(mustSquaredNorm(1), y))

	_, _, err = g.EvaluateWithSparseHessian([]float64{1}, grad)
	assert.ErrorIs(t, err, function.ErrUnsupportedOperation)
}

// TestSparseHessianStructure probes the sparsity pattern without
// evaluating a single term: a term that always fails must not matter.
func TestSparseHessianStructure(t *testing.T) {
	f := function.New()
	a := []float64{1}
	b := []float64{2}
	c := []float64{3}
	require.NoError(t, f.AddTerm(crossTerm{}, a, b))
	require.NoError(t, f.AddTerm(failingTerm{}, c))

	pattern := f.SparseHessianStructure()
	require.NotNil(t, pattern)

	r, cDim := pattern.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, cDim)

	assert.NotZero(t, pattern.At(0, 1), "a and b share a term")
	assert.NotZero(t, pattern.At(1, 0))
	assert.NotZero(t, pattern.At(2, 2))
	assert.Zero(t, pattern.At(0, 2), "a and c never share a term")
}
