// SPDX-License-Identifier: MIT
// Package function: sparse Hessian assembly. Per-term Hessian blocks
// are flattened into (row, col, value) triplets and coalesced by the
// engine — the sparse library stores triplets verbatim, so duplicate
// coordinates must be summed before the matrix is constructed. The
// entry count of the previous assembly seeds the next one's reserved
// capacity.

package function

import (
	"time"

	"github.com/james-bowman/sparse"
)

// hessianCoord addresses one scalar pair in the global Hessian.
type hessianCoord struct {
	row, col int
}

// EvaluateWithSparseHessian computes the value, writes the gradient of
// the free scalars into grad, and assembles the sparse Hessian as a
// CSR matrix with one entry per distinct coordinate. A change of
// variables on any free variable is unsupported.
func (f *Function) EvaluateWithSparseHessian(x, grad []float64) (float64, *sparse.CSR, error) {
	value, err := f.evaluateDerivatives(x, grad, hessianSparse)
	if err != nil {
		return 0, nil, err
	}

	start := time.Now()
	entries := make(map[hessianCoord]float64, f.lastHessianNNZ)

	for _, at := range f.terms {
		for i0, vi0 := range at.vars {
			v0 := f.vars[vi0]
			if v0.constant {
				continue
			}
			for i1, vi1 := range at.vars {
				v1 := f.vars[vi1]
				if v1.constant {
					continue
				}
				block := at.hess[i0][i1]
				for r := 0; r < v0.userDim; r++ {
					for c := 0; c < v1.userDim; c++ {
						entries[hessianCoord{v0.globalIndex + r, v1.globalIndex + c}] += block.At(r, c)
					}
				}
			}
		}
	}

	rows, cols, vals := flattenEntries(entries)
	f.lastHessianNNZ = len(vals)

	hessian := sparse.NewCOO(f.nScalars, f.nScalars, rows, cols, vals).ToCSR()
	f.stats.WriteTime += time.Since(start)

	return value, hessian, nil
}

// SparseHessianStructure walks the same coordinates as sparse assembly
// with every value fixed to 1.0, producing the sparsity pattern
// without evaluating a single term. Optimizers use it to probe and
// preallocate structure.
func (f *Function) SparseHessianStructure() *sparse.CSR {
	entries := make(map[hessianCoord]float64, f.lastHessianNNZ)

	for _, at := range f.terms {
		for _, vi0 := range at.vars {
			v0 := f.vars[vi0]
			if v0.constant {
				continue
			}
			for _, vi1 := range at.vars {
				v1 := f.vars[vi1]
				if v1.constant {
					continue
				}
				for r := 0; r < v0.userDim; r++ {
					for c := 0; c < v1.userDim; c++ {
						entries[hessianCoord{v0.globalIndex + r, v1.globalIndex + c}] = 1.0
					}
				}
			}
		}
	}

	rows, cols, vals := flattenEntries(entries)
	f.lastHessianNNZ = len(vals)

	return sparse.NewCOO(f.nScalars, f.nScalars, rows, cols, vals).ToCSR()
}

// flattenEntries unpacks the coalesced coordinate map into the triplet
// vectors the sparse constructor takes.
func flattenEntries(entries map[hessianCoord]float64) (rows, cols []int, vals []float64) {
	rows = make([]int, 0, len(entries))
	cols = make([]int, 0, len(entries))
	vals = make([]float64, 0, len(entries))
	for coord, v := range entries {
		rows = append(rows, coord.row)
		cols = append(cols, coord.col)
		vals = append(vals, v)
	}

	return rows, cols, vals
}
