// SPDX-License-Identifier: MIT
// Package function: lazy per-worker scratch allocation and the copy
// routines between user storage, the global vector, and the
// per-variable evaluation scratch.

package function

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// ensureLocalStorage (re)builds the derived evaluation cache: one
// gradient accumulator and one set of gradient rows per worker, one
// argument-pointer list per term binding, and — when Hessian
// computation is enabled — the arity×arity grid of dense blocks per
// binding. Idempotent until the next registry mutation.
func (f *Function) ensureLocalStorage() {
	if f.storageReady {
		return
	}
	start := time.Now()

	maxDim, maxArity := 1, 1
	for _, v := range f.vars {
		if v.userDim > maxDim {
			maxDim = v.userDim
		}
	}
	for _, at := range f.terms {
		if len(at.vars) > maxArity {
			maxArity = len(at.vars)
		}
	}

	f.threadGrad = make([][]float64, f.threads)
	f.threadRows = make([][][]float64, f.threads)
	f.argRows = make([][][]float64, f.threads)
	for w := 0; w < f.threads; w++ {
		f.threadGrad[w] = make([]float64, f.nScalars+f.nConstants)
		rows := make([][]float64, maxArity)
		for j := range rows {
			rows[j] = make([]float64, maxDim)
		}
		f.threadRows[w] = rows
		f.argRows[w] = make([][]float64, maxArity)
	}

	for _, at := range f.terms {
		at.args = at.args[:0]
		for _, vi := range at.vars {
			at.args = append(at.args, f.vars[vi].scratch)
		}

		if !f.hessianEnabled {
			at.hess = nil

			continue
		}
		arity := len(at.vars)
		at.hess = make([][]*mat.Dense, arity)
		for i := 0; i < arity; i++ {
			at.hess[i] = make([]*mat.Dense, arity)
			for j := 0; j < arity; j++ {
				at.hess[i][j] = mat.NewDense(
					f.vars[at.vars[i]].userDim,
					f.vars[at.vars[j]].userDim,
					nil,
				)
			}
		}
	}

	f.storageReady = true
	f.stats.AllocationTime += time.Since(start)
}

// scatterGlobalToLocal copies the global vector into every variable's
// scratch, applying TToX transforms. Constant variables ignore the
// global vector and read from their own user storage.
func (f *Function) scatterGlobalToLocal(x []float64) {
	start := time.Now()

	for _, v := range f.vars {
		switch {
		case v.constant:
			copy(v.scratch, v.storage)
		case v.change == nil:
			copy(v.scratch, x[v.globalIndex:v.globalIndex+v.userDim])
		default:
			v.change.TToX(v.scratch, x[v.globalIndex:v.globalIndex+v.solverDim])
		}
	}

	f.stats.CopyTime += time.Since(start)
}

// copyUserToLocal fills every variable's scratch from user storage,
// constants included.
func (f *Function) copyUserToLocal() {
	start := time.Now()

	for _, v := range f.vars {
		copy(v.scratch, v.storage)
	}

	f.stats.CopyTime += time.Since(start)
}

// CopyUserToGlobal packs the current user storage of every free
// variable into a fresh global coordinate vector, applying XToT
// transforms. Constant variables are not part of the global vector.
func (f *Function) CopyUserToGlobal() []float64 {
	start := time.Now()

	x := make([]float64, f.nScalars)
	for _, v := range f.vars {
		if v.constant {
			continue
		}
		if v.change == nil {
			copy(x[v.globalIndex:v.globalIndex+v.userDim], v.storage)

			continue
		}
		v.change.XToT(x[v.globalIndex:v.globalIndex+v.solverDim], v.storage)
	}

	f.stats.CopyTime += time.Since(start)

	return x
}

// CopyGlobalToUser unpacks a global coordinate vector into the user
// storage of every free variable, applying TToX transforms. Constant
// variables are left untouched.
func (f *Function) CopyGlobalToUser(x []float64) error {
	if len(x) != f.nScalars {
		return ErrDimensionMismatch
	}
	start := time.Now()

	for _, v := range f.vars {
		if v.constant {
			continue
		}
		if v.change == nil {
			copy(v.storage, x[v.globalIndex:v.globalIndex+v.userDim])

			continue
		}
		v.change.TToX(v.storage, x[v.globalIndex:v.globalIndex+v.solverDim])
	}

	f.stats.CopyTime += time.Since(start)

	return nil
}
