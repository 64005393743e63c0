// SPDX-License-Identifier: MIT
// Package function: the scalar evaluation pipeline — value, gradient,
// and dense Hessian — built around a fork-join worker pool. Terms are
// assigned to workers by a fixed stride, every worker accumulates into
// private storage, and the reduction runs after the join. For a fixed
// worker count the floating-point accumulation order is deterministic;
// across different worker counts the value may differ in the last
// ulps.

package function

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// hessianMode selects which second-order output a derivative
// evaluation produces.
type hessianMode int

const (
	hessianNone hessianMode = iota
	hessianDense
	hessianSparse
)

// Evaluate computes constant + Σ terms at the point currently held in
// user storage (constants included).
func (f *Function) Evaluate() (float64, error) {
	f.ensureLocalStorage()
	f.copyUserToLocal()

	return f.valueFromLocal()
}

// EvaluateAt computes constant + Σ terms at the global point x, which
// must have exactly NumScalars entries. Constant variables read from
// user storage.
func (f *Function) EvaluateAt(x []float64) (float64, error) {
	if len(x) != f.nScalars {
		return 0, ErrDimensionMismatch
	}
	f.ensureLocalStorage()
	f.scatterGlobalToLocal(x)

	return f.valueFromLocal()
}

// valueFromLocal evaluates every term binding against the scratch
// populated by the caller and reduces the per-worker partial sums.
func (f *Function) valueFromLocal() (float64, error) {
	f.stats.Evaluations++
	start := time.Now()

	partial := make([]float64, f.threads)
	var grp errgroup.Group
	for w := 0; w < f.threads; w++ {
		grp.Go(func() error {
			sum := 0.0
			for i := w; i < len(f.terms); i += f.threads {
				v, err := f.terms[i].t.Value(f.terms[i].args)
				if err != nil {
					return err
				}
				sum += v
			}
			partial[w] = sum

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, err
	}

	value := f.constant
	for _, p := range partial {
		value += p
	}
	f.stats.EvaluateTime += time.Since(start)

	return value, nil
}

// EvaluateWithGradient computes the value and writes the gradient of
// the free scalars into grad. Both x and grad must have NumScalars
// entries; grad is zeroed by the call. Arguments with a change of
// variables are projected through UpdateGradient; constant variables
// contribute no gradient.
func (f *Function) EvaluateWithGradient(x, grad []float64) (float64, error) {
	return f.evaluateDerivatives(x, grad, hessianNone)
}

// EvaluateWithHessian computes the value, the gradient, and the dense
// NumScalars×NumScalars Hessian. hess is resized and zeroed by the
// call. A change of variables on any free variable is unsupported.
func (f *Function) EvaluateWithHessian(x, grad []float64, hess *mat.Dense) (float64, error) {
	if hess == nil {
		return 0, ErrNilHessian
	}

	value, err := f.evaluateDerivatives(x, grad, hessianDense)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	n := f.nScalars
	hess.Reset()
	if n > 0 {
		hess.ReuseAs(n, n)
		hess.Zero()
	}

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
						gi, gj := v0.globalIndex+r, v1.globalIndex+c
						hess.Set(gi, gj, hess.At(gi, gj)+block.At(r, c))
					}
				}
			}
		}
	}
	f.stats.WriteTime += time.Since(start)

	return value, nil
}

// evaluateDerivatives is the shared gradient pipeline: scatter, zero
// per-worker accumulators, fork-join over term bindings, reduce. When
// mode requests a Hessian, every binding additionally fills its
// per-pair blocks; assembly happens in the caller.
func (f *Function) evaluateDerivatives(x, grad []float64, mode hessianMode) (float64, error) {
	if len(x) != f.nScalars || len(grad) != f.nScalars {
		return 0, ErrDimensionMismatch
	}
	if mode != hessianNone {
		if !f.hessianEnabled {
			return 0, ErrHessianDisabled
		}
		for _, v := range f.vars {
			if !v.constant && v.change != nil {
				return 0, ErrUnsupportedOperation
			}
		}
	}

	f.ensureLocalStorage()
	f.scatterGlobalToLocal(x)
	f.stats.GradientEvaluations++
	start := time.Now()

	for w := range f.threadGrad {
		clear(f.threadGrad[w])
	}

	withHessian := mode != hessianNone
	partial := make([]float64, f.threads)
	var grp errgroup.Group
	for w := 0; w < f.threads; w++ {
		grp.Go(func() error {
			sum := 0.0
			rows := f.threadRows[w]
			rowArgs := f.argRows[w]
			acc := f.threadGrad[w]

			for i := w; i < len(f.terms); i += f.threads {
				at := f.terms[i]
				arity := len(at.vars)
				gr := rowArgs[:arity]
				for j := 0; j < arity; j++ {
					gr[j] = rows[j][:f.vars[at.vars[j]].userDim]
				}

				var (
					v   float64
					err error
				)
				if withHessian {
					v, err = at.t.ValueGradientHessian(at.args, gr, at.hess)
				} else {
					v, err = at.t.ValueGradient(at.args, gr)
				}
				if err != nil {
					return err
				}
				sum += v

				// Scatter-add this binding's gradient rows into the
				// worker's private accumulator.
				for j := 0; j < arity; j++ {
					av := f.vars[at.vars[j]]
					if av.constant {
						continue
					}
					if av.change == nil {
						floats.Add(acc[av.globalIndex:av.globalIndex+av.userDim], gr[j])

						continue
					}
					av.change.UpdateGradient(
						acc[av.globalIndex:av.globalIndex+av.solverDim],
						x[av.globalIndex:av.globalIndex+av.solverDim],
						gr[j],
					)
				}
			}
			partial[w] = sum

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, err
	}

	value := f.constant
	for _, p := range partial {
		value += p
	}
	f.stats.EvaluateTime += time.Since(start)

	start = time.Now()
	clear(grad)
	for w := 0; w < f.threads; w++ {
		if f.nScalars > 0 {
			floats.Add(grad, f.threadGrad[w][:f.nScalars])
		}
	}
	f.stats.WriteTime += time.Since(start)

	return value, nil
}
