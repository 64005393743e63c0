// SPDX-License-Identifier: MIT
// Package function: interval evaluation. The engine only gathers the
// right interval references per binding; every term performs its own
// interval arithmetic. No gradient or Hessian in this mode.

package function

import (
	"time"

	"github.com/katalvlaran/objfn/interval"
)

// EvaluateInterval computes an enclosure of constant + Σ terms over
// the box x, one interval per free scalar. Constant variables
// contribute point intervals read from user storage. A change of
// variables on any free variable is unsupported.
func (f *Function) EvaluateInterval(x []interval.Interval) (interval.Interval, error) {
	if len(x) != f.nScalars {
		return interval.Interval{}, ErrDimensionMismatch
	}
	for _, v := range f.vars {
		if !v.constant && v.change != nil {
			return interval.Interval{}, ErrUnsupportedOperation
		}
	}

	f.stats.Evaluations++
	start := time.Now()

	args := make([][]interval.Interval, 0, 4)
	value := interval.Point(f.constant)
	for _, at := range f.terms {
		args = args[:0]
		for _, vi := range at.vars {
			v := f.vars[vi]
			if !v.constant {
				args = append(args, x[v.globalIndex:v.globalIndex+v.userDim])

				continue
			}
			points := make([]interval.Interval, v.userDim)
			for i, s := range v.storage {
				points[i] = interval.Point(s)
			}
			args = append(args, points)
		}

		tv, err := at.t.IntervalValue(args)
		if err != nil {
			return interval.Interval{}, err
		}
		value = value.Add(tv)
	}
	f.stats.EvaluateTime += time.Since(start)

	return value, nil
}
