// SPDX-License-Identifier: MIT
// Package function: the Function type and its registry operations —
// variable registration, term binding, constancy toggling, merge,
// clone, and the count/lookup accessors.

package function

import (
	"runtime"

	"github.com/katalvlaran/objfn/term"
)

// Function assembles an objective as constant + Σ terms and evaluates
// it at points supplied either through the packed global vector or
// through the user-owned variable storage.
//
// The zero value is not usable; construct with New.
type Function struct {
	vars  []*addedVariable
	index map[*float64]int // address of first scalar → registry index
	terms []*addedTerm

	nScalars   int // free scalars; the length of the global vector
	nConstants int // constant scalars, trailing the free block

	constant       float64
	threads        int
	hessianEnabled bool

	// Derived cache, rebuilt lazily on the next evaluation after any
	// registry mutation.
	storageReady bool
	threadGrad   [][]float64   // [worker] accumulator, len nScalars+nConstants
	threadRows   [][][]float64 // [worker][maxArity] gradient rows, len maxDim
	argRows      [][][]float64 // [worker] reslice buffer handed to terms

	lastHessianNNZ int

	stats Stats
}

// New returns an empty function. By default Hessian computation is
// enabled and the worker count equals runtime.GOMAXPROCS(0).
func New(opts ...Option) *Function {
	f := &Function{
		index:          make(map[*float64]int),
		threads:        runtime.GOMAXPROCS(0),
		hessianEnabled: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Clear resets the function to the empty function. The worker count,
// the Hessian toggle, and the accumulated Stats are kept.
func (f *Function) Clear() {
	f.vars = nil
	f.index = make(map[*float64]int)
	f.terms = nil
	f.nScalars = 0
	f.nConstants = 0
	f.constant = 0
	f.invalidateStorage()
	f.lastHessianNNZ = 0
}

// AddVariable registers a user-owned block of scalars. The block's
// dimension is its length and is fixed forever; registering the same
// block again is a no-op except that it replaces the change of
// variables (dimension compatibility checked). The returned VarID
// identifies the variable for the lifetime of the Function.
func (f *Function) AddVariable(storage []float64, opts ...VariableOption) (VarID, error) {
	if len(storage) == 0 {
		return -1, ErrEmptyVariable
	}

	var cfg variableConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return f.addVariable(storage, len(storage), cfg.change)
}

// addVariable implements registration with an explicit dimension,
// shared by AddVariable and term auto-registration.
func (f *Function) addVariable(storage []float64, dim int, change ChangeOfVariables) (VarID, error) {
	f.invalidateStorage()

	key := &storage[0]
	if i, seen := f.index[key]; seen {
		v := f.vars[i]
		if v.userDim != dim {
			return -1, ErrDimensionMismatch
		}
		if change != nil {
			if v.userDim != change.XDimension() || v.solverDim != change.TDimension() {
				return -1, ErrDimensionMismatch
			}
		}
		// Re-adding replaces the transform, including clearing it.
		// Clearing restores the solver dimension to the block length,
		// which shifts every later global index.
		v.change = change
		if change == nil && v.solverDim != v.userDim {
			v.solverDim = v.userDim
			f.reindex()
		}

		return VarID(i), nil
	}

	userDim, solverDim := dim, dim
	if change != nil {
		if dim != change.XDimension() {
			return -1, ErrDimensionMismatch
		}
		solverDim = change.TDimension()
	}

	v := &addedVariable{
		storage:     storage[:dim],
		userDim:     userDim,
		solverDim:   solverDim,
		globalIndex: f.nScalars,
		change:      change,
		scratch:     make([]float64, userDim),
	}
	f.index[key] = len(f.vars)
	f.vars = append(f.vars, v)
	f.nScalars += solverDim

	if f.nConstants > 0 {
		// Constant scalars must keep trailing the free block.
		f.reindex()
	}

	return VarID(len(f.vars) - 1), nil
}

// AddTerm binds t to the given variable blocks, in order. Blocks not
// yet registered are auto-registered with the term-declared dimension.
// Binding is all-or-nothing: on any error the function is left exactly
// as it was before the call.
func (f *Function) AddTerm(t term.Term, vars ...[]float64) error {
	if t == nil {
		return ErrNilTerm
	}
	if len(vars) != t.NumVariables() {
		return ErrArityMismatch
	}
	f.invalidateStorage()

	snapVars := len(f.vars)
	snapKeys := make([]*float64, 0, len(vars))
	rollback := func() {
		for _, key := range snapKeys {
			delete(f.index, key)
		}
		f.vars = f.vars[:snapVars]
		f.reindex()
	}

	indices := make([]int, 0, len(vars))
	for i := range vars {
		if len(vars[i]) == 0 {
			rollback()

			return ErrEmptyVariable
		}
		key := &vars[i][0]
		if idx, seen := f.index[key]; seen {
			if f.vars[idx].userDim != t.VariableDimension(i) {
				rollback()

				return ErrDimensionMismatch
			}
			indices = append(indices, idx)

			continue
		}

		if len(vars[i]) != t.VariableDimension(i) {
			rollback()

			return ErrDimensionMismatch
		}
		id, err := f.addVariable(vars[i], t.VariableDimension(i), nil)
		if err != nil {
			rollback()

			return err
		}
		snapKeys = append(snapKeys, key)
		indices = append(indices, int(id))
	}

	f.terms = append(f.terms, &addedTerm{t: t, vars: indices})

	return nil
}

// SetConstant marks a variable constant (or free again). Constant
// variables are removed from the global vector, read from user storage
// during evaluation, and contribute no gradient. The call performs a
// full O(n) reindex of every variable.
func (f *Function) SetConstant(storage []float64, constant bool) error {
	if len(storage) == 0 {
		return ErrEmptyVariable
	}
	i, seen := f.index[&storage[0]]
	if !seen {
		return ErrVariableNotFound
	}

	f.vars[i].constant = constant
	f.reindex()
	f.invalidateStorage()

	return nil
}

// reindex recomputes every variable's global index: free variables
// first at contiguous offsets, then constant variables trailing the
// free block.
func (f *Function) reindex() {
	f.nScalars = 0
	for _, v := range f.vars {
		if v.constant {
			continue
		}
		v.globalIndex = f.nScalars
		f.nScalars += v.solverDim
	}

	f.nConstants = 0
	for _, v := range f.vars {
		if !v.constant {
			continue
		}
		v.globalIndex = f.nScalars + f.nConstants
		f.nConstants += v.solverDim
	}
}

// GlobalIndex returns the current offset of a variable block in the
// global coordinate vector.
func (f *Function) GlobalIndex(storage []float64) (int, error) {
	if len(storage) == 0 {
		return 0, ErrEmptyVariable
	}
	i, seen := f.index[&storage[0]]
	if !seen {
		return 0, ErrVariableNotFound
	}

	return f.vars[i].globalIndex, nil
}

// Variable returns a snapshot of the variable identified by id.
func (f *Function) Variable(id VarID) (VariableInfo, error) {
	if id < 0 || int(id) >= len(f.vars) {
		return VariableInfo{}, ErrVariableNotFound
	}
	v := f.vars[id]

	return VariableInfo{
		Dimension:       v.userDim,
		SolverDimension: v.solverDim,
		GlobalIndex:     v.globalIndex,
		Constant:        v.constant,
	}, nil
}

// NumVariables returns the number of registered variable blocks.
func (f *Function) NumVariables() int { return len(f.vars) }

// NumTerms returns the number of term bindings.
func (f *Function) NumTerms() int { return len(f.terms) }

// NumScalars returns the number of free scalars — the length of the
// global coordinate vector an optimizer manipulates.
func (f *Function) NumScalars() int { return f.nScalars }

// NumConstantScalars returns the number of scalars held by constant
// variables.
func (f *Function) NumConstantScalars() int { return f.nConstants }

// Constant returns the scalar constant added to every evaluation.
func (f *Function) Constant() float64 { return f.constant }

// AddConstant adds v to the scalar constant.
func (f *Function) AddConstant(v float64) { f.constant += v }

// Threads returns the evaluation worker count.
func (f *Function) Threads() int { return f.threads }

// SetThreads changes the evaluation worker count.
func (f *Function) SetThreads(n int) error {
	if n <= 0 {
		return ErrBadThreadCount
	}
	f.threads = n
	f.invalidateStorage()

	return nil
}

// HessianEnabled reports whether Hessian computation is enabled.
func (f *Function) HessianEnabled() bool { return f.hessianEnabled }

// SetHessianEnabled toggles Hessian block allocation and the
// Hessian-producing evaluations.
func (f *Function) SetHessianEnabled(enabled bool) {
	f.hessianEnabled = enabled
	f.invalidateStorage()
}

// Stats returns the accumulated evaluation counters.
func (f *Function) Stats() Stats { return f.stats }

// Merge adds every variable, term, and the constant of other into f.
// Variables present in both functions are shared; variables new to f
// come in free. Change of variables is not supported on either side.
func (f *Function) Merge(other *Function) error {
	for _, v := range other.vars {
		if v.change != nil {
			return ErrUnsupportedOperation
		}
	}
	for _, v := range f.vars {
		if v.change != nil {
			return ErrUnsupportedOperation
		}
	}

	f.constant += other.constant
	for _, v := range other.vars {
		if _, err := f.addVariable(v.storage, v.userDim, nil); err != nil {
			return err
		}
	}
	for _, at := range other.terms {
		blocks := make([][]float64, 0, len(at.vars))
		for _, vi := range at.vars {
			blocks = append(blocks, other.vars[vi].storage)
		}
		if err := f.AddTerm(at.t, blocks...); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy of the function bound to the same user
// storage. Terms and transforms are shared by reference; registries,
// constancy flags, and configuration are copied.
func (f *Function) Clone() (*Function, error) {
	g := New(WithConstant(f.constant))
	g.threads = f.threads
	g.hessianEnabled = f.hessianEnabled

	for _, v := range f.vars {
		if _, err := g.addVariable(v.storage, v.userDim, v.change); err != nil {
			return nil, err
		}
	}
	for _, at := range f.terms {
		blocks := make([][]float64, 0, len(at.vars))
		for _, vi := range at.vars {
			blocks = append(blocks, f.vars[vi].storage)
		}
		if err := g.AddTerm(at.t, blocks...); err != nil {
			return nil, err
		}
	}
	for i, v := range f.vars {
		if v.constant {
			g.vars[i].constant = true
		}
	}
	g.reindex()

	return g, nil
}

// invalidateStorage drops the derived evaluation cache.
func (f *Function) invalidateStorage() {
	f.storageReady = false
	f.threadGrad = nil
	f.threadRows = nil
	f.argRows = nil
}
