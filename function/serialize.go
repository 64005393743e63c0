// SPDX-License-Identifier: MIT
// Package function: the stream format. Layout, in whitespace-separated
// tokens: magic, version, build fingerprint, term/variable/scalar
// counts, the constant, the per-variable dimensions sorted by global
// index, the solver-space scalar vector, then per term its tag, arity,
// bound global offsets, and the term's opaque self-serialized blob.
// The fingerprint only rejects streams whose term blobs were written
// under an incompatible encoding; it does not guarantee logical
// portability of the terms themselves.

package function

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/objfn/term"
)

const (
	streamMagic   = "objfn::function"
	streamVersion = 1

	// buildFingerprint names the token encoding of term blobs. Bump it
	// whenever the encoding changes incompatibly.
	buildFingerprint = "go/ieee754-binary64/text1"
)

// Write serializes the function to w. Functions holding a change of
// variables or constant variables cannot be written and fail with
// ErrUnsupportedOperation.
func (f *Function) Write(w io.Writer) error {
	for _, v := range f.vars {
		if v.change != nil || v.constant {
			return ErrUnsupportedOperation
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, streamMagic)
	fmt.Fprintln(bw, streamVersion)
	fmt.Fprintln(bw, buildFingerprint)
	fmt.Fprintln(bw, len(f.terms))
	fmt.Fprintln(bw, len(f.vars))
	fmt.Fprintln(bw, f.nScalars)
	fmt.Fprintf(bw, "%.17g\n", f.constant)

	// Dimensions sorted by global index, so reading back reconstructs
	// an identical global layout.
	ordered := make([]*addedVariable, len(f.vars))
	copy(ordered, f.vars)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].globalIndex < ordered[j].globalIndex
	})
	for _, v := range ordered {
		fmt.Fprintf(bw, "%d ", v.userDim)
	}
	fmt.Fprintln(bw)

	for _, s := range f.CopyUserToGlobal() {
		fmt.Fprintf(bw, "%.17g ", s)
	}
	fmt.Fprintln(bw)

	for _, at := range f.terms {
		fmt.Fprintln(bw, at.t.Tag())
		fmt.Fprintln(bw, len(at.vars))
		for _, vi := range at.vars {
			fmt.Fprintf(bw, "%d ", f.vars[vi].globalIndex)
		}
		fmt.Fprintln(bw)
		if err := at.t.Write(bw); err != nil {
			return fmt.Errorf("function: writing term %q: %w", at.t.Tag(), err)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// Read clears the function and rebuilds it from r, reconstructing
// every term through factory. It allocates and returns the backing
// array holding all scalars; the rebuilt variables alias slices of it.
func (f *Function) Read(r io.Reader, factory *term.Factory) ([]float64, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	br := bufio.NewReader(r)
	f.Clear()

	var magic string
	if err := scanToken(br, &magic, "magic"); err != nil {
		return nil, err
	}
	if magic != streamMagic {
		return nil, ErrFormatMismatch
	}

	var version int
	if err := scanToken(br, &version, "version"); err != nil {
		return nil, err
	}
	if version != streamVersion {
		return nil, ErrFormatMismatch
	}

	var fingerprint string
	if err := scanToken(br, &fingerprint, "fingerprint"); err != nil {
		return nil, err
	}
	if fingerprint != buildFingerprint {
		return nil, ErrIncompatibleBuild
	}

	var nTerms, nVariables, nScalars int
	if err := scanToken(br, &nTerms, "term count"); err != nil {
		return nil, err
	}
	if err := scanToken(br, &nVariables, "variable count"); err != nil {
		return nil, err
	}
	if err := scanToken(br, &nScalars, "scalar count"); err != nil {
		return nil, err
	}
	if nTerms < 0 || nVariables < 0 || nScalars < 0 {
		return nil, ErrFormatMismatch
	}
	if err := scanToken(br, &f.constant, "constant"); err != nil {
		return nil, err
	}

	dims := make([]int, nVariables)
	for i := range dims {
		if err := scanToken(br, &dims[i], "variable dimension"); err != nil {
			return nil, err
		}
	}

	userSpace := make([]float64, nScalars)
	offset := 0
	for _, dim := range dims {
		if dim <= 0 || offset+dim > nScalars {
			return nil, ErrFormatMismatch
		}
		if _, err := f.AddVariable(userSpace[offset : offset+dim]); err != nil {
			return nil, err
		}
		offset += dim
	}
	if offset != nScalars {
		return nil, ErrFormatMismatch
	}

	for i := range userSpace {
		if err := scanToken(br, &userSpace[i], "scalar value"); err != nil {
			return nil, err
		}
	}

	for i := 0; i < nTerms; i++ {
		var tag string
		if err := scanToken(br, &tag, "term tag"); err != nil {
			return nil, err
		}
		var arity int
		if err := scanToken(br, &arity, "term arity"); err != nil {
			return nil, err
		}
		if arity <= 0 {
			return nil, ErrFormatMismatch
		}
		offsets := make([]int, arity)
		for j := range offsets {
			if err := scanToken(br, &offsets[j], "term offset"); err != nil {
				return nil, err
			}
			if offsets[j] < 0 || offsets[j] >= nScalars {
				return nil, ErrFormatMismatch
			}
		}

		t, err := factory.Create(tag, br)
		if err != nil {
			return nil, err
		}
		if t.NumVariables() != arity {
			return nil, ErrArityMismatch
		}

		args := make([][]float64, arity)
		for j := range args {
			dim := t.VariableDimension(j)
			if offsets[j]+dim > nScalars {
				return nil, ErrFormatMismatch
			}
			args[j] = userSpace[offsets[j] : offsets[j]+dim]
		}
		if err := f.AddTerm(t, args...); err != nil {
			return nil, err
		}
	}

	return userSpace, nil
}

// scanToken reads one whitespace-separated token into dst, wrapping
// failures as ErrFormatMismatch with the token's name for context.
func scanToken(br *bufio.Reader, dst any, name string) error {
	if _, err := fmt.Fscan(br, dst); err != nil {
		return fmt.Errorf("function: reading %s (%v): %w", name, err, ErrFormatMismatch)
	}

	return nil
}
