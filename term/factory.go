package term

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Sentinel errors for factory operations.
var (
	// ErrUnknownTag indicates that no constructor is registered for a tag.
	ErrUnknownTag = errors.New("term: unknown term tag")

	// ErrDuplicateTag indicates a second registration under the same tag.
	ErrDuplicateTag = errors.New("term: tag already registered")

	// ErrEmptyTag indicates registration under an empty or whitespace tag.
	ErrEmptyTag = errors.New("term: empty or whitespace tag")

	// ErrNilConstructor indicates registration of a nil constructor.
	ErrNilConstructor = errors.New("term: nil constructor")
)

// Constructor reads a term's parameters from r (the same token stream
// the term's Write produced) and returns the reconstructed Term.
type Constructor func(r io.Reader) (Term, error)

// Factory maps stable type tags to constructors. It is the external
// collaborator the engine consults when reading a function stream.
//
// A Factory is safe for concurrent use.
type Factory struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{ctors: make(map[string]Constructor)}
}

// Register binds tag to ctor. Tags must be non-empty single tokens;
// re-registering a tag fails with ErrDuplicateTag.
func (f *Factory) Register(tag string, ctor Constructor) error {
	if tag == "" || strings.ContainsAny(tag, " \t\n\r") {
		return ErrEmptyTag
	}
	if ctor == nil {
		return ErrNilConstructor
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.ctors[tag]; dup {
		return fmt.Errorf("term: register %q: %w", tag, ErrDuplicateTag)
	}
	f.ctors[tag] = ctor

	return nil
}

// Create reconstructs a term with the given tag from r.
func (f *Factory) Create(tag string, r io.Reader) (Term, error) {
	f.mu.RLock()
	ctor, ok := f.ctors[tag]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("term: create %q: %w", tag, ErrUnknownTag)
	}

	return ctor(r)
}

// Tags returns the registered tags in sorted order.
func (f *Factory) Tags() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	tags := make([]string, 0, len(f.ctors))
	for tag := range f.ctors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags
}

// RegisterBuiltins registers every term type shipped with this package.
func RegisterBuiltins(f *Factory) error {
	if err := f.Register(TagSquaredNorm, ReadSquaredNorm); err != nil {
		return err
	}

	return f.Register(TagRosenbrock, ReadRosenbrock)
}
