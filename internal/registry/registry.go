package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrDuplicateRegistration is returned by Register when the name is
	// already taken and override was not requested.
	ErrDuplicateRegistration = errors.New("function already registered")

	// ErrInvalidName is returned by Register for an empty name.
	ErrInvalidName = errors.New("function name cannot be empty")

	// ErrNotFound is wrapped by Call when nothing callable is registered
	// under the requested name. Get and Remove report absence through their
	// boolean results instead.
	ErrNotFound = errors.New("function not found")
)

// RawSignature is recorded for bodies installed with Handle.SetBody.
const RawSignature = "func(...cty.Value) (cty.Value, error)"

// Module is implemented by packages that contribute functions to a table.
type Module interface {
	Register(t *Table)
}

// entry is the per-name slot. Its body stays nil until a Handle installs one.
type entry struct {
	name      string
	body      erased.Func
	signature string
}

// Table maps names to erased functions.
type Table struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entries: make(map[string]*entry),
	}
}

var global = sync.OnceValue(New)

// Global returns the process-wide table, creating it on first use.
func Global() *Table {
	return global()
}

// Register returns a handle to the entry for name, creating the entry if it
// does not exist. If the name is taken, Register fails with
// ErrDuplicateRegistration unless override is set, in which case the existing
// entry is reused and the body installed next replaces the current one.
func (t *Table) Register(name string, override bool) (*Handle, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if e, exists := t.entries[name]; exists {
		if !override {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRegistration, name)
		}
		slog.Debug("Overriding registered function.", "name", name)
		return &Handle{table: t, entry: e}, nil
	}

	slog.Debug("Registering function.", "name", name)
	e := &entry{name: name}
	t.entries[name] = e
	t.order = append(t.order, name)
	return &Handle{table: t, entry: e}, nil
}

// MustRegister is Register without override for use in registration code that
// runs at startup. A duplicate name is a programming error and panics.
func (t *Table) MustRegister(name string) *Handle {
	h, err := t.Register(name, false)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return h
}

// MustOverride is Register with override set. It panics only on an invalid name.
func (t *Table) MustOverride(name string) *Handle {
	h, err := t.Register(name, true)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return h
}

// Remove erases the entry for name and reports whether it existed.
func (t *Table) Remove(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[name]; !exists {
		return false
	}
	delete(t.entries, name)
	if i := slices.Index(t.order, name); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	slog.Debug("Removed registered function.", "name", name)
	return true
}

// Get returns the body currently installed under name. It reports false when
// the name is unknown or no body has been installed yet.
//
// The returned function is the one active at the time of the call; a later
// Remove or override of the same name does not update it.
func (t *Table) Get(name string) (erased.Func, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, exists := t.entries[name]
	if !exists || e.body == nil {
		return nil, false
	}
	return e.body, true
}

// ListNames returns a snapshot of the registered names in registration order.
func (t *Table) ListNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.order)
}

// Signature returns the native signature recorded for name.
func (t *Table) Signature(name string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, exists := t.entries[name]
	if !exists || e.body == nil {
		return "", false
	}
	return e.signature, true
}

// Len returns the number of registered names.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Clear removes every entry.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[string]*entry)
	t.order = nil
}

// Call looks up name and invokes it with args. The lock is released before
// the body runs.
func (t *Table) Call(name string, args ...cty.Value) (cty.Value, error) {
	f, ok := t.Get(name)
	if !ok {
		return cty.NilVal, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return f(args...)
}
