// Package intern provides concurrent string interning: a build-phase
// Builder that hands out dense, gap-free ids for distinct strings seen
// from many goroutines at once, and a frozen read-only Registry used
// during the query phase.
package intern

import "sync"

// Builder assigns a dense integer id to every distinct string interned
// through it. Safe for concurrent use from multiple goroutines, with
// the same double-checked-locking shape as a read-write string cache:
// most calls hit an already-seen key and only need a read lock.
type Builder struct {
	mu     sync.RWMutex
	lookup []string
	index  map[string]uint32
}

// NewBuilder creates an empty Builder. capacityHint sizes the initial
// backing storage and need not be exact.
func NewBuilder(capacityHint int) *Builder {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Builder{
		lookup: make([]string, 0, capacityHint),
		index:  make(map[string]uint32, capacityHint),
	}
}

// Intern returns the id for s, allocating a new one if s has not been
// seen before. Ids are assigned in order of first appearance starting
// at 0, with no gaps.
func (b *Builder) Intern(s string) uint32 {
	b.mu.RLock()
	if id, ok := b.index[s]; ok {
		b.mu.RUnlock()
		return id
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.index[s]; ok {
		return id
	}
	id := uint32(len(b.lookup))
	b.lookup = append(b.lookup, s)
	b.index[s] = id
	return id
}

// Len returns the number of distinct strings interned so far.
func (b *Builder) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lookup)
}

// Freeze consumes the builder into an immutable Registry. The builder
// must not be used again afterwards.
func (b *Builder) Freeze() *Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	lookup := make([]string, len(b.lookup))
	copy(lookup, b.lookup)
	return &Registry{lookup: lookup}
}

// Registry is the frozen, read-only result of a Builder: an id to
// string lookup table with no further insertion allowed.
type Registry struct {
	lookup []string
}

// Len returns the number of distinct strings in the registry.
func (r *Registry) Len() int {
	return len(r.lookup)
}

// Resolve returns the string for id. Panics on an out-of-range id: a
// valid id always comes from a prior Builder.Intern call against the
// same registry's builder.
func (r *Registry) Resolve(id uint32) string {
	return r.lookup[id]
}
