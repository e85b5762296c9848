package subst

import "github.com/pkg/errors"

// ErrMultiplierPoolExhausted is returned by MultiplierPool.Acquire when
// every multiplier is in use. Per spec.md §4.C, exhausting the pool
// signals infinite recursion somewhere above the caller and is a fatal
// condition for the engine as a whole, but the pool itself just reports it
// as an ordinary error so callers (and tests) can decide how to react.
var ErrMultiplierPoolExhausted = errors.New("subst: context multiplier pool exhausted")

// MultiplierPool hands out the unique per-context Multiplier values used to
// keep two contexts' variables disjoint (spec.md §4.C). It is a bounded
// pool, not an unbounded counter, so that a runaway recursive unification
// fails loudly instead of growing Apply's rendered variable indices without
// bound.
type MultiplierPool struct {
	free []int
}

// NewMultiplierPool returns a pool with n multipliers available, numbered
// 0..n-1.
func NewMultiplierPool(n int) *MultiplierPool {
	p := &MultiplierPool{free: make([]int, n)}
	for i := range p.free {
		p.free[i] = n - 1 - i // pop from the end; order doesn't matter semantically
	}
	return p
}

// Acquire hands out a fresh Context with a unique multiplier, or
// ErrMultiplierPoolExhausted if none remain.
func (p *MultiplierPool) Acquire() (*Context, error) {
	if len(p.free) == 0 {
		return nil, ErrMultiplierPoolExhausted
	}
	m := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return &Context{Multiplier: m}, nil
}

// Release returns a context's multiplier to the pool. Releasing a context
// that still holds bindings is a fatal invariant violation (spec.md §3:
// "A context freed while holding any binding is a fatal error"), so
// Release panics rather than silently leaking or corrupting state.
func (p *MultiplierPool) Release(c *Context) {
	if !c.Empty() {
		panic("subst: released a context that still holds bindings")
	}
	p.free = append(p.free, c.Multiplier)
}

// Available reports how many multipliers remain unallocated, mainly for
// tests and statistics reporting.
func (p *MultiplierPool) Available() int { return len(p.free) }
