package reactor

import "github.com/lattice-run/reactor/internal"

// Computed is a derived value backed by an effect: reading Value tracks
// the current active effect, and recomputes only when dirty. It
// re-notifies downstream as soon as its recompute might have changed —
// the scheduler simply flips a dirty flag and propagates eagerly.
type Computed struct {
	c *internal.Computed
}

// NewComputed derives a memoized value from other tracked reads.
func NewComputed(getter func() any) *Computed {
	return &Computed{c: rt().NewComputed(getter)}
}

func (c *Computed) Value() any {
	r := rt()
	r.Enter()
	defer r.Exit()
	return c.c.Value()
}

// DeferredComputed is a Computed whose downstream notifications are
// deferred to a microtask and suppressed entirely when the eventual
// value turns out unchanged from its pre-change snapshot — collapsing a
// burst of upstream writes that nets out to nothing into zero
// re-renders downstream.
type DeferredComputed struct {
	c *internal.DeferredComputed
}

func NewDeferredComputed(getter func() any) *DeferredComputed {
	return &DeferredComputed{c: rt().NewDeferredComputed(getter)}
}

func (c *DeferredComputed) Value() any {
	r := rt()
	r.Enter()
	defer r.Exit()
	return c.c.Value()
}
