package reactor_test

import (
	"github.com/lattice-run/reactor"
)

// cell is a minimal stand-in for what a host's reactive-object proxy
// would do: track on read, trigger on write. One field, one key.
type cell struct {
	value any
}

func newCell(v any) *cell { return &cell{value: v} }

func (c *cell) Read() any {
	reactor.Track(c, reactor.Get, "value")
	return c.value
}

func (c *cell) Write(v any) {
	old := c.value
	if old == v {
		return
	}
	c.value = v
	reactor.Trigger(c, reactor.Set, "value", v, old, nil)
}

// seq is a minimal sequence ("array"-like) stand-in, with index reads
// and a length key so length-truncation dispatch can be exercised.
type seq struct {
	items []any
}

func newSeq(items ...any) *seq { return &seq{items: items} }

func (s *seq) ReactiveKind() reactor.TargetKind { return reactor.KindArray }

func (s *seq) ReadAt(i int) any {
	reactor.Track(s, reactor.Get, i)
	if i < len(s.items) {
		return s.items[i]
	}
	return nil
}

func (s *seq) ReadLength() int {
	reactor.Track(s, reactor.Get, reactor.LengthKey)
	return len(s.items)
}

func (s *seq) SetLength(n int) {
	old := len(s.items)
	if n == old {
		return
	}
	if n < old {
		s.items = s.items[:n]
	} else {
		for len(s.items) < n {
			s.items = append(s.items, nil)
		}
	}
	reactor.Trigger(s, reactor.Set, reactor.LengthKey, n, old, nil)
}

// bag is a minimal keyed-collection ("map"-like) stand-in, exercising
// ITERATE_KEY / MAP_KEY_ITERATE_KEY dispatch on Add/Delete/Set.
type bag struct {
	m map[string]any
}

func newBag() *bag { return &bag{m: make(map[string]any)} }

func (b *bag) ReactiveKind() reactor.TargetKind { return reactor.KindCollection }

func (b *bag) Get(k string) any {
	reactor.Track(b, reactor.Get, k)
	return b.m[k]
}

func (b *bag) Keys() []string {
	reactor.Track(b, reactor.Iterate, reactor.MapKeyIterateKey)
	out := make([]string, 0, len(b.m))
	for k := range b.m {
		out = append(out, k)
	}
	return out
}

func (b *bag) Entries() map[string]any {
	reactor.Track(b, reactor.Iterate, reactor.IterateKey)
	return b.m
}

func (b *bag) Set(k string, v any) {
	_, existed := b.m[k]
	old := b.m[k]
	b.m[k] = v
	if existed {
		reactor.Trigger(b, reactor.Set, k, v, old, nil)
	} else {
		reactor.Trigger(b, reactor.Add, k, v, nil, nil)
	}
}

func (b *bag) Delete(k string) {
	old, existed := b.m[k]
	if !existed {
		return
	}
	delete(b.m, k)
	reactor.Trigger(b, reactor.Delete, k, nil, old, nil)
}

func (b *bag) Clear() {
	old := b.m
	b.m = make(map[string]any)
	reactor.Trigger(b, reactor.Clear, nil, nil, nil, old)
}
