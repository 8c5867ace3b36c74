package reactor_test

import (
	"fmt"
	"testing"

	"github.com/lattice-run/reactor"
	"github.com/stretchr/testify/assert"
)

func TestTrigger(t *testing.T) {
	t.Run("array length truncation invalidates indices >= new length and length itself", func(t *testing.T) {
		s := newSeq(10, 20, 30, 40)
		log := []string{}

		reactor.Effect(func() { log = append(log, fmt.Sprintf("idx0=%v", s.ReadAt(0))) })
		reactor.Effect(func() { log = append(log, fmt.Sprintf("idx2=%v", s.ReadAt(2))) })
		reactor.Effect(func() { log = append(log, fmt.Sprintf("len=%v", s.ReadLength())) })

		log = log[:0]
		s.SetLength(2)

		assert.Len(t, log, 2)
		assert.Contains(t, log, "idx2=<nil>")
		assert.Contains(t, log, "len=2")
	})

	t.Run("add on a keyed collection fires iterate and map-key-iterate deps", func(t *testing.T) {
		b := newBag()
		log := []string{}

		reactor.Effect(func() { b.Entries(); log = append(log, "entries") })
		reactor.Effect(func() { b.Keys(); log = append(log, "keys") })
		reactor.Effect(func() { b.Get("a"); log = append(log, "get-a") })

		log = log[:0]
		b.Set("x", 1)

		assert.ElementsMatch(t, []string{"entries", "keys"}, log)
	})

	t.Run("set on an existing collection key fires the key dep and iterate, not map-key-iterate", func(t *testing.T) {
		b := newBag()
		b.Set("a", 1)

		log := []string{}
		reactor.Effect(func() { b.Entries(); log = append(log, "entries") })
		reactor.Effect(func() { b.Keys(); log = append(log, "keys") })
		reactor.Effect(func() { log = append(log, fmt.Sprintf("a=%v", b.Get("a"))) })

		log = log[:0]
		b.Set("a", 2)

		assert.ElementsMatch(t, []string{"entries", "a=2"}, log)
	})

	t.Run("delete fires iterate and map-key-iterate but not unrelated key deps", func(t *testing.T) {
		b := newBag()
		b.Set("a", 1)
		b.Set("c", 1)

		log := []string{}
		reactor.Effect(func() { b.Entries(); log = append(log, "entries") })
		reactor.Effect(func() { b.Keys(); log = append(log, "keys") })
		reactor.Effect(func() { b.Get("c"); log = append(log, "get-c") })

		log = log[:0]
		b.Delete("a")

		assert.ElementsMatch(t, []string{"entries", "keys"}, log)
	})

	t.Run("clear fires every dep on the target", func(t *testing.T) {
		b := newBag()
		b.Set("a", 1)
		b.Set("c", 2)

		log := []string{}
		reactor.Effect(func() { b.Entries(); log = append(log, "entries") })
		reactor.Effect(func() { b.Get("a"); log = append(log, "get-a") })
		reactor.Effect(func() { b.Get("c"); log = append(log, "get-c") })

		log = log[:0]
		b.Clear()

		assert.ElementsMatch(t, []string{"entries", "get-a", "get-c"}, log)
	})

	t.Run("writing an unobserved key does nothing", func(t *testing.T) {
		c := newCell(1)
		reactor.Trigger(c, reactor.Set, "value", 2, 1, nil)
		// no panic, no effects to fire: target was never tracked
	})
}
