package reactor_test

import (
	"testing"

	"github.com/lattice-run/reactor"
	"github.com/stretchr/testify/assert"
)

func TestTracking(t *testing.T) {
	t.Run("pauseTracking suppresses subscription until reset", func(t *testing.T) {
		c := newCell(1)
		runs := 0

		reactor.Effect(func() {
			reactor.PauseTracking()
			c.Read()
			reactor.ResetTracking()
			runs++
		})
		assert.Equal(t, 1, runs)

		c.Write(2)
		assert.Equal(t, 1, runs, "read under PauseTracking must not subscribe")
	})

	t.Run("enableTracking inside a paused scope re-subscribes, reset restores the outer state", func(t *testing.T) {
		d := newCell(1)
		runs := 0

		reactor.Effect(func() {
			reactor.PauseTracking()
			reactor.EnableTracking()
			d.Read()
			reactor.ResetTracking() // pops back to the paused state pushed by EnableTracking
			runs++
		})
		assert.Equal(t, 1, runs)

		d.Write(2)
		assert.Equal(t, 2, runs, "read under a nested EnableTracking must subscribe")
	})

	t.Run("dep set tracks exactly what the most recent run observed", func(t *testing.T) {
		a := newCell(1)
		b := newCell(2)
		useA := true
		runs := 0

		r := reactor.Effect(func() {
			if useA {
				a.Read()
			} else {
				b.Read()
			}
			runs++
		})
		assert.Equal(t, 1, runs)

		a.Write(10)
		assert.Equal(t, 2, runs, "still subscribed to a")

		useA = false
		r.Run()
		assert.Equal(t, 3, runs)

		a.Write(20)
		assert.Equal(t, 3, runs, "a dropped from Deps by the bitmarker sweep, must not retrigger")

		b.Write(99)
		assert.Equal(t, 4, runs, "b newly subscribed by the same run")
	})

	t.Run("full-cleanup fallback past the bitmarker depth still tracks correctly", func(t *testing.T) {
		c := newCell(0)
		innermostRuns := 0

		var build func(depth int)
		build = func(depth int) {
			if depth == 0 {
				reactor.Effect(func() {
					c.Read()
					innermostRuns++
				})
				return
			}
			reactor.Effect(func() {
				build(depth - 1)
			})
		}

		// 36 nested effect levels, past maxMarkerBits (30), forces the
		// innermost effect's subscription onto the full-cleanup fallback.
		build(35)
		assert.Equal(t, 1, innermostRuns)

		c.Write(1)
		assert.Equal(t, 2, innermostRuns)

		c.Write(2)
		assert.Equal(t, 3, innermostRuns)
	})
}
