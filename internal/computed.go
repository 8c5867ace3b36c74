package internal

// Computed is an effect-backed memoized value: eager-notify variant.
// Its backing effect's scheduler flips a dirty flag and immediately
// propagates to downstream effects via its own Dep.
type Computed struct {
	rt     *Runtime
	value  any
	dirty  bool
	dep    *Dep
	effect *ReactiveEffect
}

func (rt *Runtime) NewComputed(getter func() any) *Computed {
	c := &Computed{rt: rt, dirty: true, dep: NewDep()}

	c.effect = rt.NewReactiveEffect(getter, nil, nil)
	c.effect.ComputedKind = kindComputed
	c.effect.ComputedRef = c
	c.effect.Scheduler = func(bool) {
		if !c.dirty {
			c.dirty = true
			rt.triggerRefValue(c.dep)
		}
	}

	return c
}

// Value tracks the current active effect against this computed's Dep,
// then recomputes if dirty. The recompute runs inside the backing
// effect's own tracking scope, so it re-subscribes to exactly the
// upstream Deps it still reads.
func (c *Computed) Value() any {
	c.rt.trackRefValue(c.dep)

	if c.dirty {
		c.dirty = false
		c.value = c.effect.Run()
	}

	return c.value
}

// DeferredComputed is the deferred-notify variant: downstream
// notifications are collapsed to a microtask and suppressed entirely
// when the eventual value is unchanged from its pre-change snapshot.
type DeferredComputed struct {
	rt     *Runtime
	value  any
	dirty  bool
	dep    *Dep
	effect *ReactiveEffect

	compareTarget    any
	hasCompareTarget bool
	scheduled        bool
}

func (rt *Runtime) NewDeferredComputed(getter func() any) *DeferredComputed {
	dc := &DeferredComputed{rt: rt, dirty: true, dep: NewDep()}

	dc.effect = rt.NewReactiveEffect(getter, nil, nil)
	dc.effect.ComputedKind = kindDeferred
	dc.effect.ComputedRef = dc
	dc.effect.Scheduler = dc.onSchedule

	return dc
}

// onSchedule has two distinct behaviors depending on where the trigger
// came from. computedTrigger true means an upstream DeferredComputed is
// notifying synchronously, ahead of its own microtask, so this value's
// chain stays coherent if it's read before anything actually resolves;
// it records the pre-burst snapshot, marks itself dirty, and returns
// without scheduling anything of its own. computedTrigger false means a genuine trigger —
// a direct upstream Dep, or the upstream DeferredComputed's own eventual
// triggerRefValue once its microtask resolves — and is what actually
// schedules this value's recompute.
func (dc *DeferredComputed) onSchedule(computedTrigger bool) {
	rt := dc.rt

	if !dc.hasCompareTarget {
		dc.compareTarget = dc.value
		dc.hasCompareTarget = true
	}

	if computedTrigger {
		dc.dirty = true
		return
	}

	if !dc.scheduled {
		dc.scheduled = true

		rt.scheduleMicrotask(func() {
			dc.scheduled = false

			newValue := dc.effect.Run()
			if !isEqual(newValue, dc.compareTarget) {
				dc.value = newValue
				rt.triggerRefValue(dc.dep)
			}
			dc.hasCompareTarget = false
		})
	}

	// keep chained deferred computeds coherent even when read
	// synchronously before the microtask fires: a downstream
	// DeferredComputed that depends on this one records its own
	// pre-burst snapshot now rather than waiting to be read.
	dc.dep.Each(func(e *ReactiveEffect) {
		if e.ComputedKind != kindDeferred {
			return
		}
		if downstream, ok := e.ComputedRef.(*DeferredComputed); ok {
			downstream.effect.Scheduler(true)
		}
	})

	dc.dirty = true
}

func (dc *DeferredComputed) Value() any {
	dc.rt.trackRefValue(dc.dep)

	if dc.dirty {
		dc.dirty = false
		dc.value = dc.effect.Run()
	}

	return dc.value
}

// isEqual compares by ==, which requires the getter's return value be a
// comparable type (this mirrors the source language's SameValue check;
// callers returning slices/maps/funcs from a DeferredComputed getter
// must wrap them in a comparable box).
func isEqual(a, b any) bool {
	return a == b
}
