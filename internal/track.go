package internal

// TrackOpType identifies why a read is being tracked.
type TrackOpType int

const (
	TrackGet TrackOpType = iota
	TrackHas
	TrackIterate
)

// Track records that the current active effect observed (target, key),
// called by the proxy layer on a read. A no-op outside a tracking scope.
func (rt *Runtime) Track(target, key any, typ TrackOpType) {
	if !rt.shouldTrack || rt.activeEffect == nil {
		return
	}

	dep := rt.targetMap.GetOrCreateDep(target, key)

	if e := rt.activeEffect; e.OnTrack != nil {
		e.OnTrack(DebugEvent{Effect: e, Target: target, Type: typ, Key: key})
	}

	rt.trackEffects(dep)
}

// trackEffects subscribes the active effect to dep, under either the
// bitmarker scheme (depth <= maxMarkerBits) or the full-cleanup fallback.
func (rt *Runtime) trackEffects(dep *Dep) {
	e := rt.activeEffect
	shouldSub := false

	if rt.effectTrackDepth <= maxMarkerBits {
		if !dep.NewTracked(rt.trackOpBit) {
			dep.n |= rt.trackOpBit
			shouldSub = !dep.WasTracked(rt.trackOpBit)
		}
	} else {
		shouldSub = !dep.Has(e)
	}

	if shouldSub {
		dep.Add(e)
		e.Deps = append(e.Deps, dep)
	}
}

// trackRefValue is the Computed/DeferredComputed entry point: it
// subscribes the active effect to a ref's own Dep.
func (rt *Runtime) trackRefValue(dep *Dep) {
	if rt.shouldTrack && rt.activeEffect != nil {
		rt.trackEffects(dep)
	}
}

// PauseTracking / EnableTracking / ResetTracking push/pop shouldTrack.
func (rt *Runtime) PauseTracking() {
	rt.trackStack = append(rt.trackStack, rt.shouldTrack)
	rt.shouldTrack = false
}

func (rt *Runtime) EnableTracking() {
	rt.trackStack = append(rt.trackStack, rt.shouldTrack)
	rt.shouldTrack = true
}

func (rt *Runtime) ResetTracking() {
	n := len(rt.trackStack)
	if n == 0 {
		rt.shouldTrack = true
		return
	}

	rt.shouldTrack = rt.trackStack[n-1]
	rt.trackStack = rt.trackStack[:n-1]
}
