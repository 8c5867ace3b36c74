package internal

// TriggerOpType identifies the kind of mutation that fired.
type TriggerOpType int

const (
	TriggerSet TriggerOpType = iota
	TriggerAdd
	TriggerDelete
	TriggerClear
)

// TargetKind distinguishes plain objects from sequence ("array"-like) and
// keyed-collection ("map/set"-like) targets, since trigger dispatch has
// special rules for each.
type TargetKind int

const (
	KindObject TargetKind = iota
	KindArray
	KindCollection
)

// Kinded lets the proxy layer (out of scope for this core) tell Trigger
// what shape a target has. Targets that don't implement it are treated
// as plain objects.
type Kinded interface {
	ReactiveKind() TargetKind
}

func kindOf(target any) TargetKind {
	if k, ok := target.(Kinded); ok {
		return k.ReactiveKind()
	}
	return KindObject
}

type sentinelKey struct{ name string }

func (s *sentinelKey) String() string { return s.name }

// IterateKey and MapKeyIterateKey are the process-wide sentinel keys for
// keyed iteration and keys-only iteration of collection targets.
var (
	IterateKey       = &sentinelKey{"iterate"}
	MapKeyIterateKey = &sentinelKey{"mapKeyIterate"}
)

// LengthKey is the literal key sequence-length changes are tracked under.
const LengthKey = "length"

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}

// Trigger resolves the Deps affected by a write to (target, key) and
// fires their effects.
func (rt *Runtime) Trigger(target any, typ TriggerOpType, key, newValue, oldValue, oldTarget any) {
	depsMap, ok := rt.targetMap.DepsMapFor(target)
	if !ok {
		return
	}

	isArray := kindOf(target) == KindArray
	isCollection := kindOf(target) == KindCollection

	var deps []*Dep
	add := func(k any) {
		if d, ok := depsMap[k]; ok {
			deps = append(deps, d)
		}
	}

	switch {
	case typ == TriggerClear:
		for _, d := range depsMap {
			deps = append(deps, d)
		}

	case isArray && key == LengthKey:
		newLen, _ := toInt(newValue)
		for k, d := range depsMap {
			if k == LengthKey {
				deps = append(deps, d)
				continue
			}
			if idx, ok := toInt(k); ok && idx >= newLen {
				deps = append(deps, d)
			}
		}

	default:
		if key != nil {
			add(key)
		}

		switch typ {
		case TriggerAdd:
			if !isArray {
				add(IterateKey)
				if isCollection {
					add(MapKeyIterateKey)
				}
			} else if _, ok := toInt(key); ok {
				add(LengthKey)
			}
		case TriggerDelete:
			if !isArray {
				add(IterateKey)
				if isCollection {
					add(MapKeyIterateKey)
				}
			}
		case TriggerSet:
			if isCollection {
				add(IterateKey)
			}
		}
	}

	switch len(deps) {
	case 0:
		return
	case 1:
		rt.triggerEffects(deps[0])
	default:
		merged := NewDep()
		for _, d := range deps {
			d.Each(func(e *ReactiveEffect) { merged.Add(e) })
		}
		rt.triggerEffects(merged)
	}
}

// triggerEffects fires every effect bound to dep in two passes: computed
// effects first, then everything else.
func (rt *Runtime) triggerEffects(dep *Dep) {
	effects := dep.Snapshot()

	for _, e := range effects {
		if e.ComputedKind != notComputed {
			rt.triggerEffect(e)
		}
	}
	for _, e := range effects {
		if e.ComputedKind == notComputed {
			rt.triggerEffect(e)
		}
	}
}

// triggerRefValue is the Computed/DeferredComputed counterpart to
// trackRefValue: it runs triggerEffects on a ref's own Dep.
func (rt *Runtime) triggerRefValue(dep *Dep) {
	if dep.Len() > 0 {
		rt.triggerEffects(dep)
	}
}

func (rt *Runtime) triggerEffect(e *ReactiveEffect) {
	if e == rt.activeEffect && !e.AllowRecurse {
		return
	}

	if e.OnTrigger != nil {
		e.OnTrigger(DebugEvent{Effect: e})
	}

	if e.Scheduler != nil {
		e.Scheduler(false)
	} else {
		e.Run()
	}
}
