package internal

// Dep is the set of effects that have observed a single (target, key) slot.
// Membership is unordered; uniqueness is enforced. The w/n fields are
// recursion-depth bitmasks manipulated only by the effect currently
// walking this Dep during run/track (see effect.go, track.go).
type Dep struct {
	effects []*ReactiveEffect
	index   map[*ReactiveEffect]int

	w uint64 // was-tracked bits, one per recursion depth
	n uint64 // newly-tracked bits, one per recursion depth
}

// NewDep creates an empty Dep, optionally seeded with an initial effect
// list (used when trigger merges several Deps into one).
func NewDep(seed ...*ReactiveEffect) *Dep {
	d := &Dep{index: make(map[*ReactiveEffect]int, len(seed))}
	for _, e := range seed {
		d.Add(e)
	}
	return d
}

// Add inserts an effect, a no-op if already present.
func (d *Dep) Add(e *ReactiveEffect) {
	if _, ok := d.index[e]; ok {
		return
	}
	d.index[e] = len(d.effects)
	d.effects = append(d.effects, e)
}

// Delete removes an effect, reporting whether it was present.
func (d *Dep) Delete(e *ReactiveEffect) bool {
	i, ok := d.index[e]
	if !ok {
		return false
	}

	last := len(d.effects) - 1
	d.effects[i] = d.effects[last]
	d.index[d.effects[i]] = i
	d.effects = d.effects[:last]
	delete(d.index, e)
	return true
}

func (d *Dep) Has(e *ReactiveEffect) bool {
	_, ok := d.index[e]
	return ok
}

func (d *Dep) Len() int { return len(d.effects) }

// Each visits every member effect. The callback must not mutate the Dep.
func (d *Dep) Each(fn func(*ReactiveEffect)) {
	for _, e := range d.effects {
		fn(e)
	}
}

// Snapshot copies the current membership so callers can iterate safely
// while effects run (an effect firing may add/remove itself or others).
func (d *Dep) Snapshot() []*ReactiveEffect {
	out := make([]*ReactiveEffect, len(d.effects))
	copy(out, d.effects)
	return out
}

func (d *Dep) WasTracked(bit uint64) bool { return d.w&bit != 0 }
func (d *Dep) NewTracked(bit uint64) bool { return d.n&bit != 0 }
