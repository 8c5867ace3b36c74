package internal

// TargetMap is the process-wide (per-Runtime) two-level mapping from
// target to key to Dep. The source language keys the outer level weakly
// so a reactive object can be collected while only referenced from here;
// Go has no ergonomic weak map over arbitrary `any` keys, so the outer
// level is a plain map and a target is retained until explicitly evicted
// with Forget, or for the Runtime's lifetime.
type TargetMap struct {
	m map[any]map[any]*Dep
}

func NewTargetMap() *TargetMap {
	return &TargetMap{m: make(map[any]map[any]*Dep)}
}

// DepsMapFor returns the per-target key->Dep map, if the target has ever
// been tracked.
func (t *TargetMap) DepsMapFor(target any) (map[any]*Dep, bool) {
	m, ok := t.m[target]
	return m, ok
}

// GetOrCreateDep resolves the Dep for (target, key), creating the target's
// map and/or the Dep itself as needed. A target is inserted lazily on
// first track and is never removed implicitly.
func (t *TargetMap) GetOrCreateDep(target, key any) *Dep {
	m, ok := t.m[target]
	if !ok {
		m = make(map[any]*Dep)
		t.m[target] = m
	}

	d, ok := m[key]
	if !ok {
		d = NewDep()
		m[key] = d
	}

	return d
}

// Forget explicitly evicts a target's entire dep-map entry.
func (t *TargetMap) Forget(target any) {
	delete(t.m, target)
}
