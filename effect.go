package reactor

import "github.com/lattice-run/reactor/internal"

// EffectOptions configures an effect at construction.
type EffectOptions struct {
	// Lazy skips the first run; the caller runs it via Runner.Run.
	Lazy bool

	// Scheduler, if set, replaces direct run-on-trigger: on trigger the
	// effect hands itself to this callback instead of re-running
	// immediately.
	Scheduler func()

	// Scope registers the effect with an external lifecycle collaborator.
	Scope EffectScope

	// AllowRecurse permits the effect to re-trigger itself.
	AllowRecurse bool

	OnStop    func()
	OnTrack   func(DebugEvent)
	OnTrigger func(DebugEvent)
}

// Runner is the handle returned by Effect: invoking Run re-runs the
// effect, and it carries a back-reference to the underlying effect
// object for Stop.
type Runner struct {
	effect *internal.ReactiveEffect
	rt     *internal.Runtime
}

// Effect creates and, unless Lazy, immediately runs a reactive effect:
// a function whose reads are tracked and which re-runs (directly, or via
// its scheduler) whenever any observed dependency fires.
func Effect(fn func(), opts ...EffectOptions) *Runner {
	var o EffectOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	r := rt()

	var scheduler func(bool)
	if o.Scheduler != nil {
		userScheduler := o.Scheduler
		scheduler = func(bool) { userScheduler() }
	}

	effect := r.NewReactiveEffect(func() any {
		fn()
		return nil
	}, scheduler, o.Scope)

	effect.AllowRecurse = o.AllowRecurse
	effect.OnStop = o.OnStop

	if o.OnTrack != nil {
		userOnTrack := o.OnTrack
		effect.OnTrack = func(e internal.DebugEvent) { userOnTrack(e) }
	}
	if o.OnTrigger != nil {
		userOnTrigger := o.OnTrigger
		effect.OnTrigger = func(e internal.DebugEvent) { userOnTrigger(e) }
	}

	runner := &Runner{effect: effect, rt: r}

	if !o.Lazy {
		runner.Run()
	}

	return runner
}

// Run re-runs the effect, tracking whatever it reads this time.
func (r *Runner) Run() any {
	r.rt.Enter()
	defer r.rt.Exit()
	return r.effect.Run()
}

// Stop terminates the effect; a second call is a no-op.
func Stop(r *Runner) {
	r.rt.Enter()
	defer r.rt.Exit()
	r.effect.Stop()
}
