package internal

import "log"

// ErrorHandler routes a job-internal panic (or any other core-internal
// failure) to the host. code identifies the failing phase (see
// ErrCodeScheduler); job is the scheduler Job involved, or nil.
type ErrorHandler func(err any, code string, job *Job)

// WarnHandler surfaces non-fatal warnings (e.g. recursion-limit
// overflow) to the host.
type WarnHandler func(message string)

// Runtime holds every piece of process-wide mutable state: the
// active-effect chain, the tracking flags and depth/bit counters, the
// TargetMap, and the scheduler. One Runtime is
// owned per calling goroutine (see runtime_default.go/runtime_wasm.go),
// which keeps the single-active-effect invariant (I2) trivially true
// without any locking on the hot path.
type Runtime struct {
	activeEffect *ReactiveEffect
	shouldTrack  bool
	trackStack   []bool

	effectTrackDepth int
	trackOpBit       uint64

	targetMap *TargetMap
	scheduler *Scheduler

	// depth counts nested entries from the host into this Runtime's
	// public surface; microtasks queued while depth > 0 are deferred
	// until the outermost call returns (see scheduleMicrotask).
	depth      int
	microtasks []func()

	errorHandler ErrorHandler
	warnHandler  WarnHandler
}

func NewRuntime() *Runtime {
	return &Runtime{
		shouldTrack:  true,
		targetMap:    NewTargetMap(),
		scheduler:    NewScheduler(),
		errorHandler: defaultErrorHandler,
		warnHandler:  defaultWarnHandler,
	}
}

func defaultErrorHandler(err any, code string, job *Job) {
	panic(err)
}

func defaultWarnHandler(msg string) {
	log.Printf("reactor: %s", msg)
}

func (rt *Runtime) SetErrorHandler(h ErrorHandler) {
	if h != nil {
		rt.errorHandler = h
	}
}

func (rt *Runtime) SetWarnHandler(h WarnHandler) {
	if h != nil {
		rt.warnHandler = h
	}
}

func (rt *Runtime) handleError(err any, job *Job, code string) {
	rt.errorHandler(err, code, job)
}

func (rt *Runtime) warn(msg string) {
	rt.warnHandler(msg)
}

func (rt *Runtime) ActiveEffect() *ReactiveEffect { return rt.activeEffect }

// Forget explicitly evicts target's entry from the TargetMap (see
// targetmap.go for why this exists instead of weak retention).
func (rt *Runtime) Forget(target any) {
	rt.targetMap.Forget(target)
}

// Batch groups everything fn does into a single drain: nested Batch
// calls (and every other public entry point, which brackets itself with
// Enter/Exit the same way) just increase depth, and only the outermost
// one flushes. This is the library's only stand-in for the yield point
// a real microtask queue gets for free; without it, two sibling
// top-level calls each flush on their own.
func (rt *Runtime) Batch(fn func()) {
	rt.Enter()
	defer rt.Exit()
	fn()
}

// Enter/Exit bracket a host call into this Runtime's public surface.
// Exit drains any microtasks queued during the call once depth returns
// to zero — this is the substrate both the scheduler's flush-on-queue
// and DeferredComputed's own microtask build on.
func (rt *Runtime) Enter() { rt.depth++ }

func (rt *Runtime) Exit() {
	rt.depth--
	if rt.depth == 0 {
		rt.drainMicrotasks()
	}
}

func (rt *Runtime) drainMicrotasks() {
	for len(rt.microtasks) > 0 {
		tasks := rt.microtasks
		rt.microtasks = nil
		for _, t := range tasks {
			t()
		}
	}
}

func (rt *Runtime) scheduleMicrotask(fn func()) {
	if rt.depth == 0 {
		fn()
		return
	}
	rt.microtasks = append(rt.microtasks, fn)
}
