package internal

import (
	"fmt"
	"math"
	"sort"
)

// recursionLimit bounds how many times a single job or post-callback may
// re-invoke itself within one drain before it is skipped with a warning.
const recursionLimit = 100

// ErrCodeScheduler is the error code a job-internal panic is routed to
// the error handler with.
const ErrCodeScheduler = "scheduler"

// Job is an item in the scheduler's main queue, typically an effect's
// scheduler callback. Disabled defaults to false, so the Go zero value
// is "active".
type Job struct {
	Fn           func()
	ID           *int
	Pre          bool
	Disabled     bool
	ComputedJob  bool
	AllowRecurse bool
	Owner        string // component/owner name surfaced in recursion warnings
}

// PostCb is a callback deferred until the main queue has drained.
type PostCb struct {
	Fn           func()
	ID           *int
	AllowRecurse bool
}

// Scheduler holds the process-wide (per-Runtime) two-phase job queue
// state: a main id-ordered queue plus a separate post-flush callback
// queue drained once the main queue empties.
type Scheduler struct {
	queue      []*Job
	flushIndex int

	pendingPostFlushCbs []*PostCb
	activePostFlushCbs  []*PostCb
	postFlushIndex      int

	isFlushing     bool
	isFlushPending bool

	tickCallbacks []func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func getJobID(j *Job) int {
	if j == nil || j.ID == nil {
		return math.MaxInt
	}
	return *j.ID
}

func getPostID(c *PostCb) int {
	if c == nil || c.ID == nil {
		return math.MaxInt
	}
	return *c.ID
}

func indexOfJob(queue []*Job, job *Job, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(queue); i++ {
		if queue[i] == job {
			return i
		}
	}
	return -1
}

// findInsertionIndex binary-searches [flushIndex+1, len(queue)) for the
// first slot whose id is not less than id, matching queueJob's insertion
// rule regardless of where the dedup scan started.
func findInsertionIndex(queue []*Job, flushIndex, id int) int {
	start := flushIndex + 1
	end := len(queue)

	for start < end {
		mid := (start + end) / 2
		if getJobID(queue[mid]) < id {
			start = mid + 1
		} else {
			end = mid
		}
	}

	return start
}

// QueueJob enqueues a normal job, deduplicating against the queue from
// flushIndex (or flushIndex+1 during a self-recursing flush).
func (rt *Runtime) QueueJob(job *Job) {
	sch := rt.scheduler

	from := sch.flushIndex
	if sch.isFlushing && job.AllowRecurse {
		from = sch.flushIndex + 1
	}

	if indexOfJob(sch.queue, job, from) != -1 {
		return
	}

	if job.ID == nil {
		sch.queue = append(sch.queue, job)
	} else {
		idx := findInsertionIndex(sch.queue, sch.flushIndex, *job.ID)
		if idx > len(sch.queue) {
			// findInsertionIndex searches from flushIndex+1 regardless of
			// queue length (matching the source's splice, which clamps a
			// start past the array's end to an append).
			idx = len(sch.queue)
		}
		sch.queue = append(sch.queue, nil)
		copy(sch.queue[idx+1:], sch.queue[idx:])
		sch.queue[idx] = job
	}

	rt.queueFlush()
}

// QueuePostFlushCb enqueues a single post-phase callback, deduplicating
// against the currently-draining post list if one is active.
func (rt *Runtime) QueuePostFlushCb(cb *PostCb) {
	sch := rt.scheduler

	from := sch.postFlushIndex
	if cb.AllowRecurse {
		from = sch.postFlushIndex + 1
	}

	dup := false
	if sch.activePostFlushCbs != nil {
		for i := from; i < len(sch.activePostFlushCbs); i++ {
			if sch.activePostFlushCbs[i] == cb {
				dup = true
				break
			}
		}
	}

	if !dup {
		sch.pendingPostFlushCbs = append(sch.pendingPostFlushCbs, cb)
	}

	rt.queueFlush()
}

// QueuePostFlushCbBatch appends a lifecycle group of post-callbacks
// without deduplication.
func (rt *Runtime) QueuePostFlushCbBatch(cbs []*PostCb) {
	rt.scheduler.pendingPostFlushCbs = append(rt.scheduler.pendingPostFlushCbs, cbs...)
	rt.queueFlush()
}

// InvalidateJob removes job from the queue if it sits strictly after the
// job currently running; a no-op otherwise.
func (rt *Runtime) InvalidateJob(job *Job) {
	sch := rt.scheduler
	i := indexOfJob(sch.queue, job, 0)
	if i > sch.flushIndex {
		sch.queue = append(sch.queue[:i], sch.queue[i+1:]...)
	}
}

// FlushPreFlushCbs scans the queue for pre-jobs and runs them immediately,
// splicing each out before invoking it and rescanning from the mutated
// index (preserving the source's observed splice-then-recurse semantics,
// even when a pre-job enqueues another pre-job behind the cursor).
func (rt *Runtime) FlushPreFlushCbs() {
	sch := rt.scheduler

	i := 0
	if sch.isFlushing {
		i = sch.flushIndex + 1
	}

	for ; i < len(sch.queue); i++ {
		job := sch.queue[i]
		if job != nil && job.Pre {
			sch.queue = append(sch.queue[:i], sch.queue[i+1:]...)
			i--
			rt.invokeJob(job)
		}
	}
}

func (rt *Runtime) queueFlush() {
	sch := rt.scheduler
	if !sch.isFlushing && !sch.isFlushPending {
		sch.isFlushPending = true
		rt.scheduleMicrotask(func() { rt.flushJobs(nil) })
	}
}

func comparator(a, b *Job) bool {
	ai, bi := getJobID(a), getJobID(b)
	if ai != bi {
		return ai < bi
	}

	aPre := a != nil && a.Pre
	bPre := b != nil && b.Pre
	return aPre && !bPre
}

// flushJobs is the drain loop. seen tracks invocation counts across this
// outer call and every recursive call it makes at its own end, so a job that keeps re-enqueuing itself is caught by
// recursionLimit; a brand new flush (started fresh from queueFlush) gets
// its own seen map.
func (rt *Runtime) flushJobs(seen map[any]int) {
	sch := rt.scheduler
	sch.isFlushPending = false
	sch.isFlushing = true

	if seen == nil {
		seen = make(map[any]int)
	}

	sort.SliceStable(sch.queue, func(i, j int) bool {
		return comparator(sch.queue[i], sch.queue[j])
	})

	for sch.flushIndex = 0; sch.flushIndex < len(sch.queue); sch.flushIndex++ {
		job := sch.queue[sch.flushIndex]
		if job == nil || job.Disabled {
			continue
		}
		if rt.checkRecursiveUpdates(seen, job, job.Owner) {
			continue
		}
		rt.invokeJob(job)
	}

	sch.flushIndex = 0
	sch.queue = sch.queue[:0]

	rt.flushPostFlushCbs(seen)

	sch.isFlushing = false

	if len(sch.queue) > 0 || len(sch.pendingPostFlushCbs) > 0 {
		rt.flushJobs(seen)
		return
	}

	cbs := sch.tickCallbacks
	sch.tickCallbacks = nil
	for _, cb := range cbs {
		cb()
	}
}

func (rt *Runtime) flushPostFlushCbs(seen map[any]int) {
	sch := rt.scheduler
	if len(sch.pendingPostFlushCbs) == 0 {
		return
	}

	deduped := dedupePostCbs(sch.pendingPostFlushCbs)
	sch.pendingPostFlushCbs = sch.pendingPostFlushCbs[:0]

	if sch.activePostFlushCbs != nil {
		// nested flush: let the outer drain process these
		sch.activePostFlushCbs = append(sch.activePostFlushCbs, deduped...)
		return
	}

	sch.activePostFlushCbs = deduped
	sort.SliceStable(sch.activePostFlushCbs, func(i, j int) bool {
		return getPostID(sch.activePostFlushCbs[i]) < getPostID(sch.activePostFlushCbs[j])
	})

	for sch.postFlushIndex = 0; sch.postFlushIndex < len(sch.activePostFlushCbs); sch.postFlushIndex++ {
		cb := sch.activePostFlushCbs[sch.postFlushIndex]
		if rt.checkRecursiveUpdates(seen, cb, "") {
			continue
		}
		rt.invokePostCb(cb)
	}

	sch.activePostFlushCbs = nil
	sch.postFlushIndex = 0
}

func dedupePostCbs(cbs []*PostCb) []*PostCb {
	seen := make(map[*PostCb]struct{}, len(cbs))
	out := make([]*PostCb, 0, len(cbs))

	for _, cb := range cbs {
		if _, ok := seen[cb]; ok {
			continue
		}
		seen[cb] = struct{}{}
		out = append(out, cb)
	}

	return out
}

func (rt *Runtime) checkRecursiveUpdates(seen map[any]int, item any, owner string) bool {
	count := seen[item]
	seen[item] = count + 1

	if count > recursionLimit {
		suffix := ""
		if owner != "" {
			suffix = fmt.Sprintf(" in component <%s>", owner)
		}
		rt.warn(fmt.Sprintf(
			"Maximum recursive updates exceeded%s. This means a reactive effect is mutating its own dependencies and thus recursively triggering itself.",
			suffix,
		))
		return true
	}

	return false
}

func (rt *Runtime) invokeJob(job *Job) {
	defer func() {
		if r := recover(); r != nil {
			rt.handleError(r, job, ErrCodeScheduler)
		}
	}()
	job.Fn()
}

func (rt *Runtime) invokePostCb(cb *PostCb) {
	defer func() {
		if r := recover(); r != nil {
			rt.handleError(r, nil, ErrCodeScheduler)
		}
	}()
	cb.Fn()
}

// NextTick returns a channel closed once the drain that was in flight
// (or about to begin) when NextTick was called has fully completed; if
// no drain is pending it resolves immediately. fn, if given, runs right
// before the channel closes.
func (rt *Runtime) NextTick(fn func()) <-chan struct{} {
	ch := make(chan struct{})
	cb := func() {
		if fn != nil {
			fn()
		}
		close(ch)
	}

	sch := rt.scheduler
	if sch.isFlushing || sch.isFlushPending {
		sch.tickCallbacks = append(sch.tickCallbacks, cb)
	} else {
		cb()
	}

	return ch
}
