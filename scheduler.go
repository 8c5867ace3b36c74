package reactor

import "github.com/lattice-run/reactor/internal"

// Job is an item in the scheduler's main queue, typically an effect's
// scheduler callback. Disabled defaults to false, so a job is active
// unless explicitly disabled.
type Job = internal.Job

// PostCb is a callback deferred until the main queue has drained; used
// for mounted/updated-style lifecycle hooks.
type PostCb = internal.PostCb

// QueueJob enqueues a normal job, id-ordered among existing jobs, run on
// the next drain.
func QueueJob(job *Job) {
	r := rt()
	r.Enter()
	defer r.Exit()
	r.QueueJob(job)
}

// QueuePostFlushCb enqueues a single post-phase callback.
func QueuePostFlushCb(cb *PostCb) {
	r := rt()
	r.Enter()
	defer r.Exit()
	r.QueuePostFlushCb(cb)
}

// QueuePostFlushCbBatch appends a lifecycle group of post-callbacks
// without deduplication.
func QueuePostFlushCbBatch(cbs []*PostCb) {
	r := rt()
	r.Enter()
	defer r.Exit()
	r.QueuePostFlushCbBatch(cbs)
}

// InvalidateJob removes a future job from the queue; a no-op if it is
// already running or not queued.
func InvalidateJob(job *Job) {
	rt().InvalidateJob(job)
}

// FlushPreFlushCbs runs every currently-queued pre-job immediately, in
// queue order. Used by watch-style callbacks that must observe
// pre-update state.
func FlushPreFlushCbs() {
	r := rt()
	r.Enter()
	defer r.Exit()
	r.FlushPreFlushCbs()
}

// NextTick returns a channel closed once the drain that was in flight
// (or about to begin) when NextTick was called has fully completed. fn,
// if given, runs right before the channel closes.
func NextTick(fn func()) <-chan struct{} {
	r := rt()
	r.Enter()
	defer r.Exit()
	return r.NextTick(fn)
}
