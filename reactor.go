// Package reactor is a fine-grained reactive update engine: a
// dependency-tracking graph coupled to a deterministic job scheduler.
//
// The proxy layer that turns property reads/writes on a host's reactive
// objects into Track/Trigger calls, the component renderer that
// schedules its own jobs, and any lifecycle-grouping facility are all
// external collaborators — this package only provides the graph, the
// effect lifecycle, and the scheduler they sit on top of.
package reactor

import "github.com/lattice-run/reactor/internal"

// TrackOpType identifies why a read is being tracked.
type TrackOpType = internal.TrackOpType

const (
	Get     = internal.TrackGet
	Has     = internal.TrackHas
	Iterate = internal.TrackIterate
)

// TriggerOpType identifies the kind of mutation that fired.
type TriggerOpType = internal.TriggerOpType

const (
	Set    = internal.TriggerSet
	Add    = internal.TriggerAdd
	Delete = internal.TriggerDelete
	Clear  = internal.TriggerClear
)

// TargetKind distinguishes plain objects from sequence-like and
// keyed-collection-like targets.
type TargetKind = internal.TargetKind

const (
	KindObject     = internal.KindObject
	KindArray      = internal.KindArray
	KindCollection = internal.KindCollection
)

// Kinded lets a host's reactive-object wrapper tell Trigger what shape a
// target has; targets that don't implement it are treated as plain
// objects.
type Kinded = internal.Kinded

// IterateKey and MapKeyIterateKey are the sentinel keys representing
// dependency on a collection's iteration order (of values, and of keys
// respectively).
var (
	IterateKey       any = internal.IterateKey
	MapKeyIterateKey any = internal.MapKeyIterateKey
)

// LengthKey is the literal key sequence-length changes are tracked under.
const LengthKey = internal.LengthKey

// EffectScope is the external lifecycle-grouping collaborator an effect
// registers itself with at construction, if one is given.
type EffectScope = internal.EffectScope

// DebugEvent is the payload passed to OnTrack/OnTrigger hooks.
type DebugEvent = internal.DebugEvent

// ErrCodeScheduler is the error code a job-internal panic is routed to
// the error handler with.
const ErrCodeScheduler = internal.ErrCodeScheduler

func rt() *internal.Runtime { return internal.GetRuntime() }

// Track records that the current active effect observed (target, key).
// Called by the proxy layer on a property read.
func Track(target any, typ TrackOpType, key any) {
	r := rt()
	r.Enter()
	defer r.Exit()
	r.Track(target, key, typ)
}

// Trigger fires the effects bound to (target, key) (or, for CLEAR/
// length-truncation, every affected Dep). Called by the proxy layer on a
// property write.
func Trigger(target any, typ TriggerOpType, key, newValue, oldValue, oldTarget any) {
	r := rt()
	r.Enter()
	defer r.Exit()
	r.Trigger(target, typ, key, newValue, oldValue, oldTarget)
}

// PauseTracking / EnableTracking / ResetTracking push/pop whether Track
// records dependencies. Used by lifecycle callers that must not accrue
// spurious dependencies (e.g. rendering a fallback branch).
func PauseTracking()  { rt().PauseTracking() }
func EnableTracking() { rt().EnableTracking() }
func ResetTracking()  { rt().ResetTracking() }

// SetErrorHandler installs the collaborator that job-internal panics and
// other core-internal failures are routed to, replacing the default
// (re-panic).
func SetErrorHandler(h func(err any, code string, job *Job)) { rt().SetErrorHandler(h) }

// SetWarnHandler installs the collaborator non-fatal warnings (recursion
// overflow) are routed to, replacing the default (log.Printf).
func SetWarnHandler(h func(message string)) { rt().SetWarnHandler(h) }

// Forget explicitly evicts target's tracked Deps. See internal/targetmap.go
// for why this core can't retain targets weakly.
func Forget(target any) { rt().Forget(target) }

// Batch groups every Track/Trigger/QueueJob call fn makes into a single
// drain. Without a real promise microtask queue to fall back on, this is
// how a host coalesces several independent top-level mutations into one
// flush — calls already nested inside one outer entry point (e.g. every
// effect a single Trigger fires) coalesce on their own.
func Batch(fn func()) { rt().Batch(fn) }
