package runtime

import "sync/atomic"

var nextOid uint64

// oid returns a process-local, monotonically increasing identity used to
// give List/Object/Function reference-equality independent of their
// contents. Grounded on original_source/src/{oid,vm/rid}.rs's
// AtomicUsize-backed counters; sync/atomic is the stdlib counterpart, and
// no third-party library specializes "process-local monotonic id" any
// further.
func oid() uint64 {
	return atomic.AddUint64(&nextOid, 1)
}
