// Package depthview maintains a downstream, read-only replica of top-of-book
// depth rebuilt from an audit event stream. It is the integration-layer
// component the core's concurrency model anticipates: a host that wants a
// thread-safe read view without touching the core's own state feeds it
// match.AuditEvents and reads depth back out under its own synchronization.
package depthview

import (
	"sync"

	"github.com/igrmk/treemap/v2"

	match "github.com/finch-markets/obcore"
)

// AggregatedView tracks aggregated resting quantity per price, per side,
// rebuilt incrementally from a stream of match.AuditEvents. It never
// consults the engine directly; it only ever sees what a match.AuditSink is
// given.
type AggregatedView struct {
	mu   sync.RWMutex
	bids *treemap.TreeMap[int64, uint64]
	asks *treemap.TreeMap[int64, uint64]

	lastSeq uint64
}

func descByInt64(a, b int64) bool { return a > b }
func ascByInt64(a, b int64) bool  { return a < b }

// NewAggregatedView constructs an empty view.
func NewAggregatedView() *AggregatedView {
	return &AggregatedView{
		bids: treemap.NewWithKeyCompare[int64, uint64](descByInt64),
		asks: treemap.NewWithKeyCompare[int64, uint64](ascByInt64),
	}
}

// Emit implements match.AuditSink so an AggregatedView can be wired
// straight into match.WithAuditSink. Every event kind carries enough
// information on its own to apply — no per-order state needs to be
// retained between events, unlike a naive Open/Filled pairing would
// require.
func (v *AggregatedView) Emit(e match.AuditEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeq++

	switch e.Kind {
	case match.AuditOpen:
		v.addLocked(e.Side, e.Price, uint64(e.Quantity))
	case match.AuditMatched:
		// A trade always depletes the resting order, which sits on the
		// side opposite the aggressor recorded in the event.
		v.subLocked(e.Side.Opposite(), e.Price, uint64(e.Quantity))
	case match.AuditCancelled:
		v.subLocked(e.Side, e.Price, uint64(e.Quantity))
	case match.AuditDiscarded:
		// A discarded order never rested, so it never contributed depth;
		// nothing to unwind.
	}
}

func (v *AggregatedView) sideMap(side match.Side) *treemap.TreeMap[int64, uint64] {
	if side == match.Buy {
		return v.bids
	}
	return v.asks
}

func (v *AggregatedView) addLocked(side match.Side, price int64, qty uint64) {
	m := v.sideMap(side)
	cur, _ := m.Get(price)
	m.Set(price, cur+qty)
}

func (v *AggregatedView) subLocked(side match.Side, price int64, qty uint64) {
	m := v.sideMap(side)
	cur, ok := m.Get(price)
	if !ok {
		return
	}
	if cur <= qty {
		m.Del(price)
		return
	}
	m.Set(price, cur-qty)
}

// Depth returns the aggregated resting quantity at price on side. Returns
// zero if the level does not exist.
func (v *AggregatedView) Depth(side match.Side, price int64) uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	qty, _ := v.sideMap(side).Get(price)
	return qty
}

// EventsApplied reports how many audit events this view has folded in. The
// engine emits one event per trade plus one per open, discard and cancel, so
// this count is not the same quantity as an engine's TotalOrders.
func (v *AggregatedView) EventsApplied() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastSeq
}
