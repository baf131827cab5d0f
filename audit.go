package match

import (
	"sync"

	"github.com/rs/xid"
)

// AuditKind identifies which order-lifecycle transition an AuditEvent
// describes.
type AuditKind uint8

const (
	// AuditOpen fires once, when an order's residual quantity (after any
	// immediate matching) enters the book as a resting order. Quantity is
	// the resting amount, not the originally submitted amount.
	AuditOpen AuditKind = iota
	// AuditMatched fires once per trade. Side is the aggressor's side —
	// a depth consumer must apply the quantity to the OPPOSITE side at
	// Price, since a trade always depletes the resting (maker) order.
	AuditMatched
	// AuditCancelled fires when a resting order is removed by Cancel.
	// Quantity is the order's remaining quantity at the moment of removal.
	AuditCancelled
	// AuditDiscarded fires when a market order's residual quantity is
	// thrown away after exhausting the opposite side. It never affects
	// resting depth, because a market order never rests to begin with.
	AuditDiscarded
)

func (k AuditKind) String() string {
	switch k {
	case AuditOpen:
		return "open"
	case AuditMatched:
		return "matched"
	case AuditCancelled:
		return "cancelled"
	case AuditDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// AuditEvent is a recycled record of a single order-lifecycle transition.
// CorrelationID is assigned once per Engine call (submit or cancel) and
// stamped onto every event that call emits, so a downstream consumer can
// tie together the events from a single submission (one Open or Discarded
// plus zero or more Matched events from the resting orders it consumed)
// without the core needing to know anything about trade IDs or sequencing
// beyond "these happened together."
//
// The Engine builds a fresh AuditEvent for every transition and passes it to
// Emit by value; the Engine itself keeps no pool of events. A sink is free to
// retain the value it receives — see MemoryAuditSink, which copies each one
// into pool-backed storage of its own.
type AuditEvent struct {
	CorrelationID xid.ID
	Kind          AuditKind
	OrderID       uint64
	Side          Side
	Price         int64
	Quantity      uint32
	Timestamp     int64
}

// AuditSink receives AuditEvents as they occur. Emit is called synchronously
// from the Engine method that produced the event, with the event passed by
// value.
type AuditSink interface {
	Emit(AuditEvent)
}

var auditEventPool = sync.Pool{
	New: func() any { return new(AuditEvent) },
}

// The engine hands events to Emit by value, so the pool above backs the
// sinks below rather than the engine's call site; sinks that want to hold on
// to events past the call use acquireAuditEvent to get pool-backed storage
// for their own clone.
func acquireAuditEvent() *AuditEvent {
	return auditEventPool.Get().(*AuditEvent)
}

func releaseAuditEvent(e *AuditEvent) {
	*e = AuditEvent{}
	auditEventPool.Put(e)
}

// NoopAuditSink discards every event. It is the Engine's default so that
// audit wiring is opt-in.
type NoopAuditSink struct{}

func (NoopAuditSink) Emit(AuditEvent) {}

// MemoryAuditSink stores a clone of every event it receives, useful for
// tests and for small deployments that don't need a real downstream
// subscriber.
type MemoryAuditSink struct {
	mu     sync.Mutex
	events []*AuditEvent
}

func NewMemoryAuditSink() *MemoryAuditSink {
	return &MemoryAuditSink{}
}

func (s *MemoryAuditSink) Emit(e AuditEvent) {
	clone := acquireAuditEvent()
	*clone = e
	s.mu.Lock()
	s.events = append(s.events, clone)
	s.mu.Unlock()
}

func (s *MemoryAuditSink) Events() []AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AuditEvent, len(s.events))
	for i, e := range s.events {
		out[i] = *e
	}
	return out
}

// Close releases every retained event back to the pool. Callers that are
// done inspecting Events() should call this to let the pool recycle the
// backing storage.
func (s *MemoryAuditSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		releaseAuditEvent(e)
	}
	s.events = nil
}
