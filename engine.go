package match

import (
	"time"

	"github.com/rs/xid"
)

// Engine is the single-instrument matching core. It is not safe for
// concurrent use — every exported method must be called from one goroutine
// at a time, or serialized by an integration layer such as actorfeed (see
// SPEC_FULL.md §5, §10.4). There are no suspension points inside any of its
// methods: no I/O, no locks, no allocation beyond an occasional new price
// level or the trade slice returned to the caller.
type Engine struct {
	pool  *orderPool
	book  *bookIndex
	audit AuditSink
	clock func() int64

	totalTrades uint64
	totalOrders uint64
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithAuditSink attaches a sink that receives an AuditEvent for every
// state-changing transition (open, match, cancel, discard). Wiring a sink
// is purely observational — the core's matching semantics never consult it.
func WithAuditSink(sink AuditSink) EngineOption {
	return func(e *Engine) {
		e.audit = sink
	}
}

// withClock overrides the monotonic source used to timestamp orders and
// trades. Used by tests that need deterministic timestamps.
func withClock(clock func() int64) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine constructs an Engine whose order pool can hold at most capacity
// resting-or-in-flight orders at any one instant.
func NewEngine(capacity int, opts ...EngineOption) *Engine {
	e := &Engine{
		pool:  newOrderPool(capacity),
		book:  newBookIndex(),
		audit: NoopAuditSink{},
		clock: func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitLimit submits a limit order. Any quantity left over once the
// matcher returns is rested in the book; a fully filled order never rests.
func (e *Engine) SubmitLimit(id uint64, side Side, price int64, qty uint32) ([]Trade, error) {
	return e.submit(id, side, Limit, price, qty)
}

// SubmitMarket submits a market order. Market orders never rest: any
// residual quantity after matching is discarded.
func (e *Engine) SubmitMarket(id uint64, side Side, qty uint32) ([]Trade, error) {
	return e.submit(id, side, Market, 0, qty)
}

func (e *Engine) submit(id uint64, side Side, typ OrderType, price int64, qty uint32) ([]Trade, error) {
	if qty == 0 {
		return nil, ErrInvalidQuantity
	}
	if _, resting := e.book.byID[id]; resting {
		return nil, ErrDuplicateOrderID
	}

	now := e.clock()
	correlationID := xid.New()

	incoming, err := e.pool.acquire(id, side, typ, price, qty, now)
	if err != nil {
		return nil, err
	}

	result := match(e.book, incoming, now)

	for _, trade := range result.trades {
		e.audit.Emit(AuditEvent{CorrelationID: correlationID, Kind: AuditMatched, OrderID: id, Side: side, Price: trade.Price, Quantity: trade.Quantity, Timestamp: now})
	}
	for _, filled := range result.filled {
		e.pool.release(filled)
	}

	e.totalTrades += uint64(len(result.trades))
	e.totalOrders++

	switch {
	case incoming.Remaining == 0:
		e.pool.release(incoming)
	case incoming.Type == Limit:
		e.audit.Emit(AuditEvent{CorrelationID: correlationID, Kind: AuditOpen, OrderID: id, Side: side, Price: price, Quantity: incoming.Remaining, Timestamp: now})
		e.book.addOrder(incoming)
	default:
		// Market order with residual quantity: the book could not satisfy
		// it in full. The remainder is discarded by contract, not an error.
		e.audit.Emit(AuditEvent{CorrelationID: correlationID, Kind: AuditDiscarded, OrderID: incoming.ID, Side: incoming.Side, Quantity: incoming.Remaining, Timestamp: now})
		logger.Warn("market order residual discarded", "order_id", id, "remaining", incoming.Remaining)
		e.pool.release(incoming)
	}

	return result.trades, nil
}

// Cancel removes a resting order by id. Returns false if the id is not
// currently resting — this is expected, routine behaviour, not an error.
func (e *Engine) Cancel(id uint64) bool {
	o, ok := e.book.cancelOrder(id)
	if !ok {
		return false
	}
	e.audit.Emit(AuditEvent{CorrelationID: xid.New(), Kind: AuditCancelled, OrderID: o.ID, Side: o.Side, Price: o.Price, Quantity: o.Remaining, Timestamp: e.clock()})
	e.pool.release(o)
	return true
}

func (e *Engine) BestBid() (int64, bool) { return e.book.bestBid() }
func (e *Engine) BestAsk() (int64, bool) { return e.book.bestAsk() }
func (e *Engine) Spread() (int64, bool)  { return e.book.spread() }

func (e *Engine) OrderCount() int     { return e.book.orderCount() }
func (e *Engine) BidLevelCount() int  { return e.book.bidLevelCount() }
func (e *Engine) AskLevelCount() int  { return e.book.askLevelCount() }
func (e *Engine) TotalTrades() uint64 { return e.totalTrades }
func (e *Engine) TotalOrders() uint64 { return e.totalOrders }

// AvailableSlots reports how many more orders the pool can accept before
// the next submission fails with ErrPoolExhausted.
func (e *Engine) AvailableSlots() int { return e.pool.available() }
