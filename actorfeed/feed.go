package actorfeed

import (
	"context"

	match "github.com/finch-markets/obcore"
)

// Feed sequences concurrent Submit/Cancel calls from any number of producer
// goroutines onto a single *match.Engine owned by one consumer goroutine.
// The Engine itself never sees concurrent access; Feed is the only thing
// that does.
type Feed struct {
	engine *match.Engine
	ring   *ringBuffer
}

// New wires a Feed around engine. capacity is the ring buffer depth and
// must be a power of two; it bounds how many in-flight requests producers
// may have outstanding before publish starts spinning.
func New(engine *match.Engine, capacity int64) *Feed {
	f := &Feed{
		engine: engine,
		ring:   newRingBuffer(capacity),
	}
	f.ring.start()
	return f
}

// Shutdown stops accepting new work and waits for the consumer to drain
// everything already published, or until ctx expires.
func (f *Feed) Shutdown(ctx context.Context) error {
	return f.ring.shutdown(ctx)
}

// Pending reports how many requests are queued or in flight.
func (f *Feed) Pending() int64 {
	return f.ring.pending()
}

type submitResult struct {
	trades []match.Trade
	err    error
}

// SubmitLimit enqueues a limit-order submission and blocks the calling
// goroutine until the consumer has applied it.
func (f *Feed) SubmitLimit(id uint64, side match.Side, price int64, qty uint32) ([]match.Trade, error) {
	resultCh := make(chan submitResult, 1)
	f.ring.publish(func() {
		trades, err := f.engine.SubmitLimit(id, side, price, qty)
		resultCh <- submitResult{trades: trades, err: err}
	})
	res := <-resultCh
	return res.trades, res.err
}

// SubmitMarket enqueues a market-order submission and blocks the calling
// goroutine until the consumer has applied it.
func (f *Feed) SubmitMarket(id uint64, side match.Side, qty uint32) ([]match.Trade, error) {
	resultCh := make(chan submitResult, 1)
	f.ring.publish(func() {
		trades, err := f.engine.SubmitMarket(id, side, qty)
		resultCh <- submitResult{trades: trades, err: err}
	})
	res := <-resultCh
	return res.trades, res.err
}

// Cancel enqueues a cancellation and blocks the calling goroutine until the
// consumer has applied it.
func (f *Feed) Cancel(id uint64) bool {
	resultCh := make(chan bool, 1)
	f.ring.publish(func() {
		resultCh <- f.engine.Cancel(id)
	})
	return <-resultCh
}
