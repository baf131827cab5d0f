// Package actorfeed is the integration layer the core's concurrency model
// anticipates (see SPEC_FULL.md §5, §10.4): match.Engine is a plain
// synchronous value, not safe for concurrent use, so Feed serializes
// concurrent Submit/Cancel callers from multiple goroutines onto a single
// consumer goroutine driving one Engine. The sequencing primitive is a
// fixed-capacity MPSC ring buffer adapted from the matching-engine
// ancestor this repository grew out of: producers claim a sequence number
// with a CAS loop, write their slot, and publish it; the single consumer
// spins on the next expected sequence becoming visible.
package actorfeed

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
)

// ErrShutdownTimeout is returned by Shutdown when ctx expires before the
// consumer has drained every claimed slot.
var ErrShutdownTimeout = errors.New("actorfeed: shutdown timed out waiting for drain")

// task is the unit of work a RingBuffer moves from producer to consumer.
type task func()

// ringBuffer is a multi-producer single-consumer ring buffer of tasks.
// capacity must be a power of two.
type ringBuffer struct {
	_                [56]byte
	producerSequence atomic.Int64
	_                [56]byte
	consumerSequence atomic.Int64
	_                [56]byte

	buffer     []task
	published  []int64
	bufferMask int64
	capacity   int64

	isShutdown atomic.Bool
}

func newRingBuffer(capacity int64) *ringBuffer {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("actorfeed: capacity must be a power of 2")
	}

	rb := &ringBuffer{
		buffer:     make([]task, capacity),
		published:  make([]int64, capacity),
		capacity:   capacity,
		bufferMask: capacity - 1,
	}
	rb.producerSequence.Store(-1)
	rb.consumerSequence.Store(-1)
	for i := range rb.published {
		rb.published[i] = -1
	}
	return rb
}

// publish enqueues t. Safe for concurrent callers. Blocks (spinning) while
// the buffer is full.
func (rb *ringBuffer) publish(t task) bool {
	if rb.isShutdown.Load() {
		return false
	}

	var next int64
	for {
		cur := rb.producerSequence.Load()
		next = cur + 1

		wrapPoint := next - rb.capacity
		if wrapPoint > rb.consumerSequence.Load() {
			runtime.Gosched()
			continue
		}

		if rb.producerSequence.CompareAndSwap(cur, next) {
			break
		}
		runtime.Gosched()
	}

	idx := next & rb.bufferMask
	rb.buffer[idx] = t
	atomic.StoreInt64(&rb.published[idx], next)
	return true
}

func (rb *ringBuffer) start() {
	go rb.consumeLoop()
}

func (rb *ringBuffer) shutdown(ctx context.Context) error {
	rb.isShutdown.Store(true)
	for {
		select {
		case <-ctx.Done():
			return ErrShutdownTimeout
		default:
			if rb.consumerSequence.Load() >= rb.producerSequence.Load() {
				return nil
			}
			runtime.Gosched()
		}
	}
}

func (rb *ringBuffer) consumeLoop() {
	next := rb.consumerSequence.Load() + 1
	for {
		available := rb.producerSequence.Load()

		for next <= available {
			idx := next & rb.bufferMask
			for atomic.LoadInt64(&rb.published[idx]) != next {
				runtime.Gosched()
			}
			rb.buffer[idx]()
			rb.consumerSequence.Store(next)
			next++
		}

		if rb.isShutdown.Load() {
			available = rb.producerSequence.Load()
			for next <= available {
				idx := next & rb.bufferMask
				for atomic.LoadInt64(&rb.published[idx]) != next {
					runtime.Gosched()
				}
				rb.buffer[idx]()
				rb.consumerSequence.Store(next)
				next++
			}
			return
		}

		runtime.Gosched()
	}
}

func (rb *ringBuffer) pending() int64 {
	return rb.producerSequence.Load() - rb.consumerSequence.Load()
}
