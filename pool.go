package match

// orderPool is a fixed-capacity slot allocator for Order values. Capacity is
// set once at construction and the backing slice never grows or is
// reallocated afterwards, so a pointer into it remains valid for the entire
// lifetime of the slot it names — this is what lets a priceLevel's
// intrusive next/prev links point directly at orders inside the pool
// instead of through a secondary lookup.
//
// Free slots are tracked as a LIFO stack of indices rather than as a linked
// list threaded through the slots themselves, so a freshly released slot is
// the next one handed out — maximising cache locality of the active
// working set under churn.
type orderPool struct {
	slots    []Order
	free     []int32
	inUse    int32
	capacity int32
}

func newOrderPool(capacity int) *orderPool {
	if capacity <= 0 {
		panicInvariant("order pool capacity must be positive")
	}

	free := make([]int32, capacity)
	for i := range free {
		// Fill so index 0 is acquired first (push in reverse).
		free[i] = int32(capacity - 1 - i)
	}

	return &orderPool{
		slots:    make([]Order, capacity),
		free:     free,
		capacity: int32(capacity),
	}
}

// acquire hands out a slot initialised with the given fields. Returns
// ErrPoolExhausted if no slot is free.
func (p *orderPool) acquire(id uint64, side Side, typ OrderType, price int64, qty uint32, ts int64) (*Order, error) {
	n := len(p.free)
	if n == 0 {
		return nil, ErrPoolExhausted
	}

	idx := p.free[n-1]
	p.free = p.free[:n-1]
	p.inUse++

	o := &p.slots[idx]
	*o = Order{
		ID:        id,
		Side:      side,
		Type:      typ,
		Price:     price,
		Original:  qty,
		Remaining: qty,
		Timestamp: ts,
		state:     stateNew,
		slot:      idx,
	}
	return o, nil
}

// release returns a slot to the free stack. The Order is zeroed so a stale
// pointer held past release reads a visibly empty value rather than
// silently-wrong data.
func (p *orderPool) release(o *Order) {
	idx := o.slot
	*o = Order{slot: -1}
	p.free = append(p.free, idx)
	p.inUse--
}

func (p *orderPool) available() int {
	return len(p.free)
}

func (p *orderPool) outstanding() int {
	return int(p.inUse)
}
