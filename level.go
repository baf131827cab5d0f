package match

// priceLevel is the FIFO queue of resting orders at a single price. Removal
// through an order's own next/prev pointers is O(1) and does not disturb
// any other order's position, which is what makes cancellation cheap
// regardless of how deep the level is.
type priceLevel struct {
	price     int64
	head      *Order
	tail      *Order
	count     int32
	totalSize uint32
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{price: price}
}

func (l *priceLevel) empty() bool {
	return l.count == 0
}

// pushBack appends an order to the tail of the FIFO — the position a newly
// arrived resting order takes.
func (l *priceLevel) pushBack(o *Order) {
	o.level = l
	o.prev = l.tail
	o.next = nil
	if l.tail != nil {
		l.tail.next = o
	}
	l.tail = o
	if l.head == nil {
		l.head = o
	}
	l.count++
	l.totalSize += o.Remaining
}

// front returns the oldest order at this level without removing it.
func (l *priceLevel) front() *Order {
	return l.head
}

// remove detaches o from the FIFO in O(1) using its own stored links.
func (l *priceLevel) remove(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	o.level = nil
	l.count--
	if l.totalSize >= o.Remaining {
		l.totalSize -= o.Remaining
	} else {
		l.totalSize = 0
	}
}

// popFront removes and returns the oldest order, or nil if the level is
// empty.
func (l *priceLevel) popFront() *Order {
	o := l.head
	if o == nil {
		return nil
	}
	l.remove(o)
	return o
}

// shrink decrements the cached aggregate quantity by a partial fill amount
// without touching the FIFO itself — used while an order at the front is
// being filled but has not yet emptied.
func (l *priceLevel) shrink(qty uint32) {
	if l.totalSize >= qty {
		l.totalSize -= qty
	} else {
		l.totalSize = 0
	}
}
