package match

// Side identifies which book an order belongs to.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType distinguishes a resting limit order from a market order that
// never rests. There are no other variants — see the Non-goals in SPEC_FULL.md.
type OrderType uint8

const (
	Limit OrderType = iota
	Market
)

func (t OrderType) String() string {
	if t == Limit {
		return "limit"
	}
	return "market"
}

// orderState tracks where in its lifecycle a slot currently sits. The book
// index and matcher set it as an order rests and terminates; no engine path
// reads it (a cancel of an id that is not resting is rejected through the
// id map instead). It is not part of the external contract.
type orderState uint8

const (
	stateNew orderState = iota
	stateResting
	stateTerminal
)

// Order is a single resting or in-flight order. Instances live inside the
// fixed backing array of an orderPool (see pool.go) and are never allocated
// individually; next/prev/level form the intrusive doubly-linked FIFO a
// priceLevel uses for O(1) targeted removal.
type Order struct {
	ID        uint64
	Side      Side
	Type      OrderType
	Price     int64
	Original  uint32
	Remaining uint32
	Timestamp int64

	next  *Order
	prev  *Order
	level *priceLevel
	state orderState

	slot int32 // index into the owning pool's backing array
}

func (o *Order) filled() bool {
	return o.Remaining == 0
}

// fill consumes up to qty from the order's remaining quantity and returns
// the amount actually consumed.
func (o *Order) fill(qty uint32) uint32 {
	applied := qty
	if applied > o.Remaining {
		applied = o.Remaining
	}
	o.Remaining -= applied
	return applied
}

// Trade is an immutable record of one execution between an aggressor and a
// resting order. Trades always execute at the resting order's price.
type Trade struct {
	BuyOrderID  uint64
	SellOrderID uint64
	Price       int64
	Quantity    uint32
	Timestamp   int64
}
