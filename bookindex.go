package match

import "github.com/huandu/skiplist"

// bookIndex is the two-sided priced index: bids ordered so the best
// (highest) price iterates first, asks ordered so the best (lowest) price
// iterates first, plus a flat id -> order map for O(log L) cancellation
// by id where L is the number of distinct resting prices on that side.
type bookIndex struct {
	bids      *skiplist.SkipList
	asks      *skiplist.SkipList
	bidLevels map[int64]*skiplist.Element
	askLevels map[int64]*skiplist.Element
	byID      map[uint64]*Order
}

func newBookIndex() *bookIndex {
	return &bookIndex{
		bids: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			a, _ := lhs.(int64)
			b, _ := rhs.(int64)
			switch {
			case a < b:
				return 1
			case a > b:
				return -1
			default:
				return 0
			}
		})),
		asks: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			a, _ := lhs.(int64)
			b, _ := rhs.(int64)
			switch {
			case a > b:
				return 1
			case a < b:
				return -1
			default:
				return 0
			}
		})),
		bidLevels: make(map[int64]*skiplist.Element),
		askLevels: make(map[int64]*skiplist.Element),
		byID:      make(map[uint64]*Order),
	}
}

func (bi *bookIndex) levelsFor(side Side) (*skiplist.SkipList, map[int64]*skiplist.Element) {
	if side == Buy {
		return bi.bids, bi.bidLevels
	}
	return bi.asks, bi.askLevels
}

// addOrder rests an order in the book, creating its price level if this is
// the first order to arrive at that price.
func (bi *bookIndex) addOrder(o *Order) {
	list, levels := bi.levelsFor(o.Side)

	el, ok := levels[o.Price]
	var lvl *priceLevel
	if ok {
		lvl, _ = el.Value.(*priceLevel)
	} else {
		lvl = newPriceLevel(o.Price)
		el = list.Set(o.Price, lvl)
		levels[o.Price] = el
	}

	lvl.pushBack(o)
	o.state = stateResting
	bi.byID[o.ID] = o
}

// cancelOrder removes a resting order by id. Returns false if the id is not
// currently resting — this is not an error condition.
func (bi *bookIndex) cancelOrder(id uint64) (*Order, bool) {
	o, ok := bi.byID[id]
	if !ok {
		return nil, false
	}

	bi.removeFromLevel(o)
	delete(bi.byID, id)
	o.state = stateTerminal
	return o, true
}

// removeFromLevel detaches o from its price level and erases the level if
// it becomes empty. It does not touch the id map — its caller, cancelOrder,
// clears the id binding itself. The match loop does not use it: it pops
// filled orders with popFront and erases their id bindings directly.
func (bi *bookIndex) removeFromLevel(o *Order) {
	lvl := o.level
	if lvl == nil {
		panicInvariant("order has no owning price level")
	}
	lvl.remove(o)

	if lvl.empty() {
		bi.dropLevelIfEmpty(o.Side, lvl)
	}
}

// bestLevel returns the best (first-iterated) price level on a side, or nil
// if that side is empty.
func (bi *bookIndex) bestLevel(side Side) *priceLevel {
	list, _ := bi.levelsFor(side)
	el := list.Front()
	if el == nil {
		return nil
	}
	lvl, _ := el.Value.(*priceLevel)
	return lvl
}

// dropLevelIfEmpty erases lvl from side's index if it has become empty. The
// matcher calls this right after draining a level's FIFO.
func (bi *bookIndex) dropLevelIfEmpty(side Side, lvl *priceLevel) {
	if !lvl.empty() {
		return
	}
	list, levels := bi.levelsFor(side)
	el, ok := levels[lvl.price]
	if !ok {
		panicInvariant("empty price level missing from side index")
	}
	list.RemoveElement(el)
	delete(levels, lvl.price)
}

func (bi *bookIndex) bestBid() (int64, bool) {
	el := bi.bids.Front()
	if el == nil {
		return 0, false
	}
	return el.Key().(int64), true
}

func (bi *bookIndex) bestAsk() (int64, bool) {
	el := bi.asks.Front()
	if el == nil {
		return 0, false
	}
	return el.Key().(int64), true
}

func (bi *bookIndex) spread() (int64, bool) {
	bid, ok := bi.bestBid()
	if !ok {
		return 0, false
	}
	ask, ok := bi.bestAsk()
	if !ok {
		return 0, false
	}
	return ask - bid, true
}

func (bi *bookIndex) orderCount() int {
	return len(bi.byID)
}

func (bi *bookIndex) bidLevelCount() int {
	return bi.bids.Len()
}

func (bi *bookIndex) askLevelCount() int {
	return bi.asks.Len()
}
