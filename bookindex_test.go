package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookIndex_AddAndBestPrices(t *testing.T) {
	bi := newBookIndex()
	p := newOrderPool(4)

	o1, _ := p.acquire(1, Buy, Limit, 10000, 10, 0)
	o2, _ := p.acquire(2, Buy, Limit, 10100, 10, 0)
	bi.addOrder(o1)
	bi.addOrder(o2)

	bid, ok := bi.bestBid()
	assert.True(t, ok)
	assert.Equal(t, int64(10100), bid)

	o3, _ := p.acquire(3, Sell, Limit, 10200, 10, 0)
	o4, _ := p.acquire(4, Sell, Limit, 10150, 10, 0)
	bi.addOrder(o3)
	bi.addOrder(o4)

	ask, ok := bi.bestAsk()
	assert.True(t, ok)
	assert.Equal(t, int64(10150), ask)

	spread, ok := bi.spread()
	assert.True(t, ok)
	assert.Equal(t, int64(50), spread)
}

func TestBookIndex_CancelErasesEmptyLevel(t *testing.T) {
	bi := newBookIndex()
	p := newOrderPool(2)

	o, _ := p.acquire(1, Buy, Limit, 10000, 10, 0)
	bi.addOrder(o)
	assert.Equal(t, 1, bi.bidLevelCount())

	got, ok := bi.cancelOrder(1)
	assert.True(t, ok)
	assert.Equal(t, o, got)
	assert.Equal(t, 0, bi.bidLevelCount())
	assert.Equal(t, 0, bi.orderCount())
}

func TestBookIndex_CancelUnknownIDReturnsFalse(t *testing.T) {
	bi := newBookIndex()
	_, ok := bi.cancelOrder(42)
	assert.False(t, ok)
}

func TestBookIndex_MultipleOrdersSharePriceLevel(t *testing.T) {
	bi := newBookIndex()
	p := newOrderPool(3)

	o1, _ := p.acquire(1, Sell, Limit, 10000, 10, 0)
	o2, _ := p.acquire(2, Sell, Limit, 10000, 20, 0)
	bi.addOrder(o1)
	bi.addOrder(o2)

	assert.Equal(t, 1, bi.askLevelCount())
	assert.Equal(t, 2, bi.orderCount())

	lvl := bi.bestLevel(Sell)
	assert.Equal(t, uint32(30), lvl.totalSize)
}
