package match

// matchResult is the outcome of running the matcher against one incoming
// order: the trades produced, in FIFO-consumption order, and the resting
// orders that were fully filled and so need their slots released by the
// caller.
type matchResult struct {
	trades []Trade
	filled []*Order
}

// match crosses incoming against the opposite side of bi and returns the
// trades and fully-filled resting orders produced. incoming.Remaining is
// decremented in place; any quantity left over after this call returns is
// either rested (limit) or discarded (market) by the engine facade, not by
// the matcher itself.
func match(bi *bookIndex, incoming *Order, now int64) matchResult {
	if incoming.Side == Buy {
		return matchBuy(bi, incoming, now)
	}
	return matchSell(bi, incoming, now)
}

// matchBuy walks resting asks from the lowest price up. A buy crosses an
// ask if the buy is a market order, or a limit order priced at or above the
// ask.
func matchBuy(bi *bookIndex, buy *Order, now int64) matchResult {
	var res matchResult

	for buy.Remaining > 0 {
		lvl := bi.bestLevel(Sell)
		if lvl == nil {
			break
		}
		if buy.Type == Limit && buy.Price < lvl.price {
			break
		}

		for buy.Remaining > 0 {
			resting := lvl.front()
			if resting == nil {
				break
			}

			fillQty := min(buy.Remaining, resting.Remaining)
			buy.fill(fillQty)
			resting.fill(fillQty)
			lvl.shrink(fillQty)

			res.trades = append(res.trades, Trade{
				BuyOrderID:  buy.ID,
				SellOrderID: resting.ID,
				Price:       lvl.price,
				Quantity:    fillQty,
				Timestamp:   now,
			})

			if resting.filled() {
				delete(bi.byID, resting.ID)
				lvl.popFront()
				resting.state = stateTerminal
				res.filled = append(res.filled, resting)
			}
		}

		bi.dropLevelIfEmpty(Sell, lvl)
	}

	return res
}

// matchSell walks resting bids from the highest price down. A sell crosses
// a bid if the sell is a market order, or a limit order priced at or below
// the bid.
func matchSell(bi *bookIndex, sell *Order, now int64) matchResult {
	var res matchResult

	for sell.Remaining > 0 {
		lvl := bi.bestLevel(Buy)
		if lvl == nil {
			break
		}
		if sell.Type == Limit && sell.Price > lvl.price {
			break
		}

		for sell.Remaining > 0 {
			resting := lvl.front()
			if resting == nil {
				break
			}

			fillQty := min(sell.Remaining, resting.Remaining)
			sell.fill(fillQty)
			resting.fill(fillQty)
			lvl.shrink(fillQty)

			res.trades = append(res.trades, Trade{
				BuyOrderID:  resting.ID,
				SellOrderID: sell.ID,
				Price:       lvl.price,
				Quantity:    fillQty,
				Timestamp:   now,
			})

			if resting.filled() {
				delete(bi.byID, resting.ID)
				lvl.popFront()
				resting.state = stateTerminal
				res.filled = append(res.filled, resting)
			}
		}

		bi.dropLevelIfEmpty(Buy, lvl)
	}

	return res
}
