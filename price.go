package match

import "github.com/shopspring/decimal"

// TickFormatter converts between the engine's integer tick prices and
// human-quoted decimal prices. It is purely presentational: the core never
// imports it and never interprets a price as anything but a comparable
// int64. A host wires one in only when it needs to log or display prices in
// quoted units.
type TickFormatter struct {
	tickSize decimal.Decimal
}

// NewTickFormatter builds a formatter where one tick equals tickSize in
// quoted units (e.g. decimal.NewFromFloat(0.01) for cent ticks on a
// dollar-quoted instrument).
func NewTickFormatter(tickSize decimal.Decimal) TickFormatter {
	return TickFormatter{tickSize: tickSize}
}

// Quote converts a tick price to its decimal quoted value.
func (f TickFormatter) Quote(ticks int64) decimal.Decimal {
	return decimal.NewFromInt(ticks).Mul(f.tickSize)
}

// Ticks converts a decimal quoted value back to the nearest tick price,
// rounding half away from zero.
func (f TickFormatter) Ticks(quoted decimal.Decimal) int64 {
	return quoted.DivRound(f.tickSize, 0).IntPart()
}
