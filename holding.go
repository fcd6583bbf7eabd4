package vnfolio

// Holding is one open position in one symbol at one brokerage.
//
// At most one Holding exists per (symbol, brokerage) pair while its quantity
// is positive; the position is removed from the state once it reaches zero.
type Holding struct {
	ID           string   `json:"id"`
	Symbol       string   `json:"symbol"`
	Quantity     Quantity `json:"quantity"`
	AvgPrice     Money    `json:"avgPrice"`     // weighted-average cost per share, fees included
	CurrentPrice Money    `json:"currentPrice"` // last known market price per share
	Sector       string   `json:"sector,omitempty"`
	Brokerage    string   `json:"brokerage"`
}

// MarketValue returns the position value at the last known market price.
func (h Holding) MarketValue() Money { return h.CurrentPrice.Mul(h.Quantity) }

// CostValue returns the total cost basis of the position.
func (h Holding) CostValue() Money { return h.AvgPrice.Mul(h.Quantity) }

// UnrealizedPercent returns the open gain or loss relative to cost basis.
func (h Holding) UnrealizedPercent() Percent {
	if h.AvgPrice.IsZero() {
		return 0
	}
	diff := h.CurrentPrice.Sub(h.AvgPrice)
	return Percent(diff.Decimal().Div(h.AvgPrice.Decimal()).InexactFloat64() * 100)
}
