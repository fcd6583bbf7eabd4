package vnfolio

// Summary is the derived valuation of a ledger state.
type Summary struct {
	StockValue    Money   // Σ quantity * current price
	TotalCash     Money   // Σ cash buckets
	TotalAssets   Money   // StockValue + TotalCash
	NetCapital    Money   // Σ deposits - Σ withdrawals
	Profit        Money   // TotalAssets - NetCapital
	ProfitPercent Percent // Profit / NetCapital, 0 when NetCapital <= 0
}

// Summarize values the whole portfolio.
func (s State) Summarize() Summary {
	return s.summarize("")
}

// SummarizeBrokerage values a single brokerage bucket.
func (s State) SummarizeBrokerage(brokerage string) Summary {
	return s.summarize(normalizeBrokerage(brokerage))
}

func (s State) summarize(brokerage string) Summary {
	var sum Summary
	for _, h := range s.holdings {
		if brokerage != "" && h.Brokerage != brokerage {
			continue
		}
		sum.StockValue = sum.StockValue.Add(h.MarketValue())
	}
	for name, cash := range s.cash {
		if brokerage != "" && name != brokerage {
			continue
		}
		sum.TotalCash = sum.TotalCash.Add(cash)
	}
	for _, tx := range s.transactions {
		if brokerage != "" && tx.Venue() != brokerage {
			continue
		}
		switch t := tx.(type) {
		case Deposit:
			sum.NetCapital = sum.NetCapital.Add(t.Amount)
		case Withdraw:
			sum.NetCapital = sum.NetCapital.Sub(t.Amount)
		}
	}
	sum.TotalAssets = sum.StockValue.Add(sum.TotalCash)
	sum.Profit = sum.TotalAssets.Sub(sum.NetCapital)
	if sum.NetCapital.IsPositive() {
		ratio, _ := sum.Profit.Decimal().Div(sum.NetCapital.Decimal()).Float64()
		sum.ProfitPercent = Percent(100 * ratio)
	}
	return sum
}

// PositionReport is the derived valuation of one holding.
type PositionReport struct {
	Holding
	MarketValue   Money
	CostBasis     Money
	Gain          Money
	GainPercent   Percent
	WeightPercent Percent // share of the portfolio's total stock value
}

// Positions values every open holding against its last known price.
func (s State) Positions() []PositionReport {
	var total Money
	for _, h := range s.holdings {
		total = total.Add(h.MarketValue())
	}
	reports := make([]PositionReport, 0, len(s.holdings))
	for _, h := range s.holdings {
		r := PositionReport{
			Holding:     h,
			MarketValue: h.MarketValue(),
			CostBasis:   h.CostValue(),
		}
		r.Gain = r.MarketValue.Sub(r.CostBasis)
		if r.CostBasis.IsPositive() {
			g, _ := r.Gain.Decimal().Div(r.CostBasis.Decimal()).Float64()
			r.GainPercent = Percent(100 * g)
		}
		if total.IsPositive() {
			w, _ := r.MarketValue.Decimal().Div(total.Decimal()).Float64()
			r.WeightPercent = Percent(100 * w)
		}
		reports = append(reports, r)
	}
	return reports
}
