package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/tdvinh/vnfolio"
)

// SummaryMarkdown renders the portfolio valuation.
func SummaryMarkdown(s vnfolio.State) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	sum := s.Summarize()

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", vnfolio.Today()))
	doc.PlainText(fmt.Sprintf("*As of %s*", Now().Format("2006-01-02 15:04:05")))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Stock Value", sum.StockValue.String()},
			{"Total Cash", sum.TotalCash.String()},
			{"Total Assets", sum.TotalAssets.String()},
			{"Net Capital", sum.NetCapital.String()},
			{"Profit", sum.Profit.SignedString()},
			{"Profit %", sum.ProfitPercent.SignedString()},
		},
	}
	doc.Table(table)

	if brokerages := s.Brokerages(); len(brokerages) > 1 {
		doc.H2("By Brokerage")
		per := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Brokerage", "Stock Value", "Cash", "Total"},
			Rows:      [][]string{},
		}
		for _, name := range brokerages {
			bs := s.SummarizeBrokerage(name)
			per.Rows = append(per.Rows, []string{
				name, bs.StockValue.String(), bs.TotalCash.String(), bs.TotalAssets.String(),
			})
		}
		doc.Table(per)
	}

	return doc.String()
}

// BrokerageSummaryMarkdown renders the valuation of a single brokerage.
func BrokerageSummaryMarkdown(s vnfolio.State, brokerage string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	sum := s.SummarizeBrokerage(brokerage)

	doc.H1(fmt.Sprintf("Summary for %s on %s", brokerage, vnfolio.Today()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Stock Value", sum.StockValue.String()},
			{"Cash", sum.TotalCash.String()},
			{"Total Assets", sum.TotalAssets.String()},
			{"Net Capital", sum.NetCapital.String()},
			{"Profit", sum.Profit.SignedString()},
			{"Profit %", sum.ProfitPercent.SignedString()},
		},
	}
	doc.Table(table)

	return doc.String()
}

// HoldingsMarkdown renders the open positions with their valuation.
func HoldingsMarkdown(s vnfolio.State) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Brokerage", "Quantity", "Avg Price", "Price", "Value", "Gain", "Weight"},
		Rows:   [][]string{},
	}
	for _, p := range s.Positions() {
		table.Rows = append(table.Rows, []string{
			p.Symbol,
			p.Brokerage,
			p.Quantity.String(),
			p.AvgPrice.String(),
			p.CurrentPrice.String(),
			p.MarketValue.String(),
			fmt.Sprintf("%s (%s)", p.Gain.SignedString(), p.GainPercent.SignedString()),
			p.WeightPercent.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
