package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/tdvinh/vnfolio"
)

// Transaction renders a transaction to a string.
func Transaction(tx vnfolio.Transaction) string {
	switch v := tx.(type) {
	case vnfolio.Buy:
		return fmt.Sprintf("Bought %s of %s at %s (fee %s)", v.Quantity, v.Symbol, v.Price, v.Fee)
	case vnfolio.Sell:
		return fmt.Sprintf("Sold %s of %s at %s (fee %s)", v.Quantity, v.Symbol, v.Price, v.Fee)
	case vnfolio.Deposit:
		return fmt.Sprintf("Deposited %s at %s", v.Amount, v.Venue())
	case vnfolio.Withdraw:
		return fmt.Sprintf("Withdrew %s from %s", v.Amount, v.Venue())
	case vnfolio.DividendCash:
		return fmt.Sprintf("Cash dividend of %s per share on %s, %s net", v.PerShare, v.Symbol, v.Net)
	case vnfolio.DividendStock:
		return fmt.Sprintf("Stock dividend of %s bonus shares on %s", v.Bonus, v.Symbol)
	default:
		return string(tx.What())
	}
}

// HistoryMarkdown renders the transaction history, newest first. A positive
// head keeps only the first entries.
func HistoryMarkdown(s vnfolio.State, head int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transaction History")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Type", "Symbol", "Brokerage", "Quantity", "Price", "Total"},
		Rows:   [][]string{},
	}
	for tx := range s.Transactions() {
		if head > 0 && len(table.Rows) >= head {
			break
		}
		table.Rows = append(table.Rows, historyRow(tx))
	}
	doc.Table(table)

	return doc.String()
}

func historyRow(tx vnfolio.Transaction) []string {
	date := tx.When().String()
	kind := string(tx.What())
	switch v := tx.(type) {
	case vnfolio.Buy:
		return []string{date, kind, v.Symbol, v.Venue(), v.Quantity.String(), v.Price.String(), v.Total.String()}
	case vnfolio.Sell:
		return []string{date, kind, v.Symbol, v.Venue(), v.Quantity.String(), v.Price.String(), v.Total.String()}
	case vnfolio.Deposit:
		return []string{date, kind, "", v.Venue(), "", "", v.Amount.String()}
	case vnfolio.Withdraw:
		return []string{date, kind, "", v.Venue(), "", "", v.Amount.String()}
	case vnfolio.DividendCash:
		return []string{date, kind, v.Symbol, v.Venue(), "", v.PerShare.String(), v.Net.String()}
	case vnfolio.DividendStock:
		return []string{date, kind, v.Symbol, v.Venue(), v.Bonus.String(), "", ""}
	default:
		return []string{date, kind, "", tx.Venue(), "", "", ""}
	}
}
