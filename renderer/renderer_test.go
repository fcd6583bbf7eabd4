package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/tdvinh/vnfolio"
	"github.com/tdvinh/vnfolio/advisor"
)

func fixtureState(t *testing.T) vnfolio.State {
	t.Helper()
	s, err := vnfolio.NewState().Deposit(vnfolio.NewDate(2025, 8, 1), "SSI", vnfolio.M(10000000), "")
	if err != nil {
		t.Fatal(err)
	}
	s, err = s.Buy(vnfolio.BuyOrder{
		Date:      vnfolio.NewDate(2025, 8, 4),
		Symbol:    "HPG",
		Brokerage: "SSI",
		Quantity:  vnfolio.Q(100),
		Price:     vnfolio.M(25000),
		Sector:    "Steel",
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTransaction(t *testing.T) {
	s := fixtureState(t)
	var lines []string
	for tx := range s.Transactions() {
		lines = append(lines, Transaction(tx))
	}
	if want := "Bought 100 of HPG at 25.000 ₫ (fee 0 ₫)"; lines[0] != want {
		t.Errorf("Transaction = %q, want %q", lines[0], want)
	}
	if want := "Deposited 10.000.000 ₫ at SSI"; lines[1] != want {
		t.Errorf("Transaction = %q, want %q", lines[1], want)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	out := HistoryMarkdown(fixtureState(t), 0)
	if !strings.Contains(out, "# Transaction History") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "BUY") || !strings.Contains(out, "DEPOSIT") {
		t.Errorf("missing rows:\n%s", out)
	}
	// newest first
	if strings.Index(out, "BUY") > strings.Index(out, "DEPOSIT") {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestHistoryMarkdown_Head(t *testing.T) {
	out := HistoryMarkdown(fixtureState(t), 1)
	if strings.Contains(out, "DEPOSIT") {
		t.Errorf("head=1 should keep only the newest row:\n%s", out)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	saved := Now
	Now = func() time.Time { return time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC) }
	defer func() { Now = saved }()

	out := SummaryMarkdown(fixtureState(t))
	for _, want := range []string{
		"# Portfolio Summary",
		"As of 2025-08-04 10:00:00",
		"Net Capital",
		"10.000.000 ₫",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	out := HoldingsMarkdown(fixtureState(t))
	for _, want := range []string{"# Holdings", "HPG", "SSI", "100"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestReviewMarkdown(t *testing.T) {
	out := ReviewMarkdown(advisor.PortfolioReview{
		RiskScore:       7,
		TradeAnalysis:   "đầu cơ ngắn hạn",
		AssetAnalysis:   "tập trung vào thép",
		Recommendations: []string{"hạ tỷ trọng HPG", "tăng tiền mặt"},
	})
	for _, want := range []string{"Risk score: 7/10", "đầu cơ ngắn hạn", "hạ tỷ trọng HPG"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestAnalysisMarkdown(t *testing.T) {
	out := AnalysisMarkdown(advisor.StockAnalysis{
		Symbol:   "HPG",
		Trend:    "Uptrend",
		IsBottom: true,
		KeyLevels: advisor.KeyLevels{
			Support:    24.5,
			Resistance: 28.0,
			Entry:      25.2,
		},
		Sources: []advisor.Source{{Title: "cafef", URI: "https://cafef.vn/x"}},
	})
	for _, want := range []string{"# Analysis for HPG", "Uptrend", "24.50", "[cafef](https://cafef.vn/x)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestOverviewMarkdown(t *testing.T) {
	out := OverviewMarkdown(advisor.MarketOverview{
		Indices:   []advisor.MarketIndex{{Name: "VN-Index", Value: "1.280,5", Change: "+12,3", Percent: "+0,97%"}},
		Sentiment: "Tích cực",
		Summary:   "Thị trường tăng điểm.",
	})
	for _, want := range []string{"# Market Overview", "VN-Index", "Tích cực"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
