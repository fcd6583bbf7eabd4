package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/tdvinh/vnfolio/advisor"
)

// ReviewMarkdown renders a portfolio review verdict.
func ReviewMarkdown(r advisor.PortfolioReview) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Review")
	doc.PlainText(fmt.Sprintf("**Risk score: %.0f/10**", r.RiskScore))

	doc.H2("Asset Analysis")
	doc.PlainText(r.AssetAnalysis)

	doc.H2("Trade Analysis")
	doc.PlainText(r.TradeAnalysis)

	doc.H2("Recommendations")
	doc.BulletList(r.Recommendations...)

	return doc.String()
}

// AnalysisMarkdown renders a stock analysis.
func AnalysisMarkdown(a advisor.StockAnalysis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Analysis for %s", a.Symbol))

	bottom := "no"
	if a.IsBottom {
		bottom = "yes"
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Signal", "Value"},
		Rows: [][]string{
			{"Trend", a.Trend},
			{"Bottoming", bottom},
			{"Support", fmt.Sprintf("%.2f", a.KeyLevels.Support)},
			{"Resistance", fmt.Sprintf("%.2f", a.KeyLevels.Resistance)},
			{"Entry", fmt.Sprintf("%.2f", a.KeyLevels.Entry)},
		},
	}
	doc.Table(table)

	doc.H2("Weekly Outlook")
	doc.PlainText(a.WeeklyOutlook)

	doc.H2("Monthly Outlook")
	doc.PlainText(a.MonthlyOutlook)

	doc.H2("Reasoning")
	doc.PlainText(a.Reasoning)

	appendSources(doc, a.Sources)
	return doc.String()
}

// OverviewMarkdown renders a market overview snapshot.
func OverviewMarkdown(o advisor.MarketOverview) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Market Overview")
	doc.PlainText(fmt.Sprintf("Sentiment: **%s**", o.Sentiment))

	indices := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Index", "Value", "Change", "%"},
		Rows:      [][]string{},
	}
	for _, i := range o.Indices {
		indices.Rows = append(indices.Rows, []string{i.Name, i.Value, i.Change, i.Percent})
	}
	doc.Table(indices)

	doc.H2("Summary")
	doc.PlainText(o.Summary)

	if len(o.TopSectors) > 0 {
		doc.H2("Sectors")
		sectors := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
			Header:    []string{"Sector", "Performance"},
			Rows:      [][]string{},
		}
		for _, sct := range o.TopSectors {
			sectors.Rows = append(sectors.Rows, []string{sct.Name, sct.Performance})
		}
		doc.Table(sectors)
	}

	doc.H2("Foreign Flow")
	doc.PlainText(o.ForeignFlow)

	doc.H2("Recommendation")
	doc.PlainText(o.Recommendation)

	appendSources(doc, o.Sources)
	return doc.String()
}

// ScreenMarkdown renders screener hits.
func ScreenMarkdown(hits []advisor.ScreenedStock) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Screener Results")

	for _, h := range hits {
		doc.H2(fmt.Sprintf("%s (%s, %s)", h.Symbol, h.Price, h.Change))
		doc.PlainText(h.Reason)
		if len(h.Tags) > 0 {
			doc.BulletList(h.Tags...)
		}
	}

	return doc.String()
}

func appendSources(doc *md.Markdown, srcs []advisor.Source) {
	if len(srcs) == 0 {
		return
	}
	doc.H2("Sources")
	links := make([]string, 0, len(srcs))
	for _, s := range srcs {
		links = append(links, fmt.Sprintf("[%s](%s)", s.Title, s.URI))
	}
	doc.BulletList(links...)
}
