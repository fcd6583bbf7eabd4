package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// KeyLevels are the price levels suggested for a stock, in thousands of dong
// as quoted on the exchange boards.
type KeyLevels struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	Entry      float64 `json:"entry"`
}

// StockAnalysis is the structured verdict on one symbol.
type StockAnalysis struct {
	Symbol         string    `json:"symbol"`
	Trend          string    `json:"trend"` // Uptrend, Downtrend or Sideways
	IsBottom       bool      `json:"isBottom"`
	WeeklyOutlook  string    `json:"weeklyOutlook"`
	MonthlyOutlook string    `json:"monthlyOutlook"`
	KeyLevels      KeyLevels `json:"keyLevels"`
	Reasoning      string    `json:"reasoning"`
	Sources        []Source  `json:"sources"`
}

// TrackedAnalysis is a stored analysis with its freshness.
type TrackedAnalysis struct {
	StockAnalysis
	LastUpdated time.Time `json:"lastUpdated"`
}

// AnalyzeStock asks the model for a grounded technical read of one symbol.
func (c *Client) AnalyzeStock(ctx context.Context, symbol string) (StockAnalysis, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	prompt := fmt.Sprintf(`Phân tích chi tiết cổ phiếu Việt Nam mã: %s.
Hãy tìm kiếm thông tin mới nhất trên Google Search về diễn biến giá tuần và tháng gần đây.
Xác định:
1. Xu hướng hiện tại (Uptrend/Downtrend/Sideways).
2. Đã tạo đáy chưa? (isBottom: true/false).
3. Triển vọng tuần và tháng.
4. Các mức giá: Kháng cự gần nhất, Hỗ trợ gần nhất, Giá vào lệnh khuyến nghị.
Trả về kết quả chính xác theo cấu trúc JSON.`, symbol)

	config := &genai.GenerateContentConfig{
		Tools: googleSearch(),
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"symbol":         {Type: genai.TypeString},
				"trend":          {Type: genai.TypeString},
				"isBottom":       {Type: genai.TypeBoolean},
				"weeklyOutlook":  {Type: genai.TypeString},
				"monthlyOutlook": {Type: genai.TypeString},
				"keyLevels": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"support":    {Type: genai.TypeNumber},
						"resistance": {Type: genai.TypeNumber},
						"entry":      {Type: genai.TypeNumber},
					},
					Required: []string{"support", "resistance", "entry"},
				},
				"reasoning": {Type: genai.TypeString},
			},
			Required: []string{"symbol", "trend", "isBottom", "weeklyOutlook", "monthlyOutlook", "keyLevels", "reasoning"},
		},
	}
	var analysis StockAnalysis
	resp, err := c.generateJSON(ctx, prompt, config, &analysis)
	if err != nil {
		return StockAnalysis{}, err
	}
	analysis.Symbol = symbol
	analysis.Sources = sources(resp)
	return analysis, nil
}

// MarketIndex is one exchange index line of the market overview. Values stay
// strings, the model quotes them as displayed on the boards.
type MarketIndex struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Change  string `json:"change"`
	Percent string `json:"percent"`
}

// SectorPerformance is one leading or lagging sector.
type SectorPerformance struct {
	Name        string `json:"name"`
	Performance string `json:"performance"`
}

// MarketOverview is the grounded daily snapshot of the Vietnamese market.
type MarketOverview struct {
	Indices        []MarketIndex       `json:"indices"`
	Sentiment      string              `json:"sentiment"`
	Summary        string              `json:"summary"`
	TopSectors     []SectorPerformance `json:"topSectors"`
	ForeignFlow    string              `json:"foreignFlow"`
	Recommendation string              `json:"recommendation"`
	Sources        []Source            `json:"sources"`
}

// MarketOverview asks the model for a grounded snapshot of today's market:
// main indices, sentiment, leading sectors, foreign flow and a general read.
func (c *Client) MarketOverview(ctx context.Context) (MarketOverview, error) {
	prompt := `Phân tích tổng quan thị trường chứng khoán Việt Nam hôm nay.
Sử dụng Google Search để lấy dữ liệu mới nhất về:
1. Danh sách các chỉ số chính: VN-Index, HNX-Index, UPCoM-Index (giá trị, điểm thay đổi, % thay đổi).
2. Tâm lý thị trường hiện tại (Hưng phấn, Tích cực, Trung lập, Tiêu cực, Hoảng loạn).
3. Các nhóm ngành dẫn dắt hoặc bị ảnh hưởng mạnh.
4. Xu hướng dòng vốn ngoại (mua/bán ròng).
5. Tóm tắt diễn biến chính và lời khuyên chung.
Trả về kết quả chính xác theo cấu trúc JSON.`

	config := &genai.GenerateContentConfig{
		Tools: googleSearch(),
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"indices": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":    {Type: genai.TypeString},
							"value":   {Type: genai.TypeString},
							"change":  {Type: genai.TypeString},
							"percent": {Type: genai.TypeString},
						},
						Required: []string{"name", "value", "change", "percent"},
					},
				},
				"sentiment": {Type: genai.TypeString},
				"summary":   {Type: genai.TypeString},
				"topSectors": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString},
							"performance": {Type: genai.TypeString},
						},
						Required: []string{"name", "performance"},
					},
				},
				"foreignFlow":    {Type: genai.TypeString},
				"recommendation": {Type: genai.TypeString},
			},
			Required: []string{"indices", "sentiment", "summary", "topSectors", "foreignFlow", "recommendation"},
		},
	}
	var overview MarketOverview
	resp, err := c.generateJSON(ctx, prompt, config, &overview)
	if err != nil {
		return MarketOverview{}, err
	}
	overview.Sources = sources(resp)
	return overview, nil
}

// ScreenCriteria filters the stock screener.
type ScreenCriteria struct {
	Trend      string // Uptrend, Downtrend, Sideways or free text
	Bottoming  bool   // only stocks forming a base
	PriceRange string // free text, e.g. "dưới 30.000đ"
}

// ScreenedStock is one screener hit.
type ScreenedStock struct {
	Symbol string   `json:"symbol"`
	Price  string   `json:"price"`
	Change string   `json:"change"`
	Reason string   `json:"reason"`
	Tags   []string `json:"tags"`
}

// ScreenStocks asks the model for the top five symbols matching the
// criteria, grounded on current market data.
func (c *Client) ScreenStocks(ctx context.Context, criteria ScreenCriteria) ([]ScreenedStock, error) {
	state := "Bất kỳ"
	if criteria.Bottoming {
		state = "Đang tạo đáy/Tích lũy"
	}
	prompt := fmt.Sprintf(`Tìm danh sách top 5 cổ phiếu Việt Nam thỏa mãn:
- Xu hướng: %s
- Trạng thái: %s
- Tầm giá: %s
Sử dụng dữ liệu thực tế từ thị trường chứng khoán Việt Nam qua Google Search.`,
		criteria.Trend, state, criteria.PriceRange)

	config := &genai.GenerateContentConfig{
		Tools: googleSearch(),
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {Type: genai.TypeString},
					"price":  {Type: genai.TypeString},
					"change": {Type: genai.TypeString},
					"reason": {Type: genai.TypeString},
					"tags":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"symbol", "price", "change", "reason", "tags"},
			},
		},
	}
	var hits []ScreenedStock
	if _, err := c.generateJSON(ctx, prompt, config, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}
