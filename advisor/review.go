package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ReviewHolding is one open position, pre-valued by the caller.
type ReviewHolding struct {
	Symbol        string
	Brokerage     string
	Sector        string
	WeightPercent float64 // share of total assets
	GainPercent   float64 // unrealized gain or loss
}

// ReviewTransaction is one history line shown to the model.
type ReviewTransaction struct {
	Date     string
	Type     string
	Symbol   string
	Quantity string
	Price    string
	Note     string
}

// ReviewInput is everything the portfolio review prompt needs. Amounts are
// pre-formatted strings so this package stays independent of the ledger's
// numeric types.
type ReviewInput struct {
	TotalAssets     string
	TotalCash       string
	CashPercent     float64
	Profit          string
	ProfitPercent   float64
	Holdings        []ReviewHolding
	Transactions    []ReviewTransaction // newest first, the first ten are used
	TransactionsCap int                 // 0 means the default of 10
}

// PortfolioReview is the structured verdict of a portfolio review.
type PortfolioReview struct {
	RiskScore       float64  `json:"riskScore"` // 1 safest to 10 riskiest
	TradeAnalysis   string   `json:"tradeAnalysis"`
	AssetAnalysis   string   `json:"assetAnalysis"`
	Recommendations []string `json:"recommendations"`
}

const reviewSystemInstruction = "Bạn là chuyên gia phân tích tài chính chuyên nghiệp, sử dụng ngôn từ thực chiến và am hiểu thị trường chứng khoán Việt Nam."

// ReviewPortfolio asks the model for a deep review of the portfolio:
// allocation, trading behaviour, a 1-10 risk score, and concrete actions.
func (c *Client) ReviewPortfolio(ctx context.Context, in ReviewInput) (PortfolioReview, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(reviewSystemInstruction, genai.RoleUser),
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"riskScore":       {Type: genai.TypeNumber},
				"tradeAnalysis":   {Type: genai.TypeString},
				"assetAnalysis":   {Type: genai.TypeString},
				"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"riskScore", "tradeAnalysis", "assetAnalysis", "recommendations"},
		},
	}
	var review PortfolioReview
	if _, err := c.generateJSON(ctx, reviewPrompt(in), config, &review); err != nil {
		return PortfolioReview{}, err
	}
	return review, nil
}

func reviewPrompt(in ReviewInput) string {
	var holdings strings.Builder
	for _, h := range in.Holdings {
		fmt.Fprintf(&holdings, "- [%s] %s: Tỷ trọng %.1f%%, Lãi/Lỗ: %.1f%%, Ngành: %s\n",
			h.Brokerage, h.Symbol, h.WeightPercent, h.GainPercent, h.Sector)
	}

	limit := in.TransactionsCap
	if limit <= 0 {
		limit = 10
	}
	var history strings.Builder
	for i, t := range in.Transactions {
		if i >= limit {
			break
		}
		note := t.Note
		if note == "" {
			note = "Không có"
		}
		fmt.Fprintf(&history, "- %s: %s %s, Khối lượng: %s, Giá: %sđ, Ghi chú: %s\n",
			t.Date, t.Type, t.Symbol, t.Quantity, t.Price, note)
	}

	return fmt.Sprintf(`Bạn là một Giám đốc Quản lý Quỹ cấp cao với hơn 20 năm kinh nghiệm tại thị trường chứng khoán Việt Nam. Hãy thực hiện phân tích danh mục đầu tư dưới đây một cách cực kỳ chuyên sâu và thực chiến.

TỔNG QUAN TÀI CHÍNH:
- Tổng tài sản: %sđ
- Tiền mặt hiện có: %sđ (Tỷ lệ: %.1f%%)
- Lợi nhuận tổng: %sđ (%.2f%%)

CHI TIẾT DANH MỤC (HOLDINGS):
%s
LỊCH SỬ %d GIAO DỊCH GẦN NHẤT:
%s
YÊU CẦU PHÂN TÍCH CHUYÊN SÂU:
1. ĐÁNH GIÁ CƠ CẤU (Asset Analysis): Nhận xét về sự phân bổ vốn giữa các mã và ngành. Có đang bị quá tập trung (concentration risk) vào một mã hay một sàn (brokerage) nào không?
2. PHÂN TÍCH HÀNH VI (Trade Analysis): Dựa trên lịch sử giao dịch và ghi chú, hãy đánh giá phong cách đầu tư (đầu cơ, tích sản, hay hoảng loạn?). Các lệnh Buy/Sell có hợp lý về mặt quản trị vị thế không?
3. CHỈ SỐ RỦI RO (Risk Score): Đưa ra điểm số từ 1-10 (1: Rất an toàn, 10: Cực kỳ rủi ro/All-in).
4. CHIẾN LƯỢC HÀNH ĐỘNG: Đề xuất 3-4 hành động cụ thể (ví dụ: cơ cấu mã yếu, hạ tỷ trọng ngành nào, hoặc gia tăng tiền mặt dự phòng).

Lưu ý: Ngôn ngữ chuyên nghiệp, sắc bén, không nói nước đôi. Trả về JSON theo schema.`,
		in.TotalAssets, in.TotalCash, in.CashPercent, in.Profit, in.ProfitPercent,
		holdings.String(), limit, history.String())
}
