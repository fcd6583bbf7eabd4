package advisor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestResolveModel(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", DefaultModel},
		{"flash-lite", "gemini-flash-lite-latest"},
		{"flash", "gemini-flash-latest"},
		{"pro", "gemini-3-pro-preview"},
		{"FLASH", "gemini-flash-latest"},
		{"  pro  ", "gemini-3-pro-preview"},
		// aliases match as substrings, like the model pickers do
		{"my-flash-lite-build", "gemini-flash-lite-latest"},
		// anything else passes through verbatim
		{"gemini-2.5-flash-latest", "gemini-2.5-flash-latest"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ResolveModel(tc.in), "ResolveModel(%q)", tc.in)
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(genai.APIError{Code: 429, Message: "rate limited"}))
	assert.True(t, retryable(errors.New("got 429 from upstream")))
	assert.True(t, retryable(errors.New("exceeded your current quota")))
	assert.False(t, retryable(genai.APIError{Code: 400, Message: "bad request"}))
	assert.False(t, retryable(errors.New("connection refused")))
}

func TestReviewPrompt(t *testing.T) {
	in := ReviewInput{
		TotalAssets:   "9.200.000",
		TotalCash:     "6.500.000",
		CashPercent:   70.7,
		Profit:        "200.000",
		ProfitPercent: 2.22,
		Holdings: []ReviewHolding{
			{Symbol: "HPG", Brokerage: "SSI", Sector: "Steel", WeightPercent: 29.3, GainPercent: 8.0},
		},
		Transactions: []ReviewTransaction{
			{Date: "01/08/2025", Type: "BUY", Symbol: "HPG", Quantity: "100", Price: "25.000 ₫"},
		},
	}
	prompt := reviewPrompt(in)

	assert.Contains(t, prompt, "Tổng tài sản: 9.200.000đ")
	assert.Contains(t, prompt, "[SSI] HPG: Tỷ trọng 29.3%, Lãi/Lỗ: 8.0%, Ngành: Steel")
	assert.Contains(t, prompt, "01/08/2025: BUY HPG")
	// an empty note renders a placeholder
	assert.Contains(t, prompt, "Ghi chú: Không có")
}

func TestReviewPrompt_CapsHistory(t *testing.T) {
	in := ReviewInput{}
	for i := 0; i < 25; i++ {
		in.Transactions = append(in.Transactions, ReviewTransaction{Date: "01/01/2025", Type: "BUY", Symbol: "AAA"})
	}
	prompt := reviewPrompt(in)
	assert.Equal(t, 10, strings.Count(prompt, "01/01/2025: BUY AAA"))
}

func TestSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{Title: "cafef", URI: "https://cafef.vn/x"}},
					{Web: nil}, // non-web chunks are skipped
					{Web: &genai.GroundingChunkWeb{Title: "", URI: "https://vietstock.vn/y"}},
				},
			},
		}},
	}
	got := sources(resp)
	assert.Equal(t, []Source{
		{Title: "cafef", URI: "https://cafef.vn/x"},
		{Title: "Source", URI: "https://vietstock.vn/y"},
	}, got)

	assert.Empty(t, sources(nil))
	assert.Empty(t, sources(&genai.GenerateContentResponse{}))
}
