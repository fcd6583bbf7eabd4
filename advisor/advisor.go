// Package advisor generates portfolio and stock analyses with the Gemini
// API. Responses are schema constrained JSON, market facing calls are
// grounded with Google Search.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when no alias or custom model is configured.
const DefaultModel = "gemini-3-flash-preview"

// ResolveModel maps the short aliases users type to full model identifiers.
// Anything that is not an alias passes through as a literal model id.
func ResolveModel(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "":
		return DefaultModel
	case strings.Contains(name, "flash-lite"):
		return "gemini-flash-lite-latest"
	case strings.Contains(name, "flash"):
		return "gemini-flash-latest"
	case strings.Contains(name, "pro"):
		return "gemini-3-pro-preview"
	default:
		return name
	}
}

// ErrModelNotFound reports an unusable API key or model id. It is never
// retried.
var ErrModelNotFound = errors.New("model not found or API key invalid")

// Client runs analyses against one Gemini model.
type Client struct {
	genai *genai.Client
	model string

	retries int
	backoff time.Duration
	sleep   func(context.Context, time.Duration) error // test hook
}

// New creates a client for the given API key and model name (alias, full id,
// or empty for the default).
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create Gemini client: %w", err)
	}
	return &Client{
		genai:   gc,
		model:   ResolveModel(model),
		retries: 3,
		backoff: 2 * time.Second,
		sleep:   sleepCtx,
	}, nil
}

// Model returns the resolved model identifier in use.
func (c *Client) Model() string { return c.model }

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryable reports whether err is a quota error worth retrying.
func retryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota")
}

// generate calls the model, retrying quota errors with a doubling delay.
func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	delay := c.backoff
	for attempt := 0; ; attempt++ {
		resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
		if err == nil {
			return resp, nil
		}
		if strings.Contains(err.Error(), "Requested entity was not found") {
			return nil, fmt.Errorf("%w: check the API key or pick another model", ErrModelNotFound)
		}
		if attempt >= c.retries || !retryable(err) {
			return nil, err
		}
		log.Printf("advisor: quota exceeded, retrying in %v (%d attempts left)", delay, c.retries-attempt)
		if serr := c.sleep(ctx, delay); serr != nil {
			return nil, serr
		}
		delay *= 2
	}
}

// generateJSON calls the model with a response schema and decodes the JSON
// answer into out.
func (c *Client) generateJSON(ctx context.Context, prompt string, config *genai.GenerateContentConfig, out any) (*genai.GenerateContentResponse, error) {
	config.ResponseMIMEType = "application/json"
	resp, err := c.generate(ctx, prompt, config)
	if err != nil {
		return nil, err
	}
	text := resp.Text()
	if text == "" {
		return nil, errors.New("advisor: empty model response")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return nil, fmt.Errorf("advisor: cannot decode model response: %w", err)
	}
	return resp, nil
}

// Source is a web page the model grounded its answer on.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// sources extracts the grounding web sources of the first candidate.
func sources(resp *genai.GenerateContentResponse) []Source {
	out := []Source{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Source"
		}
		out = append(out, Source{Title: title, URI: chunk.Web.URI})
	}
	return out
}

// googleSearch is the grounding tool attached to market facing calls.
func googleSearch() []*genai.Tool {
	return []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
}
