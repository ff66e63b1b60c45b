package receipt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.0-flash"
)

var (
	ErrNotConfigured   = errors.New("receipt extraction is not configured")
	ErrEmptyImage      = errors.New("no image provided")
	ErrEmptyResponse   = errors.New("empty extraction response")
	ErrInvalidResponse = errors.New("extraction returned invalid JSON")
)

const extractionPrompt = `Analyze this receipt image and return ONLY a JSON object with this shape:

{
  "restaurant": "merchant name as printed",
  "items": [{"name": "item name as printed", "amount": number}],
  "adjustments": [{"name": "tax, service charge, tip or discount as printed", "amount": number}],
  "subTotal": number,
  "grandTotal": number,
  "currency": "ISO 4217 code, empty if unknown",
  "date": "YYYY-MM-DD or null",
  "time": "HH:MM in 24-hour format or null"
}

Rules:
- amount is the line total, not the unit price
- discounts are negative amounts
- do not include subtotal or total lines in items or adjustments
- return an empty items array if the image cannot be read`

// Extractor reads a receipt image.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (ExtractedData, error)
}

// GeminiConfig holds the settings for GeminiClient.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiClient extracts receipts with the Gemini generateContent API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGeminiClient creates a client. Empty Model, BaseURL and Timeout take defaults.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig map[string]any `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Extract implements Extractor.
func (g *GeminiClient) Extract(ctx context.Context, image []byte, mimeType string) (ExtractedData, error) {
	if g.apiKey == "" {
		return ExtractedData{}, ErrNotConfigured
	}
	if len(image) == 0 {
		return ExtractedData{}, ErrEmptyImage
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	var payload geminiRequest
	payload.Contents = make([]struct {
		Parts []geminiPart `json:"parts"`
	}, 1)
	payload.Contents[0].Parts = []geminiPart{
		{Text: extractionPrompt},
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
	}
	payload.GenerationConfig = map[string]any{
		"temperature":      0.2,
		"responseMimeType": "application/json",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ExtractedData{}, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ExtractedData{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return ExtractedData{}, fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ExtractedData{}, fmt.Errorf("failed to read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ExtractedData{}, fmt.Errorf("gemini api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var result geminiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return ExtractedData{}, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return ExtractedData{}, ErrEmptyResponse
	}

	text := stripCodeFence(result.Candidates[0].Content.Parts[0].Text)
	var data ExtractedData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return ExtractedData{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return data, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block, if any.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
