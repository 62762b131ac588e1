package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultGeminiModel is used when configuration does not name one.
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Generator is the provider boundary: one prompt in, one response out.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Google AI Studio (Gemini) generateContent API.
// The API key is resolved per call so a settings change applies to the next
// request without rebuilding the client.
type GeminiClient struct {
	apiKey     func() string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiClient constructs a client. apiKey is read on every call.
func NewGeminiClient(apiKey func() string, model string) *GeminiClient {
	model = strings.TrimSpace(strings.TrimPrefix(model, "models/"))
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    defaultGeminiBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

// GenerateText implements Generator.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	key := strings.TrimSpace(c.apiKey())
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		message := errResp.Error.Message
		if message == "" {
			message = resp.Status
		}
		return "", &TransportError{StatusCode: resp.StatusCode, Message: message}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TransportError{Message: "unparseable response body"}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &TransportError{Message: "empty response from gemini"}
	}
	answer := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if answer == "" {
		return "", &TransportError{Message: "empty response from gemini"}
	}
	return answer, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
