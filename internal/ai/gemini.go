// Package ai wraps the external generation API used for question authoring,
// hints, and solutions. The backend only depends on the Generator interface;
// the Gemini REST client is one implementation of it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyResponse is returned when the generation API answered without any
// usable candidate text.
var ErrEmptyResponse = errors.New("ai: empty response from generation API")

// GeneratedQuestion is the structured output of question generation.
type GeneratedQuestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// Generator produces interview content from prompts.
type Generator interface {
	GenerateQuestion(ctx context.Context, topic, difficulty string) (*GeneratedQuestion, error)
	GenerateHint(ctx context.Context, description, currentCode string) (string, error)
	GenerateSolution(ctx context.Context, description string) (string, error)
}

// GeminiClient talks to the Google Generative Language REST API.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewGeminiClient(baseURL, apiKey, model string) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateQuestion asks the model for a new question as JSON and parses it.
func (c *GeminiClient) GenerateQuestion(ctx context.Context, topic, difficulty string) (*GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`Generate a coding interview question about %s at %s difficulty. Return JSON only:
{
  "title": "Question title",
  "description": "Problem description",
  "examples": ["input -> output"]
}`, topic, difficulty)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var q GeneratedQuestion
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &q); err != nil {
		return nil, fmt.Errorf("parsing generated question: %w", err)
	}
	if q.Title == "" || q.Description == "" {
		return nil, ErrEmptyResponse
	}
	return &q, nil
}

// GenerateHint returns a short nudge toward the solution without revealing it.
func (c *GeminiClient) GenerateHint(ctx context.Context, description, currentCode string) (string, error) {
	prompt := fmt.Sprintf("Give one short hint (no full solution) for this problem:\n%s\n\nThe candidate's current code:\n%s", description, currentCode)
	return c.generate(ctx, prompt)
}

// GenerateSolution returns a worked solution with explanation.
func (c *GeminiClient) GenerateSolution(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf("Provide a complete, well-explained solution for this problem:\n%s", description)
	return c.generate(ctx, prompt)
}

// stripCodeFence removes a surrounding markdown code fence, which the model
// frequently adds even when asked for raw JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
