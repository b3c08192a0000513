package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

// GroqClient is a minimal client for Groq's OpenAI-compatible chat completions
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.groq.com"
	}
	model := cfg.Model
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &GroqClient{
		apiKey:  cfg.APIKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Model returns the configured model name
func (g *GroqClient) Model() string { return g.model }

// Complete sends a single user prompt and returns the assistant content
func (g *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", appErrors.ErrConfigMissing("GROQ_API_KEY")
	}

	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   4000,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", appErrors.ErrAICompletionFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", appErrors.ErrAIServiceUnavailable("groq")
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", appErrors.ErrAICompletionFailed(
			fmt.Errorf("groq returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", appErrors.ErrAICompletionFailed(err)
	}
	if len(cr.Choices) == 0 {
		return "", appErrors.ErrAICompletionFailed(fmt.Errorf("empty response from groq"))
	}
	return cr.Choices[0].Message.Content, nil
}
