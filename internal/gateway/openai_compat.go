package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxBodySize = 1 << 20 // 1 MB

// chatBackend calls an OpenAI-compatible chat completions endpoint.
// Both Groq and OpenAI speak this shape.
type chatBackend struct {
	name      string
	url       string
	apiKey    string
	model     string
	maxTokens int
	http      *http.Client
}

// NewGroq returns the Groq backend (Llama via chat completions).
func NewGroq(apiKey, model string, maxTokens int) Backend {
	return &chatBackend{
		name:      "groq",
		url:       "https://api.groq.com/openai/v1/chat/completions",
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		http:      &http.Client{},
	}
}

// NewOpenAI returns the OpenAI backend.
func NewOpenAI(apiKey, model string, maxTokens int) Backend {
	return &chatBackend{
		name:      "openai",
		url:       "https://api.openai.com/v1/chat/completions",
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		http:      &http.Client{},
	}
}

func (b *chatBackend) Name() string { return b.name }

func (b *chatBackend) Available() bool { return b.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (b *chatBackend) Generate(ctx context.Context, prompt, systemPrompt string) (Result, error) {
	payload := chatRequest{
		Model: b.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: b.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{}, fmt.Errorf("parsing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return Result{}, fmt.Errorf("status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return Result{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return Result{}, fmt.Errorf("response contained no choices")
	}

	return Result{
		Text:         parsed.Choices[0].Message.Content,
		InputTokens:  parsed.Usage.PromptTokens,
		OutputTokens: parsed.Usage.CompletionTokens,
	}, nil
}
