// Package openai implements the fraudscan.Reasoner port against an
// OpenAI-compatible chat-completions endpoint, requesting a JSON-object
// response that the orchestrator validates against its assessment schema.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/txlens/txlens/internal/fraudscan"

	"github.com/hashicorp/go-retryablehttp"
)

// systemPrompt instructs the model to act as a transaction fraud analyst and
// pins the exact response schema. The orchestrator still validates every
// field; the prompt only raises the odds of a conforming answer.
const systemPrompt = `You are a blockchain transaction security analyst. ` +
	`Given a decoded Ethereum transaction, assess the likelihood that signing it harms the sender. ` +
	`Respond with a single JSON object containing exactly these fields: ` +
	`"riskLevel" (one of "low", "medium", "high"), ` +
	`"fraudScore" (integer 0-100), ` +
	`"description" (one sentence, plain language), ` +
	`"reasoning" (short paragraph), ` +
	`"warnings" (array of strings, may be empty), ` +
	`"functionName" (the invoked function, or "unknown"), ` +
	`"functionDescription" (what the function does), ` +
	`"aiConfidence" (integer 0-100).`

// client calls an OpenAI-compatible /chat/completions endpoint.
type client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	apiKey     string
	model      string
}

var _ fraudscan.Reasoner = (*client)(nil)

// NewClient creates a reasoning client. The credential is mandatory: the
// orchestrator is supposed to fail fast at startup, not degrade silently.
func NewClient(httpClient *retryablehttp.Client, baseURL, apiKey, model string) (*client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("reasoning service credential is required")
	}
	if model == "" {
		return nil, fmt.Errorf("reasoning service model is required")
	}

	return &client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Assess implements fraudscan.Reasoner. It returns the model's JSON answer
// verbatim; schema enforcement stays with the orchestrator.
func (c *client) Assess(ctx context.Context, assessReq fraudscan.AssessmentRequest) (json.RawMessage, error) {
	contextBundle, err := json.Marshal(assessReq)
	if err != nil {
		return nil, err
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(contextBundle)},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reasoning service returned status %d: %s", res.StatusCode, truncate(raw, 256))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("malformed reasoning service envelope: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("reasoning service error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("reasoning service returned no choices")
	}

	return json.RawMessage(parsed.Choices[0].Message.Content), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
