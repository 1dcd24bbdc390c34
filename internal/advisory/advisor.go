package advisory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"tripcast/internal/metrics"
)

// Unavailable is shown whenever the advisory service fails or is not
// configured. The rest of the lookup proceeds regardless.
const Unavailable = "Travel advisory is currently unavailable."

const defaultModel = "gpt-4o-mini"

// Advisor produces short travel advisories via the OpenAI chat API.
type Advisor struct {
	client openai.Client
	model  string
}

// NewAdvisor creates an advisor. The API key is supplied at process start
// and never rotated; an empty key is an error so callers can run without
// advisories.
func NewAdvisor(apiKey, model string) (*Advisor, error) {
	if apiKey == "" {
		return nil, errors.New("advisory API key not set")
	}
	if model == "" {
		model = defaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Advisor{
		client: client,
		model:  model,
	}, nil
}

// Advise asks for a travel advisory for the named place and returns the raw
// response text verbatim.
func (a *Advisor) Advise(ctx context.Context, location string) (string, error) {
	prompt := fmt.Sprintf(
		"Give a short travel advisory for someone visiting %s in the next 7 days: what to pack, what to watch out for, and one local tip. Keep it under 80 words of plain text.",
		location,
	)

	start := time.Now()
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	metrics.UpstreamLatency.WithLabelValues("advisory").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues("advisory", "error").Inc()
		return "", fmt.Errorf("advisory completion: %w", err)
	}
	metrics.UpstreamCallsTotal.WithLabelValues("advisory", "ok").Inc()

	if len(resp.Choices) == 0 {
		return "", errors.New("no advisory choices returned")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty advisory text returned")
	}
	return text, nil
}
