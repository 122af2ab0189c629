package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// invokeTimeout bounds a single model call; expiry is a transient failure.
const invokeTimeout = 30 * time.Second

// ModelClient is the outbound boundary to the generative model. The
// collaborator knows nothing about the itinerary schema; all structure is
// imposed by the prompt and enforced by the validator.
type ModelClient interface {
	Invoke(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiModelClient calls Google's Gemini models.
type GeminiModelClient struct {
	client *genai.Client
	model  string
}

func NewGeminiModelClient(apiKey, model string) (ModelClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModelClient{client: client, model: model}, nil
}

func (c *GeminiModelClient) Invoke(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.SetTopP(0.8)
	m.SetTopK(40)
	m.SetMaxOutputTokens(8192)

	callCtx, cancel := context.WithTimeout(ctx, invokeTimeout)
	defer cancel()

	resp, err := m.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", classifyInvokeError(ctx, "gemini generate", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", NewTransientError("gemini generate", errors.New("no content generated"))
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (c *GeminiModelClient) Close() error {
	return c.client.Close()
}

// OpenAIModelClient calls OpenAI chat models through the same interface.
type OpenAIModelClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIModelClient(apiKey, model string) (ModelClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIModelClient{client: openai.NewClient(apiKey), model: model}, nil
}

func (c *OpenAIModelClient) Invoke(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	callCtx, cancel := context.WithTimeout(ctx, invokeTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		TopP:        0.8,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyInvokeError(ctx, "openai chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", NewTransientError("openai chat completion", errors.New("no choices returned"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIModelClient) Close() error { return nil }

// classifyInvokeError keeps caller cancellation intact and tags everything
// else, including expiry of the per-call timeout, as transient.
func classifyInvokeError(parent context.Context, op string, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	return NewTransientError(op, err)
}

// NewModelClient selects a provider implementation from configuration.
func NewModelClient(provider, apiKey, model string) (ModelClient, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIModelClient(apiKey, model)
	case "gemini":
		return NewGeminiModelClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
