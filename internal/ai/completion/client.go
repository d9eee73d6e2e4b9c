package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// maxOutputTokens is the fixed output budget per generation call
const maxOutputTokens = 1500

// Client invokes the remote chat-completion endpoint
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a completion client for the configured deployment
func NewClient(apiKey, model string) *Client {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Client{
		client: &client,
		model:  model,
	}
}

// Complete sends the instruction and content segments as a two-message chat
// and returns the raw textual completion. Callers own response parsing; the
// output here is untrusted free text.
func (c *Client) Complete(ctx context.Context, instruction, content string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instruction),
			openai.UserMessage(content),
		},
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("completion api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
