package textgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkConfig describes the Volcengine Ark chat model used as the alternate
// provider.
type ArkConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Region  string
}

// ArkClient adapts an eino chat model to the Client contract.
type ArkClient struct {
	chatModel model.ChatModel
}

// NewArkClient constructs the Ark-backed client.
func NewArkClient(ctx context.Context, cfg ArkConfig) (*ArkClient, error) {
	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Region:  cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
	}
	return &ArkClient{chatModel: chatModel}, nil
}

// NewArkClientFromModel wraps an existing chat model, used by tests.
func NewArkClientFromModel(chatModel model.ChatModel) *ArkClient {
	return &ArkClient{chatModel: chatModel}
}

// Generate sends the prompt as a single user message.
func (c *ArkClient) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		if isRateLimitError(err) {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrMalformedResponse)
	}
	return msg.Content, nil
}

// isRateLimitError sniffs the SDK error text for a throttling signal. The
// Ark SDK does not expose the HTTP status as a typed field.
func isRateLimitError(err error) bool {
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "429") || strings.Contains(text, "rate limit")
}
