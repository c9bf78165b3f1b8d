package together

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/pkg/logger_i"
	"github.com/sashabaranov/go-openai"
)

const maxTokens = 1500

var logger = logger_i.NewLogger("llm_together")

type llmClient struct {
	client *openai.Client
	model  string
}

func NewClient(baseURL, model, apiKey string, httpClient *http.Client) llm.Provider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = httpClient
	return &llmClient{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *llmClient) Kind() chatModel.ProviderKind { return chatModel.Together }

func (c *llmClient) Send(ctx context.Context, messages []llm.Message) (string, error) {
	withPersona := llm.WithPersona(messages)
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(withPersona)),
		MaxTokens:   maxTokens,
		Temperature: config.ModelTemperature,
	}
	for _, m := range withPersona {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logger.WithTrace(ctx).Error("together request failed", "error", err)
		return "", toProviderError(err)
	}
	if len(resp.Choices) == 0 {
		return llm.EmptyReplyApology, nil
	}
	return llm.ReplyOrApology(resp.Choices[0].Message.Content), nil
}

func toProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &chatModel.ProviderError{Provider: chatModel.Together, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &chatModel.ProviderError{Provider: chatModel.Together, StatusCode: reqErr.HTTPStatusCode, Message: "Unknown error", Err: err}
	}
	return &chatModel.ProviderError{Provider: chatModel.Together, Message: err.Error(), Err: err}
}
