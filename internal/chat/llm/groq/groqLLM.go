package groq

import (
	"context"
	"errors"
	"net/http"

	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	maxTokens = 2000
	topP      = 0.9
)

var logger = logger_i.NewLogger("llm_groq")

type llmClient struct {
	client openai.Client
	model  string
}

// NewClient talks to Groq's OpenAI compatible endpoint. Retries are off, the
// orchestrator owns the fallback policy.
func NewClient(baseURL, model, apiKey string, httpClient *http.Client) llm.Provider {
	c := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)
	return &llmClient{client: c, model: model}
}

func (c *llmClient) Kind() chatModel.ProviderKind { return chatModel.Groq }

func (c *llmClient) Send(ctx context.Context, messages []llm.Message) (string, error) {
	log := logger.WithTrace(ctx)
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(llm.WithPersona(messages)),
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(config.ModelTemperature),
		TopP:        openai.Float(topP),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Error("groq request failed", "error", err)
		return "", toProviderError(err)
	}

	if len(completion.Choices) == 0 {
		return llm.EmptyReplyApology, nil
	}
	return llm.ReplyOrApology(completion.Choices[0].Message.Content), nil
}

func toParams(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case chatModel.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case chatModel.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func toProviderError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return &chatModel.ProviderError{Provider: chatModel.Groq, StatusCode: apiErr.StatusCode, Message: msg, Err: err}
	}
	return &chatModel.ProviderError{Provider: chatModel.Groq, Message: err.Error(), Err: err}
}
