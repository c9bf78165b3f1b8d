package cohere

import (
	"context"
	"net/http"

	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/pkg/logger_i"
	"github.com/tidwall/gjson"
)

const maxTokens = 1000

var logger = logger_i.NewLogger("llm_cohere")

type historyEntry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type request struct {
	Model       string         `json:"model"`
	Message     string         `json:"message"`
	ChatHistory []historyEntry `json:"chat_history"`
	Temperature float64        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens"`
}

type llmClient struct {
	http   *http.Client
	url    string
	model  string
	apiKey string
}

func NewClient(chatURL, model, apiKey string, httpClient *http.Client) llm.Provider {
	return &llmClient{http: httpClient, url: chatURL, model: model, apiKey: apiKey}
}

func (c *llmClient) Kind() chatModel.ProviderKind { return chatModel.Cohere }

func (c *llmClient) Send(ctx context.Context, messages []llm.Message) (string, error) {
	data, err := llm.PostJSON(ctx, c.http, chatModel.Cohere, c.url, c.apiKey, buildRequest(c.model, llm.WithPersona(messages)), "message")
	if err != nil {
		logger.WithTrace(ctx).Error("cohere request failed", "error", err)
		return "", err
	}

	if !gjson.ValidBytes(data) {
		return "", llm.Malformed(chatModel.Cohere, http.StatusOK)
	}
	return llm.ReplyOrApology(gjson.GetBytes(data, "text").String()), nil
}

// buildRequest sends the last turn as the message and everything before it
// as chat history.
func buildRequest(model string, messages []llm.Message) request {
	req := request{
		Model:       model,
		ChatHistory: []historyEntry{},
		Temperature: config.ModelTemperature,
		MaxTokens:   maxTokens,
	}
	if len(messages) == 0 {
		return req
	}
	last := len(messages) - 1
	req.Message = messages[last].Content
	for _, m := range messages[:last] {
		req.ChatHistory = append(req.ChatHistory, historyEntry{Role: historyRole(m.Role), Message: m.Content})
	}
	return req
}

func historyRole(role chatModel.Role) string {
	switch role {
	case chatModel.RoleAssistant:
		return "CHATBOT"
	case chatModel.RoleSystem:
		return "SYSTEM"
	default:
		return "USER"
	}
}
