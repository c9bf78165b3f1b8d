package huggingface

import (
	"context"
	"net/http"
	"strings"

	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/pkg/logger_i"
	"github.com/tidwall/gjson"
)

const (
	maxLength     = 1000
	assistantTurn = "Assistant:"
)

var logger = logger_i.NewLogger("llm_huggingface")

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
}

type llmClient struct {
	http   *http.Client
	url    string
	apiKey string
}

// NewClient targets the inference endpoint of a single model, baseURL +
// model.
func NewClient(baseURL, model, apiKey string, httpClient *http.Client) llm.Provider {
	return &llmClient{
		http:   httpClient,
		url:    strings.TrimRight(baseURL, "/") + "/" + model,
		apiKey: apiKey,
	}
}

func (c *llmClient) Kind() chatModel.ProviderKind { return chatModel.HuggingFace }

func (c *llmClient) Send(ctx context.Context, messages []llm.Message) (string, error) {
	body := request{
		Inputs: Transcript(llm.WithPersona(messages)),
		Parameters: parameters{
			MaxLength:   maxLength,
			Temperature: config.ModelTemperature,
			DoSample:    true,
		},
	}

	data, err := llm.PostJSON(ctx, c.http, chatModel.HuggingFace, c.url, c.apiKey, body, "error")
	if err != nil {
		logger.WithTrace(ctx).Error("huggingface request failed", "error", err)
		return "", err
	}

	if !gjson.ValidBytes(data) {
		return "", llm.Malformed(chatModel.HuggingFace, http.StatusOK)
	}
	generated := gjson.GetBytes(data, "0.generated_text").String()
	return llm.ReplyOrApology(lastAssistantTurn(generated)), nil
}

// Transcript flattens the conversation into one prompt ending with an open
// assistant turn.
func Transcript(messages []llm.Message) string {
	turns := make([]string, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case chatModel.RoleSystem:
			turns = append(turns, "System: "+m.Content)
		case chatModel.RoleUser:
			turns = append(turns, "Human: "+m.Content)
		default:
			turns = append(turns, "Assistant: "+m.Content)
		}
	}
	return strings.Join(turns, "\n\n") + "\n\n" + assistantTurn
}

// the model echoes the prompt, keep what follows the final assistant marker
func lastAssistantTurn(generated string) string {
	if i := strings.LastIndex(generated, assistantTurn); i >= 0 {
		generated = generated[i+len(assistantTurn):]
	}
	return strings.TrimSpace(generated)
}
