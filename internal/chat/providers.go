package chat

import (
	"net/http"

	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/chat/llm/cohere"
	"github.com/akolanti/pdfchat/internal/chat/llm/groq"
	"github.com/akolanti/pdfchat/internal/chat/llm/huggingface"
	"github.com/akolanti/pdfchat/internal/chat/llm/together"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

// NewProviderFactory wires every provider to the configured endpoints and a
// shared http client.
func NewProviderFactory(settings config.ProviderSettings, httpClient *http.Client) ProviderFactory {
	return func(kind chatModel.ProviderKind, apiKey string) llm.Provider {
		switch kind {
		case chatModel.HuggingFace:
			return huggingface.NewClient(settings.HuggingFaceURL, settings.HuggingFaceModel, apiKey, httpClient)
		case chatModel.Cohere:
			return cohere.NewClient(settings.CohereChatURL, settings.CohereModel, apiKey, httpClient)
		case chatModel.Together:
			return together.NewClient(settings.TogetherBaseURL, settings.TogetherModel, apiKey, httpClient)
		default:
			return groq.NewClient(settings.GroqBaseURL, settings.GroqModel, apiKey, httpClient)
		}
	}
}
