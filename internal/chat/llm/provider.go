package llm

import (
	"context"
	"strings"

	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

// Persona is the system instruction every backend receives first.
const Persona = "You are an expert AI assistant specialized in analyzing and discussing PDF documents. Provide detailed, accurate, and helpful responses based on the document content. Format your responses using markdown for better readability. Focus on being thorough and insightful in your analysis."

// EmptyReplyApology stands in for a well-formed response with no text.
const EmptyReplyApology = "I apologize, but I couldn't generate a response."

type Message struct {
	Role    chatModel.Role
	Content string
}

type Provider interface {
	Kind() chatModel.ProviderKind
	Send(ctx context.Context, messages []Message) (string, error)
}

// WithPersona returns messages with the persona system message in front.
func WithPersona(messages []Message) []Message {
	out := make([]Message, 0, len(messages)+1)
	out = append(out, Message{Role: chatModel.RoleSystem, Content: Persona})
	return append(out, messages...)
}

func ReplyOrApology(reply string) string {
	if strings.TrimSpace(reply) == "" {
		return EmptyReplyApology
	}
	return reply
}

type ProviderInfo struct {
	Id          chatModel.ProviderKind `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	KeyFormat   string                 `json:"key_format"`
	URL         string                 `json:"url"`
	Recommended bool                   `json:"recommended"`
}

// Catalog lists the providers a key prefix can select.
func Catalog() []ProviderInfo {
	return []ProviderInfo{
		{Id: chatModel.Groq, Name: "Groq", Description: "Free & Fast Llama models", KeyFormat: "gsk_...", URL: "https://console.groq.com", Recommended: true},
		{Id: chatModel.HuggingFace, Name: "Hugging Face", Description: "Free inference API", KeyFormat: "hf_...", URL: "https://huggingface.co/settings/tokens"},
		{Id: chatModel.Cohere, Name: "Cohere", Description: "Free trial credits", KeyFormat: "co-...", URL: "https://dashboard.cohere.ai"},
	}
}
