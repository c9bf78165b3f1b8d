package chat

import (
	"context"
	"time"

	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/metrics"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

const ConnectivityApology = "I'm having trouble connecting to the AI service. Please check your API key and try again."

// ProviderFactory builds the client for one provider and key.
type ProviderFactory func(kind chatModel.ProviderKind, apiKey string) llm.Provider

// Orchestrator picks a provider from the credential and applies the single
// fallback to Groq. Provider failures never escape it; the only error it
// returns is the context's, when the turn was cancelled.
type Orchestrator interface {
	GetResponse(ctx context.Context, cred chatModel.Credential, userMessage string, history []llm.Message) (string, error)
}

type orchestrator struct {
	newProvider ProviderFactory
	logger      *logger_i.Logger
}

func NewOrchestrator(factory ProviderFactory) Orchestrator {
	return &orchestrator{
		newProvider: factory,
		logger:      logger_i.NewLogger("Chat Orchestrator"),
	}
}

func (o *orchestrator) GetResponse(ctx context.Context, cred chatModel.Credential, userMessage string, history []llm.Message) (string, error) {
	log := o.logger.WithTrace(ctx)

	if cred.IsEmpty() {
		log.Debug("no credential, answering in demo mode")
		return DemoResponse(userMessage), nil
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: chatModel.RoleUser, Content: userMessage})

	primary := cred.Provider()
	reply, err := o.attempt(ctx, primary, cred.Key, messages)
	if err == nil {
		return reply, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	log.Warn("Primary API failed", "provider", primary, "error", err)

	if primary == chatModel.Groq {
		return ConnectivityApology, nil
	}

	metrics.CountFallback()
	log.Info("trying fallback", "provider", chatModel.Groq)
	reply, err = o.attempt(ctx, chatModel.Groq, cred.Key, messages)
	if err == nil {
		return reply, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	log.Error("All APIs failed", "error", err)
	return ConnectivityApology, nil
}

func (o *orchestrator) attempt(ctx context.Context, kind chatModel.ProviderKind, key string, messages []llm.Message) (string, error) {
	provider := o.newProvider(kind, key)

	start := time.Now()
	reply, err := provider.Send(ctx, messages)
	metrics.CaptureExecutionMetrics("llm_"+string(kind), time.Since(start))

	if err != nil {
		metrics.CountProviderCall(string(kind), "error")
		return "", err
	}
	metrics.CountProviderCall(string(kind), "ok")
	return reply, nil
}
