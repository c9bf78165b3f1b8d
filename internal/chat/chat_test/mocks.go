package chat_test

import (
	"context"
	"sync"

	"github.com/akolanti/pdfchat/internal/chat"
	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

// MockProvider implements llm.Provider
type MockProvider struct {
	kind   chatModel.ProviderKind
	OnSend func(ctx context.Context, messages []llm.Message) (string, error)
}

func (m *MockProvider) Kind() chatModel.ProviderKind { return m.kind }

func (m *MockProvider) Send(ctx context.Context, messages []llm.Message) (string, error) {
	if m.OnSend != nil {
		return m.OnSend(ctx, messages)
	}
	return "mocked llm response", nil
}

// MockFactory records every provider it hands out.
type MockFactory struct {
	mu       sync.Mutex
	Calls    []chatModel.ProviderKind
	Keys     []string
	Behavior map[chatModel.ProviderKind]func(ctx context.Context, messages []llm.Message) (string, error)
}

func (f *MockFactory) Factory() chat.ProviderFactory {
	return func(kind chatModel.ProviderKind, apiKey string) llm.Provider {
		f.mu.Lock()
		f.Calls = append(f.Calls, kind)
		f.Keys = append(f.Keys, apiKey)
		f.mu.Unlock()
		return &MockProvider{kind: kind, OnSend: f.Behavior[kind]}
	}
}

func (f *MockFactory) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
