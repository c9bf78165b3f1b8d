package cohere

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

func TestBuildRequest(t *testing.T) {
	req := buildRequest("command-light", llm.WithPersona([]llm.Message{
		{Role: chatModel.RoleAssistant, Content: "summary"},
		{Role: chatModel.RoleUser, Content: "what now?"},
	}))

	if req.Message != "what now?" {
		t.Errorf("message got %q", req.Message)
	}
	wantRoles := []string{"SYSTEM", "CHATBOT"}
	if len(req.ChatHistory) != len(wantRoles) {
		t.Fatalf("history got %+v", req.ChatHistory)
	}
	for i, role := range wantRoles {
		if req.ChatHistory[i].Role != role {
			t.Errorf("history[%d] role got %s, want %s", i, req.ChatHistory[i].Role, role)
		}
	}
	if req.MaxTokens != 1000 || req.Temperature != 0.7 {
		t.Errorf("params got %+v", req)
	}
}

func TestSend(t *testing.T) {
	t.Run("reads text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			var req request
			_ = json.Unmarshal(raw, &req)
			if req.Model != "command-light" || req.Message != "q" {
				t.Errorf("request got %s", raw)
			}
			_, _ = w.Write([]byte(`{"text":"cohere reply","generation_id":"g"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "command-light", "co-key", srv.Client())
		reply, err := client.Send(context.Background(), []llm.Message{{Role: chatModel.RoleUser, Content: "q"}})
		if err != nil || reply != "cohere reply" {
			t.Errorf("got %q, %v", reply, err)
		}
	})

	t.Run("missing text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"generation_id":"g"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "command-light", "co-key", srv.Client())
		reply, err := client.Send(context.Background(), []llm.Message{{Role: chatModel.RoleUser, Content: "q"}})
		if err != nil || reply != llm.EmptyReplyApology {
			t.Errorf("got %q, %v", reply, err)
		}
	})

	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"trial limit reached"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "command-light", "co-key", srv.Client())
		_, err := client.Send(context.Background(), []llm.Message{{Role: chatModel.RoleUser, Content: "q"}})
		var providerErr *chatModel.ProviderError
		if !errors.As(err, &providerErr) || providerErr.Message != "trial limit reached" || providerErr.StatusCode != 429 {
			t.Fatalf("got %v", err)
		}
	})
}
