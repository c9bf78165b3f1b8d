package together

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

func TestSend_WireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path got %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if body["model"] != "meta-llama/Llama-2-7b-chat-hf" || body["max_tokens"] != float64(1500) {
			t.Errorf("unexpected params: %s", raw)
		}
		if _, ok := body["top_p"]; ok {
			t.Errorf("together does not send top_p: %s", raw)
		}
		msgs := body["messages"].([]any)
		if msgs[0].(map[string]any)["role"] != "system" {
			t.Errorf("persona missing: %s", raw)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"together says hi"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1/", "meta-llama/Llama-2-7b-chat-hf", "key", srv.Client())
	reply, err := client.Send(context.Background(), []llm.Message{{Role: chatModel.RoleUser, Content: "q"}})
	if err != nil || reply != "together says hi" {
		t.Errorf("got %q, %v", reply, err)
	}
	if client.Kind() != chatModel.Together {
		t.Errorf("kind got %s", client.Kind())
	}
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key","type":"auth"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1", "m", "key", srv.Client())
	_, err := client.Send(context.Background(), []llm.Message{{Role: chatModel.RoleUser, Content: "q"}})
	var providerErr *chatModel.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.StatusCode != http.StatusUnauthorized || providerErr.Message != "invalid key" {
		t.Errorf("got %+v", providerErr)
	}
}
