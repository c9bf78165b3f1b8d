package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

func TestWithPersona(t *testing.T) {
	in := []Message{{Role: chatModel.RoleUser, Content: "hi"}}
	out := WithPersona(in)
	if len(out) != 2 || out[0].Role != chatModel.RoleSystem || out[0].Content != Persona {
		t.Fatalf("persona not prepended: %+v", out)
	}
	if len(in) != 1 {
		t.Error("input must not be modified")
	}
}

func TestReplyOrApology(t *testing.T) {
	if ReplyOrApology("  \n") != EmptyReplyApology {
		t.Error("blank reply should become the apology")
	}
	if ReplyOrApology("answer") != "answer" {
		t.Error("non-empty reply must pass through")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		path string
		want string
	}{
		{`{"error":{"message":"bad key"}}`, "error.message", "bad key"},
		{`{"error":"Model is loading"}`, "error", "Model is loading"},
		{`{"message":"invalid api token"}`, "message", "invalid api token"},
		{`<html>gateway</html>`, "message", "Unknown error"},
		{`{}`, "message", "Unknown error"},
	}
	for _, tt := range tests {
		if got := ErrorMessage([]byte(tt.body), tt.path); got != tt.want {
			t.Errorf("ErrorMessage(%s, %s) = %q; want %q", tt.body, tt.path, got, tt.want)
		}
	}
}

func TestPostJSON(t *testing.T) {
	t.Run("sends bearer and json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer k" {
				t.Errorf("auth header got %q", r.Header.Get("Authorization"))
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("content type got %q", r.Header.Get("Content-Type"))
			}
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		data, err := PostJSON(context.Background(), srv.Client(), chatModel.Cohere, srv.URL, "k", map[string]string{"a": "b"}, "message")
		if err != nil || string(data) != `{"ok":true}` {
			t.Fatalf("got %s, %v", data, err)
		}
	})

	t.Run("non-2xx becomes ProviderError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid api token"}`))
		}))
		defer srv.Close()

		_, err := PostJSON(context.Background(), srv.Client(), chatModel.Cohere, srv.URL, "k", nil, "message")
		var providerErr *chatModel.ProviderError
		if !errors.As(err, &providerErr) {
			t.Fatalf("expected ProviderError, got %v", err)
		}
		if providerErr.StatusCode != http.StatusUnauthorized || providerErr.Message != "invalid api token" {
			t.Errorf("got %+v", providerErr)
		}
		if providerErr.Error() != "cohere API error: 401 - invalid api token" {
			t.Errorf("error string got %q", providerErr.Error())
		}
	})

	t.Run("transport failure becomes ProviderError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := PostJSON(context.Background(), http.DefaultClient, chatModel.HuggingFace, url, "k", nil, "error")
		var providerErr *chatModel.ProviderError
		if !errors.As(err, &providerErr) || providerErr.StatusCode != 0 {
			t.Fatalf("expected transport ProviderError, got %v", err)
		}
	})
}

func TestCatalog(t *testing.T) {
	c := Catalog()
	if len(c) != 3 || c[0].Id != chatModel.Groq || !c[0].Recommended {
		t.Errorf("unexpected catalog %+v", c)
	}
}
