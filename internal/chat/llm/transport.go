package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/tidwall/gjson"
)

const maxResponseSize = 10 << 20

// PostJSON sends body as JSON with bearer auth and returns the raw 2xx
// response. Transport failures and non-2xx statuses become ProviderError,
// with the message read from errPath in the error body when present.
func PostJSON(ctx context.Context, client *http.Client, kind chatModel.ProviderKind, url, apiKey string, body any, errPath string) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &chatModel.ProviderError{Provider: kind, Message: "encoding request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &chatModel.ProviderError{Provider: kind, Message: "building request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &chatModel.ProviderError{Provider: kind, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &chatModel.ProviderError{Provider: kind, StatusCode: resp.StatusCode, Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &chatModel.ProviderError{
			Provider:   kind,
			StatusCode: resp.StatusCode,
			Message:    ErrorMessage(data, errPath),
		}
	}
	return data, nil
}

// ErrorMessage pulls the provider's message out of an error body.
func ErrorMessage(body []byte, path string) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, path); msg.Exists() && msg.String() != "" {
			return msg.String()
		}
	}
	return "Unknown error"
}

// Malformed is the error for a 2xx response that is not the expected JSON.
func Malformed(kind chatModel.ProviderKind, status int) error {
	return &chatModel.ProviderError{Provider: kind, StatusCode: status, Message: "malformed response body", Err: fmt.Errorf("unexpected %s response shape", kind)}
}
