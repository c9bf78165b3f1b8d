package adapter

import (
	"testing"
	"time"

	"github.com/akolanti/pdfchat/internal/api"
	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
)

func TestToAPIResponse(t *testing.T) {
	tests := []struct {
		name        string
		job         jobModel.Job
		expectTurn  bool
		expectError bool
	}{
		{
			name: "Queued job has no turn",
			job:  jobModel.Job{Id: "j1", SessionId: "s1", Status: jobModel.JobStatusQueued, CurrentStep: jobModel.AnalyzeInit},
		},
		{
			name: "Completed question",
			job: jobModel.Job{
				Id:         "j2",
				SessionId:  "s1",
				Status:     jobModel.JobStatusComplete,
				JobType:    jobModel.JobTypeQuestion,
				JobPayload: jobModel.JobPayload{Question: "q", Answer: "a", MessageId: "m1"},
			},
			expectTurn: true,
		},
		{
			name: "Failed job",
			job: jobModel.Job{
				Id:     "j3",
				Status: jobModel.JobStatusError,
				Error:  jobModel.JobError{Code: 404, Message: "Session not found"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAPIResponse(tt.job)
			if got.Id != tt.job.Id || got.SessionId != tt.job.SessionId {
				t.Errorf("ids not carried: %+v", got)
			}
			if got.Result.Status != string(tt.job.Status) || got.Result.Step != string(tt.job.CurrentStep) {
				t.Errorf("result got %+v", got.Result)
			}
			if (got.Result.TurnResponse != nil) != tt.expectTurn {
				t.Errorf("turn presence got %v, want %v", got.Result.TurnResponse != nil, tt.expectTurn)
			}
			if tt.expectTurn && got.Result.TurnResponse.MessageId != "m1" {
				t.Errorf("turn got %+v", got.Result.TurnResponse)
			}
			if (got.Error != nil) != tt.expectError {
				t.Errorf("error presence got %v, want %v", got.Error != nil, tt.expectError)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	got := BadRequest("", "Please upload a valid PDF file", 400)
	if got.Result.Status != string(api.JobStatusError) || got.Error == nil || got.Error.Code != 400 {
		t.Errorf("unexpected envelope %+v", got)
	}
	if got.Error.Retry {
		t.Error("bad requests are not retryable")
	}
}

func TestToMessageResponses_PreservesOrder(t *testing.T) {
	now := time.Now()
	in := []chatModel.Message{
		{Id: "1", Role: chatModel.RoleAssistant, Content: "summary", CreatedAt: now},
		{Id: "2", Role: chatModel.RoleUser, Content: "question", CreatedAt: now},
	}
	out := ToMessageResponses(in)
	if len(out) != 2 || out[0].Id != "1" || out[1].Role != "user" {
		t.Errorf("got %+v", out)
	}
	if out := ToMessageResponses(nil); out == nil || len(out) != 0 {
		t.Error("nil log should encode as an empty list")
	}
}

func TestToProvidersResponse_Active(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"", DemoProvider},
		{"gsk_abc", "groq"},
		{"hf_abc", "huggingface"},
		{"co-abc", "cohere"},
		{"mystery", "groq"},
	}
	for _, tt := range tests {
		got := ToProvidersResponse(llm.Catalog(), []string{"q"}, chatModel.Credential{Key: tt.key})
		if got.Active != tt.expected {
			t.Errorf("key %q: active got %s, want %s", tt.key, got.Active, tt.expected)
		}
		if len(got.Providers) != len(llm.Catalog()) {
			t.Errorf("providers got %d", len(got.Providers))
		}
	}
}
