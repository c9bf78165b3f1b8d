package job

import (
	"context"
	"testing"

	"github.com/akolanti/pdfchat/internal/chat/conversation"
	"github.com/akolanti/pdfchat/internal/data/store"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
)

func TestNewTurnJob(t *testing.T) {
	tests := []struct {
		name         string
		turn         conversation.Turn
		expectedStep jobModel.InternalStatus
	}{
		{
			name:         "Analysis turn",
			turn:         conversation.Turn{SessionId: "s1", Generation: 2, Kind: jobModel.JobTypeAnalyze, MessageId: "m1"},
			expectedStep: jobModel.AnalyzeInit,
		},
		{
			name:         "Question turn",
			turn:         conversation.Turn{SessionId: "s1", Kind: jobModel.JobTypeQuestion, Question: "why?", MessageId: "m2"},
			expectedStep: jobModel.UserQueryInit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewTurnJob(tt.turn, "trace-1", chatModel.Credential{Key: "gsk_x"})

			if j.Id == "" {
				t.Error("job id should be generated")
			}
			if j.Status != jobModel.JobStatusQueued || j.CurrentStep != tt.expectedStep {
				t.Errorf("got status %s step %s", j.Status, j.CurrentStep)
			}
			if j.SessionId != tt.turn.SessionId || j.Generation != tt.turn.Generation || j.JobType != tt.turn.Kind {
				t.Errorf("turn not carried over: %+v", j)
			}
			if j.JobPayload.Question != tt.turn.Question || j.JobPayload.MessageId != tt.turn.MessageId {
				t.Errorf("payload mismatch: %+v", j.JobPayload)
			}
			if j.Credential.Key != "gsk_x" || j.TraceId != "trace-1" {
				t.Error("credential and trace must be attached")
			}
		})
	}
}

func TestService_Queue(t *testing.T) {
	svc := InitJobService(ServiceConfig{JobStore: store.InitInMemoryJobStore()})
	j := NewTurnJob(conversation.Turn{SessionId: "s1", Kind: jobModel.JobTypeAnalyze}, "", chatModel.Credential{})

	if err := svc.Queue(context.Background(), j); err != nil {
		t.Fatalf("Queue failed: %v", err)
	}
	saved, found := svc.JobStore.GetJob(context.Background(), j.Id)
	if !found {
		t.Fatal("queued job should be visible immediately")
	}
	if saved.Status != jobModel.JobStatusQueued {
		t.Errorf("status got %s", saved.Status)
	}
}
