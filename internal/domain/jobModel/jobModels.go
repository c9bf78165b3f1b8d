package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	AnalyzeInit      InternalStatus = "AnalyzeInit"
	UserQueryInit    InternalStatus = "Init"
	PromptBuild      InternalStatus = "PromptBuild"
	LLMCall          InternalStatus = "LLM"
	ConversationSave InternalStatus = "ConversationSave"
	Superseded       InternalStatus = "Superseded"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeAnalyze  JobType = "Analyze"
	JobTypeQuestion JobType = "Question"
)

type Job struct {
	Id          string         `json:"id"`
	SessionId   string         `json:"session_id"`
	Generation  uint64         `json:"generation"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`

	// held in memory for the lifetime of the job only
	Credential chatModel.Credential `json:"-"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Question  string `json:"question,omitempty"`
	Answer    string `json:"answer,omitempty"`
	MessageId string `json:"message_id,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// MessageStore holds the live conversation log of a session.
type MessageStore interface {
	Append(ctx context.Context, sessionId string, msg chatModel.Message) error
	ReplaceLast(ctx context.Context, sessionId string, msg chatModel.Message) error
	List(ctx context.Context, sessionId string) ([]chatModel.Message, error)
	Clear(ctx context.Context, sessionId string) error
}
