package job

import (
	"context"
	"time"

	"github.com/akolanti/pdfchat/internal/adapter/utils"
	"github.com/akolanti/pdfchat/internal/chat/conversation"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
)

type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
	}
}

// NewTurnJob wraps a conversation turn into a queued job. The credential
// rides along in memory and is dropped when the job is persisted.
func NewTurnJob(turn conversation.Turn, traceId string, cred chatModel.Credential) jobModel.Job {
	step := jobModel.UserQueryInit
	if turn.Kind == jobModel.JobTypeAnalyze {
		step = jobModel.AnalyzeInit
	}
	return jobModel.Job{
		Id:          utils.GetNewUUID(),
		SessionId:   turn.SessionId,
		Generation:  turn.Generation,
		TraceId:     traceId,
		JobType:     turn.Kind,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: step,
		Credential:  cred,
		JobPayload: jobModel.JobPayload{
			Question:  turn.Question,
			MessageId: turn.MessageId,
		},
	}
}

// Queue records the job as QUEUED so that status lookups find it before a
// worker picks it up.
func (s *Service) Queue(ctx context.Context, job jobModel.Job) error {
	return s.JobStore.SaveJob(ctx, job)
}
