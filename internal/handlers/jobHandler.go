package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/akolanti/pdfchat/internal/chat/conversation"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
	"github.com/akolanti/pdfchat/internal/job"
	"github.com/akolanti/pdfchat/internal/metrics"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           = logger_i.NewLogger("JobHandler")
)

type JobHandler struct {
	service        *job.Service
	conversations  conversation.Service
	defaultKey     string
	maxUploadBytes int64
	storage        string
}

type HandlerConfig struct {
	JobService     *job.Service
	Conversations  conversation.Service
	DefaultKey     string
	MaxUploadBytes int64
	// Storage names the backing store reported by /health
	Storage string
}

func InitJobHandler(cfg HandlerConfig) {
	once.Do(func() {
		handlerInstance = newJobHandler(cfg)
		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func newJobHandler(cfg HandlerConfig) *JobHandler {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = config.MaxUploadBytes
	}
	return &JobHandler{
		service:        cfg.JobService,
		conversations:  cfg.Conversations,
		defaultKey:     cfg.DefaultKey,
		maxUploadBytes: maxUpload,
		storage:        cfg.Storage,
	}
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// credential picks the request's own key, falling back to the configured one.
// An empty result puts the turn in demo mode.
func (h *JobHandler) credential(r *http.Request) chatModel.Credential {
	if key := strings.TrimSpace(r.Header.Get(config.ProviderKeyHeader)); key != "" {
		return chatModel.Credential{Key: key}
	}
	return chatModel.Credential{Key: h.defaultKey}
}

// dispatch queues a turn and returns the id of the job tracking it.
func (h *JobHandler) dispatch(ctx context.Context, turn conversation.Turn, cred chatModel.Credential) string {
	newJob := job.NewTurnJob(turn, traceFrom(ctx), cred)
	log := logJH.WithTrace(ctx).With("JobId", newJob.Id, "sessionId", turn.SessionId)

	if err := h.service.Queue(ctx, newJob); err != nil {
		log.Error("Could not record queued job", "err", err)
	}
	h.pushToJobChannel(newJob)
	log.Info("Created new job", "JobType", newJob.JobType)
	return newJob.Id
}

func (h *JobHandler) pushToJobChannel(_job jobModel.Job) {
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed

	// a new worker every RequestsPerNewWorkerCount jobs, idle ones retire on their own
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount()
		logJH.Debug("Signalling dispatcher", "requestCount", accurateCount)
		select {
		case h.service.DispatcherChannel <- true:
		default:
			// a signal is already pending
		}
	}
}
