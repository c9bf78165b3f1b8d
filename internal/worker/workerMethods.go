package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
	"github.com/akolanti/pdfchat/internal/metrics"
)

func executeJob(job jobModel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, jobTimeout)
	defer cancel()

	log := logger.WithTrace(ctxTrace).With("JobId", job.Id, "JobType", job.JobType)
	log.Debug("Processing job")

	job.Status = jobModel.JobStatusRunning
	saveJobState(ctxTrace, job)

	job = _executor.Execute(ctx, job)
	job.EndTime = time.Now()

	// the executor only ever sets the error status
	if job.Status != jobModel.JobStatusError {
		job.Status = jobModel.JobStatusComplete
	}
	saveJobState(ctxTrace, job)
	log.Debug("Job finished", "status", job.Status, "step", job.CurrentStep)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	metrics.DecrementActiveWorkerCount()
	logger.Info("Removed worker", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
}

// saveJobState uses the trace context rather than the job deadline so a
// timed out job still records its final state.
func saveJobState(ctx context.Context, job jobModel.Job) {
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.WithTrace(ctx).Error("Failed to update job state", "JobId", job.Id, "err", err)
	}
}
