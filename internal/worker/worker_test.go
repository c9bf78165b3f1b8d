package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
	"github.com/akolanti/pdfchat/internal/job"
)

// MockExecutor tracks if jobs are executed
type MockExecutor struct {
	ProcessedCount int32
	OnExecute      func(ctx context.Context, j jobModel.Job) jobModel.Job
}

func (m *MockExecutor) Execute(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	if m.OnExecute != nil {
		return m.OnExecute(ctx, j)
	}
	return j
}

type MockJobStore struct {
	mu      sync.Mutex
	Saved   []jobModel.Job
	OnSave  func(ctx context.Context, job jobModel.Job) error
	Current map[string]jobModel.Job
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.Current[jobId]
	return j, ok
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Current, jobID)
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSave != nil {
		if err := m.OnSave(ctx, j); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, j)
	if m.Current == nil {
		m.Current = make(map[string]jobModel.Job)
	}
	m.Current[j.Id] = j
	return nil
}

func (m *MockJobStore) statuses() []jobModel.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]jobModel.JobStatus, 0, len(m.Saved))
	for _, j := range m.Saved {
		out = append(out, j.Status)
	}
	return out
}

func setExecutor(t *testing.T, store *MockJobStore, exec TurnExecutor) {
	t.Helper()
	InitServices(&job.Service{JobStore: store}, exec)
}

func TestWorkerPool_Flow(t *testing.T) {
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
	}
	mockExec := &MockExecutor{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	atomic.StoreInt64(&currentWorkerCount, 0)
	InitServices(jobSvc, mockExec)
	InitWorkerPool(stopChan, wg)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true
		time.Sleep(50 * time.Millisecond)

		if count := atomic.LoadInt64(&currentWorkerCount); count < 2 {
			t.Errorf("Expected at least 2 workers, got %d", count)
		}
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "test-1"}
		time.Sleep(50 * time.Millisecond)

		if processed := atomic.LoadInt32(&mockExec.ProcessedCount); processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
		if count := atomic.LoadInt64(&currentWorkerCount); count != 0 {
			t.Errorf("worker count should be 0 after stop, got %d", count)
		}

		// nobody is left to drain the signal channel
		jobSvc.DispatcherChannel <- true
		time.Sleep(20 * time.Millisecond)
		if pending := len(jobSvc.DispatcherChannel); pending != 1 {
			t.Errorf("dispatcher should have exited with the pool, %d signals pending", pending)
		}
	})
}

func TestExecuteJob_StatusTransitions(t *testing.T) {
	tests := []struct {
		name           string
		onExecute      func(ctx context.Context, j jobModel.Job) jobModel.Job
		expectedStatus jobModel.JobStatus
		expectedStep   jobModel.InternalStatus
	}{
		{
			name: "Completed turn",
			onExecute: func(ctx context.Context, j jobModel.Job) jobModel.Job {
				j.JobPayload.Answer = "summary"
				j.CurrentStep = jobModel.Complete
				return j
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectedStep:   jobModel.Complete,
		},
		{
			name: "Error status is preserved",
			onExecute: func(ctx context.Context, j jobModel.Job) jobModel.Job {
				j.Status = jobModel.JobStatusError
				j.CurrentStep = jobModel.Error
				j.Error = jobModel.JobError{Code: 404, Message: "Session not found"}
				return j
			},
			expectedStatus: jobModel.JobStatusError,
			expectedStep:   jobModel.Error,
		},
		{
			name: "Superseded turn still completes",
			onExecute: func(ctx context.Context, j jobModel.Job) jobModel.Job {
				j.CurrentStep = jobModel.Superseded
				return j
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectedStep:   jobModel.Superseded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockJobStore{}
			setExecutor(t, store, &MockExecutor{OnExecute: tt.onExecute})

			executeJob(jobModel.Job{Id: "j1", TraceId: "trace-1", Status: jobModel.JobStatusQueued})

			statuses := store.statuses()
			if len(statuses) != 2 || statuses[0] != jobModel.JobStatusRunning {
				t.Fatalf("expected RUNNING then a final state, got %v", statuses)
			}
			final, _ := store.GetJob(context.Background(), "j1")
			if final.Status != tt.expectedStatus || final.CurrentStep != tt.expectedStep {
				t.Errorf("got %s/%s, want %s/%s", final.Status, final.CurrentStep, tt.expectedStatus, tt.expectedStep)
			}
			if final.EndTime.IsZero() {
				t.Error("end time should be stamped")
			}
		})
	}
}

func TestExecuteJob_ContextCarriesTraceAndDeadline(t *testing.T) {
	var sawTrace string
	var hasDeadline bool
	setExecutor(t, &MockJobStore{}, &MockExecutor{OnExecute: func(ctx context.Context, j jobModel.Job) jobModel.Job {
		sawTrace, _ = ctx.Value(config.TRACE_ID_KEY).(string)
		_, hasDeadline = ctx.Deadline()
		return j
	}})

	executeJob(jobModel.Job{Id: "j2", TraceId: "trace-2"})

	if sawTrace != "trace-2" {
		t.Errorf("trace got %q", sawTrace)
	}
	if !hasDeadline {
		t.Error("turn context should carry the job timeout")
	}
}

func TestExecuteJob_TimedOutJobIsStillSaved(t *testing.T) {
	old := jobTimeout
	jobTimeout = 10 * time.Millisecond
	t.Cleanup(func() { jobTimeout = old })

	store := &MockJobStore{OnSave: func(ctx context.Context, j jobModel.Job) error {
		if ctx.Err() != nil {
			return errors.New("context already done")
		}
		return nil
	}}
	setExecutor(t, store, &MockExecutor{OnExecute: func(ctx context.Context, j jobModel.Job) jobModel.Job {
		<-ctx.Done()
		return j
	}})

	executeJob(jobModel.Job{Id: "j3"})

	if final, _ := store.GetJob(context.Background(), "j3"); final.Status != jobModel.JobStatusComplete {
		t.Errorf("final state got %s", final.Status)
	}
}

func TestWorker_IdleTimeout(t *testing.T) {
	oldTimeout, oldMin := idleWorkerTimeout, atomic.LoadInt64(&minWorkerCount)
	idleWorkerTimeout = 20 * time.Millisecond
	atomic.StoreInt64(&minWorkerCount, 1)
	t.Cleanup(func() {
		idleWorkerTimeout = oldTimeout
		atomic.StoreInt64(&minWorkerCount, oldMin)
	})

	atomic.StoreInt64(&currentWorkerCount, 0)
	InitServices(&job.Service{JobChannel: make(chan jobModel.Job)}, &MockExecutor{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	createWorker()
	createWorker()
	time.Sleep(200 * time.Millisecond)

	if count := atomic.LoadInt64(&currentWorkerCount); count != 1 {
		t.Errorf("one idle worker should retire and one should stay, count is %d", count)
	}

	close(stopChan)
	wg.Wait()
	if count := atomic.LoadInt64(&currentWorkerCount); count != 0 {
		t.Errorf("worker count should be 0 after stop, got %d", count)
	}
}
