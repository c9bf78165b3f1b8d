package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem Store")

type storedJob struct {
	job     jobModel.Job
	savedAt time.Time
}

// InMemoryJobStore holds job status for polling when redis is off. It is the
// job side of the memory fallback; InMemoryMessageStore holds the
// conversations. Entries expire like the redis job keys do.
type InMemoryJobStore struct {
	jobMutex  *sync.RWMutex
	jobMap    map[string]storedJob
	ttl       time.Duration
	now       func() time.Time
	lastPrune time.Time
}

const pruneInterval = time.Minute

// InitInMemoryJobStore is paired with InitMessageStore in the memory fallback.
func InitInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{
		jobMutex: new(sync.RWMutex),
		jobMap:   make(map[string]storedJob),
		ttl:      config.RedisJobStoreTTL,
		now:      time.Now,
	}
}

// SaveJob also drops entries past their ttl, at most once per
// pruneInterval, so the map stays bounded by the traffic of one ttl window.
func (store *InMemoryJobStore) SaveJob(ctx context.Context, jobToStore jobModel.Job) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	now := store.now()
	if now.Sub(store.lastPrune) > pruneInterval {
		for id, entry := range store.jobMap {
			if now.Sub(entry.savedAt) > store.ttl {
				delete(store.jobMap, id)
			}
		}
		store.lastPrune = now
	}
	store.jobMap[jobToStore.Id] = storedJob{job: jobToStore, savedAt: now}
	inMemLogger.WithTrace(ctx).Debug("Saved job to store", "jobId", jobToStore.Id, "status", jobToStore.Status)
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	store.jobMutex.RLock()
	defer store.jobMutex.RUnlock()
	entry, found := store.jobMap[jobId]
	if !found || store.now().Sub(entry.savedAt) > store.ttl {
		return jobModel.Job{}, false
	}
	return entry.job, true
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	delete(store.jobMap, jobID)
}
