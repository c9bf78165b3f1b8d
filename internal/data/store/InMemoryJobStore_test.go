package store

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
)

func TestInMemoryJobStore_Expiry(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	s := InitInMemoryJobStore()
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	if err := s.SaveJob(ctx, jobModel.Job{Id: "old", Status: jobModel.JobStatusComplete}); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	if got, ok := s.GetJob(ctx, "old"); !ok || got.Status != jobModel.JobStatusComplete {
		t.Fatalf("fresh job should be found, got %+v %v", got, ok)
	}

	clock = clock.Add(config.RedisJobStoreTTL + time.Second)
	if _, ok := s.GetJob(ctx, "old"); ok {
		t.Error("job past its ttl should read as not found")
	}

	if err := s.SaveJob(ctx, jobModel.Job{Id: "new", Status: jobModel.JobStatusQueued}); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	s.jobMutex.RLock()
	_, stillHeld := s.jobMap["old"]
	size := len(s.jobMap)
	s.jobMutex.RUnlock()
	if stillHeld || size != 1 {
		t.Errorf("expired job should be pruned on save, map holds %d entries", size)
	}
}
