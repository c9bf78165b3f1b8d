package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/commonModels"
)

// Session is one uploaded document and the conversation about it. The
// generation moves forward on every clear; a result is only applied when it
// was started under the current generation. A closed session has been
// evicted and answers every operation as not found.
type Session struct {
	mu         sync.Mutex
	id         string
	doc        commonModels.Document
	generation uint64
	phase      chatModel.Phase
	cancel     context.CancelFunc
	touched    time.Time
	closed     bool
}

func newSession(id string, doc commonModels.Document) *Session {
	return &Session{id: id, doc: doc, phase: chatModel.PhaseIdle, touched: time.Now()}
}

func (s *Session) Id() string { return s.id }

// begin claims the session for a turn of generation gen. It returns false if
// the turn was superseded.
func (s *Session) begin(parent context.Context, gen uint64) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, true
}

// supersede cancels whatever is in flight and starts a new generation.
// Caller holds s.mu.
func (s *Session) supersede() uint64 {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	return s.generation
}

// settle ends the turn of generation gen. Caller holds s.mu.
func (s *Session) settle(gen uint64) {
	if gen != s.generation {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.phase = chatModel.PhaseIdle
	s.touched = time.Now()
}

// expired reports whether an idle session has gone untouched for longer
// than ttl. Caller holds s.mu.
func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	return !s.closed && s.phase == chatModel.PhaseIdle && now.Sub(s.touched) > ttl
}
