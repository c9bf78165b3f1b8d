package conversation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/pdfchat/internal/adapter/utils"
	"github.com/akolanti/pdfchat/internal/chat"
	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/chat/prompt"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/commonModels"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
	"github.com/akolanti/pdfchat/internal/metrics"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

const (
	placeholderTemplate  = "📄 **PDF Loaded: %s**\n\n🚀 I'm analyzing your PDF document... Please wait while I process the content."
	AnalysisErrorMessage = "❌ I encountered an error while analyzing your PDF. The AI service might be temporarily unavailable. Please try asking me a question about the document, or check your API key."
	QuestionErrorMessage = "❌ I apologize, but I encountered an error while processing your question. Please check your API key and try again."
)

// Turn is a unit of work the caller must dispatch, one per analysis or
// question.
type Turn struct {
	SessionId  string
	Generation uint64
	Kind       jobModel.JobType
	Question   string
	MessageId  string
}

type Snapshot struct {
	SessionId   string                    `json:"session_id"`
	Document    commonModels.DocumentInfo `json:"document"`
	DocName     string                    `json:"doc_name"`
	Phase       chatModel.Phase           `json:"phase"`
	IsLoading   bool                      `json:"is_loading"`
	IsAnalyzing bool                      `json:"is_analyzing"`
	Messages    []chatModel.Message       `json:"messages"`
}

// Service is what the workers and handlers use. Tests swap it for a mock.
type Service interface {
	Open(ctx context.Context, doc commonModels.Document) (Turn, error)
	Submit(ctx context.Context, sessionId, text string) (Turn, error)
	Clear(ctx context.Context, sessionId string) (Turn, error)
	Execute(ctx context.Context, job jobModel.Job) jobModel.Job
	Snapshot(ctx context.Context, sessionId string) (Snapshot, error)
	Document(sessionId string) (commonModels.Document, error)
}

type Manager struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	messages      jobModel.MessageStore
	orchestrator  chat.Orchestrator
	prompts       prompt.Builder
	historyWindow int
	sessionTTL    time.Duration
	logger        *logger_i.Logger
}

func NewManager(messages jobModel.MessageStore, orchestrator chat.Orchestrator, prompts prompt.Builder, historyWindow int) *Manager {
	return &Manager{
		sessions:      make(map[string]*Session),
		messages:      messages,
		orchestrator:  orchestrator,
		prompts:       prompts,
		historyWindow: historyWindow,
		sessionTTL:    config.SessionTTL,
		logger:        logger_i.NewLogger("Conversation"),
	}
}

func (m *Manager) session(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, chatModel.ErrSessionNotFound
	}
	return s, nil
}

// Open registers a session for doc and starts its analysis turn.
func (m *Manager) Open(ctx context.Context, doc commonModels.Document) (Turn, error) {
	s := newSession(utils.GetNewUUID(), doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	turn, err := m.startAnalysis(ctx, s)
	if err != nil {
		return Turn{}, err
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.WithTrace(ctx).Info("session opened", "sessionId", s.id, "doc_name", doc.Name)
	return turn, nil
}

// startAnalysis puts the placeholder in an empty log. Caller holds s.mu.
func (m *Manager) startAnalysis(ctx context.Context, s *Session) (Turn, error) {
	placeholder := newMessage(chatModel.RoleAssistant, fmt.Sprintf(placeholderTemplate, s.doc.Name))
	if err := m.messages.Append(ctx, s.id, placeholder); err != nil {
		return Turn{}, fmt.Errorf("appending analysis placeholder: %w", err)
	}
	s.phase = chatModel.PhaseAnalyzing
	s.touched = time.Now()
	return Turn{
		SessionId:  s.id,
		Generation: s.generation,
		Kind:       jobModel.JobTypeAnalyze,
		MessageId:  placeholder.Id,
	}, nil
}

// Submit appends the user's message and returns the turn that answers it.
func (m *Manager) Submit(ctx context.Context, sessionId, text string) (Turn, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return Turn{}, chatModel.ErrEmptyMessage
	}
	s, err := m.session(sessionId)
	if err != nil {
		return Turn{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Turn{}, chatModel.ErrSessionNotFound
	}
	if s.phase != chatModel.PhaseIdle {
		return Turn{}, chatModel.ErrRequestInFlight
	}
	log, err := m.messages.List(ctx, s.id)
	if err != nil {
		return Turn{}, fmt.Errorf("reading conversation: %w", err)
	}
	if len(log) == 0 {
		m.evict(ctx, s, evictLogExpired)
		return Turn{}, chatModel.ErrSessionNotFound
	}

	userMessage := newMessage(chatModel.RoleUser, question)
	if err = m.messages.Append(ctx, s.id, userMessage); err != nil {
		return Turn{}, fmt.Errorf("appending user message: %w", err)
	}
	s.phase = chatModel.PhaseAnswering
	s.touched = time.Now()

	return Turn{
		SessionId:  s.id,
		Generation: s.generation,
		Kind:       jobModel.JobTypeQuestion,
		Question:   question,
		MessageId:  userMessage.Id,
	}, nil
}

// Clear abandons whatever is in flight, empties the log and analyses the
// cached document text again.
func (m *Manager) Clear(ctx context.Context, sessionId string) (Turn, error) {
	s, err := m.session(sessionId)
	if err != nil {
		return Turn{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Turn{}, chatModel.ErrSessionNotFound
	}
	gen := s.supersede()
	s.phase = chatModel.PhaseIdle
	if err = m.messages.Clear(ctx, s.id); err != nil {
		return Turn{}, fmt.Errorf("clearing conversation: %w", err)
	}

	m.logger.WithTrace(ctx).Info("conversation cleared", "sessionId", s.id, "generation", gen)
	return m.startAnalysis(ctx, s)
}

// Execute resolves one turn. Results of a superseded generation are dropped.
func (m *Manager) Execute(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := m.logger.WithTrace(ctx).With("JobId", job.Id, "sessionId", job.SessionId)

	s, err := m.session(job.SessionId)
	if err != nil {
		return jobError(job, http.StatusNotFound, "Session not found")
	}

	runCtx, ok := s.begin(ctx, job.Generation)
	if !ok {
		return superseded(job, log)
	}

	job.CurrentStep = jobModel.PromptBuild
	userPrompt, history, err := m.buildPrompt(runCtx, s.doc, job)
	if err != nil {
		log.Error("could not build prompt", "error", err)
	}

	var reply string
	if err == nil {
		job.CurrentStep = jobModel.LLMCall
		start := time.Now()
		reply, err = m.orchestrator.GetResponse(runCtx, job.Credential, userPrompt, history)
		metrics.CaptureExecutionMetrics("chat_turn", time.Since(start))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if job.Generation != s.generation {
		return superseded(job, log)
	}
	defer s.settle(job.Generation)

	if err != nil {
		log.Error("turn failed", "error", err)
		reply = failureMessage(job.JobType)
	}

	job.CurrentStep = jobModel.ConversationSave
	answer := newMessage(chatModel.RoleAssistant, reply)
	if job.JobType == jobModel.JobTypeAnalyze {
		err = m.messages.ReplaceLast(ctx, s.id, answer)
	} else {
		err = m.messages.Append(ctx, s.id, answer)
	}
	if err != nil {
		log.Error("could not save reply", "error", err)
		return jobError(job, http.StatusInternalServerError, "Internal Server Error")
	}

	job.JobPayload.Answer = reply
	job.JobPayload.MessageId = answer.Id
	job.CurrentStep = jobModel.Complete
	return job
}

func (m *Manager) buildPrompt(ctx context.Context, doc commonModels.Document, job jobModel.Job) (string, []llm.Message, error) {
	if job.JobType == jobModel.JobTypeAnalyze {
		return m.prompts.Analysis(doc.Name, doc.Text), nil, nil
	}

	log, err := m.messages.List(ctx, job.SessionId)
	if err != nil {
		return "", nil, err
	}
	return m.prompts.Question(doc.Name, doc.Text, job.JobPayload.Question), historyBefore(log, job.JobPayload.MessageId, m.historyWindow), nil
}

// historyBefore returns up to window messages that precede the message with
// id, oldest first.
func historyBefore(log []chatModel.Message, id string, window int) []llm.Message {
	end := len(log)
	for i, msg := range log {
		if msg.Id == id {
			end = i
			break
		}
	}
	start := end - window
	if start < 0 {
		start = 0
	}
	out := make([]llm.Message, 0, end-start)
	for _, msg := range log[start:end] {
		out = append(out, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return out
}

func (m *Manager) Snapshot(ctx context.Context, sessionId string) (Snapshot, error) {
	s, err := m.session(sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, chatModel.ErrSessionNotFound
	}

	messages, err := m.messages.List(ctx, sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	// an idle session always holds at least its analysis
	if s.phase == chatModel.PhaseIdle && len(messages) == 0 {
		m.evict(ctx, s, evictLogExpired)
		return Snapshot{}, chatModel.ErrSessionNotFound
	}
	return Snapshot{
		SessionId:   sessionId,
		Document:    s.doc.Info,
		DocName:     s.doc.Name,
		Phase:       s.phase,
		IsLoading:   s.phase == chatModel.PhaseAnswering,
		IsAnalyzing: s.phase == chatModel.PhaseAnalyzing,
		Messages:    messages,
	}, nil
}

func (m *Manager) Document(sessionId string) (commonModels.Document, error) {
	s, err := m.session(sessionId)
	if err != nil {
		return commonModels.Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return commonModels.Document{}, chatModel.ErrSessionNotFound
	}
	return s.doc, nil
}

const (
	evictLogExpired = "log_expired"
	evictIdle       = "idle"
)

// evict closes s and forgets it along with its log. Caller holds s.mu.
func (m *Manager) evict(ctx context.Context, s *Session, reason string) {
	s.closed = true
	s.doc = commonModels.Document{}

	m.mu.Lock()
	delete(m.sessions, s.id)
	m.mu.Unlock()

	if err := m.messages.Clear(ctx, s.id); err != nil {
		m.logger.WithTrace(ctx).Warn("could not drop conversation log", "sessionId", s.id, "error", err)
	}
	metrics.CountSessionEvicted(reason)
	m.logger.WithTrace(ctx).Info("session evicted", "sessionId", s.id, "reason", reason)
}

// Sweep evicts idle sessions untouched for longer than the session ttl and
// returns how many went. Sessions with a turn in flight are kept.
func (m *Manager) Sweep(ctx context.Context, now time.Time) int {
	m.mu.RLock()
	candidates := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.RUnlock()

	evicted := 0
	for _, s := range candidates {
		s.mu.Lock()
		if s.expired(now, m.sessionTTL) {
			m.evict(ctx, s, evictIdle)
			evicted++
		}
		s.mu.Unlock()
	}
	return evicted
}

// RunJanitor sweeps every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Sweep(ctx, now); n > 0 {
				m.logger.Info("swept idle sessions", "count", n)
			}
		}
	}
}

func newMessage(role chatModel.Role, content string) chatModel.Message {
	return chatModel.Message{
		Id:        utils.GetNewUUID(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func failureMessage(jobType jobModel.JobType) string {
	if jobType == jobModel.JobTypeAnalyze {
		return AnalysisErrorMessage
	}
	return QuestionErrorMessage
}

func superseded(job jobModel.Job, log *logger_i.Logger) jobModel.Job {
	log.Info("dropping result of a cleared conversation", "generation", job.Generation)
	metrics.CountStaleResult()
	job.CurrentStep = jobModel.Superseded
	return job
}

func jobError(job jobModel.Job, code int, message string) jobModel.Job {
	job.Error = jobModel.JobError{
		Code:    code,
		Message: message,
		Retry:   false,
	}
	job.CurrentStep = jobModel.Error
	job.Status = jobModel.JobStatusError
	return job
}
