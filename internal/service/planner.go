package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mandalart/internal/history"
	"mandalart/internal/model"
	"mandalart/pkg/logger"
)

// Step is the interview flow position of a planner session.
type Step string

const (
	StepInput      Step = "input"
	StepInterview  Step = "interview"
	StepGenerating Step = "generating"
	StepResult     Step = "result"
)

// Generator is the generation pipeline the planner drives; ai.Generator
// implements it.
type Generator interface {
	Questions(ctx context.Context, mainGoal string) ([]model.Question, error)
	Mandalart(ctx context.Context, mainGoal string, answers []model.InterviewAnswer) (*model.MandalartData, error)
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	Step      Step                    `json:"step"`
	MainGoal  string                  `json:"mainGoal"`
	Questions []model.Question        `json:"questions,omitempty"`
	Answers   []model.InterviewAnswer `json:"answers,omitempty"`
	Document  *model.MandalartData    `json:"document,omitempty"`
	HistoryID string                  `json:"historyId,omitempty"`
}

// GenerateResult reports a finished generation. Saved is false when the
// document could not be persisted; the document is still usable.
type GenerateResult struct {
	Data      *model.MandalartData `json:"data"`
	HistoryID string               `json:"historyId,omitempty"`
	Saved     bool                 `json:"saved"`
}

// ToggleResult reports a checklist toggle. Saved is false when a
// persisted document failed to update, so the client can warn that
// progress may not survive a reload.
type ToggleResult struct {
	Task      model.Task `json:"task"`
	HistoryID string     `json:"historyId,omitempty"`
	Saved     bool       `json:"saved"`
}

type session struct {
	mu        sync.Mutex
	step      Step
	mainGoal  string
	questions []model.Question
	answers   []model.InterviewAnswer
	document  *model.MandalartData
	activeID  string
	busy      bool
}

// Planner drives the input -> interview -> generating -> result state
// machine, one session per key. The active document's history id is
// tracked explicitly for the lifetime of the result step; autosave
// never guesses by goal-text equality.
type Planner struct {
	gen     Generator
	history history.Store
	gate    Gate
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewPlanner(gen Generator, hist history.Store, gate Gate, logger *zap.Logger) *Planner {
	return &Planner{
		gen:      gen,
		history:  hist,
		gate:     gate,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

func (p *Planner) session(key string) *session {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[key]
	if !ok {
		s = &session{step: StepInput}
		p.sessions[key] = s
	}
	return s
}

// acquireLocked marks the session busy, rejecting re-entrant
// generation. Caller holds s.mu.
func (p *Planner) acquireLocked(ctx context.Context, s *session, key string) error {
	if s.busy {
		return ErrBusy
	}
	if p.gate != nil && !p.gate.TryAcquire(ctx, key) {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (p *Planner) release(ctx context.Context, s *session, key string) {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	if p.gate != nil {
		p.gate.Release(ctx, key)
	}
}

// StartInterview submits the main goal and fetches the interview
// questions. A whitespace-only goal is rejected before any model call.
// On failure the session stays in the input step.
func (p *Planner) StartInterview(ctx context.Context, key, mainGoal string) ([]model.Question, error) {
	mainGoal = strings.TrimSpace(mainGoal)
	if mainGoal == "" {
		return nil, ErrEmptyGoal
	}

	s := p.session(key)
	s.mu.Lock()
	if s.step != StepInput {
		s.mu.Unlock()
		return nil, ErrInvalidStep
	}
	if err := p.acquireLocked(ctx, s, key); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()
	defer p.release(ctx, s, key)

	questions, err := p.gen.Questions(ctx, mainGoal)
	if err != nil {
		logger.WithTrace(ctx, p.logger).Warn("question generation failed", zap.String("session", key), zap.Error(err))
		return nil, err
	}

	answers := make([]model.InterviewAnswer, len(questions))
	for i, q := range questions {
		answers[i] = model.InterviewAnswer{QuestionID: q.ID, QuestionText: q.Text}
	}

	s.mu.Lock()
	s.step = StepInterview
	s.mainGoal = mainGoal
	s.questions = questions
	s.answers = answers
	s.mu.Unlock()

	return questions, nil
}

// Generate runs the mandalart generation once every interview question
// has a non-empty answer. The session passes through the generating
// step and lands in result on success; a failed generation returns it
// to interview with the answers preserved. When a user is logged in the
// document is persisted and its history id becomes the session's
// active document identity.
func (p *Planner) Generate(ctx context.Context, key string, userID int, answers map[string]string) (*GenerateResult, error) {
	s := p.session(key)

	s.mu.Lock()
	if s.step != StepInterview {
		s.mu.Unlock()
		return nil, ErrInvalidStep
	}
	for i := range s.answers {
		answer := strings.TrimSpace(answers[s.answers[i].QuestionID])
		if answer == "" {
			s.mu.Unlock()
			return nil, ErrMissingAnswers
		}
		s.answers[i].Answer = answer
	}
	if err := p.acquireLocked(ctx, s, key); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	filled := make([]model.InterviewAnswer, len(s.answers))
	copy(filled, s.answers)
	mainGoal := s.mainGoal
	s.step = StepGenerating
	s.mu.Unlock()
	defer p.release(ctx, s, key)

	data, err := p.gen.Mandalart(ctx, mainGoal, filled)
	if err != nil {
		logger.WithTrace(ctx, p.logger).Warn("mandalart generation failed", zap.String("session", key), zap.Error(err))
		s.mu.Lock()
		s.step = StepInterview
		s.mu.Unlock()
		return nil, err
	}

	result := &GenerateResult{Data: data, Saved: false}
	if userID != 0 {
		item, err := p.history.Create(ctx, userID, *data)
		if err != nil {
			// The grid is still served; the client is told it was
			// not persisted instead of silently desyncing.
			logger.WithTrace(ctx, p.logger).Error("history create failed", zap.Int("user_id", userID), zap.Error(err))
		} else {
			result.HistoryID = item.ID
			result.Saved = true
		}
	}

	s.mu.Lock()
	s.step = StepResult
	s.document = data
	s.activeID = result.HistoryID
	// The session owns data from here on; the caller gets a detached
	// copy so marshalling never races a concurrent toggle.
	result.Data = data.Clone()
	s.mu.Unlock()

	return result, nil
}

// Toggle flips one checklist item of the current document and
// recomputes the owning task's completion. Valid only in the result
// step. When the document is associated with a persisted history id,
// the stored row is updated so progress survives a reload.
func (p *Planner) Toggle(ctx context.Context, key string, userID int, subGoal, task int, itemID string) (*ToggleResult, error) {
	s := p.session(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepResult {
		return nil, ErrInvalidStep
	}
	if s.document == nil {
		return nil, ErrNoDocument
	}

	t := s.document.TaskAt(subGoal, task)
	if t == nil || !t.ToggleItem(itemID) {
		return nil, ErrNoSuchItem
	}

	result := &ToggleResult{Task: t.Clone(), HistoryID: s.activeID, Saved: true}
	if s.activeID != "" && userID != 0 {
		if err := p.history.Update(ctx, userID, s.activeID, *s.document); err != nil {
			logger.WithTrace(ctx, p.logger).Error("history update failed",
				zap.String("history_id", s.activeID),
				zap.Int("user_id", userID),
				zap.Error(err),
			)
			result.Saved = false
		}
	}
	return result, nil
}

// Activate loads a stored history item into the session as the current
// document and moves straight to the result step.
func (p *Planner) Activate(ctx context.Context, key string, userID int, historyID string) (*model.MandalartData, error) {
	item, err := p.history.Get(ctx, userID, historyID)
	if err != nil {
		return nil, err
	}

	s := p.session(key)
	s.mu.Lock()
	s.step = StepResult
	s.mainGoal = item.Data.MainGoal
	s.questions = nil
	s.answers = nil
	s.document = &item.Data
	s.activeID = item.ID
	data := item.Data.Clone()
	s.mu.Unlock()

	return data, nil
}

// Reset clears the session back to the input step.
func (p *Planner) Reset(key string) {
	s := p.session(key)
	s.mu.Lock()
	s.step = StepInput
	s.mainGoal = ""
	s.questions = nil
	s.answers = nil
	s.document = nil
	s.activeID = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the session state.
func (p *Planner) Snapshot(key string) Snapshot {
	s := p.session(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Step:      s.step,
		MainGoal:  s.mainGoal,
		HistoryID: s.activeID,
	}
	snap.Questions = append(snap.Questions, s.questions...)
	snap.Answers = append(snap.Answers, s.answers...)
	if s.document != nil {
		snap.Document = s.document.Clone()
	}
	return snap
}

// Document returns the session's current document, or ErrNoDocument.
func (p *Planner) Document(key string) (*model.MandalartData, error) {
	s := p.session(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.document == nil {
		return nil, ErrNoDocument
	}
	return s.document.Clone(), nil
}
