package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"travelhealth/internal/cache"
	"travelhealth/internal/catalog"
	"travelhealth/internal/model"
)

// entry is one slot in a session's working sequence: a catalog question plus
// the response once recorded. Follow-ups are spliced in as entries of their
// own when their parent is answered affirmatively.
type entry struct {
	question   model.Question
	response   string
	answeredAt time.Time
}

// Session is the in-memory interview state for one user. The sequence starts
// as the catalog's top-level questions and only ever grows; the cursor never
// exceeds its length. The session stays authoritative even when persisting
// the resume position fails.
type Session struct {
	UserID   string
	sequence []entry
	cursor   int
	locked   bool
}

// Current returns the question at the cursor, or nil once the interview is
// complete.
func (s *Session) Current() *model.Question {
	if s.cursor >= len(s.sequence) {
		return nil
	}
	q := s.sequence[s.cursor].question
	return &q
}

// IsComplete reports whether the cursor has reached the end of the sequence
func (s *Session) IsComplete() bool {
	return s.cursor >= len(s.sequence)
}

// Progress returns the answered fraction in [0,1]. The denominator is the
// current sequence length, so inserting follow-ups can lower the fraction
// relative to an earlier reading; reaching the end always yields exactly 1.
func (s *Session) Progress() Progress {
	p := Progress{
		Answered: s.cursor,
		Total:    len(s.sequence),
		Complete: s.IsComplete(),
	}
	if p.Total > 0 {
		p.Fraction = float64(p.Answered) / float64(p.Total)
	}
	return p
}

// flatten snapshots the answered questions in sequence order
func (s *Session) flatten() []model.AnsweredQuestion {
	out := make([]model.AnsweredQuestion, 0, len(s.sequence))
	for _, e := range s.sequence {
		out = append(out, model.AnsweredQuestion{
			Text:       e.question.Text,
			Category:   e.question.Category,
			IsFollowUp: e.question.IsFollowUp,
			Response:   e.response,
			AnsweredAt: e.answeredAt,
		})
	}
	return out
}

// Progress is the UI-facing view of how far an interview has advanced
type Progress struct {
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
	Complete bool    `json:"complete"`
}

// AnswerResult is returned after each recorded answer
type AnswerResult struct {
	Next      *model.Question `json:"next,omitempty"`
	Progress  Progress        `json:"progress"`
	Submitted bool            `json:"submitted"`
}

// Submitter runs the response submission pipeline for a completed session.
// Implemented by SubmissionService; an interface here avoids a construction
// cycle.
type Submitter interface {
	Submit(ctx context.Context, userID string, responses []model.AnsweredQuestion) error
}

// InterviewService walks users through the adaptive health interview:
// conditional follow-up expansion, resumable cursor position, and handoff to
// the submission pipeline when the last question is answered.
type InterviewService struct {
	resumeCache cache.ResumeCache
	submitter   Submitter
	notifier    Notifier

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewInterviewService creates a new interview service
func NewInterviewService(resumeCache cache.ResumeCache) *InterviewService {
	return &InterviewService{
		resumeCache: resumeCache,
		sessions:    make(map[string]*Session),
	}
}

// SetSubmitter wires the submission pipeline
func (s *InterviewService) SetSubmitter(sub Submitter) {
	s.submitter = sub
}

// SetNotifier wires the live event push
func (s *InterviewService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Start creates or resumes the user's session. The sequence is re-derived
// from the catalog's top-level questions; follow-ups inserted during a prior
// partial session are not reconstructed, so resuming mid-chain restarts
// relative to a fresh top-level list. A saved cursor at or past the end of
// that list resumes at the final question.
func (s *InterviewService) Start(ctx context.Context, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(ctx, userID)
}

func (s *InterviewService) startLocked(ctx context.Context, userID string) (*Session, error) {
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}

	cursor := 0
	state, err := s.resumeCache.Get(ctx, userID)
	if err != nil {
		// Resume state is best-effort. Fall back to a fresh session.
		log.Printf("[Interview] failed to load resume state for %s: %v", userID, err)
	} else if state != nil && !state.Completed {
		cursor = state.Cursor
	}

	topLevel := catalog.TopLevel()
	sequence := make([]entry, len(topLevel))
	for i, q := range topLevel {
		sequence[i] = entry{question: q}
	}
	if cursor >= len(sequence) {
		// A saved cursor at or past the end without the completed flag means
		// the final answer was recorded but the submission never went
		// through. Re-ask the last question so finishing it runs the
		// pipeline again instead of parking the session in a complete state
		// nothing can leave.
		cursor = len(sequence) - 1
	}

	sess := &Session{UserID: userID, sequence: sequence, cursor: cursor}
	s.sessions[userID] = sess
	return sess, nil
}

// Current returns the question at the cursor (nil when complete) along with
// the current progress.
func (s *InterviewService) Current(ctx context.Context, userID string) (*model.Question, Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.startLocked(ctx, userID)
	if err != nil {
		return nil, Progress{}, err
	}
	return sess.Current(), sess.Progress(), nil
}

// Answer records a Yes/No response on the current question. An affirmative
// answer splices the question's follow-ups immediately after the cursor in
// catalog order; the cursor always advances by one. The new cursor position
// is persisted best-effort. Answering the final question locks the session
// and hands the flattened responses to the submission pipeline
// asynchronously.
func (s *InterviewService) Answer(ctx context.Context, userID, response string) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.startLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.locked {
		return nil, ErrSessionLocked
	}
	if sess.IsComplete() {
		return nil, ErrInterviewComplete
	}
	if !strings.EqualFold(response, "Yes") && !strings.EqualFold(response, "No") {
		return nil, ErrInvalidResponse
	}

	cur := &sess.sequence[sess.cursor]
	cur.response = response // stored as given
	cur.answeredAt = time.Now()

	if strings.EqualFold(response, "Yes") && len(cur.question.FollowUps) > 0 {
		inserted := make([]entry, len(cur.question.FollowUps))
		for i, fu := range cur.question.FollowUps {
			inserted[i] = entry{question: fu}
		}
		tail := append(inserted, sess.sequence[sess.cursor+1:]...)
		sess.sequence = append(sess.sequence[:sess.cursor+1:sess.cursor+1], tail...)
	}

	sess.cursor++

	// Persistence failure is logged, not fatal: the in-memory session stays
	// authoritative for the rest of this run.
	if err := s.resumeCache.Set(ctx, userID, &model.ResumeState{Cursor: sess.cursor}); err != nil {
		log.Printf("[Interview] failed to persist cursor for %s: %v", userID, err)
	}

	result := &AnswerResult{Progress: sess.Progress()}
	if !sess.IsComplete() {
		result.Next = sess.Current()
		return result, nil
	}

	// Last answer recorded: lock the session so no answers land while the
	// submission is in flight, then submit in the background.
	sess.locked = true
	result.Submitted = true
	s.submitAsync(userID, sess.flatten())

	return result, nil
}

// Resubmit re-runs the submission pipeline for a completed interview whose
// earlier submission failed. The session keeps its answers until a
// submission lands durably, so a retry submits the same responses.
func (s *InterviewService) Resubmit(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || !sess.IsComplete() {
		return ErrInterviewIncomplete
	}
	if sess.locked {
		return ErrSessionLocked
	}

	sess.locked = true
	s.submitAsync(userID, sess.flatten())
	return nil
}

// submitAsync hands the flattened responses to the submission pipeline. On
// failure the session unlocks so Resubmit can retry, and the user is told
// over their live connection.
func (s *InterviewService) submitAsync(userID string, responses []model.AnsweredQuestion) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Interview] recovered from panic in submission: %v", r)
				s.unlock(userID)
			}
		}()

		if err := s.submitter.Submit(context.Background(), userID, responses); err != nil {
			log.Printf("[Interview] submission failed for %s: %v", userID, err)
			s.unlock(userID)
			if s.notifier != nil {
				s.notifier.NotifyUser(userID, "error", map[string]string{
					"stage": "submission",
					"error": "submission failed; your answers are kept, please retry",
				})
			}
			return
		}
		s.finish(userID)
	}()
}

// unlock reopens a session after a failed submission so it can be retried
func (s *InterviewService) unlock(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.locked = false
	}
}

// finish drops the session after a durable submission; the next Start
// begins a fresh interview for a new submission record.
func (s *InterviewService) finish(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
