package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"travelhealth/internal/cache"
	"travelhealth/internal/model"
	"travelhealth/internal/repository"
)

// scoringBackend is the slice of the health client the pipeline needs
type scoringBackend interface {
	Summarize(ctx context.Context, record *model.SubmissionRecord) (string, error)
	GeneralHealthScore(ctx context.Context, record *model.SubmissionRecord) (float64, error)
}

// SubmissionService runs the response submission pipeline: persist the
// completed answers as a submission record, then request the summary and the
// health score concurrently, writing back whichever arrives. The record write
// is the only fatal step; either AI call failing degrades that one field to
// unavailable.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepo
	enrichmentRepo repository.EnrichmentRepo
	resumeCache    cache.ResumeCache
	backend        scoringBackend
	notifier       Notifier
	clientInfo     model.ClientInfo

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	submissionRepo repository.SubmissionRepo,
	enrichmentRepo repository.EnrichmentRepo,
	resumeCache cache.ResumeCache,
	backend scoringBackend,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		enrichmentRepo: enrichmentRepo,
		resumeCache:    resumeCache,
		backend:        backend,
		clientInfo:     model.ClientInfo{Platform: "mobile"},
		inFlight:       make(map[string]bool),
	}
}

// SetNotifier wires the live event push
func (s *SubmissionService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Submit persists one completed interview and fires the two enrichment
// calls. Re-entrant calls for the same user while a submission is in flight
// return ErrSubmissionInFlight without creating a second record.
func (s *SubmissionService) Submit(ctx context.Context, userID string, responses []model.AnsweredQuestion) error {
	s.mu.Lock()
	if s.inFlight[userID] {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	s.inFlight[userID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, userID)
		s.mu.Unlock()
	}()

	// Mark the resumption record completed up front, best-effort. Keep the
	// previous state so a failed record write can roll it back and leave the
	// session resumable.
	prev, err := s.resumeCache.Get(ctx, userID)
	if err != nil {
		log.Printf("[Submission] failed to read resume state for %s: %v", userID, err)
	}
	if err := s.resumeCache.Set(ctx, userID, &model.ResumeState{Completed: true}); err != nil {
		log.Printf("[Submission] failed to mark completion for %s: %v", userID, err)
	}

	record := &model.SubmissionRecord{
		UserID:      userID,
		Responses:   responses,
		Client:      s.clientInfo,
		CompletedAt: time.Now(),
	}

	id, err := s.submissionRepo.Create(ctx, record)
	if err != nil {
		s.rollbackCompletion(ctx, userID, prev)
		return fmt.Errorf("failed to persist submission: %w", err)
	}
	record.ID = id
	log.Printf("[Submission] record %s saved for user %s (%d responses)", id, userID, len(responses))
	s.notify(userID, "submission_saved", map[string]string{"submissionId": id})

	// The two enrichment calls are independent: each branch swallows its own
	// failure and the join never fails as a whole.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		summary, err := s.backend.Summarize(ctx, record)
		if err != nil {
			log.Printf("[Submission] summary unavailable for %s: %v", id, err)
			return
		}
		s.saveSummary(ctx, record, summary)
	}()

	go func() {
		defer wg.Done()
		score, err := s.backend.GeneralHealthScore(ctx, record)
		if err != nil {
			log.Printf("[Submission] health score unavailable for %s: %v", id, err)
			return
		}
		s.saveHealthScore(ctx, record, score)
	}()

	wg.Wait()
	return nil
}

func (s *SubmissionService) saveSummary(ctx context.Context, record *model.SubmissionRecord, text string) {
	summary := &model.Summary{
		SubmissionID: record.ID,
		UserID:       record.UserID,
		Text:         text,
		GeneratedAt:  time.Now(),
	}
	if err := s.enrichmentRepo.SaveSummary(ctx, summary); err != nil {
		log.Printf("[Submission] failed to save summary for %s: %v", record.ID, err)
		return
	}
	s.notify(record.UserID, "summary_ready", summary)
}

func (s *SubmissionService) saveHealthScore(ctx context.Context, record *model.SubmissionRecord, value float64) {
	score := &model.HealthScore{
		SubmissionID: record.ID,
		UserID:       record.UserID,
		Score:        value,
		GeneratedAt:  time.Now(),
	}
	if err := s.enrichmentRepo.SaveHealthScore(ctx, score); err != nil {
		log.Printf("[Submission] failed to save health score for %s: %v", record.ID, err)
		return
	}
	s.notify(record.UserID, "health_score_ready", score)
}

func (s *SubmissionService) rollbackCompletion(ctx context.Context, userID string, prev *model.ResumeState) {
	if prev == nil {
		prev = &model.ResumeState{}
	}
	prev.Completed = false
	if err := s.resumeCache.Set(ctx, userID, prev); err != nil {
		log.Printf("[Submission] failed to roll back completion flag for %s: %v", userID, err)
	}
}

func (s *SubmissionService) notify(userID, msgType string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.NotifyUser(userID, msgType, payload)
	}
}

// Latest returns the user's most recent submission with whatever enrichments
// have arrived so far.
func (s *SubmissionService) Latest(ctx context.Context, userID string) (*model.SubmissionRecord, *model.Summary, *model.HealthScore, error) {
	record, err := s.submissionRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	if record == nil {
		return nil, nil, nil, nil
	}

	summary, err := s.enrichmentRepo.GetSummary(ctx, record.ID)
	if err != nil {
		log.Printf("[Submission] failed to load summary for %s: %v", record.ID, err)
	}
	score, err := s.enrichmentRepo.GetHealthScore(ctx, record.ID)
	if err != nil {
		log.Printf("[Submission] failed to load health score for %s: %v", record.ID, err)
	}
	return record, summary, score, nil
}
