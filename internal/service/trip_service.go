package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"travelhealth/internal/model"
	"travelhealth/internal/repository"
)

// tripBackend is the slice of the health client the orchestrator needs
type tripBackend interface {
	AnalyzeTrip(ctx context.Context, p *TripPayload) (string, error)
	TripScore(ctx context.Context, p *TripPayload) (float64, error)
}

// TripRequest is one trip analysis request
type TripRequest struct {
	CurrentCity     string `json:"currentCity"`
	DestinationCity string `json:"destinationCity"`
	DepartureDate   string `json:"departureDate"`
	ReturnDate      string `json:"returnDate"`
}

// TripResult is the outcome of one trip analysis. The narrative and the
// score are independent: either can be missing, with its own error message,
// without invalidating the other.
type TripResult struct {
	Trip          *model.TripRecord `json:"trip"`
	Approved      bool              `json:"approved"`
	ScoreDisplay  string            `json:"scoreDisplay,omitempty"`
	AnalysisError string            `json:"analysisError,omitempty"`
	ScoreError    string            `json:"scoreError,omitempty"`
}

// TripService orchestrates trip analysis: it assembles the payload from the
// user's most recent submission and the city reference datasets, creates the
// trip record, then obtains the narrative analysis and the numeric score,
// updating the record as each result lands.
type TripService struct {
	tripRepo       repository.TripRepo
	submissionRepo repository.SubmissionRepo
	datasetRepo    repository.DatasetRepo
	backend        tripBackend
	notifier       Notifier
}

// NewTripService creates a new trip service
func NewTripService(
	tripRepo repository.TripRepo,
	submissionRepo repository.SubmissionRepo,
	datasetRepo repository.DatasetRepo,
	backend tripBackend,
) *TripService {
	return &TripService{
		tripRepo:       tripRepo,
		submissionRepo: submissionRepo,
		datasetRepo:    datasetRepo,
		backend:        backend,
	}
}

// SetNotifier wires the live event push
func (s *TripService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Analyze runs the full trip analysis flow. Precondition failures (no prior
// submission, unknown city) surface before any trip record exists. Identical
// cities and inverted date ranges are accepted as given.
func (s *TripService) Analyze(ctx context.Context, userID string, req *TripRequest, departure, ret time.Time) (*TripResult, error) {
	if req.CurrentCity == "" || req.DestinationCity == "" || departure.IsZero() || ret.IsZero() {
		return nil, ErrIncompleteTripRequest
	}

	submission, err := s.submissionRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest submission: %w", err)
	}
	if submission == nil {
		return nil, ErrNoPriorSubmission
	}

	currentDiet, err := s.dataset(ctx, req.CurrentCity)
	if err != nil {
		return nil, err
	}
	destinationDiet, err := s.dataset(ctx, req.DestinationCity)
	if err != nil {
		return nil, err
	}

	trip := &model.TripRecord{
		UserID:          userID,
		CurrentCity:     req.CurrentCity,
		DestinationCity: req.DestinationCity,
		DepartureDate:   departure,
		ReturnDate:      ret,
	}
	tripID, err := s.tripRepo.Create(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip record: %w", err)
	}
	log.Printf("[Trip] record %s created for user %s (%s -> %s)", tripID, userID, req.CurrentCity, req.DestinationCity)

	payload := &TripPayload{
		CurrentCity:     req.CurrentCity,
		DestinationCity: req.DestinationCity,
		Responses:       submission.Responses,
		CurrentDiet:     currentDiet,
		DestinationDiet: destinationDiet,
	}

	result := &TripResult{Trip: trip}

	// Narrative analysis first, as in the reference flow. Its failure does
	// not block the scoring call.
	analysis, err := s.backend.AnalyzeTrip(ctx, payload)
	if err != nil {
		log.Printf("[Trip] analysis unavailable for %s: %v", tripID, err)
		result.AnalysisError = "travel health analysis is unavailable right now"
	} else {
		trip.Analysis = analysis
		if err := s.tripRepo.SetAnalysis(ctx, tripID, analysis); err != nil {
			log.Printf("[Trip] failed to persist analysis for %s: %v", tripID, err)
		}
	}

	score, err := s.backend.TripScore(ctx, payload)
	if err != nil {
		// Score stays null on the record; any analysis already obtained is
		// preserved.
		log.Printf("[Trip] score unavailable for %s: %v", tripID, err)
		result.ScoreError = "travel health score is unavailable right now"
		return result, nil
	}

	trip.Score = &score
	if err := s.tripRepo.SetScore(ctx, tripID, score); err != nil {
		log.Printf("[Trip] failed to persist score for %s: %v", tripID, err)
	}

	// Approval compares the unrounded value; rounding is display-only.
	result.Approved = trip.Approved()
	result.ScoreDisplay = fmt.Sprintf("%.2f", score)
	if s.notifier != nil {
		s.notifier.NotifyUser(userID, "trip_score_ready", result)
	}
	return result, nil
}

func (s *TripService) dataset(ctx context.Context, city string) (string, error) {
	dataset, err := s.datasetRepo.GetByCity(ctx, city)
	if err != nil {
		return "", fmt.Errorf("failed to load dataset for %s: %w", city, err)
	}
	if dataset == nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCity, city)
	}
	return dataset.DietCSV, nil
}

// History returns the user's analyzed trips, newest first
func (s *TripService) History(ctx context.Context, userID string) ([]*model.TripRecord, error) {
	return s.tripRepo.GetByUser(ctx, userID)
}

// SupportedCities lists cities with a reference dataset
func (s *TripService) SupportedCities(ctx context.Context) ([]string, error) {
	return s.datasetRepo.ListCities(ctx)
}
