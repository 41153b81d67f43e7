package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelhealth/internal/model"
)

type tripFixture struct {
	svc         *TripService
	trips       *fakeTripRepo
	submissions *fakeSubmissionRepo
	datasets    *fakeDatasetRepo
	backend     *fakeBackend
}

func newTripFixture() *tripFixture {
	f := &tripFixture{
		trips:       newFakeTripRepo(),
		submissions: &fakeSubmissionRepo{},
		datasets: &fakeDatasetRepo{datasets: map[string]string{
			"Mumbai": "food,calories\ndal,120",
			"London": "food,calories\nporridge,150",
		}},
		backend: &fakeBackend{analysis: "pack rehydration salts", tripScore: 8.25},
	}
	f.svc = NewTripService(f.trips, f.submissions, f.datasets, f.backend)
	f.submissions.Create(context.Background(), &model.SubmissionRecord{
		UserID:      "u1",
		Responses:   sampleResponses(),
		CompletedAt: time.Now(),
	})
	return f
}

func tripDates() (time.Time, time.Time) {
	departure := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return departure, departure.AddDate(0, 0, 14)
}

func validRequest() *TripRequest {
	return &TripRequest{
		CurrentCity:     "Mumbai",
		DestinationCity: "London",
		DepartureDate:   "2026-09-10",
		ReturnDate:      "2026-09-24",
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	f := newTripFixture()
	departure, ret := tripDates()

	result, err := f.svc.Analyze(context.Background(), "u1", validRequest(), departure, ret)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Trip == nil || result.Trip.ID == "" {
		t.Fatal("no trip record in result")
	}
	if result.Trip.Analysis != "pack rehydration salts" {
		t.Errorf("analysis = %q", result.Trip.Analysis)
	}
	if result.Trip.Score == nil || *result.Trip.Score != 8.25 {
		t.Errorf("score = %v, want 8.25", result.Trip.Score)
	}
	if !result.Approved {
		t.Error("trip not approved with score 8.25")
	}
	if result.ScoreDisplay != "8.25" {
		t.Errorf("score display = %q, want %q", result.ScoreDisplay, "8.25")
	}
	if result.AnalysisError != "" || result.ScoreError != "" {
		t.Errorf("unexpected errors in result: %q / %q", result.AnalysisError, result.ScoreError)
	}

	stored, _ := f.trips.GetByID(context.Background(), result.Trip.ID)
	if stored == nil {
		t.Fatal("trip record not persisted")
	}
	if stored.Analysis == "" || stored.Score == nil {
		t.Errorf("persisted trip missing enrichments: %+v", stored)
	}
}

func TestAnalyzePayloadCarriesResponsesAndDiets(t *testing.T) {
	f := newTripFixture()
	departure, ret := tripDates()

	if _, err := f.svc.Analyze(context.Background(), "u1", validRequest(), departure, ret); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	p := f.backend.lastPayload
	if p == nil {
		t.Fatal("backend never received a payload")
	}
	if p.CurrentCity != "Mumbai" || p.DestinationCity != "London" {
		t.Errorf("payload cities = %q -> %q", p.CurrentCity, p.DestinationCity)
	}
	if len(p.Responses) != len(sampleResponses()) {
		t.Errorf("payload carries %d responses, want %d", len(p.Responses), len(sampleResponses()))
	}
	if p.CurrentDiet == "" || p.DestinationDiet == "" {
		t.Error("payload missing diet datasets")
	}
}

func TestAnalyzeRejectsIncompleteRequest(t *testing.T) {
	f := newTripFixture()
	departure, ret := tripDates()

	cases := []struct {
		name      string
		req       *TripRequest
		departure time.Time
		ret       time.Time
	}{
		{"missing current city", &TripRequest{DestinationCity: "London"}, departure, ret},
		{"missing destination", &TripRequest{CurrentCity: "Mumbai"}, departure, ret},
		{"zero departure", validRequest(), time.Time{}, ret},
		{"zero return", validRequest(), departure, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Analyze(context.Background(), "u1", tc.req, tc.departure, tc.ret)
			if !errors.Is(err, ErrIncompleteTripRequest) {
				t.Errorf("error = %v, want ErrIncompleteTripRequest", err)
			}
		})
	}
	if f.trips.count() != 0 {
		t.Errorf("trip count = %d after rejected requests, want 0", f.trips.count())
	}
}

func TestAnalyzeRequiresPriorSubmission(t *testing.T) {
	f := newTripFixture()
	departure, ret := tripDates()

	_, err := f.svc.Analyze(context.Background(), "newcomer", validRequest(), departure, ret)
	if !errors.Is(err, ErrNoPriorSubmission) {
		t.Fatalf("error = %v, want ErrNoPriorSubmission", err)
	}
	if f.trips.count() != 0 {
		t.Errorf("trip count = %d, want 0; no record should exist for a rejected request", f.trips.count())
	}
}

func TestAnalyzeRejectsUnsupportedCity(t *testing.T) {
	f := newTripFixture()
	departure, ret := tripDates()

	req := validRequest()
	req.DestinationCity = "Atlantis"

	_, err := f.svc.Analyze(context.Background(), "u1", req, departure, ret)
	if !errors.Is(err, ErrUnsupportedCity) {
		t.Fatalf("error = %v, want ErrUnsupportedCity", err)
	}
	if f.trips.count() != 0 {
		t.Errorf("trip count = %d, want 0", f.trips.count())
	}
}

func TestAnalyzeAcceptsSameCityTrip(t *testing.T) {
	f := newTripFixture()
	departure, ret := tripDates()

	req := validRequest()
	req.DestinationCity = "Mumbai"

	result, err := f.svc.Analyze(context.Background(), "u1", req, departure, ret)
	if err != nil {
		t.Fatalf("Analyze same-city trip: %v", err)
	}
	if result.Trip == nil {
		t.Fatal("no trip record for same-city trip")
	}
}

func TestAnalyzeAnalysisFailureStillScores(t *testing.T) {
	f := newTripFixture()
	f.backend.analysisErr = errUnavailable
	departure, ret := tripDates()

	result, err := f.svc.Analyze(context.Background(), "u1", validRequest(), departure, ret)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.AnalysisError == "" {
		t.Error("no analysis error message for failed analysis")
	}
	if result.Trip.Analysis != "" {
		t.Errorf("analysis = %q, want empty", result.Trip.Analysis)
	}
	if result.Trip.Score == nil || *result.Trip.Score != 8.25 {
		t.Errorf("score = %v; the scoring call must proceed after a failed analysis", result.Trip.Score)
	}
	if !result.Approved {
		t.Error("approval lost to an unrelated analysis failure")
	}
}

func TestAnalyzeScoreFailurePreservesAnalysis(t *testing.T) {
	f := newTripFixture()
	f.backend.tripScoreErr = errUnavailable
	departure, ret := tripDates()

	result, err := f.svc.Analyze(context.Background(), "u1", validRequest(), departure, ret)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.ScoreError == "" {
		t.Error("no score error message for failed scoring")
	}
	if result.Trip.Score != nil {
		t.Errorf("score = %v, want nil", result.Trip.Score)
	}
	if result.Approved {
		t.Error("trip approved without a score")
	}
	if result.Trip.Analysis != "pack rehydration salts" {
		t.Errorf("analysis = %q; an earlier analysis must survive a scoring failure", result.Trip.Analysis)
	}

	stored, _ := f.trips.GetByID(context.Background(), result.Trip.ID)
	if stored == nil || stored.Analysis == "" {
		t.Error("persisted trip lost its analysis")
	}
	if stored != nil && stored.Score != nil {
		t.Errorf("persisted score = %v, want nil", stored.Score)
	}
}

func TestAnalyzeApprovalThreshold(t *testing.T) {
	cases := []struct {
		score    float64
		approved bool
		display  string
	}{
		{0.0, false, "0.00"},
		{6.99, false, "6.99"},
		{6.999, false, "7.00"},
		{7.00, true, "7.00"},
		{7.01, true, "7.01"},
		{10.0, true, "10.00"},
	}
	for _, tc := range cases {
		f := newTripFixture()
		f.backend.tripScore = tc.score
		departure, ret := tripDates()

		result, err := f.svc.Analyze(context.Background(), "u1", validRequest(), departure, ret)
		if err != nil {
			t.Fatalf("Analyze(score=%v): %v", tc.score, err)
		}
		if result.Approved != tc.approved {
			t.Errorf("score %v: approved = %v, want %v", tc.score, result.Approved, tc.approved)
		}
		if result.ScoreDisplay != tc.display {
			t.Errorf("score %v: display = %q, want %q", tc.score, result.ScoreDisplay, tc.display)
		}
	}
}

func TestHistoryReturnsUsersTrips(t *testing.T) {
	f := newTripFixture()
	departure, ret := tripDates()

	for i := 0; i < 2; i++ {
		if _, err := f.svc.Analyze(context.Background(), "u1", validRequest(), departure, ret); err != nil {
			t.Fatalf("Analyze %d: %v", i, err)
		}
	}

	trips, err := f.svc.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(trips) != 2 {
		t.Errorf("history length = %d, want 2", len(trips))
	}

	other, err := f.svc.History(context.Background(), "u2")
	if err != nil {
		t.Fatalf("History u2: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("u2 history length = %d, want 0", len(other))
	}
}

func TestSupportedCities(t *testing.T) {
	f := newTripFixture()

	cities, err := f.svc.SupportedCities(context.Background())
	if err != nil {
		t.Fatalf("SupportedCities: %v", err)
	}
	if len(cities) != 2 {
		t.Errorf("city count = %d, want 2", len(cities))
	}
}
