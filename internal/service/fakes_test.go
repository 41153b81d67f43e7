package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"travelhealth/internal/model"
)

// In-memory fakes for the repository and cache interfaces, shared by the
// service tests.

type fakeResumeCache struct {
	mu     sync.Mutex
	states map[string]*model.ResumeState
	getErr error
	setErr error
}

func newFakeResumeCache() *fakeResumeCache {
	return &fakeResumeCache{states: make(map[string]*model.ResumeState)}
}

func (f *fakeResumeCache) Get(ctx context.Context, userID string) (*model.ResumeState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	state, ok := f.states[userID]
	if !ok {
		return nil, nil
	}
	cp := *state
	return &cp, nil
}

func (f *fakeResumeCache) Set(ctx context.Context, userID string, state *model.ResumeState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	cp := *state
	f.states[userID] = &cp
	return nil
}

func (f *fakeResumeCache) Delete(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.states, userID)
	return nil
}

func (f *fakeResumeCache) state(userID string) *model.ResumeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states[userID]
}

type fakeSubmissionRepo struct {
	mu        sync.Mutex
	records   []*model.SubmissionRecord
	createErr error
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, record *model.SubmissionRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	id := "sub-" + strconv.Itoa(len(f.records)+1)
	record.ID = id
	cp := *record
	f.records = append(f.records, &cp)
	return id, nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) LatestByUser(ctx context.Context, userID string) (*model.SubmissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *model.SubmissionRecord
	for _, r := range f.records {
		if r.UserID != userID {
			continue
		}
		if latest == nil || r.CompletedAt.After(latest.CompletedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeSubmissionRepo) GetByUser(ctx context.Context, userID string) ([]*model.SubmissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SubmissionRecord
	for _, r := range f.records {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeEnrichmentRepo struct {
	mu           sync.Mutex
	summaries    map[string]*model.Summary
	healthScores map[string]*model.HealthScore
	summaryErr   error
	scoreErr     error
}

func newFakeEnrichmentRepo() *fakeEnrichmentRepo {
	return &fakeEnrichmentRepo{
		summaries:    make(map[string]*model.Summary),
		healthScores: make(map[string]*model.HealthScore),
	}
}

func (f *fakeEnrichmentRepo) SaveSummary(ctx context.Context, summary *model.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.summaryErr != nil {
		return f.summaryErr
	}
	f.summaries[summary.SubmissionID] = summary
	return nil
}

func (f *fakeEnrichmentRepo) GetSummary(ctx context.Context, submissionID string) (*model.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summaries[submissionID], nil
}

func (f *fakeEnrichmentRepo) SaveHealthScore(ctx context.Context, score *model.HealthScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scoreErr != nil {
		return f.scoreErr
	}
	f.healthScores[score.SubmissionID] = score
	return nil
}

func (f *fakeEnrichmentRepo) GetHealthScore(ctx context.Context, submissionID string) (*model.HealthScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthScores[submissionID], nil
}

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[string]*model.TripRecord
	next  int
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[string]*model.TripRecord)}
}

func (f *fakeTripRepo) Create(ctx context.Context, trip *model.TripRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	id := "trip-" + strconv.Itoa(f.next)
	trip.ID = id
	cp := *trip
	f.trips[id] = &cp
	return id, nil
}

func (f *fakeTripRepo) GetByID(ctx context.Context, id string) (*model.TripRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *trip
	return &cp, nil
}

func (f *fakeTripRepo) GetByUser(ctx context.Context, userID string) ([]*model.TripRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.TripRecord
	for _, t := range f.trips {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) SetAnalysis(ctx context.Context, id, analysis string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if trip, ok := f.trips[id]; ok {
		trip.Analysis = analysis
	}
	return nil
}

func (f *fakeTripRepo) SetScore(ctx context.Context, id string, score float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if trip, ok := f.trips[id]; ok {
		trip.Score = &score
	}
	return nil
}

func (f *fakeTripRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.trips)
}

type fakeDatasetRepo struct {
	datasets map[string]string
}

func (f *fakeDatasetRepo) Upsert(ctx context.Context, dataset *model.CityDataset) error {
	f.datasets[dataset.City] = dataset.DietCSV
	return nil
}

func (f *fakeDatasetRepo) GetByCity(ctx context.Context, city string) (*model.CityDataset, error) {
	csv, ok := f.datasets[city]
	if !ok {
		return nil, nil
	}
	return &model.CityDataset{City: city, DietCSV: csv}, nil
}

func (f *fakeDatasetRepo) ListCities(ctx context.Context) ([]string, error) {
	var out []string
	for city := range f.datasets {
		out = append(out, city)
	}
	return out, nil
}

// fakeBackend implements scoringBackend, tripBackend and translateBackend
type fakeBackend struct {
	mu sync.Mutex

	summary    string
	summaryErr error

	healthScore    float64
	healthScoreErr error

	analysis    string
	analysisErr error

	tripScore    float64
	tripScoreErr error

	translated   string
	translateErr error

	summarizeCalls int
	scoreCalls     int
	translateCalls int
	lastPayload    *TripPayload

	block chan struct{} // non-nil: calls wait until closed
}

var errUnavailable = errors.New("backend unavailable")

func (f *fakeBackend) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeBackend) Summarize(ctx context.Context, record *model.SubmissionRecord) (string, error) {
	f.wait()
	f.mu.Lock()
	f.summarizeCalls++
	f.mu.Unlock()
	return f.summary, f.summaryErr
}

func (f *fakeBackend) GeneralHealthScore(ctx context.Context, record *model.SubmissionRecord) (float64, error) {
	f.wait()
	f.mu.Lock()
	f.scoreCalls++
	f.mu.Unlock()
	return f.healthScore, f.healthScoreErr
}

func (f *fakeBackend) AnalyzeTrip(ctx context.Context, p *TripPayload) (string, error) {
	f.mu.Lock()
	f.lastPayload = p
	f.mu.Unlock()
	return f.analysis, f.analysisErr
}

func (f *fakeBackend) TripScore(ctx context.Context, p *TripPayload) (float64, error) {
	return f.tripScore, f.tripScoreErr
}

func (f *fakeBackend) Translate(ctx context.Context, text, from, to string) (string, error) {
	f.mu.Lock()
	f.translateCalls++
	f.mu.Unlock()
	return f.translated, f.translateErr
}

type fakeTranslationCache struct {
	entries map[string]string
}

func (f *fakeTranslationCache) Get(ctx context.Context, text, lang string) (string, error) {
	return f.entries[lang+":"+text], nil
}

func (f *fakeTranslationCache) Set(ctx context.Context, text, lang, translated string) error {
	f.entries[lang+":"+text] = translated
	return nil
}
