package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelhealth/internal/model"
)

// EnrichmentRepo handles MongoDB operations for the AI-derived summary and
// health score attached to a submission. Writes are upserts keyed by the
// submission id, so repeated delivery of the same result is idempotent.
type EnrichmentRepo interface {
	SaveSummary(ctx context.Context, summary *model.Summary) error
	GetSummary(ctx context.Context, submissionID string) (*model.Summary, error)
	SaveHealthScore(ctx context.Context, score *model.HealthScore) error
	GetHealthScore(ctx context.Context, submissionID string) (*model.HealthScore, error)
}

type enrichmentRepo struct {
	summaries    *mongo.Collection
	healthScores *mongo.Collection
}

// NewEnrichmentRepo creates a new enrichment repository
func NewEnrichmentRepo(db *mongo.Database) EnrichmentRepo {
	return &enrichmentRepo{
		summaries:    db.Collection("summaries"),
		healthScores: db.Collection("healthScores"),
	}
}

func (r *enrichmentRepo) SaveSummary(ctx context.Context, summary *model.Summary) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.summaries.ReplaceOne(ctx, bson.M{"submissionId": summary.SubmissionID}, summary, opts)
	return err
}

func (r *enrichmentRepo) GetSummary(ctx context.Context, submissionID string) (*model.Summary, error) {
	var summary model.Summary
	err := r.summaries.FindOne(ctx, bson.M{"submissionId": submissionID}).Decode(&summary)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *enrichmentRepo) SaveHealthScore(ctx context.Context, score *model.HealthScore) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.healthScores.ReplaceOne(ctx, bson.M{"submissionId": score.SubmissionID}, score, opts)
	return err
}

func (r *enrichmentRepo) GetHealthScore(ctx context.Context, submissionID string) (*model.HealthScore, error) {
	var score model.HealthScore
	err := r.healthScores.FindOne(ctx, bson.M{"submissionId": submissionID}).Decode(&score)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}
