package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelhealth/internal/model"
)

// SubmissionRepo handles MongoDB operations for questionnaire responses
type SubmissionRepo interface {
	Create(ctx context.Context, record *model.SubmissionRecord) (string, error)
	GetByID(ctx context.Context, id string) (*model.SubmissionRecord, error)
	LatestByUser(ctx context.Context, userID string) (*model.SubmissionRecord, error)
	GetByUser(ctx context.Context, userID string) ([]*model.SubmissionRecord, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("questionnaireResponses"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, record *model.SubmissionRecord) (string, error) {
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	record.ID = oid.Hex()
	return record.ID, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var record model.SubmissionRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

func (r *submissionRepo) LatestByUser(ctx context.Context, userID string) (*model.SubmissionRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	var record model.SubmissionRecord
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *submissionRepo) GetByUser(ctx context.Context, userID string) ([]*model.SubmissionRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.SubmissionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
