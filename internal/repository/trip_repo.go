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

// TripRepo handles MongoDB operations for travel history records
type TripRepo interface {
	Create(ctx context.Context, trip *model.TripRecord) (string, error)
	GetByID(ctx context.Context, id string) (*model.TripRecord, error)
	GetByUser(ctx context.Context, userID string) ([]*model.TripRecord, error)
	SetAnalysis(ctx context.Context, id, analysis string) error
	SetScore(ctx context.Context, id string, score float64) error
}

type tripRepo struct {
	collection *mongo.Collection
}

// NewTripRepo creates a new trip repository
func NewTripRepo(db *mongo.Database) TripRepo {
	return &tripRepo{
		collection: db.Collection("travelHistory"),
	}
}

func (r *tripRepo) Create(ctx context.Context, trip *model.TripRecord) (string, error) {
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = trip.CreatedAt

	result, err := r.collection.InsertOne(ctx, trip)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	trip.ID = oid.Hex()
	return trip.ID, nil
}

func (r *tripRepo) GetByID(ctx context.Context, id string) (*model.TripRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var trip model.TripRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	trip.ID = id
	return &trip, nil
}

func (r *tripRepo) GetByUser(ctx context.Context, userID string) ([]*model.TripRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trips []*model.TripRecord
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepo) SetAnalysis(ctx context.Context, id, analysis string) error {
	return r.update(ctx, id, bson.M{"analysis": analysis})
}

func (r *tripRepo) SetScore(ctx context.Context, id string, score float64) error {
	return r.update(ctx, id, bson.M{"travelHealthScore": score})
}

func (r *tripRepo) update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	fields["updatedAt"] = time.Now()
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	return err
}
