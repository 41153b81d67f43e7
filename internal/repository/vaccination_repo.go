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

// VaccinationRepo handles MongoDB operations for vaccination history
type VaccinationRepo interface {
	Create(ctx context.Context, v *model.Vaccination) (string, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Vaccination, error)
	Delete(ctx context.Context, id string) error
}

type vaccinationRepo struct {
	collection *mongo.Collection
}

// NewVaccinationRepo creates a new vaccination repository
func NewVaccinationRepo(db *mongo.Database) VaccinationRepo {
	return &vaccinationRepo{
		collection: db.Collection("vaccinations"),
	}
}

func (r *vaccinationRepo) Create(ctx context.Context, v *model.Vaccination) (string, error) {
	v.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, v)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	v.ID = oid.Hex()
	return v.ID, nil
}

func (r *vaccinationRepo) GetByUser(ctx context.Context, userID string) ([]*model.Vaccination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "administeredAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vaccinations []*model.Vaccination
	if err := cursor.All(ctx, &vaccinations); err != nil {
		return nil, err
	}
	return vaccinations, nil
}

func (r *vaccinationRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
