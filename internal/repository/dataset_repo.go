package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelhealth/internal/model"
)

// DatasetRepo handles MongoDB operations for per-city reference datasets.
// Documents are keyed by city name; cmd/seed loads them.
type DatasetRepo interface {
	Upsert(ctx context.Context, dataset *model.CityDataset) error
	GetByCity(ctx context.Context, city string) (*model.CityDataset, error)
	ListCities(ctx context.Context) ([]string, error)
}

type datasetRepo struct {
	collection *mongo.Collection
}

// NewDatasetRepo creates a new dataset repository
func NewDatasetRepo(db *mongo.Database) DatasetRepo {
	return &datasetRepo{
		collection: db.Collection("cityDatasets"),
	}
}

func (r *datasetRepo) Upsert(ctx context.Context, dataset *model.CityDataset) error {
	dataset.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": dataset.City}, dataset, opts)
	return err
}

func (r *datasetRepo) GetByCity(ctx context.Context, city string) (*model.CityDataset, error) {
	var dataset model.CityDataset
	err := r.collection.FindOne(ctx, bson.M{"_id": city}).Decode(&dataset)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

func (r *datasetRepo) ListCities(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		City string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(docs))
	for _, d := range docs {
		cities = append(cities, d.City)
	}
	return cities, nil
}
