package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"travelhealth/internal/model"
)

// UserRepo handles MongoDB operations for user profiles
type UserRepo interface {
	Create(ctx context.Context, user *model.UserProfile) (string, error)
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	Update(ctx context.Context, user *model.UserProfile) error
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

func (r *userRepo) Create(ctx context.Context, user *model.UserProfile) (string, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	user.ID = oid.Hex()
	return user.ID, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var user model.UserProfile
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.ID = id
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	var user model.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.UserProfile) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return err
	}

	user.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, user)
	return err
}
