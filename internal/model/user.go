package model

import "time"

// UserProfile is the per-user profile document
type UserProfile struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Name         string    `json:"name" bson:"name"`
	Age          int       `json:"age,omitempty" bson:"age,omitempty"`
	Gender       string    `json:"gender,omitempty" bson:"gender,omitempty"`
	PhotoURL     string    `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Vaccination is one entry in a user's vaccination history
type Vaccination struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"userId" bson:"userId"`
	Name           string    `json:"name" bson:"name"`
	AdministeredAt time.Time `json:"administeredAt" bson:"administeredAt"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
