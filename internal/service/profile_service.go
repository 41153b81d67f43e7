package service

import (
	"context"
	"errors"

	"travelhealth/internal/model"
	"travelhealth/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// ProfileService handles user profile and vaccination history
type ProfileService struct {
	userRepo        repository.UserRepo
	vaccinationRepo repository.VaccinationRepo
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repository.UserRepo, vaccinationRepo repository.VaccinationRepo) *ProfileService {
	return &ProfileService{
		userRepo:        userRepo,
		vaccinationRepo: vaccinationRepo,
	}
}

// Get returns the user's profile
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update replaces the mutable profile fields
func (s *ProfileService) Update(ctx context.Context, userID string, name string, age int, gender, photoURL string) (*model.UserProfile, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Age = age
	user.Gender = gender
	user.PhotoURL = photoURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddVaccination records one vaccination entry
func (s *ProfileService) AddVaccination(ctx context.Context, v *model.Vaccination) (string, error) {
	return s.vaccinationRepo.Create(ctx, v)
}

// Vaccinations lists the user's vaccination history, newest first
func (s *ProfileService) Vaccinations(ctx context.Context, userID string) ([]*model.Vaccination, error) {
	return s.vaccinationRepo.GetByUser(ctx, userID)
}

// DeleteVaccination removes one vaccination entry
func (s *ProfileService) DeleteVaccination(ctx context.Context, id string) error {
	return s.vaccinationRepo.Delete(ctx, id)
}
