package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/notify"
	apperrors "github.com/vitalog/vitalog/pkg/errors"
)

// UserService exposes user profiles to the reminder pipeline. User lifecycle
// (registration, profile editing) belongs to an upstream service; this side
// only reads.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// ListUsers returns every user as a strategy-facing profile. It implements the
// scheduler's UserSource contract.
func (s *UserService) ListUsers(ctx context.Context) ([]notify.UserProfile, error) {
	ctx = ensureContext(ctx)

	var rows []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("user service: list users: %w", err)
	}

	profiles := make([]notify.UserProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, mapUserProfile(row))
	}
	return profiles, nil
}

// GetProfile returns one user's strategy-facing profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (notify.UserProfile, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return notify.UserProfile{}, errors.New("user service: user id is required")
	}

	var row models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notify.UserProfile{}, apperrors.ErrNotFound
		}
		return notify.UserProfile{}, fmt.Errorf("user service: load user: %w", err)
	}
	return mapUserProfile(row), nil
}

func mapUserProfile(row models.User) notify.UserProfile {
	return notify.UserProfile{
		UserID:   row.ID,
		Email:    row.Email,
		Name:     row.Name,
		WeightKG: row.WeightKG,
		HeightCM: row.HeightCM,
		Age:      row.Age,
		Gender:   row.Gender,
		Country:  row.Country,
	}
}
