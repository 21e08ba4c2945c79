package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/database/testutil"
	"github.com/vitalog/vitalog/internal/models"
	apperrors "github.com/vitalog/vitalog/pkg/errors"
)

func TestUserServiceListUsers(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	alice := models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Email:     "alice@example.com",
		Name:      "Alice",
		WeightKG:  70,
		Country:   "vietnam",
	}
	bob := models.User{
		BaseModel: models.BaseModel{ID: "user-2"},
		Email:     "bob@example.com",
		Name:      "Bob",
		WeightKG:  82,
		Country:   "mexico",
	}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	svc, err := NewUserService(db)
	require.NoError(t, err)

	profiles, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	byID := map[string]string{}
	for _, profile := range profiles {
		byID[profile.UserID] = profile.Country
	}
	require.Equal(t, "vietnam", byID["user-1"])
	require.Equal(t, "mexico", byID["user-2"])
}

func TestUserServiceGetProfile(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	user := models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Email:     "alice@example.com",
		Name:      "Alice",
		WeightKG:  70,
		HeightCM:  168,
		Age:       31,
		Gender:    "female",
		Country:   "vietnam",
	}
	require.NoError(t, db.Create(&user).Error)

	svc, err := NewUserService(db)
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", profile.Email)
	require.Equal(t, 70.0, profile.WeightKG)
	require.Equal(t, 31, profile.Age)

	_, err = svc.GetProfile(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
