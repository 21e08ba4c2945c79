package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDB wraps a gorm handle with a fail-fast create helper for seeding rows.
type testDB struct {
	db *gorm.DB
}

func (h *testDB) create(t *testing.T, value any) {
	t.Helper()
	require.NoError(t, h.db.Create(value).Error)
}
