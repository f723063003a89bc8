package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photodesk/internal/database"
	"photodesk/internal/domain"
)

func TestDeleteExpiredUnapproved(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.DownloadSelection{}, &domain.SelectionFile{}))
	repo := NewSelectionRepository(db)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expiredPending := &domain.DownloadSelection{
		EventID: 1, Token: "t1", Country: domain.CountryKZ,
		DeliveryStatus: domain.DeliveryPendingPayment, ExpiresAt: &past,
		Files: []domain.SelectionFile{{PhotoID: 10}},
	}
	expiredShipped := &domain.DownloadSelection{
		EventID: 1, Token: "t2", Country: domain.CountryKZ,
		DeliveryStatus: domain.DeliveryShipped, ExpiresAt: &past,
	}
	liveSelection := &domain.DownloadSelection{
		EventID: 1, Token: "t3", Country: domain.CountryKZ,
		DeliveryStatus: domain.DeliveryPendingApproval, ExpiresAt: &future,
	}
	noExpiry := &domain.DownloadSelection{
		EventID: 1, Token: "t4", Country: domain.CountryKZ,
		DeliveryStatus: domain.DeliveryPendingApproval,
	}
	for _, s := range []*domain.DownloadSelection{expiredPending, expiredShipped, liveSelection, noExpiry} {
		require.NoError(t, repo.Create(ctx, s))
	}

	n, err := repo.DeleteExpiredUnapproved(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Only the expired never-approved selection and its files are gone.
	_, err = repo.GetByToken(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	for _, token := range []string{"t2", "t3", "t4"} {
		_, err := repo.GetByToken(ctx, token)
		assert.NoError(t, err, token)
	}

	var files int64
	require.NoError(t, db.Model(&domain.SelectionFile{}).Count(&files).Error)
	assert.Zero(t, files)
}
