package pg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

func TestDashboardStats(t *testing.T) {
	before, err := storage.DashboardStats(context.Background())
	require.NoError(t, err)

	f := setupProviderFixture(t)
	_, err = storage.CreateServiceProvider(context.Background(), f.newProvider("Stats Pending", domain.StatusPending))
	require.NoError(t, err)
	_, err = storage.CreateServiceProvider(context.Background(), f.newProvider("Stats Approved", domain.StatusApproved))
	require.NoError(t, err)

	after, err := storage.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, before.PendingProviders+1, after.PendingProviders)
	assert.Equal(t, before.ApprovedProviders+1, after.ApprovedProviders)
	assert.Equal(t, before.TotalProviders+2, after.TotalProviders)
	// The fixture added one user, one category and one governorate.
	assert.Equal(t, before.TotalUsers+1, after.TotalUsers)
	assert.Equal(t, before.TotalCategories+1, after.TotalCategories)
	assert.Equal(t, before.TotalGovernorates+1, after.TotalGovernorates)
}

func TestDashboardStatsIgnoresSoftDeleted(t *testing.T) {
	f := setupProviderFixture(t)
	id, err := storage.CreateServiceProvider(context.Background(), f.newProvider("Stats Deleted", domain.StatusRejected))
	require.NoError(t, err)

	before, err := storage.DashboardStats(context.Background())
	require.NoError(t, err)

	require.NoError(t, storage.DeleteServiceProvider(context.Background(), id))

	after, err := storage.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before.RejectedProviders-1, after.RejectedProviders)
	assert.Equal(t, before.TotalProviders-1, after.TotalProviders)
}
