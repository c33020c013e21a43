package pg

import (
	"context"
	"fmt"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

// DashboardStats collects the landing-page counters in one round trip.
// Every counter ignores soft-deleted rows.
func (s *Storage) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var stats domain.DashboardStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM service_providers WHERE is_deleted = FALSE AND status = 'pending'),
			(SELECT count(*) FROM service_providers WHERE is_deleted = FALSE AND status = 'approved'),
			(SELECT count(*) FROM service_providers WHERE is_deleted = FALSE AND status = 'rejected'),
			(SELECT count(*) FROM service_providers WHERE is_deleted = FALSE),
			(SELECT count(*) FROM users WHERE is_deleted = FALSE),
			(SELECT count(*) FROM service_categories WHERE is_deleted = FALSE),
			(SELECT count(*) FROM governorates WHERE is_deleted = FALSE)`,
	).Scan(&stats.PendingProviders, &stats.ApprovedProviders, &stats.RejectedProviders,
		&stats.TotalProviders, &stats.TotalUsers, &stats.TotalCategories, &stats.TotalGovernorates)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("failed to query dashboard stats: %w", err)
	}
	return stats, nil
}
