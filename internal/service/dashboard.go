package service

import (
	"context"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

type DashboardStorage interface {
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

type Dashboard struct {
	storage DashboardStorage
}

func NewDashboard(storage DashboardStorage) *Dashboard {
	return &Dashboard{storage: storage}
}

func (s *Dashboard) Stats(ctx context.Context) (domain.DashboardStats, error) {
	return s.storage.DashboardStats(ctx)
}
