package pg

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/khidma-app/khidma-admin/internal/domain"
	internal_errors "github.com/khidma-app/khidma-admin/internal/errors"
)

// Governorates returns one page ordered by name plus the total row count.
// search matches name or governorate code. Unlike the other listings this
// one includes soft-deleted rows, matching the original back-office query.
func (s *Storage) Governorates(ctx context.Context, page, limit int, search string) ([]domain.Governorate, int, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, governorate_code, meta_title, meta_description, meta_keywords,
		       created_at, updated_at, count(*) OVER() AS total
		FROM governorates
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR governorate_code ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		search, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query governorates: %w", err)
	}
	defer rows.Close()

	var governorates []domain.Governorate
	var total int
	for rows.Next() {
		var g domain.Governorate
		if err := rows.Scan(&g.Id, &g.Name, &g.Code, &g.MetaTitle, &g.MetaDescription, &g.MetaKeywords,
			&g.CreatedAt, &g.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan governorate: %w", err)
		}
		governorates = append(governorates, g)
	}
	return governorates, total, rows.Err()
}

// GovernoratesForSelect returns id/name pairs for form dropdowns.
func (s *Storage) GovernoratesForSelect(ctx context.Context) ([]domain.Governorate, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM governorates WHERE is_deleted = FALSE ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query governorates for select: %w", err)
	}
	defer rows.Close()

	var governorates []domain.Governorate
	for rows.Next() {
		var g domain.Governorate
		if err := rows.Scan(&g.Id, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan governorate: %w", err)
		}
		governorates = append(governorates, g)
	}
	return governorates, rows.Err()
}

func (s *Storage) CreateGovernorate(ctx context.Context, g domain.Governorate) (string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var id string
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO governorates (name, governorate_code, created_by) VALUES ($1, $2, $3) RETURNING id",
		g.Name, g.Code, "admin").Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert governorate: %w", err)
	}
	return id, nil
}

func (s *Storage) UpdateGovernorate(ctx context.Context, id string, name string, code *string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE governorates SET name = $1, governorate_code = $2, updated_at = $3, updated_by = $4 WHERE id = $5",
		name, code, time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to update governorate: %w", err)
	}
	return requireRowsAffected(result, "Governorate not found")
}

// DeleteGovernorate removes the row outright. Governorates are the one
// entity the back office hard-deletes.
func (s *Storage) DeleteGovernorate(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM governorates WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete governorate: %w", err)
	}
	return requireRowsAffected(result, "Governorate not found")
}

func requireRowsAffected(result sql.Result, notFoundMessage string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: notFoundMessage, StatusCode: http.StatusNotFound}
	}
	return nil
}
