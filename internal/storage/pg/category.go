package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

// ServiceCategories returns one live page ordered by name plus the total
// count; search matches the name.
func (s *Storage) ServiceCategories(ctx context.Context, page, limit int, search string) ([]domain.ServiceCategory, int, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, icon, meta_title, meta_description, meta_keywords,
		       created_at, updated_at, count(*) OVER() AS total
		FROM service_categories
		WHERE is_deleted = FALSE
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		search, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query service categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.ServiceCategory
	var total int
	for rows.Next() {
		var c domain.ServiceCategory
		if err := rows.Scan(&c.Id, &c.Name, &c.Slug, &c.Icon, &c.MetaTitle, &c.MetaDescription, &c.MetaKeywords,
			&c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan service category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (s *Storage) ServiceCategoriesForSelect(ctx context.Context) ([]domain.ServiceCategory, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM service_categories WHERE is_deleted = FALSE ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query service categories for select: %w", err)
	}
	defer rows.Close()

	var categories []domain.ServiceCategory
	for rows.Next() {
		var c domain.ServiceCategory
		if err := rows.Scan(&c.Id, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan service category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateServiceCategory inserts inside a transaction so the slug can be
// de-duplicated against concurrent creates.
func (s *Storage) CreateServiceCategory(ctx context.Context, c domain.ServiceCategory) (string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var id string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if c.Slug != nil {
			slug, err := uniqueSlug(ctx, tx, "service_categories", *c.Slug)
			if err != nil {
				return err
			}
			c.Slug = &slug
		}
		return tx.QueryRowContext(ctx,
			"INSERT INTO service_categories (name, slug, icon, created_by) VALUES ($1, $2, $3, $4) RETURNING id",
			c.Name, c.Slug, c.Icon, "admin").Scan(&id)
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert service category: %w", err)
	}
	return id, nil
}

func (s *Storage) UpdateServiceCategory(ctx context.Context, id string, c domain.ServiceCategory) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE service_categories SET name = $1, slug = $2, icon = $3, updated_at = $4, updated_by = $5 WHERE id = $6",
		c.Name, c.Slug, c.Icon, time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to update service category: %w", err)
	}
	return requireRowsAffected(result, "Service category not found")
}

// DeleteServiceCategory soft-deletes; the row stays for referencing
// providers.
func (s *Storage) DeleteServiceCategory(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE service_categories SET is_deleted = TRUE, deleted_at = $1, deleted_by = $2 WHERE id = $3 AND is_deleted = FALSE",
		time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to delete service category: %w", err)
	}
	return requireRowsAffected(result, "Service category not found")
}
