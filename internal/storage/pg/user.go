package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/khidma-app/khidma-admin/internal/domain"
	internal_errors "github.com/khidma-app/khidma-admin/internal/errors"
)

// Users returns one live page of profiles newest-first. search matches
// email, first or last name. role narrows the page: "admin" keeps admins,
// "public" keeps everyone else, anything else keeps all.
func (s *Storage) Users(ctx context.Context, page, limit int, search, role string) ([]domain.Profile, int, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, email, first_name, last_name, phone, avatar,
		       is_admin, is_banned, created_at, updated_at, count(*) OVER() AS total
		FROM users
		WHERE is_deleted = FALSE
		  AND ($1 = '' OR email ILIKE '%' || $1 || '%' OR first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%')
		  AND ($2 != 'admin' OR is_admin = TRUE)
		  AND ($2 != 'public' OR is_admin = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		search, role, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	var total int
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.Id, &p.AuthUserId, &p.Email, &p.FirstName, &p.LastName, &p.Phone, &p.Avatar,
			&p.Admin, &p.Banned, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

// UsersForSelect returns a capped list for owner dropdowns on the
// provider forms.
func (s *Storage) UsersForSelect(ctx context.Context) ([]domain.Profile, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, email, first_name, last_name FROM users WHERE is_deleted = FALSE ORDER BY first_name LIMIT 100")
	if err != nil {
		return nil, fmt.Errorf("failed to query users for select: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.Id, &p.Email, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Profile fetches one live row by its table id.
func (s *Storage) Profile(ctx context.Context, id string) (domain.Profile, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var p domain.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, first_name, last_name, phone, avatar,
		       is_admin, is_banned, created_at, updated_at
		FROM users
		WHERE id = $1 AND is_deleted = FALSE`,
		id).Scan(&p.Id, &p.AuthUserId, &p.Email, &p.FirstName, &p.LastName, &p.Phone, &p.Avatar,
		&p.Admin, &p.Banned, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.Profile{}, fmt.Errorf("failed to query user: %w", err)
	}
	return p, nil
}

func (s *Storage) CreateProfile(ctx context.Context, p domain.Profile) (string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (user_id, email, first_name, last_name, phone, avatar, is_admin, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		p.AuthUserId, p.Email, p.FirstName, p.LastName, p.Phone, p.Avatar, p.Admin, "admin").Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) UpdateProfile(ctx context.Context, id string, p domain.Profile) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET email = $1, first_name = $2, last_name = $3, phone = $4, avatar = $5,
		       updated_at = $6, updated_by = $7
		WHERE id = $8 AND is_deleted = FALSE`,
		p.Email, p.FirstName, p.LastName, p.Phone, p.Avatar, time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

// SetUserRole flips the admin flag. The caller is responsible for
// mirroring the flag into the identity provider metadata.
func (s *Storage) SetUserRole(ctx context.Context, id string, admin bool) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_admin = $1, updated_at = $2, updated_by = $3 WHERE id = $4 AND is_deleted = FALSE",
		admin, time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

// SetUserBan flips the ban flag. A banned admin loses back-office access
// on the next request through the gate.
func (s *Storage) SetUserBan(ctx context.Context, id string, banned bool) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_banned = $1, updated_at = $2, updated_by = $3 WHERE id = $4 AND is_deleted = FALSE",
		banned, time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to update user ban: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

// LinkAuthUser records the identity provider account id on a profile that
// was created without credentials.
func (s *Storage) LinkAuthUser(ctx context.Context, id, authUserId string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET user_id = $1, updated_at = $2, updated_by = $3 WHERE id = $4 AND is_deleted = FALSE",
		authUserId, time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to link auth user: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

// SoftDeleteUser hides the profile. The caller removes the identity
// provider account afterwards and reverts on failure.
func (s *Storage) SoftDeleteUser(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_deleted = TRUE, deleted_at = $1, deleted_by = $2 WHERE id = $3 AND is_deleted = FALSE",
		time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}

// RevertSoftDeleteUser undoes SoftDeleteUser when the follow-up identity
// provider deletion fails.
func (s *Storage) RevertSoftDeleteUser(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_deleted = FALSE, deleted_at = NULL, deleted_by = NULL WHERE id = $1 AND is_deleted = TRUE",
		id)
	if err != nil {
		return fmt.Errorf("failed to revert user deletion: %w", err)
	}
	return requireRowsAffected(result, "User not found")
}
