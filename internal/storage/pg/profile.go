package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/khidma-app/khidma-admin/internal/domain"
	internal_errors "github.com/khidma-app/khidma-admin/internal/errors"
)

// AccessFlags resolves the authoritative admin/ban flags for an identity by
// its auth user id. A missing row is an error: callers must treat any
// failure here as "not authorized".
func (s *Storage) AccessFlags(ctx context.Context, authUserId string) (domain.AccessFlags, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var flags domain.AccessFlags
	err := s.db.QueryRowContext(ctx,
		"SELECT is_admin, is_banned FROM users WHERE user_id = $1 AND is_deleted = FALSE",
		authUserId,
	).Scan(&flags.Admin, &flags.Banned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AccessFlags{}, &internal_errors.ErrorWithStatusCode{Message: "Profile not found", StatusCode: http.StatusNotFound}
		}
		return domain.AccessFlags{}, fmt.Errorf("failed to query access flags: %w", err)
	}
	return flags, nil
}
