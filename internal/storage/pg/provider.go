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

// ServiceProviders lists live applications newest-first with the owning
// user joined in. status narrows by application state; search matches the
// service name.
func (s *Storage) ServiceProviders(ctx context.Context, page, limit int, status, search string) ([]domain.ServiceProvider, int, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT sp.id, sp.user_id, sp.service_name, sp.slug, sp.status, sp.created_at,
		       u.first_name, u.last_name, u.email,
		       count(*) OVER() AS total
		FROM service_providers sp
		LEFT JOIN users u ON u.id = sp.user_id
		WHERE sp.is_deleted = FALSE
		  AND ($1 = '' OR sp.status = $1::service_provider_status)
		  AND ($2 = '' OR sp.service_name ILIKE '%' || $2 || '%')
		ORDER BY sp.created_at DESC
		LIMIT $3 OFFSET $4`,
		status, search, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query service providers: %w", err)
	}
	defer rows.Close()

	var providers []domain.ServiceProvider
	var total int
	for rows.Next() {
		var p domain.ServiceProvider
		if err := rows.Scan(&p.Id, &p.UserId, &p.ServiceName, &p.Slug, &p.Status, &p.CreatedAt,
			&p.OwnerFirstName, &p.OwnerLastName, &p.OwnerEmail, &total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan service provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, total, rows.Err()
}

// ServiceProvider fetches the full detail view of one live application,
// joined with its owner, governorate and category.
func (s *Storage) ServiceProvider(ctx context.Context, id string) (domain.ServiceProvider, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var p domain.ServiceProvider
	err := s.db.QueryRowContext(ctx, `
		SELECT sp.id, sp.user_id, sp.service_name, sp.slug, sp.service_category_id, sp.governorate_id,
		       sp.years_of_experience, sp.service_delivery_method, sp.service_description, sp.bio,
		       sp.facebook_url, sp.instagram_url, sp.whatsapp_url, sp.video_url, sp.keywords, sp.notes,
		       sp.status, sp.logo_image, sp.id_card_front_image, sp.id_card_back_image,
		       sp.certificates_images, sp.document_list, sp.created_at, sp.updated_at,
		       u.first_name, u.last_name, u.email, u.phone, u.avatar,
		       g.name, c.name
		FROM service_providers sp
		LEFT JOIN users u ON u.id = sp.user_id
		LEFT JOIN governorates g ON g.id = sp.governorate_id
		LEFT JOIN service_categories c ON c.id = sp.service_category_id
		WHERE sp.id = $1 AND sp.is_deleted = FALSE`,
		id).Scan(
		&p.Id, &p.UserId, &p.ServiceName, &p.Slug, &p.ServiceCategoryId, &p.GovernorateId,
		&p.YearsOfExperience, &p.DeliveryMethod, &p.Description, &p.Bio,
		&p.FacebookURL, &p.InstagramURL, &p.WhatsappURL, &p.VideoURL, &p.Keywords, &p.Notes,
		&p.Status, &p.LogoImage, &p.IdCardFrontImage, &p.IdCardBackImage,
		&p.CertificateImages, &p.DocumentList, &p.CreatedAt, &p.UpdatedAt,
		&p.OwnerFirstName, &p.OwnerLastName, &p.OwnerEmail, &p.OwnerPhone, &p.OwnerAvatar,
		&p.GovernorateName, &p.CategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ServiceProvider{}, &internal_errors.ErrorWithStatusCode{Message: "Service provider not found", StatusCode: http.StatusNotFound}
		}
		return domain.ServiceProvider{}, fmt.Errorf("failed to query service provider: %w", err)
	}
	return p, nil
}

// CreateServiceProvider inserts inside a transaction so the slug can be
// de-duplicated against concurrent creates.
func (s *Storage) CreateServiceProvider(ctx context.Context, p domain.ServiceProvider) (string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var id string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if p.Slug != nil {
			slug, err := uniqueSlug(ctx, tx, "service_providers", *p.Slug)
			if err != nil {
				return err
			}
			p.Slug = &slug
		}
		return tx.QueryRowContext(ctx, `
		INSERT INTO service_providers (
			user_id, service_name, slug, service_category_id, governorate_id,
			years_of_experience, service_delivery_method, service_description, bio,
			facebook_url, instagram_url, whatsapp_url, video_url, keywords, notes,
			status, logo_image, id_card_front_image, id_card_back_image,
			certificates_images, document_list, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id`,
			p.UserId, p.ServiceName, p.Slug, p.ServiceCategoryId, p.GovernorateId,
			p.YearsOfExperience, p.DeliveryMethod, p.Description, p.Bio,
			p.FacebookURL, p.InstagramURL, p.WhatsappURL, p.VideoURL, p.Keywords, p.Notes,
			p.Status, p.LogoImage, p.IdCardFrontImage, p.IdCardBackImage,
			p.CertificateImages, p.DocumentList, "admin").Scan(&id)
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert service provider: %w", err)
	}
	return id, nil
}

// ServiceProviderPatch carries the admin-editable subset of an
// application. Nil fields keep their stored value.
type ServiceProviderPatch struct {
	ServiceName      *string
	Slug             *string
	LogoImage        *string
	IdCardFrontImage *string
	Status           *domain.ProviderStatus
}

func (s *Storage) UpdateServiceProvider(ctx context.Context, id string, patch ServiceProviderPatch) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		UPDATE service_providers SET
			service_name = COALESCE($1, service_name),
			slug = COALESCE($2, slug),
			logo_image = COALESCE($3, logo_image),
			id_card_front_image = COALESCE($4, id_card_front_image),
			status = COALESCE($5, status),
			updated_at = $6,
			updated_by = $7
		WHERE id = $8 AND is_deleted = FALSE`,
		patch.ServiceName, patch.Slug, patch.LogoImage, patch.IdCardFrontImage, patch.Status,
		time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to update service provider: %w", err)
	}
	return requireRowsAffected(result, "Service provider not found")
}

// DeleteServiceProvider soft-deletes; uploaded files stay on disk.
func (s *Storage) DeleteServiceProvider(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE service_providers SET is_deleted = TRUE, deleted_at = $1, deleted_by = $2 WHERE id = $3 AND is_deleted = FALSE",
		time.Now().UTC(), "admin", id)
	if err != nil {
		return fmt.Errorf("failed to delete service provider: %w", err)
	}
	return requireRowsAffected(result, "Service provider not found")
}

func (s *Storage) UpdateServiceProviderStatus(ctx context.Context, id string, status domain.ProviderStatus) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx,
		"UPDATE service_providers SET status = $1, updated_at = $2 WHERE id = $3 AND is_deleted = FALSE",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update service provider status: %w", err)
	}
	return requireRowsAffected(result, "Service provider not found")
}
