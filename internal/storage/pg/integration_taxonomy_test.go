package pg

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

func TestGovernorateCRUD(t *testing.T) {
	code := "NAJ"
	id, err := storage.CreateGovernorate(context.Background(), domain.Governorate{Name: "Najaf", Code: &code})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, total, err := storage.Governorates(context.Background(), 1, 100, "najaf")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	require.NotEmpty(t, list)
	assert.Equal(t, "Najaf", list[0].Name)

	// Search by governorate code.
	byCode, _, err := storage.Governorates(context.Background(), 1, 100, "NAJ")
	require.NoError(t, err)
	assert.NotEmpty(t, byCode)

	require.NoError(t, storage.UpdateGovernorate(context.Background(), id, "An-Najaf", &code))
	updated, _, err := storage.Governorates(context.Background(), 1, 100, "An-Najaf")
	require.NoError(t, err)
	require.NotEmpty(t, updated)
	require.NotNil(t, updated[0].UpdatedAt)

	err = storage.UpdateGovernorate(context.Background(), uuid.NewString(), "Nowhere", nil)
	requireStatusCode(t, err, 404)
}

func TestDeleteGovernorateIsHard(t *testing.T) {
	id, err := storage.CreateGovernorate(context.Background(), domain.Governorate{Name: "Temporary"})
	require.NoError(t, err)

	require.NoError(t, storage.DeleteGovernorate(context.Background(), id))

	// The row is gone, not hidden.
	list, _, err := storage.Governorates(context.Background(), 1, 100, "Temporary")
	require.NoError(t, err)
	for _, g := range list {
		assert.NotEqual(t, id, g.Id)
	}

	err = storage.DeleteGovernorate(context.Background(), id)
	requireStatusCode(t, err, 404)
}

func TestServiceCategoryCRUD(t *testing.T) {
	slug := "plumbing"
	id, err := storage.CreateServiceCategory(context.Background(), domain.ServiceCategory{Name: "Plumbing", Slug: &slug})
	require.NoError(t, err)

	list, total, err := storage.ServiceCategories(context.Background(), 1, 100, "plumb")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	require.NotEmpty(t, list)
	assert.Equal(t, "Plumbing", list[0].Name)

	icon := "service_categories/icon.png"
	require.NoError(t, storage.UpdateServiceCategory(context.Background(), id, domain.ServiceCategory{Name: "Plumbing", Slug: &slug, Icon: &icon}))

	require.NoError(t, storage.DeleteServiceCategory(context.Background(), id))

	// Soft-deleted rows leave the listing and the dropdown.
	list, _, err = storage.ServiceCategories(context.Background(), 1, 100, "plumb")
	require.NoError(t, err)
	for _, c := range list {
		assert.NotEqual(t, id, c.Id)
	}
	options, err := storage.ServiceCategoriesForSelect(context.Background())
	require.NoError(t, err)
	for _, c := range options {
		assert.NotEqual(t, id, c.Id)
	}
}

func TestCreateServiceCategorySlugDeduplication(t *testing.T) {
	slug := "electrical"
	_, err := storage.CreateServiceCategory(context.Background(), domain.ServiceCategory{Name: "Electrical", Slug: &slug})
	require.NoError(t, err)

	slug2 := "electrical"
	id2, err := storage.CreateServiceCategory(context.Background(), domain.ServiceCategory{Name: "Electrical Again", Slug: &slug2})
	require.NoError(t, err)

	var storedSlug string
	err = storage.db.QueryRow("SELECT slug FROM service_categories WHERE id = $1", id2).Scan(&storedSlug)
	require.NoError(t, err)
	assert.Equal(t, "electrical-2", storedSlug)

	slug3 := "electrical"
	id3, err := storage.CreateServiceCategory(context.Background(), domain.ServiceCategory{Name: "Electrical Thrice", Slug: &slug3})
	require.NoError(t, err)

	err = storage.db.QueryRow("SELECT slug FROM service_categories WHERE id = $1", id3).Scan(&storedSlug)
	require.NoError(t, err)
	assert.Equal(t, "electrical-3", storedSlug)
}

func TestGovernoratesForSelectExcludesDeleted(t *testing.T) {
	id, err := storage.CreateGovernorate(context.Background(), domain.Governorate{Name: "SelectMe"})
	require.NoError(t, err)

	options, err := storage.GovernoratesForSelect(context.Background())
	require.NoError(t, err)
	found := false
	for _, g := range options {
		if g.Id == id {
			found = true
		}
	}
	assert.True(t, found)
}
