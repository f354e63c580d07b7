package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingflex/internal/domain"
	"kingflex/internal/errors"
	"kingflex/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestProductRepository_InsertAndFindByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, &domain.Product{
		Name: "Formwork Ply", Detail: "17mm", Unit: "sheets",
		Type: domain.ProductTypeNormal, CreatedBy: 1,
	})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, &domain.Product{
		Name: "Steel Prop", Unit: "pcs",
		Type: domain.ProductType152mm, CreatedBy: 1,
	})
	require.NoError(t, err)

	normal, err := repo.FindByType(ctx, domain.ProductTypeNormal)
	require.NoError(t, err)
	require.Len(t, normal, 1)
	assert.Equal(t, "Formwork Ply", normal[0].Name)
	assert.Equal(t, "17mm", normal[0].Detail)

	shared, err := repo.FindByType(ctx, domain.ProductTypeShared)
	require.NoError(t, err)
	assert.Empty(t, shared)
}

func TestProductRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	product, err := repo.Insert(ctx, &domain.Product{
		Name: "Formwork Ply", Unit: "sheets",
		Type: domain.ProductTypeNormal, CreatedBy: 1,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, product.ID, "Formwork Ply F17", "17mm structural", "sheets")
	require.NoError(t, err)
	assert.Equal(t, "Formwork Ply F17", updated.Name)
	assert.Equal(t, "17mm structural", updated.Detail)
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := repo.Update(context.Background(), 9999, "x", "", "pcs")
	require.Error(t, err)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	product, err := repo.Insert(ctx, &domain.Product{
		Name: "Formwork Ply", Unit: "sheets",
		Type: domain.ProductTypeNormal, CreatedBy: 1,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, product.ID))

	err = repo.Delete(ctx, product.ID)
	require.Error(t, err)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
