package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trackside-rentals/reporting-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{"products", "categories", "stores"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func TestListCategoriesSortedByName(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	for _, name := range []string{"Karts", "Apparel", "Fuel"} {
		require.NoError(t, db.Create(&models.Category{ID: uuid.New(), Name: name}).Error)
	}

	refs, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "Apparel", refs[0].Name)
	assert.Equal(t, "Fuel", refs[1].Name)
	assert.Equal(t, "Karts", refs[2].Name)
}

func TestListProductsFiltersByCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	karts := &models.Category{ID: uuid.New(), Name: "Karts"}
	apparel := &models.Category{ID: uuid.New(), Name: "Apparel"}
	require.NoError(t, db.Create(karts).Error)
	require.NoError(t, db.Create(apparel).Error)

	require.NoError(t, db.Create(&models.Product{ID: uuid.New(), Name: "GT Kart", CategoryID: &karts.ID}).Error)
	require.NoError(t, db.Create(&models.Product{ID: uuid.New(), Name: "Race Suit", CategoryID: &apparel.ID}).Error)

	all, err := repo.ListProducts(context.Background(), FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := repo.ListProducts(context.Background(), karts.ID.String())
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "GT Kart", scoped[0].Name)
}

func TestListStoresSortedByName(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	for _, name := range []string{"West Track", "East Track"} {
		require.NoError(t, db.Create(&models.Store{ID: uuid.New(), Name: name}).Error)
	}

	refs, err := repo.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "East Track", refs[0].Name)
}
