package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FilterAll matches every category when listing products.
const FilterAll = "all"

// CategoryRef is the lookup projection for a category.
type CategoryRef struct {
	ID   uuid.UUID `gorm:"column:id" json:"id"`
	Name string    `gorm:"column:name" json:"name"`
}

// ProductRef is the lookup projection for a product.
type ProductRef struct {
	ID         uuid.UUID  `gorm:"column:id" json:"id"`
	Name       string     `gorm:"column:name" json:"name"`
	CategoryID *uuid.UUID `gorm:"column:category_id" json:"category_id"`
}

// StoreRef is the lookup projection for a store.
type StoreRef struct {
	ID   uuid.UUID `gorm:"column:id" json:"id"`
	Name string    `gorm:"column:name" json:"name"`
}

// Repository serves the filter-dropdown lookups. All listings are sorted
// by name.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListCategories(ctx context.Context) ([]CategoryRef, error) {
	var refs []CategoryRef
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("id, name").
		Order("name ASC").
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// ListProducts returns all products, or only those in the given
// category when categoryID is a concrete id.
func (r *Repository) ListProducts(ctx context.Context, categoryID string) ([]ProductRef, error) {
	q := r.db.WithContext(ctx).
		Table("products").
		Select("id, name, category_id").
		Order("name ASC")
	if categoryID != "" && categoryID != FilterAll {
		q = q.Where("category_id = ?", categoryID)
	}

	var refs []ProductRef
	if err := q.Scan(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *Repository) ListStores(ctx context.Context) ([]StoreRef, error) {
	var refs []StoreRef
	err := r.db.WithContext(ctx).
		Table("stores").
		Select("id, name").
		Order("name ASC").
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}
