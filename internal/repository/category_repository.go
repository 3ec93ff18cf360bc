package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

// CategoryRepository provides read access to the seeded category table.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository with the provided database connection.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategories returns all categories ordered by name.
func (r *CategoryRepository) GetCategories(ctx context.Context) ([]model.Category, error) {
	query := `SELECT id, name, slug FROM category ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category table: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category table results: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category table: %w", err)
	}

	return categories, nil
}

// GetCategoryBySlug returns the category with the given slug.
// Returns ErrCategoryNotFound if no category matches.
func (r *CategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	query := `SELECT id, name, slug FROM category WHERE slug = ?`

	var c model.Category
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Category{}, apperrors.ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}
