package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/category/model"
	"library-catalog/pkg/cache"
)

type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountBooks(ctx context.Context, categoryID uuid.UUID) (int, error)
}

// postgresRepository implements RepositoryInterface over pgxpool. Category
// reads are cheap enough to skip caching, but renames still have to drop
// cached book details that denormalize the category name.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const categoryColumns = `id, name, slug, created_at, updated_at`

const bookCachePattern = "book:*"

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories ORDER BY name ASC`, categoryColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	query := fmt.Sprintf(`
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING %s
	`, categoryColumns)

	created, err := scanCategory(r.pool.QueryRow(ctx, query, c.Name, c.Slug))
	if err != nil {
		return nil, mapCategoryWriteError(err, "failed to create category")
	}

	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	query := fmt.Sprintf(`
		UPDATE categories
		SET name = $1, slug = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING %s
	`, categoryColumns)

	updated, err := scanCategory(r.pool.QueryRow(ctx, query, c.Name, c.Slug, c.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, mapCategoryWriteError(err, "failed to update category")
	}

	r.invalidateBooks(ctx)

	return updated, nil
}

// invalidateBooks drops every cached book detail after a category rename.
func (r *postgresRepository) invalidateBooks(ctx context.Context) {
	r.cache.DeletePattern(ctx, bookCachePattern)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) CountBooks(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count category books: %w", err)
	}
	return count, nil
}

func mapCategoryWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return model.ErrDuplicateSlug
	}
	return fmt.Errorf("%s: %w", msg, err)
}
