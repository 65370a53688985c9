package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
	"library-catalog/pkg/cache"
)

// postgresRepository implements RepositoryInterface over pgxpool,
// with a Redis read cache for single-book lookups.
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

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

const bookColumns = `
	b.id, b.title, b.author_id, b.category_id, b.isbn, b.published_date,
	b.publisher, b.pages, b.genre, b.description, b.language, b.price,
	b.in_stock, b.rating, b.created_at, b.updated_at
`

// buildWhereClause constructs the filter predicate dynamically with
// positional args. Returns the clause (always non-empty) and its args.
func buildWhereClause(filter model.BookFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Search != "" {
		// Indexed full-text search over title/description, not substring matching.
		conditions = append(conditions, fmt.Sprintf("b.search_vector @@ plainto_tsquery('english', $%d)", argPos))
		args = append(args, filter.Search)
		argPos++
	}

	if filter.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("b.genre = $%d", argPos))
		args = append(args, filter.Genre)
		argPos++
	}

	if filter.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("b.category_id = $%d", argPos))
		args = append(args, filter.CategoryID)
		argPos++
	}

	if filter.AuthorID != "" {
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", argPos))
		args = append(args, filter.AuthorID)
		argPos++
	}

	if filter.InStock != nil {
		conditions = append(conditions, fmt.Sprintf("b.in_stock = $%d", argPos))
		args = append(args, *filter.InStock)
		argPos++
	}

	// Rating bounds are independently applicable.
	if filter.MinRating != nil {
		conditions = append(conditions, fmt.Sprintf("b.rating >= $%d", argPos))
		args = append(args, *filter.MinRating)
		argPos++
	}
	if filter.MaxRating != nil {
		conditions = append(conditions, fmt.Sprintf("b.rating <= $%d", argPos))
		args = append(args, *filter.MaxRating)
		argPos++
	}

	return strings.Join(conditions, " AND "), args
}

// buildOrderClause whitelists sort columns to keep user input out of SQL.
func buildOrderClause(filter model.BookFilter) string {
	sortColumn := "created_at"
	switch filter.SortBy {
	case "title":
		sortColumn = "title"
	case "rating":
		sortColumn = "rating"
	case "price":
		sortColumn = "price"
	case "publishedDate":
		sortColumn = "published_date"
	}

	sortOrder := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		sortOrder = "ASC"
	}

	return fmt.Sprintf("ORDER BY b.%s %s", sortColumn, sortOrder)
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.AuthorID, &b.CategoryID, &b.ISBN, &b.PublishedDate,
		&b.Publisher, &b.Pages, &b.Genre, &b.Description, &b.Language, &b.Price,
		&b.InStock, &b.Rating, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) list(ctx context.Context, whereClause string, args []interface{}, filter model.BookFilter) ([]model.Book, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books b WHERE %s`, whereClause)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		WHERE %s
		%s
		LIMIT $%d OFFSET $%d
	`, bookColumns, whereClause, buildOrderClause(filter), len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books: %w", err)
	}

	return books, total, nil
}

// List returns a paginated page of books matching the filter plus the
// total match count.
func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	whereClause, args := buildWhereClause(filter)
	return r.list(ctx, whereClause, args, filter)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	filter.AuthorID = authorID.String()
	whereClause, args := buildWhereClause(filter)
	return r.list(ctx, whereClause, args, filter)
}

func (r *postgresRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	filter.CategoryID = categoryID.String()
	whereClause, args := buildWhereClause(filter)
	return r.list(ctx, whereClause, args, filter)
}

// GetByID retrieves a book with its author and category resolved.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cachedDetail model.BookDetail
	if found, err := r.cache.Get(ctx, cacheKey, &cachedDetail); err == nil && found {
		return &cachedDetail, nil
	}

	query := fmt.Sprintf(`
		SELECT %s,
			a.name AS author_name,
			a.nationality AS author_nationality,
			c.name AS category_name,
			c.slug AS category_slug
		FROM books b
		JOIN authors a ON b.author_id = a.id
		LEFT JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1
	`, bookColumns)

	var d model.BookDetail
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Title, &d.AuthorID, &d.CategoryID, &d.ISBN, &d.PublishedDate,
		&d.Publisher, &d.Pages, &d.Genre, &d.Description, &d.Language, &d.Price,
		&d.InStock, &d.Rating, &d.CreatedAt, &d.UpdatedAt,
		&d.AuthorName, &d.AuthorNationality, &d.CategoryName, &d.CategorySlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	r.cache.Set(ctx, cacheKey, d, bookCacheTTL)

	return &d, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO books (
			title, author_id, category_id, isbn, published_date, publisher,
			pages, genre, description, language, price, in_stock, rating
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`, strings.ReplaceAll(bookColumns, "b.", ""))

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.AuthorID, b.CategoryID, b.ISBN, b.PublishedDate, b.Publisher,
		b.Pages, b.Genre, b.Description, b.Language, b.Price, b.InStock, b.Rating,
	))
	if err != nil {
		return nil, mapBookWriteError(err, "failed to create book")
	}

	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := fmt.Sprintf(`
		UPDATE books
		SET title = $1, author_id = $2, category_id = $3, isbn = $4,
			published_date = $5, publisher = $6, pages = $7, genre = $8,
			description = $9, language = $10, price = $11, in_stock = $12,
			rating = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING %s
	`, strings.ReplaceAll(bookColumns, "b.", ""))

	updated, err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.AuthorID, b.CategoryID, b.ISBN, b.PublishedDate, b.Publisher,
		b.Pages, b.Genre, b.Description, b.Language, b.Price, b.InStock, b.Rating,
		b.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, mapBookWriteError(err, "failed to update book")
	}

	r.invalidateBookCache(ctx, b.ID)

	return updated, nil
}

func (r *postgresRepository) UpdateStock(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error) {
	return r.patch(ctx, id, "in_stock", inStock)
}

func (r *postgresRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error) {
	return r.patch(ctx, id, "rating", rating)
}

func (r *postgresRepository) patch(ctx context.Context, id uuid.UUID, column string, value interface{}) (*model.Book, error) {
	query := fmt.Sprintf(`
		UPDATE books
		SET %s = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, column, strings.ReplaceAll(bookColumns, "b.", ""))

	updated, err := scanBook(r.pool.QueryRow(ctx, query, value, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book %s: %w", column, err)
	}

	r.invalidateBookCache(ctx, id)

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidateBookCache(ctx, id)

	return nil
}

func (r *postgresRepository) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ISBNExists(ctx context.Context, isbn string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1)`
	args := []interface{}{isbn}
	if excludeID != nil {
		query = `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND id != $2)`
		args = append(args, *excludeID)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ISBN: %w", err)
	}
	return exists, nil
}

// mapBookWriteError turns Postgres constraint violations into domain errors.
func mapBookWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "isbn") {
				return model.ErrISBNAlreadyExists
			}
		case "23503": // foreign_key_violation
			if strings.Contains(pgErr.ConstraintName, "author") {
				return model.ErrAuthorNotFound
			}
			if strings.Contains(pgErr.ConstraintName, "category") {
				return model.ErrCategoryNotFound
			}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (r *postgresRepository) invalidateBookCache(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())
}
