package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author/model"
	"library-catalog/pkg/cache"
)

// postgresRepository implements RepositoryInterface over pgxpool,
// with a Redis read cache for single-author lookups.
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
	authorCacheKeyPrefix = "author:"
	authorCacheTTL       = 15 * time.Minute

	// Cached book details denormalize the author name, so author writes
	// have to drop them too.
	bookCachePattern = "book:*"
)

const authorColumns = `id, name, biography, birth_date, nationality, email, website, created_at, updated_at`

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID, &a.Name, &a.Biography, &a.BirthDate, &a.Nationality,
		&a.Email, &a.Website, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns a paginated page of authors plus the total match count.
// Default sort is name ascending.
func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Nationality != "" {
		conditions = append(conditions, fmt.Sprintf("nationality = $%d", argPos))
		args = append(args, filter.Nationality)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM authors WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	sortColumn := "name"
	switch filter.SortBy {
	case "createdAt":
		sortColumn = "created_at"
	case "nationality":
		sortColumn = "nationality"
	}

	sortOrder := "ASC"
	if strings.EqualFold(filter.Order, "desc") {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM authors
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, authorColumns, whereClause, sortColumn, sortOrder, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM authors WHERE id = $1`, authorColumns)

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	r.cache.Set(ctx, cacheKey, a, authorCacheTTL)

	return a, nil
}

// GetWithBooks resolves the author's books in a single batched query
// rather than per-row lookups.
func (r *postgresRepository) GetWithBooks(ctx context.Context, id uuid.UUID) (*model.AuthorWithBooks, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, genre, rating, in_stock, published_date
		FROM books
		WHERE author_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query author books: %w", err)
	}
	defer rows.Close()

	books := []model.BookSummary{}
	for rows.Next() {
		var b model.BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Genre, &b.Rating, &b.InStock, &b.PublishedDate); err != nil {
			return nil, fmt.Errorf("failed to scan book summary: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author books: %w", err)
	}

	return &model.AuthorWithBooks{Author: *a, Books: books}, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := fmt.Sprintf(`
		INSERT INTO authors (name, biography, birth_date, nationality, email, website)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, authorColumns)

	created, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.Name, a.Biography, a.BirthDate, a.Nationality, a.Email, a.Website,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := fmt.Sprintf(`
		UPDATE authors
		SET name = $1, biography = $2, birth_date = $3, nationality = $4,
			email = $5, website = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING %s
	`, authorColumns)

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.Name, a.Biography, a.BirthDate, a.Nationality, a.Email, a.Website, a.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidate(ctx, a.ID)

	return updated, nil
}

// invalidate drops the author's own cache entry plus every cached book
// detail carrying the (possibly renamed) author name.
func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())
	r.cache.DeletePattern(ctx, bookCachePattern)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())

	return nil
}

func (r *postgresRepository) CountBooks(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author books: %w", err)
	}
	return count, nil
}

// Search matches name/biography with case-insensitive substring matching.
// The book text index is deliberately not used here.
func (r *postgresRepository) Search(ctx context.Context, query, nationality string, limit int) ([]model.Author, error) {
	conditions := []string{"(name ILIKE $1 OR biography ILIKE $1)"}
	args := []interface{}{"%" + query + "%"}
	argPos := 2

	if nationality != "" {
		conditions = append(conditions, fmt.Sprintf("nationality = $%d", argPos))
		args = append(args, nationality)
		argPos++
	}

	searchQuery := fmt.Sprintf(`
		SELECT %s
		FROM authors
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d
	`, authorColumns, strings.Join(conditions, " AND "), argPos)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, searchQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Nationalities(ctx context.Context) ([]model.NationalityCount, error) {
	query := `
		SELECT nationality, COUNT(*)
		FROM authors
		WHERE nationality IS NOT NULL
		GROUP BY nationality
		ORDER BY nationality ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nationalities: %w", err)
	}
	defer rows.Close()

	nationalities := []model.NationalityCount{}
	for rows.Next() {
		var n model.NationalityCount
		if err := rows.Scan(&n.Nationality, &n.Count); err != nil {
			return nil, fmt.Errorf("failed to scan nationality: %w", err)
		}
		nationalities = append(nationalities, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nationalities: %w", err)
	}

	return nationalities, nil
}

// TopByBooks groups books by author and ranks by book count.
func (r *postgresRepository) TopByBooks(ctx context.Context, limit int) ([]model.TopAuthor, error) {
	query := `
		SELECT a.id, a.name, a.nationality,
			COUNT(b.id) AS book_count,
			COALESCE(ROUND(AVG(b.rating)::numeric, 2), 0) AS average_rating,
			COALESCE(SUM(b.pages), 0) AS total_pages
		FROM authors a
		JOIN books b ON b.author_id = a.id
		GROUP BY a.id, a.name, a.nationality
		ORDER BY COUNT(b.id) DESC
		LIMIT $1
	`
	return r.queryTopAuthors(ctx, query, limit)
}

// TopByRating restricts to rated books, requires a minimum group size and
// ranks by average rating then book count.
func (r *postgresRepository) TopByRating(ctx context.Context, limit, minBooks int) ([]model.TopAuthor, error) {
	query := `
		SELECT a.id, a.name, a.nationality,
			COUNT(b.id) AS book_count,
			COALESCE(ROUND(AVG(b.rating)::numeric, 2), 0) AS average_rating,
			COALESCE(SUM(b.pages), 0) AS total_pages
		FROM authors a
		JOIN books b ON b.author_id = a.id
		WHERE b.rating > 0
		GROUP BY a.id, a.name, a.nationality
		HAVING COUNT(b.id) >= $2
		ORDER BY AVG(b.rating) DESC, COUNT(b.id) DESC
		LIMIT $1
	`
	return r.queryTopAuthors(ctx, query, limit, minBooks)
}

func (r *postgresRepository) queryTopAuthors(ctx context.Context, query string, args ...interface{}) ([]model.TopAuthor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top authors: %w", err)
	}
	defer rows.Close()

	authors := []model.TopAuthor{}
	for rows.Next() {
		var t model.TopAuthor
		if err := rows.Scan(&t.AuthorID, &t.Name, &t.Nationality, &t.BookCount, &t.AverageRating, &t.TotalPages); err != nil {
			return nil, fmt.Errorf("failed to scan top author: %w", err)
		}
		authors = append(authors, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top authors: %w", err)
	}

	return authors, nil
}

// Stats computes the derived per-author statistics in one grouped query
// plus a genre breakdown.
func (r *postgresRepository) Stats(ctx context.Context, id uuid.UUID) (*model.AuthorStats, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &model.AuthorStats{
		AuthorID: a.ID,
		Name:     a.Name,
	}

	summaryQuery := `
		SELECT COUNT(*),
			COALESCE(ROUND(AVG(rating)::numeric, 2), 0),
			COALESCE(SUM(pages), 0),
			COUNT(*) FILTER (WHERE in_stock)
		FROM books
		WHERE author_id = $1
	`
	err = r.pool.QueryRow(ctx, summaryQuery, id).Scan(
		&stats.BookCount, &stats.AverageRating, &stats.TotalPages, &stats.InStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute author stats: %w", err)
	}

	genresQuery := `
		SELECT genre, COUNT(*)
		FROM books
		WHERE author_id = $1
		GROUP BY genre
		ORDER BY COUNT(*) DESC
	`
	rows, err := r.pool.Query(ctx, genresQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query author genres: %w", err)
	}
	defer rows.Close()

	stats.Genres = []model.GenreCount{}
	for rows.Next() {
		var g model.GenreCount
		if err := rows.Scan(&g.Genre, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan genre count: %w", err)
		}
		stats.Genres = append(stats.Genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genre counts: %w", err)
	}

	return stats, nil
}
