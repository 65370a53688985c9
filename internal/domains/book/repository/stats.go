package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// Aggregate views. Each one is a deterministic pipeline recomputed on
// every request; results are never cached.

const topRatedLimit = 5
const perCategoryLimit = 10

func (r *postgresRepository) StatsOverview(ctx context.Context) (*model.StatsOverview, error) {
	var overview model.StatsOverview

	totalsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE in_stock),
			COUNT(*) FILTER (WHERE NOT in_stock),
			COALESCE(ROUND(AVG(rating)::numeric, 2), 0)
		FROM books
	`
	err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&overview.TotalBooks,
		&overview.InStock,
		&overview.OutOfStock,
		&overview.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute book totals: %w", err)
	}

	genresQuery := `
		SELECT genre, COUNT(*)
		FROM books
		GROUP BY genre
		ORDER BY COUNT(*) DESC
	`
	rows, err := r.pool.Query(ctx, genresQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to count genres: %w", err)
	}
	defer rows.Close()

	overview.Genres = []model.GenreCount{}
	for rows.Next() {
		var g model.GenreCount
		if err := rows.Scan(&g.Genre, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan genre count: %w", err)
		}
		overview.Genres = append(overview.Genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genre counts: %w", err)
	}

	categoriesQuery := `
		SELECT c.id, c.name, COUNT(*)
		FROM books b
		JOIN categories c ON b.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY COUNT(*) DESC
	`
	rows, err = r.pool.Query(ctx, categoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	overview.Categories = []model.CategoryCount{}
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		overview.Categories = append(overview.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	// Top books by rating; ties are left in store-defined order.
	topRatedQuery := `
		SELECT b.id, b.title, b.rating, a.name
		FROM books b
		JOIN authors a ON b.author_id = a.id
		ORDER BY b.rating DESC
		LIMIT $1
	`
	rows, err = r.pool.Query(ctx, topRatedQuery, topRatedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rated books: %w", err)
	}
	defer rows.Close()

	overview.TopRated = []model.TopRatedBook{}
	for rows.Next() {
		var t model.TopRatedBook
		if err := rows.Scan(&t.ID, &t.Title, &t.Rating, &t.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan top rated book: %w", err)
		}
		overview.TopRated = append(overview.TopRated, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top rated books: %w", err)
	}

	return &overview, nil
}

// TopRatedByCategory groups rated books by category and keeps the ten best
// per group (rating descending, title ascending as the deterministic
// tie-break). Books without a category form the "Uncategorized" group.
func (r *postgresRepository) TopRatedByCategory(ctx context.Context) ([]model.CategoryGroup, error) {
	query := `
		SELECT category_id, category_name, category_slug,
			id, title, rating, author_name, author_nationality
		FROM (
			SELECT b.category_id,
				COALESCE(c.name, 'Uncategorized') AS category_name,
				COALESCE(c.slug, 'uncategorized') AS category_slug,
				b.id, b.title, b.rating,
				a.name AS author_name,
				a.nationality AS author_nationality,
				ROW_NUMBER() OVER (
					PARTITION BY b.category_id
					ORDER BY b.rating DESC, b.title ASC
				) AS rank
			FROM books b
			JOIN authors a ON b.author_id = a.id
			LEFT JOIN categories c ON b.category_id = c.id
			WHERE b.rating > 0
		) ranked
		WHERE rank <= $1
		ORDER BY category_name ASC, category_id ASC NULLS FIRST, rank ASC
	`

	rows, err := r.pool.Query(ctx, query, perCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rated by category: %w", err)
	}
	defer rows.Close()

	ratedRows := []ratedRow{}
	for rows.Next() {
		var row ratedRow
		if err := rows.Scan(
			&row.CategoryID, &row.Name, &row.Slug,
			&row.Book.ID, &row.Book.Title, &row.Book.Rating,
			&row.Book.AuthorName, &row.Book.AuthorNationality,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rated book: %w", err)
		}
		ratedRows = append(ratedRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rated books: %w", err)
	}

	return groupRatedRows(ratedRows), nil
}

// ratedRow is one scanned row of the top-rated-by-category query.
type ratedRow struct {
	CategoryID *uuid.UUID
	Name       string
	Slug       string
	Book       model.RatedBook
}

// groupRatedRows assembles ordered rows into per-category groups. Rows are
// keyed by category id, not name, so a real category named "Uncategorized"
// stays separate from the synthetic group for books without a category.
func groupRatedRows(rows []ratedRow) []model.CategoryGroup {
	groups := []model.CategoryGroup{}
	for _, row := range rows {
		if n := len(groups); n > 0 && sameCategory(groups[n-1].CategoryID, row.CategoryID) {
			groups[n-1].Books = append(groups[n-1].Books, row.Book)
			continue
		}
		groups = append(groups, model.CategoryGroup{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Slug:       row.Slug,
			Books:      []model.RatedBook{row.Book},
		})
	}
	return groups
}

func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
