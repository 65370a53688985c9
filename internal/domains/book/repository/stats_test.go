package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"library-catalog/internal/domains/book/model"
)

func ratedBook(title string, rating float64) model.RatedBook {
	return model.RatedBook{ID: uuid.New(), Title: title, Rating: rating, AuthorName: "Someone"}
}

func TestGroupRatedRows(t *testing.T) {
	t.Run("empty input yields empty slice", func(t *testing.T) {
		groups := groupRatedRows(nil)
		assert.NotNil(t, groups)
		assert.Empty(t, groups)
	})

	t.Run("consecutive rows of one category form one group", func(t *testing.T) {
		id := uuid.New()
		groups := groupRatedRows([]ratedRow{
			{CategoryID: &id, Name: "Fantasy", Slug: "fantasy", Book: ratedBook("A", 4.8)},
			{CategoryID: &id, Name: "Fantasy", Slug: "fantasy", Book: ratedBook("B", 4.2)},
		})

		assert.Len(t, groups, 1)
		assert.Equal(t, "Fantasy", groups[0].Name)
		assert.Equal(t, &id, groups[0].CategoryID)
		assert.Len(t, groups[0].Books, 2)
		assert.Equal(t, "A", groups[0].Books[0].Title)
	})

	t.Run("real category sharing a name does not merge with uncategorized", func(t *testing.T) {
		// A user-created category can legitimately be named "Uncategorized";
		// the synthetic group for NULL-category books carries the same name.
		id := uuid.New()
		groups := groupRatedRows([]ratedRow{
			{CategoryID: nil, Name: "Uncategorized", Slug: "uncategorized", Book: ratedBook("Orphan", 4.9)},
			{CategoryID: nil, Name: "Uncategorized", Slug: "uncategorized", Book: ratedBook("Stray", 4.1)},
			{CategoryID: &id, Name: "Uncategorized", Slug: "uncategorized-2", Book: ratedBook("Filed", 4.5)},
		})

		assert.Len(t, groups, 2)
		assert.Nil(t, groups[0].CategoryID)
		assert.Len(t, groups[0].Books, 2)
		assert.Equal(t, &id, groups[1].CategoryID)
		assert.Len(t, groups[1].Books, 1)
		assert.Equal(t, "Filed", groups[1].Books[0].Title)
	})

	t.Run("groups keep ranked order and stay within the per-category cap", func(t *testing.T) {
		fantasy := uuid.New()
		horror := uuid.New()

		rows := []ratedRow{}
		for i := 0; i < perCategoryLimit; i++ {
			rows = append(rows, ratedRow{
				CategoryID: &fantasy, Name: "Fantasy", Slug: "fantasy",
				Book: ratedBook("F", 5.0-float64(i)*0.3),
			})
		}
		rows = append(rows,
			ratedRow{CategoryID: &horror, Name: "Horror", Slug: "horror", Book: ratedBook("H1", 4.4)},
			ratedRow{CategoryID: &horror, Name: "Horror", Slug: "horror", Book: ratedBook("H2", 3.9)},
		)

		groups := groupRatedRows(rows)
		assert.Len(t, groups, 2)
		for _, g := range groups {
			assert.LessOrEqual(t, len(g.Books), perCategoryLimit)
			for i := 1; i < len(g.Books); i++ {
				assert.GreaterOrEqual(t, g.Books[i-1].Rating, g.Books[i].Rating)
			}
		}
	})
}

func TestSameCategory(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	aCopy := a

	assert.True(t, sameCategory(nil, nil))
	assert.True(t, sameCategory(&a, &aCopy))
	assert.False(t, sameCategory(&a, &b))
	assert.False(t, sameCategory(&a, nil))
	assert.False(t, sameCategory(nil, &b))
}
