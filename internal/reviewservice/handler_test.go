package reviewservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restory/restory/internal/common"
)

func setupTestService(t *testing.T) (*ReviewService, *sql.DB) {
	db := common.TestDB("file://../../migrations/review", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	return NewReviewService(db, cache), db
}

func insertTestUser(t *testing.T, db *sql.DB, username string) int {
	var id int
	err := db.QueryRow(
		`INSERT INTO users (username, email) VALUES ($1, $1 || '@example.com') RETURNING id`,
		username,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestCreateTermDerivesSlug(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	category, err := s.CreateCategory(ctx, &CreateTermRequest{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)

	// same name again gets a counter suffix
	again, err := s.CreateCategory(ctx, &CreateTermRequest{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction-2", again.Slug)
}

func TestCreateTermExplicitSlugConflict(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.CreateGenre(ctx, &CreateTermRequest{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)

	_, err = s.CreateGenre(ctx, &CreateTermRequest{Name: "Other Drama", Slug: "drama"})
	var validationErr common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "slug")
}

func TestCreateTitle(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.CreateCategory(ctx, &CreateTermRequest{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)
	_, err = s.CreateGenre(ctx, &CreateTermRequest{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)

	year := 1994
	category := "movies"

	title, err := s.CreateTitle(ctx, &CreateTitleRequest{
		Name:     "The Shawshank Redemption",
		Year:     &year,
		Category: &category,
		Genres:   []string{"drama"},
	})
	require.NoError(t, err)
	require.NotNil(t, title.Category)
	assert.Equal(t, "movies", title.Category.Slug)
	require.Len(t, title.Genres, 1)
	assert.Equal(t, "drama", title.Genres[0].Slug)
	assert.Nil(t, title.Rating)
}

func TestCreateTitleUnknownGenre(t *testing.T) {
	s, _ := setupTestService(t)

	_, err := s.CreateTitle(context.Background(), &CreateTitleRequest{
		Name:   "Nameless",
		Genres: []string{"missing"},
	})
	var validationErr common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "genre")
}

func TestReviewRatingAndUniqueness(t *testing.T) {
	s, db := setupTestService(t)
	ctx := context.Background()

	alice := insertTestUser(t, db, "alice")
	bob := insertTestUser(t, db, "bob")

	title, err := s.CreateTitle(ctx, &CreateTitleRequest{Name: "Rated"})
	require.NoError(t, err)

	_, err = s.CreateReview(ctx, &CreateReviewRequest{Text: "great", Score: 10, AuthorID: alice, TitleID: title.ID})
	require.NoError(t, err)

	// one review per author and title
	_, err = s.CreateReview(ctx, &CreateReviewRequest{Text: "again", Score: 5, AuthorID: alice, TitleID: title.ID})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	_, err = s.CreateReview(ctx, &CreateReviewRequest{Text: "meh", Score: 5, AuthorID: bob, TitleID: title.ID})
	require.NoError(t, err)

	// rating is the mean of current scores and review writes bust the cache
	got, err := s.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 7.5, *got.Rating, 0.001)
}

func TestInsertReviewDuplicateConstraint(t *testing.T) {
	s, db := setupTestService(t)
	ctx := context.Background()

	alice := insertTestUser(t, db, "alice")

	title, err := s.CreateTitle(ctx, &CreateTitleRequest{Name: "Raced"})
	require.NoError(t, err)

	err = s.m.insertReview(ctx, &Review{Text: "first", Score: 8, AuthorID: alice, TitleID: title.ID})
	require.NoError(t, err)

	// inserting past the existence check, as a lost race would, must map the
	// unique violation instead of surfacing a raw pq error
	err = s.m.insertReview(ctx, &Review{Text: "second", Score: 3, AuthorID: alice, TitleID: title.ID})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestReviewScopedToTitle(t *testing.T) {
	s, db := setupTestService(t)
	ctx := context.Background()

	alice := insertTestUser(t, db, "alice")

	first, err := s.CreateTitle(ctx, &CreateTitleRequest{Name: "First"})
	require.NoError(t, err)
	second, err := s.CreateTitle(ctx, &CreateTitleRequest{Name: "Second"})
	require.NoError(t, err)

	review, err := s.CreateReview(ctx, &CreateReviewRequest{Text: "good", Score: 8, AuthorID: alice, TitleID: first.ID})
	require.NoError(t, err)

	// addressing the review through the wrong title is a miss
	_, err = s.GetReview(ctx, second.ID, review.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestReviewComments(t *testing.T) {
	s, db := setupTestService(t)
	ctx := context.Background()

	alice := insertTestUser(t, db, "alice")

	title, err := s.CreateTitle(ctx, &CreateTitleRequest{Name: "Commented"})
	require.NoError(t, err)

	review, err := s.CreateReview(ctx, &CreateReviewRequest{Text: "good", Score: 8, AuthorID: alice, TitleID: title.ID})
	require.NoError(t, err)

	comment, err := s.CreateComment(ctx, &CreateCommentRequest{Text: "agreed", AuthorID: alice, ReviewID: review.ID})
	require.NoError(t, err)
	assert.Equal(t, "alice", comment.Author)

	comment, err = s.UpdateComment(ctx, comment, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, "changed my mind", comment.Text)

	require.NoError(t, s.DeleteComment(ctx, review.ID, comment.ID))

	_, err = s.GetComment(ctx, review.ID, comment.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteCategoryKeepsTitles(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	_, err := s.CreateCategory(ctx, &CreateTermRequest{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)

	category := "movies"
	title, err := s.CreateTitle(ctx, &CreateTitleRequest{Name: "Orphaned", Category: &category})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, "movies"))

	got, err := s.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category)
}
