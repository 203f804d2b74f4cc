package reviewservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/restory/restory/internal/common"
)

func NewReviewService(db *sql.DB, c *common.Cache) *ReviewService {
	return &ReviewService{m: newReviewModel(db), c: c}
}

type CreateTermRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// createTerm inserts a taxonomy entry, deriving a unique slug from the name
// when none was supplied.
func (s *ReviewService) createTerm(ctx context.Context, table string, req *CreateTermRequest) (*Term, error) {
	v := common.NewValidator()
	validateTermName(v, req.Name)
	if req.Slug != "" {
		validateSlug(v, req.Slug)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	slug := req.Slug
	if slug == "" {
		derived, err := s.m.uniqueSlug(ctx, table, req.Name)
		if err != nil {
			return nil, err
		}
		slug = derived
	}

	term := &Term{Name: req.Name, Slug: slug}
	if err := s.m.insertTerm(ctx, table, term); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateSlug):
			v.AddError("slug", "this slug is already in use")
			return nil, v.ValidationError()
		default:
			return nil, err
		}
	}

	return term, nil
}

func (s *ReviewService) CreateCategory(ctx context.Context, req *CreateTermRequest) (*Term, error) {
	return s.createTerm(ctx, tableCategories, req)
}

func (s *ReviewService) CreateGenre(ctx context.Context, req *CreateTermRequest) (*Term, error) {
	return s.createTerm(ctx, tableGenres, req)
}

func (s *ReviewService) ListCategories(ctx context.Context, search string, limit, offset *int) ([]Term, error) {
	l, o := normalizePage(limit, offset)
	return s.m.listTerms(ctx, tableCategories, search, l, o)
}

func (s *ReviewService) ListGenres(ctx context.Context, search string, limit, offset *int) ([]Term, error) {
	l, o := normalizePage(limit, offset)
	return s.m.listTerms(ctx, tableGenres, search, l, o)
}

// DeleteCategory removes the category; dependent titles keep their rows with
// a null category.
func (s *ReviewService) DeleteCategory(ctx context.Context, slug string) error {
	return s.m.deleteTerm(ctx, tableCategories, slug)
}

func (s *ReviewService) DeleteGenre(ctx context.Context, slug string) error {
	return s.m.deleteTerm(ctx, tableGenres, slug)
}

type CreateTitleRequest struct {
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Description string   `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// CreateTitle creates a title, resolving category and genre slug references.
// Unknown slugs fail validation.
func (s *ReviewService) CreateTitle(ctx context.Context, req *CreateTitleRequest) (*Title, error) {
	v := common.NewValidator()
	validateTitleName(v, req.Name)
	validateYear(v, req.Year)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	title := &Title{Name: req.Name, Year: req.Year, Description: req.Description}

	if req.Category != nil {
		category, err := s.m.getTermBySlug(ctx, tableCategories, *req.Category)
		if err != nil {
			switch {
			case errors.Is(err, ErrRecordNotFound):
				v.AddError("category", "unknown category slug")
				return nil, v.ValidationError()
			default:
				return nil, err
			}
		}
		title.Category = category
	}

	genreIDs, err := s.resolveGenres(ctx, v, req.Genres)
	if err != nil {
		return nil, err
	}

	if err := s.m.insertTitle(ctx, title, genreIDs); err != nil {
		return nil, err
	}

	return s.m.getTitleByID(ctx, title.ID)
}

func (s *ReviewService) resolveGenres(ctx context.Context, v *common.Validator, slugs []string) ([]int, error) {
	var ids []int
	for _, slug := range slugs {
		genre, err := s.m.getTermBySlug(ctx, tableGenres, slug)
		if err != nil {
			switch {
			case errors.Is(err, ErrRecordNotFound):
				v.AddError("genre", "unknown genre slug: "+slug)
				return nil, v.ValidationError()
			default:
				return nil, err
			}
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

// GetTitle serves title detail through the cache. Review writes invalidate
// the entry so the rating never goes stale.
func (s *ReviewService) GetTitle(ctx context.Context, id int) (*Title, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyTitle(id)); ok {
		return cached.(*Title), nil
	}

	title, err := s.m.getTitleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyTitle(id), title)
	return title, nil
}

func (s *ReviewService) ListTitles(ctx context.Context, f TitleFilter, limit, offset *int) ([]Title, error) {
	v := common.NewValidator()
	validateYear(v, f.Year)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	l, o := normalizePage(limit, offset)
	return s.m.listTitles(ctx, f, l, o)
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

func (s *ReviewService) UpdateTitle(ctx context.Context, id int, req *UpdateTitleRequest) (*Title, error) {
	title, err := s.m.getTitleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}

	validateTitleName(v, title.Name)
	validateYear(v, title.Year)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if req.Category != nil {
		category, err := s.m.getTermBySlug(ctx, tableCategories, *req.Category)
		if err != nil {
			switch {
			case errors.Is(err, ErrRecordNotFound):
				v.AddError("category", "unknown category slug")
				return nil, v.ValidationError()
			default:
				return nil, err
			}
		}
		title.Category = category
	}

	var genreIDs []int
	if req.Genres != nil {
		genreIDs, err = s.resolveGenres(ctx, v, *req.Genres)
		if err != nil {
			return nil, err
		}
	}

	if err := s.m.updateTitle(ctx, title, genreIDs, req.Genres != nil); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyTitle(id))

	return s.m.getTitleByID(ctx, id)
}

func (s *ReviewService) DeleteTitle(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteTitle(ctx, id); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyTitle(id))
	return nil
}

type CreateReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`

	// AuthorID and TitleID are stamped by the handler: author from the
	// authenticated identity, title from the resolved parent path.
	AuthorID int `json:"-"`
	TitleID  int `json:"-"`
}

// CreateReview creates a review, enforcing one review per (author, title).
// The existence pre-check is a fast path; under a create race the unique
// constraint decides and the loser still sees ErrDuplicateReview.
func (s *ReviewService) CreateReview(ctx context.Context, req *CreateReviewRequest) (*Review, error) {
	v := common.NewValidator()
	validateText(v, req.Text)
	validateScore(v, req.Score)
	validateInt(v, req.AuthorID, "author_id")
	validateInt(v, req.TitleID, "title")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.reviewExists(ctx, req.AuthorID, req.TitleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &Review{
		Text:     req.Text,
		Score:    req.Score,
		AuthorID: req.AuthorID,
		TitleID:  req.TitleID,
	}

	if err := s.m.insertReview(ctx, review); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyTitle(req.TitleID))

	return s.m.getReviewByID(ctx, req.TitleID, review.ID)
}

func (s *ReviewService) GetReview(ctx context.Context, titleID, reviewID int) (*Review, error) {
	v := common.NewValidator()
	validateInt(v, titleID, "title")
	validateInt(v, reviewID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getReviewByID(ctx, titleID, reviewID)
}

func (s *ReviewService) ListReviews(ctx context.Context, titleID int, limit, offset *int) ([]Review, error) {
	v := common.NewValidator()
	validateInt(v, titleID, "title")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	l, o := normalizePage(limit, offset)
	return s.m.getReviewsByTitle(ctx, titleID, l, o)
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (s *ReviewService) UpdateReview(ctx context.Context, review *Review, req *UpdateReviewRequest) (*Review, error) {
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	v := common.NewValidator()
	validateText(v, review.Text)
	validateScore(v, review.Score)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateReview(ctx, review); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyTitle(review.TitleID))

	return s.m.getReviewByID(ctx, review.TitleID, review.ID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, titleID, reviewID int) error {
	v := common.NewValidator()
	validateInt(v, titleID, "title")
	validateInt(v, reviewID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyTitle(titleID))
	return nil
}

type CreateCommentRequest struct {
	Text string `json:"text"`

	// AuthorID and ReviewID are stamped by the handler.
	AuthorID int `json:"-"`
	ReviewID int `json:"-"`
}

func (s *ReviewService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*ReviewComment, error) {
	v := common.NewValidator()
	validateText(v, req.Text)
	validateInt(v, req.AuthorID, "author_id")
	validateInt(v, req.ReviewID, "review")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := &ReviewComment{
		Text:     req.Text,
		AuthorID: req.AuthorID,
		ReviewID: req.ReviewID,
	}

	if err := s.m.insertComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.m.getCommentByID(ctx, req.ReviewID, comment.ID)
}

func (s *ReviewService) GetComment(ctx context.Context, reviewID, commentID int) (*ReviewComment, error) {
	v := common.NewValidator()
	validateInt(v, reviewID, "review")
	validateInt(v, commentID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentByID(ctx, reviewID, commentID)
}

func (s *ReviewService) ListComments(ctx context.Context, reviewID int, limit, offset *int) ([]ReviewComment, error) {
	v := common.NewValidator()
	validateInt(v, reviewID, "review")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	l, o := normalizePage(limit, offset)
	return s.m.getCommentsByReview(ctx, reviewID, l, o)
}

func (s *ReviewService) UpdateComment(ctx context.Context, comment *ReviewComment, text string) (*ReviewComment, error) {
	v := common.NewValidator()
	validateText(v, text)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment.Text = text

	if err := s.m.updateComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.m.getCommentByID(ctx, comment.ReviewID, comment.ID)
}

func (s *ReviewService) DeleteComment(ctx context.Context, reviewID, commentID int) error {
	v := common.NewValidator()
	validateInt(v, reviewID, "review")
	validateInt(v, commentID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteComment(ctx, reviewID, commentID)
}

func normalizePage(limit, offset *int) (int, int) {
	l, o := 10, 0
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}
