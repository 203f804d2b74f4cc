package blogservice

import (
	"context"
	"database/sql"

	"github.com/restory/restory/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreatePostRequest struct {
	Text    string  `json:"text"`
	Image   *string `json:"image"`
	GroupID *int    `json:"group"`

	// AuthorID is stamped by the handler from the authenticated identity,
	// never taken from the request body.
	AuthorID int `json:"-"`
}

// CreatePost creates a new post owned by the authenticated user.
func (s *BlogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateText(v, req.Text)
	validateImage(v, req.Image)
	validateInt(v, req.AuthorID, "author_id")
	if req.GroupID != nil {
		validateInt(v, *req.GroupID, "group")
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := &Post{
		Text:    sanitizeMarkdown(req.Text),
		Image:   req.Image,
		Author:  Author{ID: req.AuthorID},
		GroupID: req.GroupID,
	}

	if err := s.m.insertPost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *BlogService) GetPostByID(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPostByID(ctx, id)
}

// UpdatePost updates a post in place. Ownership is checked by the handler
// before this is called; versions guard against lost updates.
func (s *BlogService) UpdatePost(ctx context.Context, post *Post) error {
	v := common.NewValidator()
	validateText(v, post.Text)
	validateImage(v, post.Image)
	validateInt(v, post.ID, "id")
	if post.GroupID != nil {
		validateInt(v, *post.GroupID, "group")
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	post.Text = sanitizeMarkdown(post.Text)

	return s.m.updatePost(ctx, post)
}

func (s *BlogService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deletePost(ctx, id)
}

// GetPosts returns all posts. Default limit is 10 and default offset is 0.
func (s *BlogService) GetPosts(ctx context.Context, limit, offset *int) ([]Post, error) {
	l, o := normalizePage(limit, offset)
	return s.m.getPosts(ctx, l, o)
}

func (s *BlogService) GetGroups(ctx context.Context) ([]Group, error) {
	return s.m.getGroups(ctx)
}

func (s *BlogService) GetGroupByID(ctx context.Context, id int) (*Group, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getGroupByID(ctx, id)
}

type CreateCommentRequest struct {
	Text string `json:"text"`

	// AuthorID and PostID are stamped by the handler: author from the
	// authenticated identity, post from the resolved parent path.
	AuthorID int `json:"-"`
	PostID   int `json:"-"`
}

func (s *BlogService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	v := common.NewValidator()
	validateText(v, req.Text)
	validateInt(v, req.AuthorID, "author_id")
	validateInt(v, req.PostID, "post")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := &Comment{
		Text:   req.Text,
		Author: Author{ID: req.AuthorID},
		PostID: req.PostID,
	}

	if err := s.m.insertComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *BlogService) GetCommentByID(ctx context.Context, postID, commentID int) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, postID, "post")
	validateInt(v, commentID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentByID(ctx, postID, commentID)
}

func (s *BlogService) GetCommentsByPost(ctx context.Context, postID int, limit, offset *int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, postID, "post")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	l, o := normalizePage(limit, offset)
	return s.m.getCommentsByPost(ctx, postID, l, o)
}

func (s *BlogService) UpdateComment(ctx context.Context, comment *Comment) error {
	v := common.NewValidator()
	validateText(v, comment.Text)
	validateInt(v, comment.ID, "id")
	validateInt(v, comment.PostID, "post")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.updateComment(ctx, comment)
}

func (s *BlogService) DeleteComment(ctx context.Context, postID, commentID int) error {
	v := common.NewValidator()
	validateInt(v, postID, "post")
	validateInt(v, commentID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteComment(ctx, postID, commentID)
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
