package blogservice

import (
	"database/sql"
	"time"
)

// Author is the embedded owner summary returned with posts and comments.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Post struct {
	ID int `json:"id"`
	// Text is stored in Markdown format.
	Text      string    `json:"text"`
	Image     *string   `json:"image"`
	Author    Author    `json:"author"`
	GroupID   *int      `json:"group"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Comment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	PostID    int       `json:"post"`
	CreatedAt time.Time `json:"created_at"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
