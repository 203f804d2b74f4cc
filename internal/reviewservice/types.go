package reviewservice

import (
	"database/sql"
	"time"

	"github.com/restory/restory/internal/common"
)

// Term is a taxonomy entry. Categories and genres share the shape and only
// differ in which table they live in.
type Term struct {
	ID   int    `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Title struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Year        *int   `json:"year"`
	Description string `json:"description"`
	Category    *Term  `json:"category"`
	Genres      []Term `json:"genre"`
	// Rating is the mean review score, computed at read time. Nil when the
	// title has no reviews.
	Rating *float64 `json:"rating"`
}

// Reviews and comments serialize their author as the username, with the
// owning id kept internal for permission checks.
type Review struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	AuthorID  int       `json:"-"`
	Author    string    `json:"author"`
	TitleID   int       `json:"title"`
	CreatedAt time.Time `json:"pub_date"`
}

type ReviewComment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	AuthorID  int       `json:"-"`
	Author    string    `json:"author"`
	ReviewID  int       `json:"review"`
	CreatedAt time.Time `json:"pub_date"`
}

type ReviewModel struct {
	db *sql.DB
}

type ReviewService struct {
	m *ReviewModel
	c *common.Cache
}
