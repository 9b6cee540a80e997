package domain

import "time"

// Post author info embedded in listings.
type PostAuthor struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

type Post struct {
	ID                int64      `json:"id"`
	AuthorID          int64      `json:"-"`
	Title             string     `json:"title"`
	Content           string     `json:"content,omitempty"`
	ThumbnailImageURL string     `json:"thumbnailImageUrl"`
	Field             []string   `json:"field"`
	Skills            []string   `json:"skills"`
	SourceURL         string     `json:"sourceUrl,omitempty"`
	Published         bool       `json:"published"`
	ViewCount         int64      `json:"viewCount"`
	Author            PostAuthor `json:"author"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type Bookmark struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
