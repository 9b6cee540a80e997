package postgres

import (
	"context"
	"database/sql"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type BookmarkRepository struct {
	db *sql.DB
}

func NewBookmarkRepository(db *sql.DB) ports.BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND post_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, postID).Scan(&exists)
	return exists, err
}

func (r *BookmarkRepository) Save(ctx context.Context, userID, postID int64) error {
	query := `
		INSERT INTO bookmarks (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, postID)
	return err
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID, postID int64) error {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, postID)
	return err
}

func (r *BookmarkRepository) ListPosts(ctx context.Context, userID int64, limit, offset int) ([]*domain.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM bookmarks b
		JOIN posts p ON p.id = b.post_id
		JOIN users u ON u.id = p.author_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
