package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) ports.PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `
	p.id, p.author_id, p.title, p.content, p.thumbnail_image_url,
	p.field, p.skills, p.source_url, p.published, p.view_count,
	p.created_at, u.name, u.profile_img
`

const postJoin = ` FROM posts p JOIN users u ON u.id = p.author_id `

func scanPost(scanner interface{ Scan(...any) error }) (*domain.Post, error) {
	post := &domain.Post{}
	var content, thumbnail, field, skills, sourceURL sql.NullString
	err := scanner.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&content,
		&thumbnail,
		&field,
		&skills,
		&sourceURL,
		&post.Published,
		&post.ViewCount,
		&post.CreatedAt,
		&post.Author.Name,
		&post.Author.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	post.Content = content.String
	post.ThumbnailImageURL = thumbnail.String
	post.SourceURL = sourceURL.String
	post.Field = parseStringList(field.String)
	post.Skills = parseStringList(skills.String)
	return post, nil
}

// field and skills are stored as JSON-encoded string arrays; malformed
// values decode to an empty list rather than failing the read.
func parseStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + postJoin + ` WHERE p.id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	query := `SELECT ` + postColumns + postJoin + `
		WHERE p.published = true
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`
	return r.queryPosts(ctx, query, limit, offset)
}

func (r *PostRepository) ListPopular(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	query := `SELECT ` + postColumns + postJoin + `
		WHERE p.published = true
		ORDER BY p.view_count DESC, p.created_at DESC
		LIMIT $1 OFFSET $2`
	return r.queryPosts(ctx, query, limit, offset)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*domain.Post, error) {
	query := `SELECT ` + postColumns + postJoin + `
		WHERE p.author_id = $1 AND p.published = true
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryPosts(ctx, query, authorID, limit, offset)
}

func (r *PostRepository) IncrementViewCount(ctx context.Context, id int64) error {
	query := `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
