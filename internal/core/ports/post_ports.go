package ports

import (
	"context"

	"github.com/threedblog/api/internal/core/domain"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Post, error)
	ListPopular(ctx context.Context, limit, offset int) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*domain.Post, error)
	IncrementViewCount(ctx context.Context, id int64) error
}

type BookmarkRepository interface {
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	Save(ctx context.Context, userID, postID int64) error
	Delete(ctx context.Context, userID, postID int64) error
	ListPosts(ctx context.Context, userID int64, limit, offset int) ([]*domain.Post, error)
}

type ListPostsInput struct {
	Page int
	Size int
}

type PostService interface {
	GetPost(ctx context.Context, id int64, viewerID *int64) (*domain.Post, bool, error)
	ListPosts(ctx context.Context, input ListPostsInput) ([]*domain.Post, error)
	ListPopular(ctx context.Context, input ListPostsInput) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, input ListPostsInput) ([]*domain.Post, error)
}

type BookmarkService interface {
	// Toggle flips the bookmark state and reports the new state.
	Toggle(ctx context.Context, userID, postID int64) (bool, error)
	ListPosts(ctx context.Context, userID int64, input ListPostsInput) ([]*domain.Post, error)
}
