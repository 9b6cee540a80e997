package services

import (
	"context"
	"log/slog"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

const defaultPageSize = 10

type postService struct {
	postRepo     ports.PostRepository
	bookmarkRepo ports.BookmarkRepository
}

func NewPostService(postRepo ports.PostRepository, bookmarkRepo ports.BookmarkRepository) ports.PostService {
	return &postService{
		postRepo:     postRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

// GetPost returns the post, whether the viewer (if any) bookmarked it,
// and bumps the view counter. The bump is best-effort: a failed counter
// write is logged and never fails the read.
func (s *postService) GetPost(ctx context.Context, id int64, viewerID *int64) (*domain.Post, bool, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if post == nil {
		return nil, false, domain.ErrPostNotFound
	}

	if err := s.postRepo.IncrementViewCount(ctx, id); err != nil {
		slog.Warn("failed to increment view count", "error", err, "post_id", id)
	} else {
		post.ViewCount++
	}

	bookmarked := false
	if viewerID != nil {
		bookmarked, err = s.bookmarkRepo.Exists(ctx, *viewerID, id)
		if err != nil {
			return nil, false, err
		}
	}

	return post, bookmarked, nil
}

func (s *postService) ListPosts(ctx context.Context, input ports.ListPostsInput) ([]*domain.Post, error) {
	limit, offset := pageWindow(input)
	return s.postRepo.List(ctx, limit, offset)
}

func (s *postService) ListPopular(ctx context.Context, input ports.ListPostsInput) ([]*domain.Post, error) {
	limit, offset := pageWindow(input)
	return s.postRepo.ListPopular(ctx, limit, offset)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID int64, input ports.ListPostsInput) ([]*domain.Post, error) {
	limit, offset := pageWindow(input)
	return s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
}

func pageWindow(input ports.ListPostsInput) (limit, offset int) {
	size := input.Size
	if size <= 0 {
		size = defaultPageSize
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}
	return size, (page - 1) * size
}
