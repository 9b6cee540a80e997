package services

import (
	"context"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type bookmarkService struct {
	postRepo     ports.PostRepository
	bookmarkRepo ports.BookmarkRepository
}

func NewBookmarkService(postRepo ports.PostRepository, bookmarkRepo ports.BookmarkRepository) ports.BookmarkService {
	return &bookmarkService{
		postRepo:     postRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

func (s *bookmarkService) Toggle(ctx context.Context, userID, postID int64) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, domain.ErrPostNotFound
	}

	exists, err := s.bookmarkRepo.Exists(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.bookmarkRepo.Delete(ctx, userID, postID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.bookmarkRepo.Save(ctx, userID, postID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *bookmarkService) ListPosts(ctx context.Context, userID int64, input ports.ListPostsInput) ([]*domain.Post, error) {
	limit, offset := pageWindow(input)
	return s.bookmarkRepo.ListPosts(ctx, userID, limit, offset)
}
