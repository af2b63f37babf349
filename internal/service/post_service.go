// Package service contains the application's business logic.
package service

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
}

type UpdatePostInput struct {
	CallerID uint
	PostID   uint
	Title    string
	Content  string
}

type DeletePostInput struct {
	CallerID uint
	PostID   uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// validatePostFields collects per-field format errors for the post form.
func validatePostFields(title, content string) map[string]string {
	fields := map[string]string{}
	if err := validation.ValidatePostTitle(title); err != nil {
		fields["title"] = err.Error()
	}
	if err := validation.ValidatePostContent(content); err != nil {
		fields["content"] = err.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if fields := validatePostFields(in.Title, in.Content); fields != nil {
		return nil, models.NewFieldValidationError("Invalid post", fields)
	}

	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     in.AuthorID,
		DatePosted: time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload to pick up the author association for the response.
	return s.postRepo.GetByID(ctx, post.ID)
}

// defaultListLimit is the page size the handlers request when the client
// supplies none. The recent-posts cache entry stores exactly this slice.
const defaultListLimit = 20

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	// Only the canonical first page is served cache-aside. The cache key
	// does not encode limit or offset, so any other slice bypasses it.
	if offset == 0 && limit == defaultListLimit {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, limit, offset)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

// GetPostForEdit is the read side of the update flow. The author check is
// identical to UpdatePost so non-authors cannot fetch the edit form either.
func (s *PostService) GetPostForEdit(ctx context.Context, callerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != callerID {
		return nil, models.NewPermissionDeniedError("You can only edit your own posts")
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	// Ownership is checked before any validation or mutation.
	if post.UserID != in.CallerID {
		return nil, models.NewPermissionDeniedError("You can only update your own posts")
	}

	if fields := validatePostFields(in.Title, in.Content); fields != nil {
		return nil, models.NewFieldValidationError("Invalid post", fields)
	}

	post.Title = in.Title
	post.Content = in.Content

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.UserID != in.CallerID {
		return models.NewPermissionDeniedError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}
