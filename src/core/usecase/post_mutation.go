package usecase

import (
	"context"
	"log/slog"
	"strings"

	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
)

// PostMutationService creates, updates and deletes posts and appends
// comments, enforcing ownership on mutating operations.
type PostMutationService struct {
	repo ports.BlogRepository
	log  *slog.Logger
}

func NewPostMutationService(repo ports.BlogRepository, log *slog.Logger) *PostMutationService {
	return &PostMutationService{repo: repo, log: log}
}

// PostInput carries the writable fields of a post. CategoryID and
// FeaturedImage are optional; category existence is deliberately not
// checked on create.
type PostInput struct {
	Title         string
	Content       string
	CategoryID    *int64
	FeaturedImage *string
}

// Create stores a new post owned by authorID. Title and content must
// be non-empty after trimming.
func (s *PostMutationService) Create(ctx context.Context, authorID int64, input PostInput) (*domain.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	if content == "" {
		return nil, domain.NewValidationError("content", "content is required")
	}

	post, err := s.repo.CreatePost(ctx, domain.Post{
		AuthorID:      authorID,
		CategoryID:    input.CategoryID,
		Title:         title,
		Content:       content,
		FeaturedImage: input.FeaturedImage,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("post created", "post_id", post.ID, "author_id", authorID)
	return post, nil
}

// Update merge-applies the input onto the stored post. Only non-empty
// fields overwrite: an empty string sent to clear a field leaves it
// unchanged. Only the author may update.
func (s *PostMutationService) Update(ctx context.Context, callerID, postID int64, input PostInput) (*domain.Post, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, domain.NewForbiddenError("not authorized to update this post")
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		post.Title = title
	}
	if content := strings.TrimSpace(input.Content); content != "" {
		post.Content = content
	}
	if input.CategoryID != nil {
		post.CategoryID = input.CategoryID
	}
	if input.FeaturedImage != nil && *input.FeaturedImage != "" {
		post.FeaturedImage = input.FeaturedImage
	}

	// The merge cannot empty these, but guard the invariant anyway.
	if post.Title == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	if post.Content == "" {
		return nil, domain.NewValidationError("content", "content is required")
	}

	return s.repo.UpdatePost(ctx, *post)
}

// Delete removes a post and its embedded comments. Only the author may
// delete.
func (s *PostMutationService) Delete(ctx context.Context, callerID, postID int64) error {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return domain.NewForbiddenError("not authorized to delete this post")
	}

	if err := s.repo.DeletePost(ctx, postID); err != nil {
		return err
	}
	s.log.Info("post deleted", "post_id", postID, "author_id", callerID)
	return nil
}

// AddComment appends a comment to the post. Any authenticated caller
// may comment; the caller re-fetches the post for the joined view.
func (s *PostMutationService) AddComment(ctx context.Context, callerID, postID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.NewValidationError("text", "comment text is required")
	}

	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return err
	}
	_, err := s.repo.AddComment(ctx, postID, callerID, text)
	return err
}
