package usecase

import (
	"context"
	"log/slog"

	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
)

// PostQueryService builds filtered, paginated post listings and
// resolves single posts with their comment threads.
type PostQueryService struct {
	repo ports.BlogRepository
	log  *slog.Logger
}

func NewPostQueryService(repo ports.BlogRepository, log *slog.Logger) *PostQueryService {
	return &PostQueryService{repo: repo, log: log}
}

// ListParams are the caller-supplied listing controls.
type ListParams struct {
	// Page is 1-based; values below 1 are treated as 1.
	Page int

	// Keyword filters titles by case-insensitive substring match.
	Keyword string

	// CategoryID restricts the listing to one category.
	CategoryID *int64
}

// PostPage is one page of a listing.
type PostPage struct {
	Posts []ports.PostSummary `json:"posts"`
	Page  int                 `json:"page"`
	Pages int                 `json:"pages"`
}

// List returns the requested page of posts matching the filters. Both
// filters AND-combine. A page beyond range yields an empty slice, not
// an error. Pages is ceil(count/PageSize) and 0 for an empty result.
func (s *PostQueryService) List(ctx context.Context, params ListParams) (*PostPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	filter := ports.PostFilter{
		Keyword:    params.Keyword,
		CategoryID: params.CategoryID,
	}
	offset := domain.PageSize * (page - 1)

	posts, count, err := s.repo.ListPosts(ctx, filter, domain.PageSize, offset)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []ports.PostSummary{}
	}

	return &PostPage{
		Posts: posts,
		Page:  page,
		Pages: (count + domain.PageSize - 1) / domain.PageSize,
	}, nil
}

// Get resolves a post with full content and its comment sequence, each
// comment's author name joined the same way as the listing.
func (s *PostQueryService) Get(ctx context.Context, postID int64) (*ports.PostDetail, error) {
	return s.repo.GetPostDetail(ctx, postID)
}
