// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"
	"time"

	"inkwell/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// PostFilter narrows a post listing. Zero values mean "no restriction".
type PostFilter struct {
	// Keyword matches post titles by case-insensitive substring.
	Keyword string

	// CategoryID restricts to posts in the given category.
	CategoryID *int64
}

// PostSummary is a listing row with display names joined from the
// referenced author and category. A deleted author or category shows
// up as an empty name, not an error.
type PostSummary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	FeaturedImage *string   `json:"featured_image,omitempty"`
	AuthorName    string    `json:"author"`
	CategoryName  string    `json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CommentView is a comment with its author's display name joined.
type CommentView struct {
	ID         int64     `json:"id"`
	AuthorName string    `json:"author"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostDetail is a fully resolved post including its comment sequence
// in append order.
type PostDetail struct {
	PostSummary
	Comments []CommentView `json:"comments"`
}

// PostPatch carries optional replacement fields for a post update.
// Nil or empty fields keep their current value (replace-if-truthy).
type PostPatch struct {
	Title         string
	Content       string
	CategoryID    *int64
	FeaturedImage *string
}

// BlogRepository is a composite repository covering all persistence
// operations of the blog core.
type BlogRepository interface {
	Repository

	// Posts
	CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	GetPost(ctx context.Context, postID int64) (*domain.Post, error)
	GetPostDetail(ctx context.Context, postID int64) (*PostDetail, error)
	// ListPosts returns one page of summaries plus the total match count.
	// Ordering must be stable across pages for a static dataset.
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]PostSummary, int, error)
	UpdatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	// DeletePost removes the post and its comments in one statement
	// (comments cascade with the row).
	DeletePost(ctx context.Context, postID int64) error

	// Comments
	// AddComment appends a comment at the next free position of the post.
	AddComment(ctx context.Context, postID, authorID int64, body string) (*domain.Comment, error)

	// Categories
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)

	// Users
	CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}
