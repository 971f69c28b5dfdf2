// Package dto defines request payloads with gin binding tags.
package dto

// RegisterRequest is the payload for /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreatePostRequest is the payload for creating a post. Category and
// featured image are optional.
type CreatePostRequest struct {
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	CategoryID    *int64 `json:"category"`
	FeaturedImage string `json:"featuredImage"`
}

// UpdatePostRequest carries replacement fields for a post. Every field
// is optional; empty values leave the stored value unchanged.
type UpdatePostRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	CategoryID    *int64 `json:"category"`
	FeaturedImage string `json:"featuredImage"`
}

// CommentRequest is the payload for appending a comment to a post.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
