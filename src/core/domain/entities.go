// Package domain contains domain entities and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import "time"

// PageSize is the fixed number of posts per listing page.
const PageSize = 10

// User represents a registered author. The password hash never leaves
// the persistence and auth layers.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Category groups posts. Names are unique.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is the aggregate root for a blog entry. AuthorID is set at
// creation and never changes afterwards.
type Post struct {
	ID            int64
	AuthorID      int64
	CategoryID    *int64
	Title         string
	Content       string
	FeaturedImage *string
	CreatedAt     time.Time
}

// Comment belongs to exactly one post. Position records append order;
// comments are never edited or removed individually, they only go away
// when their post is deleted.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Body      string
	Position  int
	CreatedAt time.Time
}

// Identity is the authenticated caller extracted from a bearer token.
// Core operations take the caller explicitly rather than reading it
// from ambient request state.
type Identity struct {
	ID   int64
	Name string
}
