// Package handler contains the HTTP handlers for the REST API.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwell/src/app/http/dto"
	"inkwell/src/app/http/response"
	"inkwell/src/app/middleware"
	"inkwell/src/core/domain"
	"inkwell/src/core/usecase"
)

// PostHandler handles post listing, detail and mutation endpoints.
type PostHandler struct {
	query    *usecase.PostQueryService
	mutation *usecase.PostMutationService
}

func NewPostHandler(query *usecase.PostQueryService, mutation *usecase.PostMutationService) *PostHandler {
	return &PostHandler{query: query, mutation: mutation}
}

// List handles GET /api/posts. pageNumber, keyword and category are
// optional query parameters; a non-numeric pageNumber falls back to 1.
func (h *PostHandler) List(c *gin.Context) {
	params := usecase.ListParams{
		Keyword: c.Query("keyword"),
	}

	if page, err := strconv.Atoi(c.Query("pageNumber")); err == nil {
		params.Page = page
	} else {
		params.Page = 1
	}
	if raw := c.Query("category"); raw != "" {
		if categoryID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.CategoryID = &categoryID
		}
	}

	page, err := h.query.List(c.Request.Context(), params)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, page)
}

// Get handles GET /api/posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	detail, err := h.query.Get(c.Request.Context(), postID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, detail)
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	post, err := h.mutation.Create(c.Request.Context(), identity.ID, postInput(req.Title, req.Content, req.CategoryID, req.FeaturedImage))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, postJSON(post))
}

// Update handles PUT /api/posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	post, err := h.mutation.Update(c.Request.Context(), identity.ID, postID, postInput(req.Title, req.Content, req.CategoryID, req.FeaturedImage))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, postJSON(post))
}

// Delete handles DELETE /api/posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.mutation.Delete(c.Request.Context(), identity.ID, postID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"message": "Post removed"})
}

// AddComment handles POST /api/posts/:id/comments.
func (h *PostHandler) AddComment(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	if err := h.mutation.AddComment(c.Request.Context(), identity.ID, postID, req.Text); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"message": "Comment added"})
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		response.NotFound(c, "post not found", middleware.GetRequestID(c))
		return 0, false
	}
	return postID, true
}

func requireIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "authentication required", middleware.GetRequestID(c))
		return domain.Identity{}, false
	}
	return identity, true
}

func postInput(title, content string, categoryID *int64, featuredImage string) usecase.PostInput {
	input := usecase.PostInput{
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
	}
	if featuredImage != "" {
		input.FeaturedImage = &featuredImage
	}
	return input
}

func postJSON(post *domain.Post) gin.H {
	return gin.H{
		"id":             post.ID,
		"author":         post.AuthorID,
		"category":       post.CategoryID,
		"title":          post.Title,
		"content":        post.Content,
		"featured_image": post.FeaturedImage,
		"created_at":     post.CreatedAt,
	}
}
