package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell/src/app/http/dto"
	"inkwell/src/app/http/response"
	"inkwell/src/app/middleware"
	"inkwell/src/core/usecase"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService *usecase.CategoryService
}

func NewCategoryHandler(categoryService *usecase.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, categories)
}

// Create handles POST /api/categories. Any authenticated caller may
// create a category; there is no admin role check.
func (h *CategoryHandler) Create(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, category)
}
