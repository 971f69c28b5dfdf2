package usecase

import (
	"context"
	"log/slog"
	"strings"

	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
)

// CategoryService handles category listing and creation.
type CategoryService struct {
	repo ports.BlogRepository
	log  *slog.Logger
}

func NewCategoryService(repo ports.BlogRepository, log *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

// List returns all categories, unfiltered and unpaginated.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// Create inserts a new category. The name must be non-empty after
// trimming and not already taken. Check-then-insert is not atomic; the
// unique index on the name turns a concurrent duplicate into a
// conflict instead of a second row.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "category name is required")
	}

	existing, err := s.repo.GetCategoryByName(ctx, name)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("category with this name already exists")
	}

	return s.repo.CreateCategory(ctx, name)
}
