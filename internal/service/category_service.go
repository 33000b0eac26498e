package service

import (
	"context"
	"strings"

	"pocket-planner/internal/apperrors"
	"pocket-planner/internal/model"
	"pocket-planner/internal/repository"
)

// CategoryService manages category labels and colors.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	itemRepo     *repository.ItemRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, itemRepo *repository.ItemRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, itemRepo: itemRepo}
}

// Create stores a category. The name must be non-blank; a malformed
// color silently falls back to the default instead of erroring.
func (s *CategoryService) Create(ctx context.Context, name, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	category := model.Category{
		Name:  name,
		Color: NormalizeHexColor(color),
	}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Update renames or recolors a category.
func (s *CategoryService) Update(ctx context.Context, id, name, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.Color = NormalizeHexColor(color)
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category, detaching its tasks. The tasks themselves
// are kept.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}

// Items resolves the category's tasks on demand.
func (s *CategoryService) Items(ctx context.Context, id string) ([]model.Item, error) {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByCategory(ctx, id)
}

// NormalizeHexColor validates a 6-hex-digit RGB string, with or without
// the leading '#', and returns it upper-cased as "#RRGGBB". Anything
// else yields the default color.
func NormalizeHexColor(color string) string {
	hex := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(hex) != 6 {
		return model.DefaultCategoryColor
	}
	for _, c := range hex {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return model.DefaultCategoryColor
		}
	}
	return "#" + strings.ToUpper(hex)
}
