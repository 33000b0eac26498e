package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pocket-planner/internal/apperrors"
	"pocket-planner/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db     *gorm.DB
	events *Events
}

func NewCategoryRepository(db *gorm.DB, events *Events) *CategoryRepository {
	return &CategoryRepository{db: db, events: events}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	r.events.Publish(Event{Entity: EntityCategory, Op: OpCreate, ID: category.ID})
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", category.ID).
		Select("*").Omit("id", "created_at").Updates(category)
	if res.Error != nil {
		return fmt.Errorf("save category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	r.events.Publish(Event{Entity: EntityCategory, Op: OpUpdate, ID: category.ID})
	return nil
}

// Delete removes the category after detaching its items. Items survive
// with a cleared category reference; tasks are never cascade-deleted.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Item{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	r.events.Publish(Event{Entity: EntityCategory, Op: OpDelete, ID: id})
	return nil
}
