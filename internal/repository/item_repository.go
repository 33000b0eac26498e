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

// ItemRepository handles CRUD for tasks and keeps their manual sort
// order contiguous (0..N-1) across create, delete and reorder.
type ItemRepository struct {
	db     *gorm.DB
	events *Events
}

func NewItemRepository(db *gorm.DB, events *Events) *ItemRepository {
	return &ItemRepository{db: db, events: events}
}

// Create inserts the item, assigning an id and, when withOrder is false,
// a sort order equal to the current item count.
func (r *ItemRepository) Create(ctx context.Context, item *model.Item, withOrder bool) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !withOrder {
			var count int64
			if err := tx.Model(&model.Item{}).Count(&count).Error; err != nil {
				return err
			}
			item.SortOrder = int(count)
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	r.events.Publish(Event{Entity: EntityItem, Op: OpCreate, ID: item.ID})
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &item, nil
}

// List returns all items ascending by sort order.
func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ListByCategory returns the items referencing the given category,
// ascending by sort order.
func (r *ItemRepository) ListByCategory(ctx context.Context, categoryID string) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).
		Order("sort_order ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Save(ctx context.Context, item *model.Item) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", item.ID).
		Select("*").Omit("id", "created_at").Updates(item)
	if res.Error != nil {
		return fmt.Errorf("save item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	r.events.Publish(Event{Entity: EntityItem, Op: OpUpdate, ID: item.ID})
	return nil
}

// Delete removes the item and renumbers the survivors so sort orders
// stay contiguous.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Item{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return compactOrders(tx)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	r.events.Publish(Event{Entity: EntityItem, Op: OpDelete, ID: id})
	return nil
}

// ReorderAll atomically reassigns sort order by position in ids, which
// must be a permutation of every stored item id. No partial state is
// ever visible: the whole pass runs in one transaction.
func (r *ItemRepository) ReorderAll(ctx context.Context, ids []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Item{}).Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(ids) {
			return apperrors.ErrValidation
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				return apperrors.ErrValidation
			}
			seen[id] = true
		}
		for pos, id := range ids {
			res := tx.Model(&model.Item{}).Where("id = ?", id).Update("sort_order", pos)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("reorder items: %w", err)
	}
	r.events.Publish(Event{Entity: EntityItem, Op: OpUpdate, ID: ""})
	return nil
}

// compactOrders renumbers all items 0..N-1 preserving their current order.
func compactOrders(tx *gorm.DB) error {
	var items []model.Item
	if err := tx.Order("sort_order ASC").Find(&items).Error; err != nil {
		return err
	}
	for pos, item := range items {
		if item.SortOrder == pos {
			continue
		}
		if err := tx.Model(&model.Item{}).Where("id = ?", item.ID).
			Update("sort_order", pos).Error; err != nil {
			return err
		}
	}
	return nil
}
