package service

import (
	"context"
	"strings"
	"time"

	"pocket-planner/internal/apperrors"
	"pocket-planner/internal/model"
	"pocket-planner/internal/repository"
)

// TaskInput represents data required to create or update a task.
type TaskInput struct {
	Title      string
	Priority   model.Priority
	Tags       []string
	StartTime  *time.Time
	EndTime    *time.Time
	CategoryID *string
	// SortOrder overrides the default append-at-end position when set.
	SortOrder *int
}

// TaskService wraps task business logic: creation, completion, manual
// ordering and per-task tags.
type TaskService struct {
	itemRepo     *repository.ItemRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(itemRepo *repository.ItemRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{itemRepo: itemRepo, categoryRepo: categoryRepo}
}

// CreateTask validates the input and inserts the task. Without an
// explicit sort order the task lands at the end of the list.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Item, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.ErrValidation
	}
	if !input.Priority.Valid() {
		return nil, apperrors.ErrValidation
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	item := model.Item{
		Title:      strings.TrimSpace(input.Title),
		Priority:   input.Priority,
		Tags:       dedupeTags(input.Tags),
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		CategoryID: input.CategoryID,
	}
	withOrder := input.SortOrder != nil
	if withOrder {
		item.SortOrder = *input.SortOrder
	}
	if err := s.itemRepo.Create(ctx, &item, withOrder); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Item, error) {
	return s.itemRepo.List(ctx)
}

// UpdateTask applies the input to an existing task. The sort order is
// left alone; use Reorder for that.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input TaskInput) (*model.Item, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.ErrValidation
	}
	if !input.Priority.Valid() {
		return nil, apperrors.ErrValidation
	}
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Priority = input.Priority
	item.Tags = dedupeTags(input.Tags)
	item.StartTime = input.StartTime
	item.EndTime = input.EndTime
	item.CategoryID = input.CategoryID
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleCompleted flips the task's completion flag.
func (s *TaskService) ToggleCompleted(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.IsCompleted = !item.IsCompleted
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.itemRepo.Delete(ctx, id)
}

// Reorder commits a drag-reorder: ids is the new sequence of every task
// and each task's position becomes its index. All or nothing.
func (s *TaskService) Reorder(ctx context.Context, ids []string) error {
	return s.itemRepo.ReorderAll(ctx, ids)
}

// AddTag attaches a tag to the task. Adding a tag that is already
// present (case-sensitive) is a no-op.
func (s *TaskService) AddTag(ctx context.Context, id, tag string) (*model.Item, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, apperrors.ErrValidation
	}
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.HasTag(tag) {
		return item, nil
	}
	item.Tags = append(item.Tags, tag)
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveTag detaches a tag, preserving the relative order of the rest.
// Removing an absent tag is a no-op.
func (s *TaskService) RemoveTag(ctx context.Context, id, tag string) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.HasTag(tag) {
		return item, nil
	}
	tags := make([]string, 0, len(item.Tags)-1)
	for _, t := range item.Tags {
		if t != tag {
			tags = append(tags, t)
		}
	}
	item.Tags = tags
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// dedupeTags drops blank and repeated tags, preserving first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
