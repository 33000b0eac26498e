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

// MedicationRepository handles CRUD for medications.
type MedicationRepository struct {
	db     *gorm.DB
	events *Events
}

func NewMedicationRepository(db *gorm.DB, events *Events) *MedicationRepository {
	return &MedicationRepository{db: db, events: events}
}

func (r *MedicationRepository) Create(ctx context.Context, med *model.Medication) error {
	if med.ID == "" {
		med.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(med).Error; err != nil {
		return fmt.Errorf("create medication: %w", err)
	}
	r.events.Publish(Event{Entity: EntityMedication, Op: OpCreate, ID: med.ID})
	return nil
}

func (r *MedicationRepository) GetByID(ctx context.Context, id string) (*model.Medication, error) {
	var med model.Medication
	if err := r.db.WithContext(ctx).First(&med, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find medication: %w", err)
	}
	return &med, nil
}

func (r *MedicationRepository) List(ctx context.Context) ([]model.Medication, error) {
	var meds []model.Medication
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&meds).Error; err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	return meds, nil
}

func (r *MedicationRepository) ListActive(ctx context.Context) ([]model.Medication, error) {
	var meds []model.Medication
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("name ASC").Find(&meds).Error; err != nil {
		return nil, fmt.Errorf("list active medications: %w", err)
	}
	return meds, nil
}

func (r *MedicationRepository) Save(ctx context.Context, med *model.Medication) error {
	res := r.db.WithContext(ctx).Model(&model.Medication{}).Where("id = ?", med.ID).
		Select("*").Omit("id", "created_at").Updates(med)
	if res.Error != nil {
		return fmt.Errorf("save medication: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	r.events.Publish(Event{Entity: EntityMedication, Op: OpUpdate, ID: med.ID})
	return nil
}

func (r *MedicationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Medication{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete medication: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	r.events.Publish(Event{Entity: EntityMedication, Op: OpDelete, ID: id})
	return nil
}
