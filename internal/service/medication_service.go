package service

import (
	"context"
	"strings"
	"time"

	"pocket-planner/internal/apperrors"
	"pocket-planner/internal/model"
	"pocket-planner/internal/repository"
)

// MedicationInput represents data required to create or update a
// medication.
type MedicationInput struct {
	Name       string
	Dosage     string
	Frequency  string
	StartDate  time.Time
	EndDate    *time.Time
	Notes      string
	Reminder   bool
	TimeOfDay  []model.TimeOfDay
	Stock      *int
	StockAlert *int
	IsActive   bool
}

// MedicationService wraps medication CRUD and decides when the one-shot
// stock alert fires. Recurring reminders follow automatically: the
// scheduler watches the store's medication events.
type MedicationService struct {
	medRepo   *repository.MedicationRepository
	scheduler *ReminderScheduler
}

func NewMedicationService(medRepo *repository.MedicationRepository, scheduler *ReminderScheduler) *MedicationService {
	return &MedicationService{medRepo: medRepo, scheduler: scheduler}
}

// Create validates and stores a medication. A medication created already
// under its stock threshold alerts immediately.
func (s *MedicationService) Create(ctx context.Context, input MedicationInput) (*model.Medication, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.ErrValidation
	}
	for _, slot := range input.TimeOfDay {
		if !slot.Valid() {
			return nil, apperrors.ErrValidation
		}
	}

	med := model.Medication{
		Name:       strings.TrimSpace(input.Name),
		Dosage:     strings.TrimSpace(input.Dosage),
		Frequency:  strings.TrimSpace(input.Frequency),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Notes:      input.Notes,
		Reminder:   input.Reminder,
		TimeOfDay:  dedupeSlots(input.TimeOfDay),
		Stock:      input.Stock,
		StockAlert: input.StockAlert,
		IsActive:   input.IsActive,
	}
	med.LowStockNotified = med.LowStock()

	if err := s.medRepo.Create(ctx, &med); err != nil {
		return nil, err
	}
	if med.LowStockNotified {
		s.scheduler.StockAlert(&med)
	}
	return &med, nil
}

func (s *MedicationService) Get(ctx context.Context, id string) (*model.Medication, error) {
	return s.medRepo.GetByID(ctx, id)
}

func (s *MedicationService) List(ctx context.Context) ([]model.Medication, error) {
	return s.medRepo.List(ctx)
}

// Update applies the input. The stock alert is edge-triggered: it fires
// only when this update takes the stock from above the threshold to at
// or under it, so a persisting low-stock condition is not re-announced
// on every save.
func (s *MedicationService) Update(ctx context.Context, id string, input MedicationInput) (*model.Medication, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.ErrValidation
	}
	for _, slot := range input.TimeOfDay {
		if !slot.Valid() {
			return nil, apperrors.ErrValidation
		}
	}

	med, err := s.medRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasLow := med.LowStock()
	alreadyNotified := med.LowStockNotified

	med.Name = strings.TrimSpace(input.Name)
	med.Dosage = strings.TrimSpace(input.Dosage)
	med.Frequency = strings.TrimSpace(input.Frequency)
	med.StartDate = input.StartDate
	med.EndDate = input.EndDate
	med.Notes = input.Notes
	med.Reminder = input.Reminder
	med.TimeOfDay = dedupeSlots(input.TimeOfDay)
	med.Stock = input.Stock
	med.StockAlert = input.StockAlert
	med.IsActive = input.IsActive

	isLow := med.LowStock()
	fire := isLow && !wasLow
	switch {
	case !isLow:
		med.LowStockNotified = false
	case fire:
		med.LowStockNotified = true
	default:
		med.LowStockNotified = alreadyNotified
	}

	if err := s.medRepo.Save(ctx, med); err != nil {
		return nil, err
	}
	if fire {
		s.scheduler.StockAlert(med)
	}
	return med, nil
}

func (s *MedicationService) Delete(ctx context.Context, id string) error {
	return s.medRepo.Delete(ctx, id)
}

// ResyncAll reschedules reminders for every active medication. Called at
// startup, since pending cron entries do not survive a restart.
func (s *MedicationService) ResyncAll(ctx context.Context) error {
	meds, err := s.medRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	for i := range meds {
		s.scheduler.Sync(&meds[i])
	}
	return nil
}
