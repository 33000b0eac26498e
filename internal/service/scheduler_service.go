package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"pocket-planner/internal/apperrors"
	"pocket-planner/internal/model"
	"pocket-planner/internal/notify"
	"pocket-planner/internal/repository"
)

// ReminderScheduler owns the recurring medication reminders. Pending
// cron entries are keyed by medication id, so renaming a medication (or
// two medications sharing a name) can never cross wires.
type ReminderScheduler struct {
	cron     *cron.Cron
	notifier notify.Notifier

	mu      sync.Mutex
	entries map[string][]cron.EntryID
}

func NewReminderScheduler(loc *time.Location, notifier notify.Notifier) *ReminderScheduler {
	return &ReminderScheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		notifier: notifier,
		entries:  make(map[string][]cron.EntryID),
	}
}

func (s *ReminderScheduler) Start() {
	s.cron.Start()
}

func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sync reconciles the pending reminders for med: every previously issued
// entry is cancelled first, then one daily entry per time-of-day slot is
// scheduled if reminders are enabled. Stale or duplicate reminders can
// therefore never accumulate.
func (s *ReminderScheduler) Sync(med *model.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(med.ID)

	if !med.RemindersEnabled() {
		return
	}

	name, dosage := med.Name, med.Dosage
	for _, slot := range dedupeSlots(med.TimeOfDay) {
		hour, minute := slot.Clock()
		spec := fmt.Sprintf("0 %d %d * * *", minute, hour)
		id, err := s.cron.AddFunc(spec, func() {
			body := fmt.Sprintf("Time to take %s - %s", name, dosage)
			if err := s.notifier.Send("Medication Reminder", body); err != nil {
				log.Printf("[warn] medication reminder: %v", err)
			}
		})
		if err != nil {
			log.Printf("[warn] schedule reminder for %s/%s: %v", med.ID, slot, err)
			continue
		}
		s.entries[med.ID] = append(s.entries[med.ID], id)
	}
}

// Cancel drops every pending reminder for the medication. Cancelling a
// medication with nothing scheduled is a no-op.
func (s *ReminderScheduler) Cancel(medID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(medID)
}

func (s *ReminderScheduler) cancelLocked(medID string) {
	for _, id := range s.entries[medID] {
		s.cron.Remove(id)
	}
	delete(s.entries, medID)
}

// PendingSlots reports how many reminder entries are scheduled for the
// medication.
func (s *ReminderScheduler) PendingSlots(medID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries[medID])
}

// StockAlert issues the one-shot low-stock notification. Fire-and-forget:
// a delivery failure is logged, not returned.
func (s *ReminderScheduler) StockAlert(med *model.Medication) {
	stock := 0
	if med.Stock != nil {
		stock = *med.Stock
	}
	body := fmt.Sprintf("Your %s stock is running low (%d remaining)", med.Name, stock)
	if err := s.notifier.Send("Low Medication Stock", body); err != nil {
		log.Printf("[warn] stock alert: %v", err)
	}
}

// Watch subscribes the scheduler to store mutations so reminders track
// every medication change, no matter which caller made it. Returns the
// unsubscribe func.
func (s *ReminderScheduler) Watch(events *repository.Events, repo *repository.MedicationRepository) func() {
	return events.Subscribe(func(ev repository.Event) {
		if ev.Entity != repository.EntityMedication {
			return
		}
		if ev.Op == repository.OpDelete {
			s.Cancel(ev.ID)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		med, err := repo.GetByID(ctx, ev.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.Cancel(ev.ID)
				return
			}
			log.Printf("[warn] reload medication %s: %v", ev.ID, err)
			return
		}
		s.Sync(med)
	})
}

// dedupeSlots enforces set semantics on the stored slots, preserving
// first-seen order.
func dedupeSlots(slots []model.TimeOfDay) []model.TimeOfDay {
	seen := make(map[model.TimeOfDay]bool, len(slots))
	var out []model.TimeOfDay
	for _, slot := range slots {
		if !slot.Valid() || seen[slot] {
			continue
		}
		seen[slot] = true
		out = append(out, slot)
	}
	return out
}
