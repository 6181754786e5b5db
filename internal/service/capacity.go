package service

import (
	"context"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
)

type SlotOccupancy struct {
	Slot      models.TimeSlot `json:"time_slot"`
	Occupied  int             `json:"occupied"`
	Remaining int             `json:"remaining_capacity"`
}

// ComputeAvailability sums active party sizes per canonical slot on date.
// Rows naming an unknown slot are ignored. Remaining may go negative when a
// slot is already overbooked.
func ComputeAvailability(reservations []models.Reservation, date string, maxCapacity int) []SlotOccupancy {
	occupied := make(map[models.TimeSlot]int, len(models.TimeSlots))
	for _, r := range reservations {
		if r.Date != date || !r.Status.Active() {
			continue
		}
		slot, ok := models.ParseTimeSlot(r.TimeSlot)
		if !ok {
			continue
		}
		occupied[slot] += r.PartySize
	}

	out := make([]SlotOccupancy, 0, len(models.TimeSlots))
	for _, slot := range models.TimeSlots {
		out = append(out, SlotOccupancy{
			Slot:      slot,
			Occupied:  occupied[slot],
			Remaining: maxCapacity - occupied[slot],
		})
	}
	return out
}

// CapacityLedger answers availability and admission questions from a fresh
// read of the reservation rows. Callers serialize Admit with the write that follows it.
type CapacityLedger struct {
	repo repository.ReservationRepository
}

func NewCapacityLedger(repo repository.ReservationRepository) *CapacityLedger {
	return &CapacityLedger{repo: repo}
}

func (l *CapacityLedger) Availability(ctx context.Context, date string, maxCapacity int) ([]SlotOccupancy, error) {
	reservations, err := l.repo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure("read reservations", err)
	}
	return ComputeAvailability(reservations, date, maxCapacity), nil
}

// Admit returns nil when partySize fits the remaining capacity of slot on date.
func (l *CapacityLedger) Admit(ctx context.Context, date, slot string, partySize, maxCapacity int) error {
	ts, ok := models.ParseTimeSlot(slot)
	if !ok {
		return invalidTimeSlot(slot)
	}
	availability, err := l.Availability(ctx, date, maxCapacity)
	if err != nil {
		return err
	}
	for _, s := range availability {
		if s.Slot == ts && s.Remaining < partySize {
			return &CapacityError{Slot: slot, Remaining: s.Remaining, Requested: partySize}
		}
	}
	return nil
}

func slotLockKey(date string, slot string) string {
	return "slot:" + date + ":" + slot
}
