package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Eursukkul/restaurant-ledger/internal/lock"
	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
)

const timestampLayout = "2006-01-02 15:04:05"

type CreateReservationInput struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	PartySize    int    `json:"party_size" validate:"gt=0"`
	Channel      string `json:"channel" validate:"required"`
	Notes        string `json:"notes"`
}

type ReservationQuery struct {
	ID    string `json:"id" query:"id"`
	Phone string `json:"phone" query:"phone"`
	Date  string `json:"date" query:"date"`
}

type ReservationService interface {
	QuerySlots(ctx context.Context, date string, maxCapacity int) ([]SlotOccupancy, error)
	Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error)
	Query(ctx context.Context, q ReservationQuery) ([]models.Reservation, error)
	Cancel(ctx context.Context, id string) (*StatusChange, error)
	SetStatus(ctx context.Context, id, status string) (*StatusChange, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	ledger    *CapacityLedger
	locker    lock.Locker
	publisher EventPublisher
	opts      Options
}

func NewReservationService(repo repository.ReservationRepository, locker lock.Locker, publisher EventPublisher, opts Options) ReservationService {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &reservationService{
		repo:      repo,
		ledger:    NewCapacityLedger(repo),
		locker:    locker,
		publisher: publisher,
		opts:      opts.withDefaults(),
	}
}

func (s *reservationService) QuerySlots(ctx context.Context, date string, maxCapacity int) ([]SlotOccupancy, error) {
	if date == "" {
		return nil, missingFields("date")
	}
	if err := requireNotPast(date, s.opts.Now(), s.opts.Location); err != nil {
		return nil, err
	}
	if maxCapacity <= 0 {
		maxCapacity = s.opts.MaxCapacity
	}
	return s.ledger.Availability(ctx, date, maxCapacity)
}

func (s *reservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	ch, err := parseChannel(in.Channel)
	if err != nil {
		return nil, err
	}
	if _, ok := models.ParseTimeSlot(in.TimeSlot); !ok {
		return nil, invalidTimeSlot(in.TimeSlot)
	}
	now := s.opts.Now().In(s.opts.Location)
	if err := requireNotPast(in.Date, now, s.opts.Location); err != nil {
		return nil, err
	}

	// 1. Serialize admission for this slot
	unlockSlot, err := s.locker.Lock(ctx, slotLockKey(in.Date, in.TimeSlot))
	if err != nil {
		return nil, fmt.Errorf("lock slot %s %s: %w", in.Date, in.TimeSlot, err)
	}
	defer unlockSlot()

	// 2. Serialize identifier minting for the reserved date
	dateKey := DateKeyFromDate(in.Date)
	unlockSeq, err := s.locker.Lock(ctx, sequenceLockKey(ReservationPrefix, dateKey))
	if err != nil {
		return nil, fmt.Errorf("lock sequence %s%s: %w", ReservationPrefix, dateKey, err)
	}
	defer unlockSeq()

	// 3. Admit against a fresh read
	if err := s.ledger.Admit(ctx, in.Date, in.TimeSlot, in.PartySize, s.opts.MaxCapacity); err != nil {
		return nil, err
	}

	// 4. Mint the identifier
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, storeFailure("read reservations", err)
	}
	res := &models.Reservation{
		ID:           NextID(ReservationPrefix, dateKey, records, repository.ColReservationID),
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Date:         in.Date,
		TimeSlot:     in.TimeSlot,
		PartySize:    in.PartySize,
		Status:       models.ReservationConfirmed,
		Channel:      ch.Label(),
		Notes:        in.Notes,
		CreatedAt:    now.Format(timestampLayout),
	}

	// 5. Append the row
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, storeFailure("append reservation", err)
	}

	log.Printf("[Reservation] created %s: %s %s party of %d", res.ID, res.Date, res.TimeSlot, res.PartySize)
	emit(s.publisher, "reservation.created", res)
	return res, nil
}

func (s *reservationService) Query(ctx context.Context, q ReservationQuery) ([]models.Reservation, error) {
	if q.ID != "" {
		res, err := s.repo.FindByID(ctx, q.ID)
		if err != nil {
			return nil, lookupFailure("reservation", q.ID, err)
		}
		return []models.Reservation{*res}, nil
	}
	if q.Phone == "" && q.Date == "" {
		return nil, invalidf("provide a reservation id, phone or date")
	}

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure("read reservations", err)
	}
	out := make([]models.Reservation, 0)
	for _, r := range all {
		if q.Phone != "" && r.Phone != q.Phone {
			continue
		}
		if q.Date != "" && r.Date != q.Date {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *reservationService) Cancel(ctx context.Context, id string) (*StatusChange, error) {
	change, err := s.setStatus(ctx, id, models.ReservationCancelled)
	if err != nil {
		return nil, err
	}
	log.Printf("[Reservation] cancelled %s (was %s)", id, change.Previous)
	emit(s.publisher, "reservation.cancelled", change)
	return change, nil
}

func (s *reservationService) SetStatus(ctx context.Context, id, status string) (*StatusChange, error) {
	next, ok := models.ParseReservationStatus(status)
	if !ok {
		return nil, &ValidationError{
			Fields: []string{"status"},
			Msg:    fmt.Sprintf("invalid reservation status %q: expected pending, confirmed or cancelled", status),
		}
	}
	change, err := s.setStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	log.Printf("[Reservation] %s status %s -> %s", id, change.Previous, change.Status)
	emit(s.publisher, "reservation.status_changed", change)
	return change, nil
}

func (s *reservationService) setStatus(ctx context.Context, id string, next models.ReservationStatus) (*StatusChange, error) {
	if id == "" {
		return nil, missingFields("id")
	}
	// A reservation that becomes active again must fit its slot, so hold the slot lock.
	var res *models.Reservation
	if next.Active() {
		found, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, lookupFailure("reservation", id, err)
		}
		res = found
		unlock, err := s.locker.Lock(ctx, slotLockKey(res.Date, res.TimeSlot))
		if err != nil {
			return nil, fmt.Errorf("lock slot %s %s: %w", res.Date, res.TimeSlot, err)
		}
		defer unlock()
	}

	var previous models.ReservationStatus
	err := s.repo.UpdateStatus(ctx, id, next, func(current models.ReservationStatus) error {
		previous = current
		if s.opts.Policy == PolicyStrict && current != "" && !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: reservation %s from %s to %s", ErrInvalidTransition, id, current, next)
		}
		if res != nil && !current.Active() {
			return s.ledger.Admit(ctx, res.Date, res.TimeSlot, res.PartySize, s.opts.MaxCapacity)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrCapacityExceeded) ||
			errors.Is(err, ErrValidation) || errors.Is(err, ErrStoreFailure) {
			return nil, err
		}
		return nil, lookupFailure("reservation", id, err)
	}
	return &StatusChange{ID: id, Previous: string(previous), Status: string(next)}, nil
}

// lookupFailure maps a missing row to ErrNotFound and anything else to a store failure.
func lookupFailure(kind, id string, err error) error {
	if errors.Is(err, repository.ErrRowNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return storeFailure("read "+kind, err)
}
