package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
)

type ReservationRepository interface {
	Records(ctx context.Context) ([]Record, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	Create(ctx context.Context, r *models.Reservation) error
	// UpdateStatus locates the reservation, passes its current status to check (empty when the
	// stored value is unrecognised) and writes status only if check returns nil.
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus, check func(current models.ReservationStatus) error) error
}

type reservationRepository struct {
	store RowStore
}

func NewReservationRepository(store RowStore) ReservationRepository {
	return &reservationRepository{store: store}
}

func (r *reservationRepository) Records(ctx context.Context) ([]Record, error) {
	return r.store.FetchAll(ctx, SheetReservations)
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]models.Reservation, error) {
	records, err := r.store.FetchAll(ctx, SheetReservations)
	if err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0, len(records))
	for _, rec := range records {
		out = append(out, reservationFromRecord(rec))
	}
	return out, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	records, err := r.store.FetchAll(ctx, SheetReservations)
	if err != nil {
		return nil, err
	}
	_, rec, ok := locateRow(records, ColReservationID, id)
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", id, ErrRowNotFound)
	}
	res := reservationFromRecord(rec)
	return &res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	header, err := r.store.Header(ctx, SheetReservations)
	if err != nil {
		return err
	}
	return r.store.AppendRow(ctx, SheetReservations, alignRow(header, reservationToRecord(res)))
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus, check func(current models.ReservationStatus) error) error {
	records, err := r.store.FetchAll(ctx, SheetReservations)
	if err != nil {
		return err
	}
	row, rec, ok := locateRow(records, ColReservationID, id)
	if !ok {
		return fmt.Errorf("reservation %s: %w", id, ErrRowNotFound)
	}
	if check != nil {
		current, _ := models.ParseReservationStatus(rec[ColReservationStatus])
		if err := check(current); err != nil {
			return err
		}
	}

	header, err := r.store.Header(ctx, SheetReservations)
	if err != nil {
		return err
	}
	col := columnIndex(header, ColReservationStatus)
	if col == 0 {
		return fmt.Errorf("%s.%s: %w", SheetReservations, ColReservationStatus, ErrColumnNotFound)
	}
	return r.store.UpdateCell(ctx, SheetReservations, row, col, status.Label())
}

func reservationFromRecord(rec Record) models.Reservation {
	status, _ := models.ParseReservationStatus(rec[ColReservationStatus])
	return models.Reservation{
		ID:           rec[ColReservationID],
		CustomerName: rec[ColCustomerName],
		Phone:        rec[ColPhone],
		Date:         rec[ColReservationDate],
		TimeSlot:     rec[ColTimeSlot],
		PartySize:    parseInt(rec[ColPartySize]),
		Status:       status,
		Channel:      rec[ColChannel],
		Notes:        rec[ColNotes],
		CreatedAt:    rec[ColCreatedAt],
	}
}

func reservationToRecord(res *models.Reservation) Record {
	return Record{
		ColReservationID:     res.ID,
		ColCustomerName:      res.CustomerName,
		ColPhone:             res.Phone,
		ColReservationDate:   res.Date,
		ColTimeSlot:          res.TimeSlot,
		ColPartySize:         strconv.Itoa(res.PartySize),
		ColReservationStatus: res.Status.Label(),
		ColChannel:           res.Channel,
		ColNotes:             res.Notes,
		ColCreatedAt:         res.CreatedAt,
	}
}

// parseInt reads a numeric cell; blank or malformed cells count as zero.
func parseInt(v string) int {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
