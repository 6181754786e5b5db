package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
	"github.com/stretchr/testify/require"
)

// 2024-01-16 10:00 UTC
var fixedNow = time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)

func testOptions(policy StatusPolicy) Options {
	return Options{
		MaxCapacity: 50,
		Policy:      policy,
		Location:    time.UTC,
		Now:         func() time.Time { return fixedNow },
	}
}

func newStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	s := repository.NewMemoryStore()
	require.NoError(t, repository.EnsureSheets(context.Background(), s))
	return s
}

func seedReservation(t *testing.T, repo repository.ReservationRepository, id, date, slot string, size int, status models.ReservationStatus) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Reservation{
		ID:           id,
		CustomerName: "seed",
		Phone:        "13900000000",
		Date:         date,
		TimeSlot:     slot,
		PartySize:    size,
		Status:       status,
		Channel:      "phone",
	}))
}

type publishedEvent struct {
	key     string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: routingKey, payload: payload})
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.key)
	}
	return out
}

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	recordsFn      func(ctx context.Context) ([]repository.Record, error)
	findAllFn      func(ctx context.Context) ([]models.Reservation, error)
	findByIDFn     func(ctx context.Context, id string) (*models.Reservation, error)
	createFn       func(ctx context.Context, r *models.Reservation) error
	updateStatusFn func(ctx context.Context, id string, status models.ReservationStatus, check func(models.ReservationStatus) error) error
}

func (m *mockReservationRepo) Records(ctx context.Context) ([]repository.Record, error) {
	return m.recordsFn(ctx)
}
func (m *mockReservationRepo) FindAll(ctx context.Context) ([]models.Reservation, error) {
	return m.findAllFn(ctx)
}
func (m *mockReservationRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockReservationRepo) Create(ctx context.Context, r *models.Reservation) error {
	return m.createFn(ctx, r)
}
func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus, check func(models.ReservationStatus) error) error {
	return m.updateStatusFn(ctx, id, status, check)
}
