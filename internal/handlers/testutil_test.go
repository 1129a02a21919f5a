package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sporthub/court-booking-backend/internal/middleware"
	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/pricing"
	"github.com/sporthub/court-booking-backend/internal/schedule"
	"github.com/sporthub/court-booking-backend/internal/services"
)

const (
	testComplexID = int64(1)
	testCourtID   = int64(7)
)

// 2026-09-07 is a Monday
var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

// memStore backs the handler tests with an in-memory facility
type memStore struct {
	courts       map[int64]*models.Court
	complexes    map[int64]*models.Complex
	ownerOf      map[uuid.UUID][]int64
	hours        []models.OperatingHours
	blocks       []models.Block
	rules        map[int64][]models.PricingRule
	promotions   []models.Promotion
	reservations map[int64]*models.Reservation
	nextID       int64
}

func newMemStore() *memStore {
	store := &memStore{
		courts:       make(map[int64]*models.Court),
		complexes:    make(map[int64]*models.Complex),
		ownerOf:      make(map[uuid.UUID][]int64),
		rules:        make(map[int64][]models.PricingRule),
		reservations: make(map[int64]*models.Reservation),
	}

	ownerID := uuid.New()
	store.complexes[testComplexID] = &models.Complex{ID: testComplexID, OwnerID: ownerID, Name: "Club Central"}
	store.ownerOf[ownerID] = []int64{testComplexID}
	store.courts[testCourtID] = &models.Court{
		ID: testCourtID, ComplexID: testComplexID, Name: "Court 1", Sport: "padel", Active: true,
	}
	store.rules[testCourtID] = []models.PricingRule{
		{ID: 1, CourtID: testCourtID, StartTime: "08:00", EndTime: "22:00", PricePerHour: 10000},
	}

	return store
}

func (m *memStore) GetByID(id int64) (*models.Court, error) {
	court, ok := m.courts[id]
	if !ok {
		return nil, fmt.Errorf("court %d: %w", id, models.ErrNotFound)
	}
	copied := *court
	return &copied, nil
}

func (m *memStore) GetComplexByID(id int64) (*models.Complex, error) {
	cx, ok := m.complexes[id]
	if !ok {
		return nil, fmt.Errorf("complex %d: %w", id, models.ErrNotFound)
	}
	copied := *cx
	return &copied, nil
}

func (m *memStore) ListComplexIDsForOwner(ownerID uuid.UUID) ([]int64, error) {
	return m.ownerOf[ownerID], nil
}

func (m *memStore) FindForCourt(courtID int64, weekday models.Weekday) (*models.OperatingHours, error) {
	for i := range m.hours {
		row := &m.hours[i]
		if row.CourtID != nil && *row.CourtID == courtID && row.Weekday == weekday {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindForComplex(complexID int64, weekday models.Weekday) (*models.OperatingHours, error) {
	for i := range m.hours {
		row := &m.hours[i]
		if row.CourtID == nil && row.ComplexID == complexID && row.Weekday == weekday {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListForCourtBetween(courtID int64, from, to time.Time) ([]models.Block, error) {
	var out []models.Block
	for _, b := range m.blocks {
		if b.CourtID == courtID && b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) ListForCourt(courtID int64) ([]models.PricingRule, error) {
	return m.rules[courtID], nil
}

func (m *memStore) ListCandidates(courtID, complexID int64) ([]models.Promotion, error) {
	var out []models.Promotion
	for _, p := range m.promotions {
		if p.CourtID != nil && *p.CourtID == courtID {
			out = append(out, p)
			continue
		}
		if p.ComplexID != nil && *p.ComplexID == complexID {
			out = append(out, p)
		}
	}
	return out, nil
}

// reservationStore narrows GetByID to reservations; the method name
// collides with the court lookup on memStore itself.
type reservationStore struct {
	*memStore
}

func (m reservationStore) GetByID(id int64) (*models.Reservation, error) {
	res, ok := m.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}
	copied := *res
	return &copied, nil
}

func (m *memStore) ListActiveForCourtBetween(courtID int64, from, to time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.CourtID == courtID && r.IsActive() && r.StartAt.Before(to) && r.EndAt.After(from) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) ListForUser(userID uuid.UUID) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) List(filter models.ReservationFilter) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.CourtID != nil && r.CourtID != *filter.CourtID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) Create(res *models.Reservation) error {
	if m.hasConflict(res.CourtID, res.StartAt, res.EndAt, 0) {
		return fmt.Errorf("court %d window taken: %w", res.CourtID, models.ErrOverlap)
	}

	m.nextID++
	res.ID = m.nextID
	copied := *res
	m.reservations[res.ID] = &copied
	return nil
}

func (m *memStore) UpdateWindow(id int64, startAt, endAt time.Time, totalPrice float64) error {
	res, ok := m.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}
	if m.hasConflict(res.CourtID, startAt, endAt, id) {
		return fmt.Errorf("court %d window taken: %w", res.CourtID, models.ErrOverlap)
	}

	res.StartAt = startAt
	res.EndAt = endAt
	res.TotalPrice = totalPrice
	return nil
}

func (m *memStore) UpdateStatus(id int64, status models.ReservationStatus, cancelledAt *time.Time) error {
	res, ok := m.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}
	res.Status = status
	res.CancelledAt = cancelledAt
	return nil
}

func (m *memStore) hasConflict(courtID int64, startAt, endAt time.Time, excludeID int64) bool {
	for _, r := range m.reservations {
		if r.ID == excludeID || r.CourtID != courtID || !r.IsActive() {
			continue
		}
		if r.StartAt.Before(endAt) && r.EndAt.After(startAt) {
			return true
		}
	}
	return false
}

func (m *memStore) addReservation(res models.Reservation) *models.Reservation {
	m.nextID++
	res.ID = m.nextID
	if res.Reference == uuid.Nil {
		res.Reference = uuid.New()
	}
	m.reservations[res.ID] = &res
	return &res
}

// testEnv wires a full handler stack over a memStore
type testEnv struct {
	store        *memStore
	availability *AvailabilityHandler
	quotes       *QuoteHandler
	reservations *ReservationHandler
	ownerID      uuid.UUID
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	calc := &pricing.Calculator{TaxRate: 0.19, PriceIncludesTax: false, Currency: "CLP"}
	defaults := schedule.Window{OpenMinutes: 8 * 60, CloseMinutes: 22 * 60}

	availabilitySvc := services.NewAvailabilityService(store, store, store, reservationStore{store}, store, time.UTC, defaults)
	quoteSvc := services.NewQuoteService(store, store, store, calc, time.UTC)
	authz := services.NewAuthorizer(store)
	reservationSvc := services.NewReservationService(store, reservationStore{store}, quoteSvc, authz)

	return &testEnv{
		store:        store,
		availability: NewAvailabilityHandler(availabilitySvc, 60),
		quotes:       NewQuoteHandler(quoteSvc),
		reservations: NewReservationHandler(reservationSvc, time.UTC),
		ownerID:      store.complexes[testComplexID].OwnerID,
	}
}

// asActor injects an authenticated user the way AuthMiddleware would
func asActor(userID uuid.UUID, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, middleware.UserContext{
			UserID: userID,
			Email:  "actor@example.com",
			Roles:  roles,
		})
		c.Next()
	}
}
