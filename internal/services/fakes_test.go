package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// fakeStore is an in-memory stand-in for every repository interface the
// services depend on.
type fakeStore struct {
	courts       map[int64]*models.Court
	complexes    map[int64]*models.Complex
	ownerOf      map[uuid.UUID][]int64
	hours        []models.OperatingHours
	blocks       []models.Block
	rules        map[int64][]models.PricingRule
	promotions   []models.Promotion
	reservations map[int64]*models.Reservation
	nextID       int64

	// lastFilter captures what List received, so tests can assert on
	// owner pinning.
	lastFilter *models.ReservationFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courts:       make(map[int64]*models.Court),
		complexes:    make(map[int64]*models.Complex),
		ownerOf:      make(map[uuid.UUID][]int64),
		rules:        make(map[int64][]models.PricingRule),
		reservations: make(map[int64]*models.Reservation),
	}
}

func (f *fakeStore) GetByID(id int64) (*models.Court, error) {
	court, ok := f.courts[id]
	if !ok {
		return nil, fmt.Errorf("court %d: %w", id, models.ErrNotFound)
	}
	copied := *court
	return &copied, nil
}

func (f *fakeStore) GetComplexByID(id int64) (*models.Complex, error) {
	cx, ok := f.complexes[id]
	if !ok {
		return nil, fmt.Errorf("complex %d: %w", id, models.ErrNotFound)
	}
	copied := *cx
	return &copied, nil
}

func (f *fakeStore) ListComplexIDsForOwner(ownerID uuid.UUID) ([]int64, error) {
	return f.ownerOf[ownerID], nil
}

func (f *fakeStore) FindForCourt(courtID int64, weekday models.Weekday) (*models.OperatingHours, error) {
	var found *models.OperatingHours
	for i := range f.hours {
		row := &f.hours[i]
		if row.CourtID != nil && *row.CourtID == courtID && row.Weekday == weekday {
			if found == nil || row.ID > found.ID {
				found = row
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

func (f *fakeStore) FindForComplex(complexID int64, weekday models.Weekday) (*models.OperatingHours, error) {
	var found *models.OperatingHours
	for i := range f.hours {
		row := &f.hours[i]
		if row.CourtID == nil && row.ComplexID == complexID && row.Weekday == weekday {
			if found == nil || row.ID > found.ID {
				found = row
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

func (f *fakeStore) ListForCourtBetween(courtID int64, from, to time.Time) ([]models.Block, error) {
	var out []models.Block
	for _, b := range f.blocks {
		if b.CourtID == courtID && b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListForCourt(courtID int64) ([]models.PricingRule, error) {
	return f.rules[courtID], nil
}

func (f *fakeStore) ListCandidates(courtID, complexID int64) ([]models.Promotion, error) {
	var out []models.Promotion
	for _, p := range f.promotions {
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

func (f *fakeStore) GetReservation(id int64) (*models.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}
	copied := *res
	return &copied, nil
}

// GetByID on ReservationStore collides with CourtStore's method set, so
// the fake is split: reservationFake embeds fakeStore and narrows GetByID
// to reservations.
type reservationFake struct {
	*fakeStore
}

func (f reservationFake) GetByID(id int64) (*models.Reservation, error) {
	return f.GetReservation(id)
}

func (f *fakeStore) ListActiveForCourtBetween(courtID int64, from, to time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.CourtID == courtID && r.IsActive() && r.StartAt.Before(to) && r.EndAt.After(from) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListForUser(userID uuid.UUID) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) List(filter models.ReservationFilter) ([]models.Reservation, error) {
	f.lastFilter = &filter
	var out []models.Reservation
	for _, r := range f.reservations {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.CourtID != nil && r.CourtID != *filter.CourtID {
			continue
		}
		if len(filter.ComplexIDs) > 0 {
			court, ok := f.courts[r.CourtID]
			if !ok || !containsID(filter.ComplexIDs, court.ComplexID) {
				continue
			}
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) Create(res *models.Reservation) error {
	if f.hasConflict(res.CourtID, res.StartAt, res.EndAt, 0) {
		return fmt.Errorf("court %d window taken: %w", res.CourtID, models.ErrOverlap)
	}

	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	copied := *res
	f.reservations[res.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateWindow(id int64, startAt, endAt time.Time, totalPrice float64) error {
	res, ok := f.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}
	if f.hasConflict(res.CourtID, startAt, endAt, id) {
		return fmt.Errorf("court %d window taken: %w", res.CourtID, models.ErrOverlap)
	}

	res.StartAt = startAt
	res.EndAt = endAt
	res.TotalPrice = totalPrice
	res.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) UpdateStatus(id int64, status models.ReservationStatus, cancelledAt *time.Time) error {
	res, ok := f.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}
	res.Status = status
	res.CancelledAt = cancelledAt
	res.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) hasConflict(courtID int64, startAt, endAt time.Time, excludeID int64) bool {
	for _, r := range f.reservations {
		if r.ID == excludeID || r.CourtID != courtID || !r.IsActive() {
			continue
		}
		if r.StartAt.Before(endAt) && r.EndAt.After(startAt) {
			return true
		}
	}
	return false
}

func (f *fakeStore) addReservation(res models.Reservation) *models.Reservation {
	f.nextID++
	res.ID = f.nextID
	if res.Reference == uuid.Nil {
		res.Reference = uuid.New()
	}
	f.reservations[res.ID] = &res
	return &res
}
