package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sporthub/court-booking-backend/internal/middleware"
	"github.com/sporthub/court-booking-backend/internal/models"
)

// ReservationService orchestrates the reservation lifecycle:
// pending -> confirmed -> cancelled, pending -> cancelled. Reservations
// are always created pending and confirmed explicitly by the facility.
type ReservationService struct {
	courts       CourtStore
	reservations ReservationStore
	quotes       *QuoteService
	authz        *Authorizer
	now          func() time.Time
}

// NewReservationService creates a new reservation service
func NewReservationService(courts CourtStore, reservations ReservationStore,
	quotes *QuoteService, authz *Authorizer) *ReservationService {
	return &ReservationService{
		courts:       courts,
		reservations: reservations,
		quotes:       quotes,
		authz:        authz,
		now:          time.Now,
	}
}

// Create books a window for the actor. The reservation is priced by the
// quote engine and persisted pending under the overlap guard; a
// concurrent conflicting create surfaces as models.ErrOverlap.
func (s *ReservationService) Create(actor middleware.UserContext, req *models.CreateReservationRequest) (*models.Reservation, *models.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	quote, err := s.quotes.Quote(&models.QuoteRequest{
		CourtID:   req.CourtID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return nil, nil, err
	}

	window, err := s.quotes.Window(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}

	reservation := &models.Reservation{
		Reference:  uuid.New(),
		CourtID:    req.CourtID,
		UserID:     actor.UserID,
		StartAt:    window.Start,
		EndAt:      window.End,
		Status:     models.ReservationStatusPending,
		TotalPrice: quote.FinalTotal,
	}

	if err := s.reservations.Create(reservation); err != nil {
		return nil, nil, err
	}

	return reservation, quote, nil
}

// Get returns a reservation visible to the actor: its holder, a manager
// of its court, or a platform admin.
func (s *ReservationService) Get(actor middleware.UserContext, id int64) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != actor.UserID {
		if err := s.authz.CanManageCourt(actor, reservation.CourtID); err != nil {
			return nil, err
		}
	}

	return reservation, nil
}

// ListMine returns the actor's reservations
func (s *ReservationService) ListMine(actor middleware.UserContext) ([]models.Reservation, error) {
	return s.reservations.ListForUser(actor.UserID)
}

// List returns reservations for managers. Admins see everything the
// filter allows; owners are pinned to the complexes they own.
func (s *ReservationService) List(actor middleware.UserContext, filter models.ReservationFilter) ([]models.Reservation, error) {
	if !actor.IsAdmin() {
		if !actor.HasRole(middleware.RoleOwner) {
			return nil, fmt.Errorf("reservation listing: %w", models.ErrPermission)
		}

		owned, err := s.courts.ListComplexIDsForOwner(actor.UserID)
		if err != nil {
			return nil, err
		}
		if len(owned) == 0 {
			return []models.Reservation{}, nil
		}

		if len(filter.ComplexIDs) > 0 {
			for _, id := range filter.ComplexIDs {
				if !containsID(owned, id) {
					return nil, fmt.Errorf("complex %d: %w", id, models.ErrPermission)
				}
			}
		} else {
			filter.ComplexIDs = owned
		}
	}

	return s.reservations.List(filter)
}

// Confirm transitions a pending reservation to confirmed. Only a
// manager of the court may confirm.
func (s *ReservationService) Confirm(actor middleware.UserContext, id int64) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.CanManageCourt(actor, reservation.CourtID); err != nil {
		return nil, err
	}

	if !reservation.CanBeConfirmed() {
		return nil, models.NewValidationError(
			fmt.Sprintf("reservation is %s, only pending reservations can be confirmed", reservation.Status))
	}

	if err := s.reservations.UpdateStatus(id, models.ReservationStatusConfirmed, nil); err != nil {
		return nil, err
	}

	return s.reservations.GetByID(id)
}

// Cancel transitions an active reservation to cancelled. The holder may
// cancel only before the start; managers may cancel at any time.
func (s *ReservationService) Cancel(actor middleware.UserContext, id int64) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(actor, reservation); err != nil {
		return nil, err
	}

	if !reservation.CanBeCancelled() {
		return nil, models.NewValidationError(
			fmt.Sprintf("reservation is %s and cannot be cancelled", reservation.Status))
	}

	now := s.now()
	if err := s.reservations.UpdateStatus(id, models.ReservationStatusCancelled, &now); err != nil {
		return nil, err
	}

	return s.reservations.GetByID(id)
}

// Reschedule moves an active reservation to a new window under the same
// overlap guard as Create, ignoring the reservation's own row. The new
// window is re-priced.
func (s *ReservationService) Reschedule(actor middleware.UserContext, id int64, req *models.RescheduleReservationRequest) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(actor, reservation); err != nil {
		return nil, err
	}

	if !reservation.IsActive() {
		return nil, models.NewValidationError(
			fmt.Sprintf("reservation is %s and cannot be rescheduled", reservation.Status))
	}

	quote, err := s.quotes.Quote(&models.QuoteRequest{
		CourtID:   reservation.CourtID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return nil, err
	}

	window, err := s.quotes.Window(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.UpdateWindow(id, window.Start, window.End, quote.FinalTotal); err != nil {
		return nil, err
	}

	return s.reservations.GetByID(id)
}

// authorizeMutation gates cancel and reschedule: the holder may mutate
// only before the reservation starts; court managers always may.
func (s *ReservationService) authorizeMutation(actor middleware.UserContext, reservation *models.Reservation) error {
	if reservation.UserID == actor.UserID {
		if s.now().Before(reservation.StartAt) {
			return nil
		}
		if err := s.authz.CanManageCourt(actor, reservation.CourtID); err != nil {
			return fmt.Errorf("reservation %d already started: %w", reservation.ID, models.ErrPermission)
		}
		return nil
	}

	return s.authz.CanManageCourt(actor, reservation.CourtID)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
