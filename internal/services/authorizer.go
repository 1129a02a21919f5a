package services

import (
	"fmt"

	"github.com/sporthub/court-booking-backend/internal/middleware"
	"github.com/sporthub/court-booking-backend/internal/models"
)

// Authorizer decides who may manage a court's administrative data and
// reservations. Admins and superadmins manage everything; owners manage
// the complexes they own.
type Authorizer struct {
	courts CourtStore
}

// NewAuthorizer creates a new authorizer
func NewAuthorizer(courts CourtStore) *Authorizer {
	return &Authorizer{courts: courts}
}

// CanManageComplex returns nil when the actor may administer the complex
func (a *Authorizer) CanManageComplex(actor middleware.UserContext, complexID int64) error {
	if actor.IsAdmin() {
		return nil
	}

	if actor.HasRole(middleware.RoleOwner) {
		cx, err := a.courts.GetComplexByID(complexID)
		if err != nil {
			return err
		}
		if cx.OwnerID == actor.UserID {
			return nil
		}
	}

	return fmt.Errorf("complex %d: %w", complexID, models.ErrPermission)
}

// CanManageCourt returns nil when the actor may administer the court
func (a *Authorizer) CanManageCourt(actor middleware.UserContext, courtID int64) error {
	if actor.IsAdmin() {
		return nil
	}

	court, err := a.courts.GetByID(courtID)
	if err != nil {
		return err
	}

	return a.CanManageComplex(actor, court.ComplexID)
}
