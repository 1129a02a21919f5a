package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sporthub/court-booking-backend/internal/middleware"
	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/pricing"
)

type bookingFixture struct {
	store   *fakeStore
	service *ReservationService
	ownerID uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	store := seedFacility()
	ownerID := store.complexes[testComplexID].OwnerID
	store.ownerOf[ownerID] = []int64{testComplexID}
	store.rules[testCourtID] = []models.PricingRule{
		{ID: 1, CourtID: testCourtID, StartTime: "08:00", EndTime: "22:00", PricePerHour: 10000},
	}

	calc := &pricing.Calculator{TaxRate: 0.19, PriceIncludesTax: false, Currency: "CLP"}
	quotes := NewQuoteService(store, store, store, calc, time.UTC)
	authz := NewAuthorizer(store)
	service := NewReservationService(store, reservationFake{store}, quotes, authz)
	service.now = func() time.Time { return testMonday.Add(12 * time.Hour) }

	return &bookingFixture{store: store, service: service, ownerID: ownerID}
}

func userActor(id uuid.UUID) middleware.UserContext {
	return middleware.UserContext{UserID: id, Email: "player@example.com", Roles: []string{middleware.RoleUser}}
}

func (fx *bookingFixture) ownerActor() middleware.UserContext {
	return middleware.UserContext{UserID: fx.ownerID, Email: "owner@example.com", Roles: []string{middleware.RoleOwner}}
}

func adminActor() middleware.UserContext {
	return middleware.UserContext{UserID: uuid.New(), Email: "admin@example.com", Roles: []string{middleware.RoleAdmin}}
}

func TestCreateReservation(t *testing.T) {
	req := &models.CreateReservationRequest{
		CourtID: testCourtID, Date: "2026-09-07", StartTime: "19:00", EndTime: "20:30",
	}

	t.Run("Priced And Persisted Pending", func(t *testing.T) {
		fx := newBookingFixture(t)
		holder := userActor(uuid.New())

		reservation, quote, err := fx.service.Create(holder, req)
		require.NoError(t, err)

		assert.Equal(t, models.ReservationStatusPending, reservation.Status)
		assert.NotEqual(t, uuid.Nil, reservation.Reference)
		assert.Equal(t, holder.UserID, reservation.UserID)
		assert.Equal(t, testMonday.Add(19*time.Hour), reservation.StartAt)
		assert.Equal(t, testMonday.Add(20*time.Hour+30*time.Minute), reservation.EndAt)

		// 90min at 10000/hr plus 19% tax
		assert.Equal(t, 17850.0, quote.FinalTotal)
		assert.Equal(t, quote.FinalTotal, reservation.TotalPrice)

		stored, err := fx.store.GetReservation(reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusPending, stored.Status)
	})

	t.Run("Conflicting Window", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: uuid.New(),
			StartAt: testMonday.Add(20 * time.Hour),
			EndAt:   testMonday.Add(21 * time.Hour),
			Status:  models.ReservationStatusConfirmed,
		})

		_, _, err := fx.service.Create(userActor(uuid.New()), req)
		assert.ErrorIs(t, err, models.ErrOverlap)
	})

	t.Run("No Pricing Coverage", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.store.rules[testCourtID] = nil

		_, _, err := fx.service.Create(userActor(uuid.New()), req)
		assert.ErrorIs(t, err, models.ErrNoPricingCoverage)
	})

	t.Run("Inactive Court", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.store.courts[testCourtID].Active = false

		_, _, err := fx.service.Create(userActor(uuid.New()), req)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Invalid Window", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, _, err := fx.service.Create(userActor(uuid.New()), &models.CreateReservationRequest{
			CourtID: testCourtID, Date: "2026-09-07", StartTime: "20:00", EndTime: "19:00",
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestGetReservation(t *testing.T) {
	fx := newBookingFixture(t)
	holder := userActor(uuid.New())
	res := fx.store.addReservation(models.Reservation{
		CourtID: testCourtID, UserID: holder.UserID,
		StartAt: testMonday.Add(19 * time.Hour),
		EndAt:   testMonday.Add(20 * time.Hour),
		Status:  models.ReservationStatusPending,
	})

	t.Run("Holder", func(t *testing.T) {
		got, err := fx.service.Get(holder, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.ID, got.ID)
	})

	t.Run("Court Owner", func(t *testing.T) {
		_, err := fx.service.Get(fx.ownerActor(), res.ID)
		assert.NoError(t, err)
	})

	t.Run("Stranger", func(t *testing.T) {
		_, err := fx.service.Get(userActor(uuid.New()), res.ID)
		assert.ErrorIs(t, err, models.ErrPermission)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := fx.service.Get(holder, 404)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestConfirmReservation(t *testing.T) {
	newPending := func(fx *bookingFixture) *models.Reservation {
		return fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: uuid.New(),
			StartAt: testMonday.Add(19 * time.Hour),
			EndAt:   testMonday.Add(20 * time.Hour),
			Status:  models.ReservationStatusPending,
		})
	}

	t.Run("Owner Confirms Pending", func(t *testing.T) {
		fx := newBookingFixture(t)
		res := newPending(fx)

		got, err := fx.service.Confirm(fx.ownerActor(), res.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusConfirmed, got.Status)
	})

	t.Run("Holder Cannot Confirm", func(t *testing.T) {
		fx := newBookingFixture(t)
		res := newPending(fx)

		actor := userActor(res.UserID)
		_, err := fx.service.Confirm(actor, res.ID)
		assert.ErrorIs(t, err, models.ErrPermission)
	})

	t.Run("Already Confirmed", func(t *testing.T) {
		fx := newBookingFixture(t)
		res := newPending(fx)
		require.NoError(t, fx.store.UpdateStatus(res.ID, models.ReservationStatusConfirmed, nil))

		_, err := fx.service.Confirm(adminActor(), res.ID)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestCancelReservation(t *testing.T) {
	addAt := func(fx *bookingFixture, holder uuid.UUID, startHour int) *models.Reservation {
		return fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: holder,
			StartAt: testMonday.Add(time.Duration(startHour) * time.Hour),
			EndAt:   testMonday.Add(time.Duration(startHour+1) * time.Hour),
			Status:  models.ReservationStatusConfirmed,
		})
	}

	t.Run("Holder Cancels Before Start", func(t *testing.T) {
		fx := newBookingFixture(t)
		holder := uuid.New()
		res := addAt(fx, holder, 19) // now is fixed at 12:00

		got, err := fx.service.Cancel(userActor(holder), res.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusCancelled, got.Status)
		require.NotNil(t, got.CancelledAt)
		assert.Equal(t, fx.service.now(), *got.CancelledAt)
	})

	t.Run("Holder Cannot Cancel After Start", func(t *testing.T) {
		fx := newBookingFixture(t)
		holder := uuid.New()
		res := addAt(fx, holder, 10)

		_, err := fx.service.Cancel(userActor(holder), res.ID)
		assert.ErrorIs(t, err, models.ErrPermission)
	})

	t.Run("Owner Cancels After Start", func(t *testing.T) {
		fx := newBookingFixture(t)
		res := addAt(fx, uuid.New(), 10)

		got, err := fx.service.Cancel(fx.ownerActor(), res.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusCancelled, got.Status)
	})

	t.Run("Already Cancelled", func(t *testing.T) {
		fx := newBookingFixture(t)
		res := addAt(fx, uuid.New(), 19)
		now := fx.service.now()
		require.NoError(t, fx.store.UpdateStatus(res.ID, models.ReservationStatusCancelled, &now))

		_, err := fx.service.Cancel(adminActor(), res.ID)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestRescheduleReservation(t *testing.T) {
	req := &models.RescheduleReservationRequest{Date: "2026-09-08", StartTime: "10:00", EndTime: "11:00"}

	t.Run("Holder Moves And Reprices", func(t *testing.T) {
		fx := newBookingFixture(t)
		holder := uuid.New()
		res := fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: holder,
			StartAt:    testMonday.Add(19 * time.Hour),
			EndAt:      testMonday.Add(20*time.Hour + 30*time.Minute),
			Status:     models.ReservationStatusPending,
			TotalPrice: 17850,
		})

		got, err := fx.service.Reschedule(userActor(holder), res.ID, req)
		require.NoError(t, err)

		assert.Equal(t, testMonday.AddDate(0, 0, 1).Add(10*time.Hour), got.StartAt)
		// 60min at 10000/hr plus 19% tax
		assert.Equal(t, 11900.0, got.TotalPrice)
		assert.Equal(t, models.ReservationStatusPending, got.Status)
	})

	t.Run("Target Window Taken", func(t *testing.T) {
		fx := newBookingFixture(t)
		holder := uuid.New()
		res := fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: holder,
			StartAt: testMonday.Add(19 * time.Hour),
			EndAt:   testMonday.Add(20 * time.Hour),
			Status:  models.ReservationStatusConfirmed,
		})
		fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: uuid.New(),
			StartAt: testMonday.AddDate(0, 0, 1).Add(10 * time.Hour),
			EndAt:   testMonday.AddDate(0, 0, 1).Add(11 * time.Hour),
			Status:  models.ReservationStatusConfirmed,
		})

		_, err := fx.service.Reschedule(userActor(holder), res.ID, req)
		assert.ErrorIs(t, err, models.ErrOverlap)
	})

	t.Run("Cancelled Cannot Move", func(t *testing.T) {
		fx := newBookingFixture(t)
		res := fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: uuid.New(),
			StartAt: testMonday.Add(19 * time.Hour),
			EndAt:   testMonday.Add(20 * time.Hour),
			Status:  models.ReservationStatusCancelled,
		})

		_, err := fx.service.Reschedule(adminActor(), res.ID, req)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestListReservations(t *testing.T) {
	t.Run("Plain User Rejected", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.List(userActor(uuid.New()), models.ReservationFilter{})
		assert.ErrorIs(t, err, models.ErrPermission)
	})

	t.Run("Owner Pinned To Owned Complexes", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.store.addReservation(models.Reservation{
			CourtID: testCourtID, UserID: uuid.New(),
			StartAt: testMonday.Add(19 * time.Hour),
			EndAt:   testMonday.Add(20 * time.Hour),
			Status:  models.ReservationStatusPending,
		})

		got, err := fx.service.List(fx.ownerActor(), models.ReservationFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		require.NotNil(t, fx.store.lastFilter)
		assert.Equal(t, []int64{testComplexID}, fx.store.lastFilter.ComplexIDs)
	})

	t.Run("Owner Requesting Foreign Complex Rejected", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.List(fx.ownerActor(), models.ReservationFilter{ComplexIDs: []int64{99}})
		assert.ErrorIs(t, err, models.ErrPermission)
	})

	t.Run("Owner With No Complexes Sees Nothing", func(t *testing.T) {
		fx := newBookingFixture(t)
		stranger := middleware.UserContext{UserID: uuid.New(), Roles: []string{middleware.RoleOwner}}

		got, err := fx.service.List(stranger, models.ReservationFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Nil(t, fx.store.lastFilter)
	})

	t.Run("Admin Filter Passes Through", func(t *testing.T) {
		fx := newBookingFixture(t)
		status := models.ReservationStatusConfirmed

		_, err := fx.service.List(adminActor(), models.ReservationFilter{Status: &status})
		require.NoError(t, err)

		require.NotNil(t, fx.store.lastFilter)
		assert.Empty(t, fx.store.lastFilter.ComplexIDs)
		require.NotNil(t, fx.store.lastFilter.Status)
		assert.Equal(t, status, *fx.store.lastFilter.Status)
	})
}

func TestQuoteServicePromotions(t *testing.T) {
	fx := newBookingFixture(t)
	fx.store.promotions = []models.Promotion{{
		ID: 1, CourtID: int64Ptr(testCourtID), Label: "Opening 10%",
		Kind: models.PromotionKindPercentage, Value: 10, Active: true,
	}}

	_, quote, err := fx.service.Create(userActor(uuid.New()), &models.CreateReservationRequest{
		CourtID: testCourtID, Date: "2026-09-07", StartTime: "19:00", EndTime: "20:30",
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, quote.Discount)
	assert.Equal(t, 16350.0, quote.FinalTotal)
	require.NotNil(t, quote.PromotionLabel)
	assert.Equal(t, "Opening 10%", *quote.PromotionLabel)
}
