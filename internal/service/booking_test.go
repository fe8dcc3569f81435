package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/service"
)

type bookingMocks struct {
	bookingRepo *MockBookingRepo
	gearRepo    *MockGearRepo
	userRepo    *MockUserRepo
	convRepo    *MockConversationRepo
	noteRepo    *MockNotificationRepo
	emailSvc    *MockEmailService
	events      *MockEventNotifier
}

func newBookingService() (service.BookingService, *bookingMocks) {
	m := &bookingMocks{
		bookingRepo: new(MockBookingRepo),
		gearRepo:    new(MockGearRepo),
		userRepo:    new(MockUserRepo),
		convRepo:    new(MockConversationRepo),
		noteRepo:    new(MockNotificationRepo),
		emailSvc:    new(MockEmailService),
		events:      new(MockEventNotifier),
	}
	svc := service.NewBookingService(m.bookingRepo, m.gearRepo, m.userRepo, m.convRepo, m.noteRepo, m.emailSvc, m.events)
	return svc, m
}

func requestedBooking(id, renterID, ownerID int32) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		GearID:           7,
		RenterID:         renterID,
		OwnerID:          ownerID,
		StartDate:        "2026-10-01",
		EndDate:          "2026-10-03",
		TotalDays:        3,
		DailyRateCents:   2500,
		TotalAmountCents: 7500,
		Status:           domain.BookingStatusRequested,
		PaymentStatus:    domain.PaymentStatusUnpaid,
		StatusHistory: domain.StatusHistory{
			{Status: domain.BookingStatusRequested, Timestamp: time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)},
		},
	}
}

func TestBookingService_CreateBookingRequest(t *testing.T) {
	ctx := context.Background()
	renterID := int32(1)
	ownerID := int32(2)
	gear := &domain.Gear{
		ID:             7,
		OwnerID:        ownerID,
		Name:           "Canon R5",
		Status:         domain.GearStatusAvailable,
		DailyRateCents: 2500,
	}

	t.Run("Success", func(t *testing.T) {
		svc, m := newBookingService()
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(gear, nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.convRepo.On("FindByPair", ctx, renterID, ownerID).Return(nil, domain.ErrNotFound)
		m.convRepo.On("Create", ctx, mock.AnythingOfType("*domain.Conversation")).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		m.events.On("NotifyBookingUpdated", ownerID, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, renterID).Return(&domain.User{ID: renterID, Name: "Renter", Email: "renter@test.com"}, nil)
		m.userRepo.On("GetByID", ctx, ownerID).Return(&domain.User{ID: ownerID, Name: "Owner", Email: "owner@test.com"}, nil)
		m.emailSvc.On("SendBookingRequestNotification", ctx, "owner@test.com", "Renter", "Canon R5").Return(nil)

		res, err := svc.CreateBookingRequest(ctx, renterID, 7, "2026-10-01", "2026-10-03")
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Equal(t, int32(3), res.TotalDays) // inclusive of both endpoints
		assert.Equal(t, int32(7500), res.TotalAmountCents)
		assert.Equal(t, domain.BookingStatusRequested, res.Status)
		assert.Equal(t, domain.PaymentStatusUnpaid, res.PaymentStatus)
		assert.Len(t, res.StatusHistory, 1)
		assert.Equal(t, domain.BookingStatusRequested, res.StatusHistory[0].Status)
		m.convRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*domain.Conversation"))
	})

	t.Run("OwnGear", func(t *testing.T) {
		svc, m := newBookingService()
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(gear, nil)

		res, err := svc.CreateBookingRequest(ctx, ownerID, 7, "2026-10-01", "2026-10-03")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("GearNotAvailable", func(t *testing.T) {
		svc, m := newBookingService()
		rented := *gear
		rented.Status = domain.GearStatusRented
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(&rented, nil)

		res, err := svc.CreateBookingRequest(ctx, renterID, 7, "2026-10-01", "2026-10-03")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		svc, m := newBookingService()
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(gear, nil)

		res, err := svc.CreateBookingRequest(ctx, renterID, 7, "2026-10-03", "2026-10-01")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ExistingConversationReused", func(t *testing.T) {
		svc, m := newBookingService()
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(gear, nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.convRepo.On("FindByPair", ctx, renterID, ownerID).Return(&domain.Conversation{ID: "abc", UserID: ownerID, ParticipantID: renterID}, nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		m.events.On("NotifyBookingUpdated", ownerID, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, renterID).Return(&domain.User{ID: renterID, Name: "Renter"}, nil)
		m.userRepo.On("GetByID", ctx, ownerID).Return(&domain.User{ID: ownerID, Email: "owner@test.com"}, nil)
		m.emailSvc.On("SendBookingRequestNotification", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.CreateBookingRequest(ctx, renterID, 7, "2026-10-01", "2026-10-03")
		assert.NoError(t, err)
		m.convRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBookingService_AppendStatus(t *testing.T) {
	ctx := context.Background()
	renterID := int32(1)
	ownerID := int32(2)

	t.Run("OwnerAccepts", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)
		m.bookingRepo.On("AppendStatus", ctx, int32(10), domain.BookingStatusRequested, mock.AnythingOfType("domain.StatusChange"), false).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		m.events.On("NotifyBookingUpdated", renterID, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, renterID).Return(&domain.User{ID: renterID, Email: "renter@test.com"}, nil)
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(&domain.Gear{ID: 7, Name: "Canon R5"}, nil)
		m.emailSvc.On("SendBookingStatusNotification", ctx, "renter@test.com", "Canon R5", domain.BookingStatusAccepted, "").Return(nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusAccepted, "", ownerID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusAccepted, res.Status)
		assert.Len(t, res.StatusHistory, 2)
		assert.Equal(t, domain.BookingStatusAccepted, res.StatusHistory[1].Status)
		// Payment untouched by a non-payment transition.
		assert.Equal(t, domain.PaymentStatusUnpaid, res.PaymentStatus)
		assert.Nil(t, res.PaidAt)
	})

	t.Run("NonPartyForbidden", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusAccepted, "", int32(99))
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "AppendStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Len(t, booking.StatusHistory, 1)
	})

	t.Run("RenterCannotAccept", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusAccepted, "", renterID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "AppendStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusActive, "", ownerID)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "AppendStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TerminalImmutable", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		booking.Status = domain.BookingStatusCompleted
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusCancelled, "", ownerID)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "AppendStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MarkPaid", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		booking.Status = domain.BookingStatusAccepted
		booking.StatusHistory = append(booking.StatusHistory, domain.StatusChange{
			Status: domain.BookingStatusAccepted, Timestamp: time.Date(2026, 9, 21, 12, 0, 0, 0, time.UTC),
		})
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)
		m.bookingRepo.On("AppendStatus", ctx, int32(10), domain.BookingStatusAccepted, mock.AnythingOfType("domain.StatusChange"), true).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		m.events.On("NotifyBookingUpdated", ownerID, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, ownerID).Return(&domain.User{ID: ownerID, Email: "owner@test.com"}, nil)
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(&domain.Gear{ID: 7, Name: "Canon R5"}, nil)
		m.emailSvc.On("SendBookingStatusNotification", ctx, "owner@test.com", "Canon R5", domain.BookingStatusPaid, "").Return(nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusPaid, "", renterID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPaid, res.Status)
		assert.Equal(t, domain.PaymentStatusPaid, res.PaymentStatus)
		assert.NotNil(t, res.PaidAt)
		assert.Len(t, res.StatusHistory, 3)
		m.bookingRepo.AssertCalled(t, "AppendStatus", ctx, int32(10), domain.BookingStatusAccepted, mock.AnythingOfType("domain.StatusChange"), true)
	})

	t.Run("AlreadyPaidRejected", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		booking.Status = domain.BookingStatusAccepted
		booking.PaymentStatus = domain.PaymentStatusPaid
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusPaid, "", renterID)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, res)
		m.bookingRepo.AssertNotCalled(t, "AppendStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ActivateMarksGearRented", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		booking.Status = domain.BookingStatusPaid
		booking.PaymentStatus = domain.PaymentStatusPaid
		gear := &domain.Gear{ID: 7, Name: "Canon R5", Status: domain.GearStatusAvailable}
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)
		m.bookingRepo.On("AppendStatus", ctx, int32(10), domain.BookingStatusPaid, mock.AnythingOfType("domain.StatusChange"), false).Return(nil)
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(gear, nil)
		m.gearRepo.On("Update", ctx, mock.AnythingOfType("*domain.Gear")).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		m.events.On("NotifyBookingUpdated", renterID, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, renterID).Return(&domain.User{ID: renterID, Email: "renter@test.com"}, nil)
		m.emailSvc.On("SendBookingStatusNotification", ctx, mock.Anything, mock.Anything, domain.BookingStatusActive, "").Return(nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusActive, "", ownerID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusActive, res.Status)
		assert.Equal(t, domain.GearStatusRented, gear.Status)
		m.gearRepo.AssertCalled(t, "Update", ctx, gear)
	})

	t.Run("NoteRecordedInHistory", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, renterID, ownerID)
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)
		m.bookingRepo.On("AppendStatus", ctx, int32(10), domain.BookingStatusRequested, mock.MatchedBy(func(c domain.StatusChange) bool {
			return c.Status == domain.BookingStatusRejected && c.Note == "gear is in for repair"
		}), false).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		m.events.On("NotifyBookingUpdated", renterID, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, renterID).Return(&domain.User{ID: renterID, Email: "renter@test.com"}, nil)
		m.gearRepo.On("GetByID", ctx, int32(7)).Return(&domain.Gear{ID: 7, Name: "Canon R5"}, nil)
		m.emailSvc.On("SendBookingStatusNotification", ctx, mock.Anything, mock.Anything, domain.BookingStatusRejected, "gear is in for repair").Return(nil)

		res, err := svc.AppendStatus(ctx, 10, domain.BookingStatusRejected, "gear is in for repair", ownerID)
		assert.NoError(t, err)
		assert.Equal(t, "gear is in for repair", res.StatusHistory[1].Note)
	})
}

func TestBookingService_GetBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("PartyCanRead", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, 1, 2)
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)

		res, err := svc.GetBooking(ctx, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, booking, res)
	})

	t.Run("NonPartyForbidden", func(t *testing.T) {
		svc, m := newBookingService()
		booking := requestedBooking(10, 1, 2)
		m.bookingRepo.On("GetByID", ctx, int32(10)).Return(booking, nil)

		res, err := svc.GetBooking(ctx, 99, 10)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, res)
	})
}
