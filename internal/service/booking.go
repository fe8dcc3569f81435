package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/logger"
	"lenslend-backend/internal/repository"
	"lenslend-backend/internal/utils"
)

// legalTransitions is the booking state machine. Anything not listed is
// rejected with a validation error. rejected, completed and cancelled are
// terminal.
var legalTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusRequested: {domain.BookingStatusAccepted, domain.BookingStatusRejected, domain.BookingStatusCancelled},
	domain.BookingStatusAccepted:  {domain.BookingStatusPaid, domain.BookingStatusCancelled},
	domain.BookingStatusPaid:      {domain.BookingStatusActive, domain.BookingStatusCancelled},
	domain.BookingStatusActive:    {domain.BookingStatusCompleted, domain.BookingStatusCancelled},
}

// ownerOnlyTransitions are decisions only the gear owner may make. Cancelling
// and confirming payment are open to either party.
var ownerOnlyTransitions = map[domain.BookingStatus]bool{
	domain.BookingStatusAccepted:  true,
	domain.BookingStatusRejected:  true,
	domain.BookingStatusActive:    true,
	domain.BookingStatusCompleted: true,
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	gearRepo    repository.GearRepository
	userRepo    repository.UserRepository
	convRepo    repository.ConversationRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	events      EventNotifier
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	gearRepo repository.GearRepository,
	userRepo repository.UserRepository,
	convRepo repository.ConversationRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	events EventNotifier,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		gearRepo:    gearRepo,
		userRepo:    userRepo,
		convRepo:    convRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		events:      events,
	}
}

func (s *bookingService) CreateBookingRequest(ctx context.Context, renterID, gearID int32, startDate, endDate string) (*domain.Booking, error) {
	gear, err := s.gearRepo.GetByID(ctx, gearID)
	if err != nil {
		return nil, err
	}
	if gear.OwnerID == renterID {
		return nil, domain.Validationf("cannot book your own gear")
	}
	if gear.Status != domain.GearStatusAvailable {
		return nil, domain.Validationf("gear is not available")
	}

	days, err := utils.BookingDays(startDate, endDate)
	if err != nil {
		return nil, domain.Validationf("%v", err)
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		GearID:           gearID,
		RenterID:         renterID,
		OwnerID:          gear.OwnerID,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalDays:        days,
		DailyRateCents:   gear.DailyRateCents,
		TotalAmountCents: utils.BookingAmount(days, gear.DailyRateCents),
		Status:           domain.BookingStatusRequested,
		PaymentStatus:    domain.PaymentStatusUnpaid,
		StatusHistory: domain.StatusHistory{
			{Status: domain.BookingStatusRequested, Timestamp: now},
		},
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// A thread between the two parties rides along with every request so the
	// mark-read endpoint can resolve it by booking id.
	s.ensureConversation(ctx, renterID, gear.OwnerID, booking.ID)

	s.notifyCounterpart(ctx, booking, renterID, "Booking Request",
		fmt.Sprintf("New request for %s (%s to %s)", gear.Name, startDate, endDate))

	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err == nil {
		owner, err := s.userRepo.GetByID(ctx, gear.OwnerID)
		if err == nil {
			if err := s.emailSvc.SendBookingRequestNotification(ctx, owner.Email, renter.Name, gear.Name); err != nil {
				logger.Error("failed to send booking request email", "booking_id", booking.ID, "error", err)
			}
		}
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actingUserID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParty(actingUserID) {
		return nil, domain.Forbiddenf("user %d is not a party of booking %d", actingUserID, bookingID)
	}
	return booking, nil
}

func (s *bookingService) AppendStatus(ctx context.Context, bookingID int32, newStatus domain.BookingStatus, note string, actingUserID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParty(actingUserID) {
		return nil, domain.Forbiddenf("user %d is not a party of booking %d", actingUserID, bookingID)
	}
	if err := s.checkTransition(booking, newStatus, actingUserID); err != nil {
		return nil, err
	}

	change := domain.StatusChange{
		Status:    newStatus,
		Timestamp: time.Now().UTC(),
		Note:      note,
	}
	markPaid := newStatus == domain.BookingStatusPaid
	if err := s.bookingRepo.AppendStatus(ctx, bookingID, booking.Status, change, markPaid); err != nil {
		return nil, err
	}

	booking.Status = newStatus
	booking.StatusHistory = append(booking.StatusHistory, change)
	booking.UpdatedOn = change.Timestamp.Format(time.RFC3339)
	if markPaid {
		booking.PaymentStatus = domain.PaymentStatusPaid
		paidAt := change.Timestamp.Format(time.RFC3339)
		booking.PaidAt = &paidAt
	}

	s.syncGearStatus(ctx, booking)

	s.notifyCounterpart(ctx, booking, actingUserID, "Booking Update",
		fmt.Sprintf("Booking %d is now %s", booking.ID, newStatus))
	s.emailCounterpart(ctx, booking, actingUserID, newStatus, note)

	return booking, nil
}

func (s *bookingService) ListRenterRequests(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, userID, status, normalizePage(page), normalizePageSize(pageSize))
}

func (s *bookingService) ListOwnerRequests(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	return s.bookingRepo.ListByOwner(ctx, userID, status, normalizePage(page), normalizePageSize(pageSize))
}

func (s *bookingService) checkTransition(booking *domain.Booking, newStatus domain.BookingStatus, actingUserID int32) error {
	if booking.Status.Terminal() {
		return domain.Validationf("booking %d is %s and cannot change", booking.ID, booking.Status)
	}
	allowed := false
	for _, next := range legalTransitions[booking.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.Validationf("cannot move booking from %s to %s", booking.Status, newStatus)
	}
	if ownerOnlyTransitions[newStatus] && actingUserID != booking.OwnerID {
		return domain.Forbiddenf("only the owner may mark a booking %s", newStatus)
	}
	if newStatus == domain.BookingStatusPaid && booking.PaymentStatus == domain.PaymentStatusPaid {
		return domain.Validationf("booking %d is already paid", booking.ID)
	}
	return nil
}

// syncGearStatus keeps the listing's availability in step with the rental:
// an active booking marks the gear rented, a finished one releases it.
func (s *bookingService) syncGearStatus(ctx context.Context, booking *domain.Booking) {
	var target domain.GearStatus
	switch booking.Status {
	case domain.BookingStatusActive:
		target = domain.GearStatusRented
	case domain.BookingStatusCompleted, domain.BookingStatusCancelled:
		target = domain.GearStatusAvailable
	default:
		return
	}

	gear, err := s.gearRepo.GetByID(ctx, booking.GearID)
	if err != nil {
		logger.Error("failed to load gear for status sync", "gear_id", booking.GearID, "error", err)
		return
	}
	if gear.Status == target || gear.Status == domain.GearStatusUnlisted {
		return
	}
	gear.Status = target
	if err := s.gearRepo.Update(ctx, gear); err != nil {
		logger.Error("failed to sync gear status", "gear_id", gear.ID, "error", err)
	}
}

func (s *bookingService) ensureConversation(ctx context.Context, renterID, ownerID, bookingID int32) {
	_, err := s.convRepo.FindByPair(ctx, renterID, ownerID)
	if err == nil {
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("failed to look up booking conversation", "booking_id", bookingID, "error", err)
		return
	}
	conv := &domain.Conversation{
		UserID:        renterID,
		ParticipantID: ownerID,
		BookingID:     &bookingID,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		logger.Error("failed to create booking conversation", "booking_id", bookingID, "error", err)
	}
}

// notifyCounterpart writes a notification row and pushes a realtime event to
// the party who did not act. Failures are logged, never surfaced.
func (s *bookingService) notifyCounterpart(ctx context.Context, booking *domain.Booking, actingUserID int32, title, message string) {
	recipient := booking.OwnerID
	if actingUserID == booking.OwnerID {
		recipient = booking.RenterID
	}

	note := &domain.Notification{
		UserID:  recipient,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       "booking",
			"booking_id": fmt.Sprintf("%d", booking.ID),
			"status":     string(booking.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create booking notification", "booking_id", booking.ID, "error", err)
	}
	s.events.NotifyBookingUpdated(recipient, booking)
}

func (s *bookingService) emailCounterpart(ctx context.Context, booking *domain.Booking, actingUserID int32, status domain.BookingStatus, note string) {
	recipientID := booking.OwnerID
	if actingUserID == booking.OwnerID {
		recipientID = booking.RenterID
	}
	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		logger.Error("failed to load booking email recipient", "user_id", recipientID, "error", err)
		return
	}
	gearName := fmt.Sprintf("booking %d", booking.ID)
	if gear, err := s.gearRepo.GetByID(ctx, booking.GearID); err == nil {
		gearName = gear.Name
	}
	if err := s.emailSvc.SendBookingStatusNotification(ctx, recipient.Email, gearName, status, note); err != nil {
		logger.Error("failed to send booking status email", "booking_id", booking.ID, "error", err)
	}
}
