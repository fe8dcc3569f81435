package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/logger"
	"lenslend-backend/internal/repository"
)

type messagingService struct {
	convRepo    repository.ConversationRepository
	msgRepo     repository.MessageRepository
	noteRepo    repository.NotificationRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	events      EventNotifier
}

func NewMessagingService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	noteRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	events EventNotifier,
) MessagingService {
	return &messagingService{
		convRepo:    convRepo,
		msgRepo:     msgRepo,
		noteRepo:    noteRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		events:      events,
	}
}

// FindOrCreateConversation returns the existing thread between the two users
// regardless of which side created it, creating one only if absent.
func (s *messagingService) FindOrCreateConversation(ctx context.Context, actingUserID, otherUserID int32, bookingID *int32) (*domain.Conversation, error) {
	if otherUserID == 0 {
		return nil, domain.Validationf("userId is required")
	}
	if otherUserID == actingUserID {
		return nil, domain.Validationf("cannot start a conversation with yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.FindByPair(ctx, actingUserID, otherUserID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	conv = &domain.Conversation{
		UserID:        actingUserID,
		ParticipantID: otherUserID,
		BookingID:     bookingID,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *messagingService) ListConversations(ctx context.Context, userID int32) ([]domain.ConversationListing, error) {
	return s.convRepo.ListByUser(ctx, userID)
}

func (s *messagingService) ListMessages(ctx context.Context, conversationID string, actingUserID, page, pageSize int32) ([]domain.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.IsParty(actingUserID) {
		return nil, domain.Forbiddenf("user %d is not a party of conversation %s", actingUserID, conversationID)
	}
	return s.msgRepo.ListByConversation(ctx, conversationID, normalizePage(page), normalizePageSize(pageSize))
}

func (s *messagingService) PostMessage(ctx context.Context, conversationID string, senderID int32, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.Validationf("message text cannot be empty")
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.IsParty(senderID) {
		return nil, domain.Forbiddenf("user %d is not a party of conversation %s", senderID, conversationID)
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
	}
	if err := s.msgRepo.Post(ctx, msg); err != nil {
		return nil, err
	}

	recipient := conv.OtherParty(senderID)
	s.events.NotifyNewMessage(recipient, msg)

	senderName := fmt.Sprintf("user %d", senderID)
	if sender, err := s.userRepo.GetByID(ctx, senderID); err == nil {
		senderName = sender.Name
	}
	note := &domain.Notification{
		UserID:  recipient,
		Title:   "New Message",
		Message: fmt.Sprintf("%s sent you a message", senderName),
		Attributes: map[string]string{
			"type":            "message",
			"conversation_id": conversationID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create message notification", "conversation_id", conversationID, "error", err)
	}

	return msg, nil
}

func (s *messagingService) MarkRead(ctx context.Context, conversationID string, actingUserID int32) error {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.IsParty(actingUserID) {
		return domain.Forbiddenf("user %d is not a party of conversation %s", actingUserID, conversationID)
	}
	return s.msgRepo.MarkRead(ctx, conversationID, actingUserID)
}

// MarkBookingThreadRead resolves the conversation attached to a booking and
// marks it read for the acting user. Threads that predate the booking carry
// no booking link, so a miss falls back to resolving by the two parties.
func (s *messagingService) MarkBookingThreadRead(ctx context.Context, bookingID, actingUserID int32) error {
	conv, err := s.convRepo.FindByBooking(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		booking, berr := s.bookingRepo.GetByID(ctx, bookingID)
		if berr != nil {
			return berr
		}
		if !booking.IsParty(actingUserID) {
			return domain.Forbiddenf("user %d is not a party of booking %d", actingUserID, bookingID)
		}
		conv, err = s.convRepo.FindByPair(ctx, booking.RenterID, booking.OwnerID)
	}
	if err != nil {
		return err
	}
	if !conv.IsParty(actingUserID) {
		return domain.Forbiddenf("user %d is not a party of booking %d's thread", actingUserID, bookingID)
	}
	return s.msgRepo.MarkRead(ctx, conv.ID, actingUserID)
}
