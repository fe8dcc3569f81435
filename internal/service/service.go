package service

import (
	"context"
	"lenslend-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, phone, avatarURL, bio string) (*domain.User, error)
}

type GearService interface {
	AddGear(ctx context.Context, gear *domain.Gear) error
	GetGear(ctx context.Context, id int32) (*domain.Gear, error)
	UpdateGear(ctx context.Context, actingUserID int32, gear *domain.Gear) (*domain.Gear, error)
	DeleteGear(ctx context.Context, actingUserID, id int32) error
	ListMyGear(ctx context.Context, userID, page, pageSize int32) ([]domain.Gear, int32, error)
	SearchGear(ctx context.Context, query, category string, maxDailyRateCents, page, pageSize int32) ([]domain.Gear, int32, error)
	SaveGear(ctx context.Context, userID, gearID int32) error
	UnsaveGear(ctx context.Context, userID, gearID int32) error
	ListSavedGear(ctx context.Context, userID int32) ([]domain.Gear, error)
}

type BookingService interface {
	CreateBookingRequest(ctx context.Context, renterID, gearID int32, startDate, endDate string) (*domain.Booking, error)
	GetBooking(ctx context.Context, actingUserID, bookingID int32) (*domain.Booking, error)
	// AppendStatus transitions the booking, appending to its audit history.
	// The acting user must be a booking party and the transition must be
	// legal from the current status.
	AppendStatus(ctx context.Context, bookingID int32, newStatus domain.BookingStatus, note string, actingUserID int32) (*domain.Booking, error)
	ListRenterRequests(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error)
	ListOwnerRequests(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error)
}

type MessagingService interface {
	FindOrCreateConversation(ctx context.Context, actingUserID, otherUserID int32, bookingID *int32) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int32) ([]domain.ConversationListing, error)
	ListMessages(ctx context.Context, conversationID string, actingUserID, page, pageSize int32) ([]domain.Message, error)
	PostMessage(ctx context.Context, conversationID string, senderID int32, text string) (*domain.Message, error)
	MarkRead(ctx context.Context, conversationID string, actingUserID int32) error
	MarkBookingThreadRead(ctx context.Context, bookingID, actingUserID int32) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, gearName string) error
	SendBookingStatusNotification(ctx context.Context, email, gearName string, status domain.BookingStatus, note string) error
	SendReturnReminder(ctx context.Context, email, gearName, endDate string) error
}

// EventNotifier pushes realtime events to connected users. Implementations
// must be non-blocking and best effort.
type EventNotifier interface {
	NotifyNewMessage(recipientID int32, msg *domain.Message)
	NotifyBookingUpdated(recipientID int32, booking *domain.Booking)
}
