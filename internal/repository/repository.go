package repository

import (
	"context"
	"lenslend-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type GearRepository interface {
	Create(ctx context.Context, gear *domain.Gear) error
	GetByID(ctx context.Context, id int32) (*domain.Gear, error)
	Update(ctx context.Context, gear *domain.Gear) error
	Delete(ctx context.Context, id int32) error
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Gear, int32, error)
	Search(ctx context.Context, query, category string, maxDailyRateCents int32, page, pageSize int32) ([]domain.Gear, int32, error)

	// Saves maintain gear.saves_count atomically alongside the row change.
	Save(ctx context.Context, userID, gearID int32) error
	Unsave(ctx context.Context, userID, gearID int32) error
	ListSaved(ctx context.Context, userID int32) ([]domain.Gear, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// AppendStatus atomically appends a history entry and updates the status
	// fields in one statement, guarded by the status the caller read. A stale
	// from status is a validation error. markPaid also sets payment_status and
	// paid_at.
	AppendStatus(ctx context.Context, id int32, from domain.BookingStatus, change domain.StatusChange, markPaid bool) error
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	// FindByPair matches the two user slots in either order.
	FindByPair(ctx context.Context, userA, userB int32) (*domain.Conversation, error)
	FindByBooking(ctx context.Context, bookingID int32) (*domain.Conversation, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.ConversationListing, error)
}

type MessageRepository interface {
	// Post inserts the message and updates the conversation's last-message
	// pointer, unread counter, and updated_on in a single transaction.
	Post(ctx context.Context, msg *domain.Message) error
	ListByConversation(ctx context.Context, conversationID string, page, pageSize int32) ([]domain.Message, error)
	// MarkRead flips is_read on all unread messages in the thread not sent by
	// readerID and resets the unread counter when the reader holds the
	// creator slot. Idempotent.
	MarkRead(ctx context.Context, conversationID string, readerID int32) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
