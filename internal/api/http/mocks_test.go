package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lenslend-backend/internal/domain"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBookingRequest(ctx context.Context, renterID, gearID int32, startDate, endDate string) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, gearID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, actingUserID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, actingUserID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) AppendStatus(ctx context.Context, bookingID int32, newStatus domain.BookingStatus, note string, actingUserID int32) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, newStatus, note, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListRenterRequests(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.BookingListing), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) ListOwnerRequests(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.BookingListing), args.Get(1).(int32), args.Error(2)
}

// MockMessagingService
type MockMessagingService struct {
	mock.Mock
}

func (m *MockMessagingService) FindOrCreateConversation(ctx context.Context, actingUserID, otherUserID int32, bookingID *int32) (*domain.Conversation, error) {
	args := m.Called(ctx, actingUserID, otherUserID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}
func (m *MockMessagingService) ListConversations(ctx context.Context, userID int32) ([]domain.ConversationListing, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ConversationListing), args.Error(1)
}
func (m *MockMessagingService) ListMessages(ctx context.Context, conversationID string, actingUserID, page, pageSize int32) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, actingUserID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessagingService) PostMessage(ctx context.Context, conversationID string, senderID int32, text string) (*domain.Message, error) {
	args := m.Called(ctx, conversationID, senderID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}
func (m *MockMessagingService) MarkRead(ctx context.Context, conversationID string, actingUserID int32) error {
	args := m.Called(ctx, conversationID, actingUserID)
	return args.Error(0)
}
func (m *MockMessagingService) MarkBookingThreadRead(ctx context.Context, bookingID, actingUserID int32) error {
	args := m.Called(ctx, bookingID, actingUserID)
	return args.Error(0)
}
