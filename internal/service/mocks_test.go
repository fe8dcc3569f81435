package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lenslend-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockGearRepo
type MockGearRepo struct {
	mock.Mock
}

func (m *MockGearRepo) Create(ctx context.Context, gear *domain.Gear) error {
	args := m.Called(ctx, gear)
	return args.Error(0)
}
func (m *MockGearRepo) GetByID(ctx context.Context, id int32) (*domain.Gear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gear), args.Error(1)
}
func (m *MockGearRepo) Update(ctx context.Context, gear *domain.Gear) error {
	args := m.Called(ctx, gear)
	return args.Error(0)
}
func (m *MockGearRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockGearRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Gear, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Gear), args.Get(1).(int32), args.Error(2)
}
func (m *MockGearRepo) Search(ctx context.Context, query, category string, maxDailyRateCents int32, page, pageSize int32) ([]domain.Gear, int32, error) {
	args := m.Called(ctx, query, category, maxDailyRateCents, page, pageSize)
	return args.Get(0).([]domain.Gear), args.Get(1).(int32), args.Error(2)
}
func (m *MockGearRepo) Save(ctx context.Context, userID, gearID int32) error {
	args := m.Called(ctx, userID, gearID)
	return args.Error(0)
}
func (m *MockGearRepo) Unsave(ctx context.Context, userID, gearID int32) error {
	args := m.Called(ctx, userID, gearID)
	return args.Error(0)
}
func (m *MockGearRepo) ListSaved(ctx context.Context, userID int32) ([]domain.Gear, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Gear), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) AppendStatus(ctx context.Context, id int32, from domain.BookingStatus, change domain.StatusChange, markPaid bool) error {
	args := m.Called(ctx, id, from, change, markPaid)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.BookingListing), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.BookingListing), args.Get(1).(int32), args.Error(2)
}

// MockConversationRepo
type MockConversationRepo struct {
	mock.Mock
}

func (m *MockConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}
func (m *MockConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}
func (m *MockConversationRepo) FindByPair(ctx context.Context, userA, userB int32) (*domain.Conversation, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}
func (m *MockConversationRepo) FindByBooking(ctx context.Context, bookingID int32) (*domain.Conversation, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}
func (m *MockConversationRepo) ListByUser(ctx context.Context, userID int32) ([]domain.ConversationListing, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ConversationListing), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Post(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) ListByConversation(ctx context.Context, conversationID string, page, pageSize int32) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, page, pageSize)
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) MarkRead(ctx context.Context, conversationID string, readerID int32) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, gearName string) error {
	args := m.Called(ctx, ownerEmail, renterName, gearName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingStatusNotification(ctx context.Context, email, gearName string, status domain.BookingStatus, note string) error {
	args := m.Called(ctx, email, gearName, status, note)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, gearName, endDate string) error {
	args := m.Called(ctx, email, gearName, endDate)
	return args.Error(0)
}

// MockEventNotifier
type MockEventNotifier struct {
	mock.Mock
}

func (m *MockEventNotifier) NotifyNewMessage(recipientID int32, msg *domain.Message) {
	m.Called(recipientID, msg)
}
func (m *MockEventNotifier) NotifyBookingUpdated(recipientID int32, booking *domain.Booking) {
	m.Called(recipientID, booking)
}
