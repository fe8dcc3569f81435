package postgres

import (
	"database/sql"
	"lenslend-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.GearRepository
	repository.BookingRepository
	repository.ConversationRepository
	repository.MessageRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		GearRepository:         NewGearRepository(db),
		BookingRepository:      NewBookingRepository(db),
		ConversationRepository: NewConversationRepository(db),
		MessageRepository:      NewMessageRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
