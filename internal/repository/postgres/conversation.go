package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/repository"

	"github.com/google/uuid"
)

type conversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

const conversationColumns = `id, user_id, participant_id, last_message_id, unread_count, booking_id, created_on, updated_on`

func scanConversation(row interface{ Scan(...interface{}) error }, c *domain.Conversation) error {
	return row.Scan(&c.ID, &c.UserID, &c.ParticipantID, &c.LastMessageID, &c.UnreadCount, &c.BookingID, &c.CreatedOn, &c.UpdatedOn)
}

func (r *conversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `INSERT INTO conversations (id, user_id, participant_id, unread_count, booking_id, created_on, updated_on)
	          VALUES ($1, $2, $3, 0, $4, $5, $6)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.ParticipantID, c.BookingID, now, now)
	return err
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	err := scanConversation(r.db.QueryRowContext(ctx, query, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("conversation %s", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByPair matches the two slots in either order, so the caller does not
// need to know which side created the thread.
func (r *conversationRepository) FindByPair(ctx context.Context, userA, userB int32) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	query := `SELECT ` + conversationColumns + ` FROM conversations
	          WHERE (user_id = $1 AND participant_id = $2) OR (user_id = $2 AND participant_id = $1)
	          LIMIT 1`
	err := scanConversation(r.db.QueryRowContext(ctx, query, userA, userB), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("conversation between %d and %d", userA, userB)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *conversationRepository) FindByBooking(ctx context.Context, bookingID int32) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE booking_id = $1 LIMIT 1`
	err := scanConversation(r.db.QueryRowContext(ctx, query, bookingID), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("conversation for booking %d", bookingID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID int32) ([]domain.ConversationListing, error) {
	query := `SELECT c.id, c.user_id, c.participant_id, c.last_message_id, c.unread_count, c.booking_id, c.created_on, c.updated_on,
	       u.id, u.name, u.avatar_url,
	       m.id, m.sender_id, m.text, m.is_read, m.created_on,
	       b.id, b.gear_id, b.status, b.start_date, b.end_date
	FROM conversations c
	JOIN users u ON u.id = CASE WHEN c.user_id = $1 THEN c.participant_id ELSE c.user_id END
	LEFT JOIN messages m ON m.id = c.last_message_id
	LEFT JOIN bookings b ON b.id = c.booking_id
	WHERE c.user_id = $1 OR c.participant_id = $1
	ORDER BY c.updated_on DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.ConversationListing
	for rows.Next() {
		var l domain.ConversationListing
		var other domain.User
		var msgID, msgText, msgCreated sql.NullString
		var msgSender sql.NullInt32
		var msgRead sql.NullBool
		var bkID, bkGearID sql.NullInt32
		var bkStatus, bkStart, bkEnd sql.NullString

		c := &l.Conversation
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.ParticipantID, &c.LastMessageID, &c.UnreadCount, &c.BookingID, &c.CreatedOn, &c.UpdatedOn,
			&other.ID, &other.Name, &other.AvatarURL,
			&msgID, &msgSender, &msgText, &msgRead, &msgCreated,
			&bkID, &bkGearID, &bkStatus, &bkStart, &bkEnd,
		); err != nil {
			return nil, err
		}
		l.OtherParty = &other
		if msgID.Valid {
			l.LastMessage = &domain.Message{
				ID:             msgID.String,
				ConversationID: c.ID,
				SenderID:       msgSender.Int32,
				Text:           msgText.String,
				IsRead:         msgRead.Bool,
				CreatedOn:      msgCreated.String,
			}
		}
		if bkID.Valid {
			l.Booking = &domain.BookingSummary{
				ID:        bkID.Int32,
				GearID:    bkGearID.Int32,
				Status:    domain.BookingStatus(bkStatus.String),
				StartDate: bkStart.String,
				EndDate:   bkEnd.String,
			}
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
