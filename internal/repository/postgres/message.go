package postgres

import (
	"context"
	"database/sql"
	"time"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/repository"

	"github.com/google/uuid"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

// Post inserts the message and updates the conversation's last-message
// pointer, unread counter, and updated_on in one transaction. The counter
// bump is computed inside the UPDATE, so concurrent posts cannot lose
// increments. The unread counter tracks the creator slot: it moves only when
// the participant slot is the sender.
func (r *messageRepository) Post(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, text, is_read, created_on)
		 VALUES ($1, $2, $3, $4, false, $5) RETURNING created_on`,
		m.ID, m.ConversationID, m.SenderID, m.Text, now,
	).Scan(&m.CreatedOn); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations
		 SET last_message_id = $2,
		     unread_count = unread_count + CASE WHEN participant_id = $3 THEN 1 ELSE 0 END,
		     updated_on = $4
		 WHERE id = $1`,
		m.ConversationID, m.ID, m.SenderID, now,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string, page, pageSize int32) ([]domain.Message, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, conversation_id, sender_id, text, is_read, created_on
	          FROM messages WHERE conversation_id = $1
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, conversationID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.IsRead, &m.CreatedOn); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkRead flips is_read on every unread message the reader did not send and
// zeroes the unread counter when the reader holds the creator slot. Both
// statements are no-ops on a second call, so the operation is idempotent.
func (r *messageRepository) MarkRead(ctx context.Context, conversationID string, readerID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE messages SET is_read = true
		 WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = false`,
		conversationID, readerID,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET unread_count = 0
		 WHERE id = $1 AND user_id = $2`,
		conversationID, readerID,
	); err != nil {
		return err
	}

	return tx.Commit()
}
