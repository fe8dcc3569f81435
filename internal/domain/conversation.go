package domain

// Conversation is a 1:1 thread between two users. The two slots are an
// unordered pair conceptually; lookups match either order. UnreadCount
// tracks messages not yet read by the UserID slot: it is bumped when the
// ParticipantID slot sends and reset when the UserID slot marks the thread
// read.
type Conversation struct {
	ID            string  `json:"id"`
	UserID        int32   `json:"user_id"`
	ParticipantID int32   `json:"participant_id"`
	LastMessageID *string `json:"last_message_id,omitempty"`
	UnreadCount   int32   `json:"unread_count"`
	BookingID     *int32  `json:"booking_id,omitempty"`
	CreatedOn     string  `json:"created_on"`
	UpdatedOn     string  `json:"updated_on"`
}

// IsParty reports whether userID occupies either slot.
func (c *Conversation) IsParty(userID int32) bool {
	return c.UserID == userID || c.ParticipantID == userID
}

// OtherParty returns the counterpart of userID. The caller must have checked
// IsParty first.
func (c *Conversation) OtherParty(userID int32) int32 {
	if c.UserID == userID {
		return c.ParticipantID
	}
	return c.UserID
}

type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       int32  `json:"sender_id"`
	Text           string `json:"text"`
	IsRead         bool   `json:"is_read"`
	CreatedOn      string `json:"created_on"`
}

// ConversationListing is a conversation joined with the other party's
// profile, the last message, and the booking context for the inbox view.
type ConversationListing struct {
	Conversation Conversation    `json:"conversation"`
	OtherParty   *User           `json:"other_party,omitempty"`
	LastMessage  *Message        `json:"last_message,omitempty"`
	Booking      *BookingSummary `json:"booking,omitempty"`
}
