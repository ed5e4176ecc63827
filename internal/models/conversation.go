package models

import (
	"sort"
	"time"
)

// DeletedMessagePlaceholder replaces the text of soft-deleted messages so
// they keep their position in the conversation.
const DeletedMessagePlaceholder = "This message was deleted"

// Conversation is a deduplicated two-party channel. Its document id is
// derived from the sorted participant pair, so either side creating it
// resolves to the same document.
type Conversation struct {
	ID                  string          `json:"id"`
	ParticipantIDs      []string        `json:"participant_ids"`
	RentalID            string          `json:"rental_id,omitempty"`
	LastMessage         string          `json:"last_message"`
	LastMessageTime     time.Time       `json:"last_message_time"`
	LastMessageSenderID string          `json:"last_message_sender_id"`
	UnreadCounts        map[string]int64 `json:"unread_counts"`
	DeletedFor          map[string]bool `json:"deleted_for,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// HasParticipant reports whether uid is one of the two participants.
func (c Conversation) HasParticipant(uid string) bool {
	for _, id := range c.ParticipantIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// ConversationID builds the deterministic conversation id for an unordered
// pair of user ids.
func ConversationID(userA, userB string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}

// Message belongs to exactly one conversation. Only the sender may edit or
// soft-delete it.
type Message struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Message    string     `json:"message"`
	Timestamp  time.Time  `json:"timestamp"`
	Read       bool       `json:"read"`
	Edited     bool       `json:"edited,omitempty"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
	Deleted    bool       `json:"deleted,omitempty"`
}
