package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"khstayBack/internal/models"
	"khstayBack/internal/repositories"
)

// ChatService manages two-party conversations and their messages.
type ChatService struct {
	ConversationRepo *repositories.ConversationRepository
	Notifier         *NotificationService
}

// GetOrCreateConversation resolves the deterministic conversation for
// the caller and otherUserID, creating it on first contact. Both sides
// calling this concurrently land on the same document.
func (s *ChatService) GetOrCreateConversation(ctx context.Context, otherUserID, rentalID string) (models.Conversation, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return models.Conversation{}, models.ErrUnauthenticated
	}

	id := models.ConversationID(uid, otherUserID)
	conv, err := s.ConversationRepo.Get(ctx, id)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, models.ErrConversationNotFound) {
		return models.Conversation{}, err
	}

	conv = models.Conversation{
		ID:             id,
		ParticipantIDs: []string{uid, otherUserID},
		RentalID:       rentalID,
		CreatedAt:      time.Now(),
		UnreadCounts:   map[string]int64{uid: 0, otherUserID: 0},
	}
	if err := s.ConversationRepo.Create(ctx, conv); err != nil {
		return models.Conversation{}, err
	}
	return conv, nil
}

func (s *ChatService) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return s.ConversationRepo.ListForUser(ctx, uid)
}

func (s *ChatService) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	if _, err := s.requireParticipant(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.ConversationRepo.ListMessages(ctx, conversationID)
}

// SendMessage appends the message and the conversation metadata update
// as one atomic unit, then fans out a best-effort notification to the
// receiver. Only the receiver's unread counter moves.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, text string) (models.Message, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return models.Message{}, models.ErrUnauthenticated
	}
	conv, err := s.ConversationRepo.Get(ctx, conversationID)
	if err != nil {
		return models.Message{}, err
	}
	if !conv.HasParticipant(uid) {
		return models.Message{}, models.ErrPermissionDenied
	}

	receiver := conv.ParticipantIDs[0]
	if receiver == uid && len(conv.ParticipantIDs) > 1 {
		receiver = conv.ParticipantIDs[1]
	}

	msg := models.Message{
		ID:         uuid.NewString(),
		SenderID:   uid,
		ReceiverID: receiver,
		Message:    text,
		Timestamp:  time.Now(),
	}
	if err := s.ConversationRepo.AppendMessage(ctx, conversationID, msg.ID, msg); err != nil {
		return models.Message{}, err
	}

	s.Notifier.Notify(ctx, models.Notification{
		ReceiverID: receiver,
		SenderID:   uid,
		Title:      "New Message",
		Message:    text,
		Type:       models.NotificationNewMessage,
		RentalID:   conv.RentalID,
	})
	return msg, nil
}

// EditMessage rewrites the text of the caller's own message.
func (s *ChatService) EditMessage(ctx context.Context, conversationID, messageID, newText string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	msg, err := s.ConversationRepo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != uid {
		return models.ErrPermissionDenied
	}
	now := time.Now()
	return s.ConversationRepo.UpdateMessage(ctx, conversationID, messageID, map[string]interface{}{
		"message":  newText,
		"edited":   true,
		"editedAt": now,
	})
}

// DeleteMessage soft-deletes the caller's own message, keeping its slot
// in the conversation with a placeholder text.
func (s *ChatService) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	msg, err := s.ConversationRepo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != uid {
		return models.ErrPermissionDenied
	}
	return s.ConversationRepo.UpdateMessage(ctx, conversationID, messageID, map[string]interface{}{
		"message": models.DeletedMessagePlaceholder,
		"deleted": true,
	})
}

// MarkRead zeroes the caller's unread counter on the conversation.
func (s *ChatService) MarkRead(ctx context.Context, conversationID string) error {
	uid, err := s.requireParticipant(ctx, conversationID)
	if err != nil {
		return err
	}
	return s.ConversationRepo.ResetUnread(ctx, conversationID, uid)
}

// DeleteConversationForUser hides the conversation from the caller's
// list without touching the other participant's view.
func (s *ChatService) DeleteConversationForUser(ctx context.Context, conversationID string) error {
	uid, err := s.requireParticipant(ctx, conversationID)
	if err != nil {
		return err
	}
	return s.ConversationRepo.SetDeletedFor(ctx, conversationID, uid)
}

// TotalUnread sums the caller's unread counters across their visible
// conversations, for the app badge.
func (s *ChatService) TotalUnread(ctx context.Context) (int64, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return 0, models.ErrUnauthenticated
	}
	convs, err := s.ConversationRepo.ListForUser(ctx, uid)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, c := range convs {
		total += c.UnreadCounts[uid]
	}
	return total, nil
}

func (s *ChatService) requireParticipant(ctx context.Context, conversationID string) (string, error) {
	uid, ok := callerID(ctx)
	if !ok {
		return "", models.ErrUnauthenticated
	}
	conv, err := s.ConversationRepo.Get(ctx, conversationID)
	if err != nil {
		return "", err
	}
	if !conv.HasParticipant(uid) {
		return "", models.ErrPermissionDenied
	}
	return uid, nil
}
