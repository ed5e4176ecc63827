package repositories

import (
	"context"
	"errors"

	"khstayBack/internal/models"
	"khstayBack/internal/store"
)

type ConversationRepository struct {
	Store store.Store
}

func (r *ConversationRepository) Get(ctx context.Context, id string) (models.Conversation, error) {
	data, err := r.Store.Get(ctx, colConversations, id)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return models.Conversation{}, models.ErrConversationNotFound
		}
		return models.Conversation{}, err
	}
	return conversationFromDoc(id, data), nil
}

func (r *ConversationRepository) Create(ctx context.Context, c models.Conversation) error {
	unread := make(map[string]interface{}, len(c.ParticipantIDs))
	for _, uid := range c.ParticipantIDs {
		unread[uid] = int64(0)
	}
	doc := map[string]interface{}{
		"participantIds":      c.ParticipantIDs,
		"createdAt":           c.CreatedAt,
		"lastMessage":         "",
		"lastMessageTime":     c.CreatedAt,
		"lastMessageSenderId": "",
		"unreadCounts":        unread,
	}
	if c.RentalID != "" {
		doc["rentalId"] = c.RentalID
	}
	return r.Store.Set(ctx, colConversations, c.ID, doc)
}

// AppendMessage writes the message, the conversation metadata and the
// receiver's unread increment as one atomic batch.
func (r *ConversationRepository) AppendMessage(ctx context.Context, conversationID, messageID string, m models.Message) error {
	batch := r.Store.Batch()
	batch.Set(messagesCol(conversationID), messageID, map[string]interface{}{
		"senderId":   m.SenderID,
		"receiverId": m.ReceiverID,
		"message":    m.Message,
		"timestamp":  m.Timestamp,
		"read":       false,
	})
	batch.Update(colConversations, conversationID, map[string]interface{}{
		"lastMessage":                  m.Message,
		"lastMessageTime":              m.Timestamp,
		"lastMessageSenderId":          m.SenderID,
		"unreadCounts." + m.ReceiverID: store.Inc(1),
	})
	return batch.Commit(ctx)
}

func (r *ConversationRepository) GetMessage(ctx context.Context, conversationID, messageID string) (models.Message, error) {
	data, err := r.Store.Get(ctx, messagesCol(conversationID), messageID)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return models.Message{}, models.ErrMessageNotFound
		}
		return models.Message{}, err
	}
	return messageFromDoc(messageID, data), nil
}

func (r *ConversationRepository) UpdateMessage(ctx context.Context, conversationID, messageID string, fields map[string]interface{}) error {
	err := r.Store.Update(ctx, messagesCol(conversationID), messageID, fields)
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrMessageNotFound
	}
	return err
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	docs, err := r.Store.Query(ctx, messagesCol(conversationID), store.Query{
		OrderBy: []store.Order{{Field: "timestamp"}},
	})
	if err != nil {
		return nil, err
	}
	msgs := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		msgs = append(msgs, messageFromDoc(doc.ID, doc.Data))
	}
	return msgs, nil
}

func (r *ConversationRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	err := r.Store.Update(ctx, colConversations, conversationID, map[string]interface{}{
		"unreadCounts." + userID: int64(0),
	})
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrConversationNotFound
	}
	return err
}

func (r *ConversationRepository) SetDeletedFor(ctx context.Context, conversationID, userID string) error {
	err := r.Store.Update(ctx, colConversations, conversationID, map[string]interface{}{
		"deletedFor." + userID: true,
	})
	if errors.Is(err, store.ErrDocNotFound) {
		return models.ErrConversationNotFound
	}
	return err
}

func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	docs, err := r.Store.Query(ctx, colConversations, store.Query{
		Filters: []store.Filter{{Field: "participantIds", Op: "array-contains", Value: userID}},
		OrderBy: []store.Order{{Field: "lastMessageTime", Desc: true}},
	})
	if err != nil {
		return nil, err
	}
	convs := make([]models.Conversation, 0, len(docs))
	for _, doc := range docs {
		c := conversationFromDoc(doc.ID, doc.Data)
		if c.DeletedFor[userID] {
			continue
		}
		convs = append(convs, c)
	}
	return convs, nil
}

func conversationFromDoc(id string, data map[string]interface{}) models.Conversation {
	return models.Conversation{
		ID:                  id,
		ParticipantIDs:      store.StrSlice(data, "participantIds"),
		RentalID:            store.Str(data, "rentalId"),
		LastMessage:         store.Str(data, "lastMessage"),
		LastMessageTime:     store.Time(data, "lastMessageTime"),
		LastMessageSenderID: store.Str(data, "lastMessageSenderId"),
		UnreadCounts:        store.IntMap(data, "unreadCounts"),
		DeletedFor:          store.BoolMap(data, "deletedFor"),
		CreatedAt:           store.Time(data, "createdAt"),
	}
}

func messageFromDoc(id string, data map[string]interface{}) models.Message {
	m := models.Message{
		ID:         id,
		SenderID:   store.Str(data, "senderId"),
		ReceiverID: store.Str(data, "receiverId"),
		Message:    store.Str(data, "message"),
		Timestamp:  store.Time(data, "timestamp"),
		Read:       store.Bool(data, "read"),
		Edited:     store.Bool(data, "edited"),
		Deleted:    store.Bool(data, "deleted"),
	}
	if t := store.Time(data, "editedAt"); !t.IsZero() {
		m.EditedAt = &t
	}
	return m
}
