package services

import (
	"errors"
	"testing"

	"khstayBack/internal/models"
)

func TestGetOrCreateConversationIsSymmetric(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	c1, err := env.chat.GetOrCreateConversation(as("alice"), "bob", "rental-1")
	if err != nil {
		t.Fatal(err)
	}
	c2, err := env.chat.GetOrCreateConversation(as("bob"), "alice", "")
	if err != nil {
		t.Fatal(err)
	}
	if c1.ID != c2.ID {
		t.Errorf("conversation ids differ: %q vs %q", c1.ID, c2.ID)
	}
	if c1.ID != "alice_bob" {
		t.Errorf("conversation id = %q; want alice_bob", c1.ID)
	}
	// The second call must not reset the rental reference.
	if c2.RentalID != "rental-1" {
		t.Errorf("rentalId = %q; want rental-1", c2.RentalID)
	}
}

func TestSendMessageBumpsOnlyReceiverUnread(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	conv, err := env.chat.GetOrCreateConversation(as("alice"), "bob", "")
	if err != nil {
		t.Fatal(err)
	}
	msg, err := env.chat.SendMessage(as("alice"), conv.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if msg.SenderID != "alice" || msg.ReceiverID != "bob" {
		t.Errorf("message parties = %q -> %q; want alice -> bob", msg.SenderID, msg.ReceiverID)
	}

	got, err := env.conversationRepo.Get(as("alice"), conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.UnreadCounts["bob"] != 1 {
		t.Errorf("bob unread = %d; want 1", got.UnreadCounts["bob"])
	}
	if got.UnreadCounts["alice"] != 0 {
		t.Errorf("alice unread = %d; want 0", got.UnreadCounts["alice"])
	}
	if got.LastMessage != "hello" || got.LastMessageSenderID != "alice" {
		t.Errorf("conversation metadata = %q from %q", got.LastMessage, got.LastMessageSenderID)
	}

	ns := env.notificationsFor(t, "bob")
	if len(ns) != 1 || ns[0].Type != models.NotificationNewMessage {
		t.Fatalf("bob notifications = %+v; want one new_message", ns)
	}
}

func TestSendMessageByOutsiderDenied(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	conv, err := env.chat.GetOrCreateConversation(as("alice"), "bob", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.chat.SendMessage(as("eve"), conv.ID, "hi"); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("err = %v; want ErrPermissionDenied", err)
	}
}

func TestEditMessageSenderOnly(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	conv, _ := env.chat.GetOrCreateConversation(as("alice"), "bob", "")
	msg, err := env.chat.SendMessage(as("alice"), conv.ID, "helo")
	if err != nil {
		t.Fatal(err)
	}

	if err := env.chat.EditMessage(as("bob"), conv.ID, msg.ID, "hijacked"); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("receiver edit: err = %v; want ErrPermissionDenied", err)
	}
	if err := env.chat.EditMessage(as("alice"), conv.ID, msg.ID, "hello"); err != nil {
		t.Fatal(err)
	}

	got, err := env.conversationRepo.GetMessage(as("alice"), conv.ID, msg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Message != "hello" || !got.Edited || got.EditedAt == nil {
		t.Errorf("edited message = %+v", got)
	}
}

func TestDeleteMessageLeavesPlaceholder(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	conv, _ := env.chat.GetOrCreateConversation(as("alice"), "bob", "")
	msg, err := env.chat.SendMessage(as("alice"), conv.ID, "secret")
	if err != nil {
		t.Fatal(err)
	}

	if err := env.chat.DeleteMessage(as("bob"), conv.ID, msg.ID); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("receiver delete: err = %v; want ErrPermissionDenied", err)
	}
	if err := env.chat.DeleteMessage(as("alice"), conv.ID, msg.ID); err != nil {
		t.Fatal(err)
	}

	msgs, err := env.chat.ListMessages(as("bob"), conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 {
		t.Fatalf("messages = %d; want the placeholder to stay", len(msgs))
	}
	if !msgs[0].Deleted || msgs[0].Message != models.DeletedMessagePlaceholder {
		t.Errorf("deleted message = %+v", msgs[0])
	}
}

func TestMarkReadResetsOwnCounter(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	conv, _ := env.chat.GetOrCreateConversation(as("alice"), "bob", "")
	for i := 0; i < 3; i++ {
		if _, err := env.chat.SendMessage(as("alice"), conv.ID, "ping"); err != nil {
			t.Fatal(err)
		}
	}

	total, err := env.chat.TotalUnread(as("bob"))
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("bob total unread = %d; want 3", total)
	}

	if err := env.chat.MarkRead(as("bob"), conv.ID); err != nil {
		t.Fatal(err)
	}
	if total, _ := env.chat.TotalUnread(as("bob")); total != 0 {
		t.Errorf("after mark read: total unread = %d; want 0", total)
	}
}

func TestDeleteConversationHidesOneSideOnly(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	conv, _ := env.chat.GetOrCreateConversation(as("alice"), "bob", "")
	if _, err := env.chat.SendMessage(as("alice"), conv.ID, "hi"); err != nil {
		t.Fatal(err)
	}

	if err := env.chat.DeleteConversationForUser(as("alice"), conv.ID); err != nil {
		t.Fatal(err)
	}

	aliceConvs, err := env.chat.ListConversations(as("alice"))
	if err != nil {
		t.Fatal(err)
	}
	if len(aliceConvs) != 0 {
		t.Errorf("alice still sees %d conversations", len(aliceConvs))
	}
	bobConvs, err := env.chat.ListConversations(as("bob"))
	if err != nil {
		t.Fatal(err)
	}
	if len(bobConvs) != 1 {
		t.Errorf("bob sees %d conversations; want 1", len(bobConvs))
	}
}
