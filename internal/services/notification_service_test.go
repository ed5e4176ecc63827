package services

import (
	"context"
	"errors"
	"testing"

	"khstayBack/internal/models"
)

func TestNotifyDeliversBothLegs(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	if err := env.tokens.Register(as("alice"), "alice-token"); err != nil {
		t.Fatal(err)
	}

	env.notifications.Notify(context.Background(), models.Notification{
		ReceiverID: "alice",
		SenderID:   "bob",
		Title:      "New Message",
		Message:    "hi",
		Type:       models.NotificationNewMessage,
	})

	if ns := env.notificationsFor(t, "alice"); len(ns) != 1 {
		t.Fatalf("in-app notifications = %d; want 1", len(ns))
	}
	sent := env.push.records()
	if len(sent) != 1 {
		t.Fatalf("pushes = %d; want 1", len(sent))
	}
	if sent[0].Token != "alice-token" || sent[0].TargetUID != "alice" {
		t.Errorf("push = %+v", sent[0])
	}
}

func TestNotifySkipsPushWithoutToken(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")

	env.notifications.Notify(context.Background(), models.Notification{
		ReceiverID: "alice",
		Title:      "Booking Update",
		Type:       models.NotificationBookingRejected,
	})

	if ns := env.notificationsFor(t, "alice"); len(ns) != 1 {
		t.Fatalf("in-app notifications = %d; want 1", len(ns))
	}
	if sent := env.push.records(); len(sent) != 0 {
		t.Errorf("pushes = %d; want 0", len(sent))
	}
}

func TestNotifyRefusesMisownedToken(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "mallory")

	// Alice registered the token, then mallory re-registered the same
	// device. The reverse index now points at mallory.
	if err := env.tokens.Register(as("alice"), "shared-token"); err != nil {
		t.Fatal(err)
	}
	if err := env.tokens.Register(as("mallory"), "shared-token"); err != nil {
		t.Fatal(err)
	}

	env.notifications.Notify(context.Background(), models.Notification{
		ReceiverID: "alice",
		Title:      "Booking Approved! 🎉",
		Type:       models.NotificationBookingApproved,
	})

	if sent := env.push.records(); len(sent) != 0 {
		t.Errorf("pushes = %d; want 0 for a token owned by someone else", len(sent))
	}
	// The in-app record is unaffected.
	if ns := env.notificationsFor(t, "alice"); len(ns) != 1 {
		t.Errorf("in-app notifications = %d; want 1", len(ns))
	}
}

func TestMarkReadIsScopedToOwner(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	env.notifications.Notify(context.Background(), models.Notification{
		ReceiverID: "alice",
		Title:      "Booking Update",
		Type:       models.NotificationBookingChanged,
	})
	ns := env.notificationsFor(t, "alice")
	if len(ns) != 1 {
		t.Fatalf("notifications = %d; want 1", len(ns))
	}

	if err := env.notifications.MarkRead(as("bob"), ns[0].ID); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("foreign mark read: err = %v; want ErrPermissionDenied", err)
	}
	if err := env.notifications.MarkRead(as("alice"), ns[0].ID); err != nil {
		t.Fatal(err)
	}
	if got := env.notificationsFor(t, "alice"); !got[0].Read {
		t.Error("notification still unread")
	}
}

func TestMarkAllRead(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")

	for i := 0; i < 3; i++ {
		env.notifications.Notify(context.Background(), models.Notification{
			ReceiverID: "alice",
			Title:      "Booking Update",
			Type:       models.NotificationBookingChanged,
		})
	}
	if err := env.notifications.MarkAllRead(as("alice")); err != nil {
		t.Fatal(err)
	}
	for _, n := range env.notificationsFor(t, "alice") {
		if !n.Read {
			t.Errorf("notification %s still unread", n.ID)
		}
	}
}

func TestUnregisterTokenOwnerOnly(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	if err := env.tokens.Register(as("alice"), "alice-token"); err != nil {
		t.Fatal(err)
	}

	if err := env.tokens.Unregister(as("bob"), "alice-token"); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("foreign unregister: err = %v; want ErrPermissionDenied", err)
	}
	if err := env.tokens.Unregister(as("alice"), "alice-token"); err != nil {
		t.Fatal(err)
	}
	owner, err := env.tokenRepo.OwnerOf(context.Background(), "alice-token")
	if err != nil {
		t.Fatal(err)
	}
	if owner != "" {
		t.Errorf("owner after unregister = %q; want empty", owner)
	}
}
