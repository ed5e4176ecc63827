package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"khstayBack/internal/models"
	"khstayBack/internal/repositories"
	"khstayBack/internal/store"
	"khstayBack/utils"
)

type pushRecord struct {
	Token     string
	TargetUID string
	Title     string
	Body      string
	Type      string
	Data      map[string]string
}

type fakePush struct {
	mu   sync.Mutex
	fail bool
	sent []pushRecord
}

func (f *fakePush) Send(ctx context.Context, token, targetUID, title, body, msgType string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("push backend down")
	}
	f.sent = append(f.sent, pushRecord{token, targetUID, title, body, msgType, data})
	return nil
}

func (f *fakePush) records() []pushRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]pushRecord, len(f.sent))
	copy(out, f.sent)
	return out
}

type testEnv struct {
	store *store.MemStore
	push  *fakePush

	bookingRepo      *repositories.BookingRepository
	rentalRepo       *repositories.RentalRepository
	notificationRepo *repositories.NotificationRepository
	conversationRepo *repositories.ConversationRepository
	tokenRepo        *repositories.TokenRepository
	favoriteRepo     *repositories.FavoriteRepository
	recentRepo       *repositories.RecentViewedRepository

	popularity    *PopularityService
	notifications *NotificationService
	bookings      *BookingService
	rentals       *RentalService
	chat          *ChatService
	favorites     *FavoriteService
	tokens        *TokenService
}

func newTestEnv() *testEnv {
	ms := store.NewMemStore()
	p := &fakePush{}

	env := &testEnv{
		store:            ms,
		push:             p,
		bookingRepo:      &repositories.BookingRepository{Store: ms},
		rentalRepo:       &repositories.RentalRepository{Store: ms},
		notificationRepo: &repositories.NotificationRepository{Store: ms},
		conversationRepo: &repositories.ConversationRepository{Store: ms},
		tokenRepo:        &repositories.TokenRepository{Store: ms},
		favoriteRepo:     &repositories.FavoriteRepository{Store: ms},
		recentRepo:       &repositories.RecentViewedRepository{Store: ms},
	}

	env.popularity = &PopularityService{RentalRepo: env.rentalRepo}
	env.notifications = &NotificationService{
		NotificationRepo: env.notificationRepo,
		TokenRepo:        env.tokenRepo,
		Push:             p,
	}
	env.bookings = &BookingService{
		BookingRepo: env.bookingRepo,
		RentalRepo:  env.rentalRepo,
		Popularity:  env.popularity,
		Notifier:    env.notifications,
	}
	env.rentals = &RentalService{
		RentalRepo: env.rentalRepo,
		RecentRepo: env.recentRepo,
		Popularity: env.popularity,
		Cache:      &repositories.PopularCache{},
	}
	env.chat = &ChatService{
		ConversationRepo: env.conversationRepo,
		Notifier:         env.notifications,
	}
	env.favorites = &FavoriteService{
		FavoriteRepo: env.favoriteRepo,
		RentalRepo:   env.rentalRepo,
		Popularity:   env.popularity,
	}
	env.tokens = &TokenService{TokenRepo: env.tokenRepo}
	return env
}

func (e *testEnv) seedUser(t *testing.T, uid string) {
	t.Helper()
	if err := e.store.Set(context.Background(), "users", uid, map[string]interface{}{"name": uid}); err != nil {
		t.Fatal(err)
	}
}

func seedRentalModel(owner, title string, price float64) models.Rental {
	now := time.Now()
	return models.Rental{
		OwnerID:   owner,
		Title:     title,
		Price:     price,
		Status:    models.RentalStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *testEnv) seedRental(t *testing.T, owner, title string, price float64) string {
	t.Helper()
	id, err := e.rentalRepo.Create(context.Background(), seedRentalModel(owner, title, price))
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (e *testEnv) rental(t *testing.T, id string) models.Rental {
	t.Helper()
	r, err := e.rentalRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func (e *testEnv) notificationsFor(t *testing.T, uid string) []models.Notification {
	t.Helper()
	ns, err := e.notificationRepo.ListForUser(context.Background(), uid, 0)
	if err != nil {
		t.Fatal(err)
	}
	return ns
}

func as(uid string) context.Context {
	return utils.ContextWithUserID(context.Background(), uid)
}

func draft(rentalID string, nights int) models.BookingDraft {
	checkIn := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	return models.BookingDraft{
		RentalID:     rentalID,
		GuestName:    "Aruzhan",
		GuestPhone:   "+77010000000",
		GuestEmail:   "aruzhan@example.com",
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.Add(time.Duration(nights) * 24 * time.Hour),
	}
}
