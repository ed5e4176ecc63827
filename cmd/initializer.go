package main

import (
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"khstayBack/internal/config"
	"khstayBack/internal/handlers"
	"khstayBack/internal/push"
	"khstayBack/internal/repositories"
	"khstayBack/internal/services"
	"khstayBack/internal/store"
	"khstayBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	tokenManager *utils.Manager
	wsManager    *WebSocketManager

	notificationService *services.NotificationService

	bookingHandler      *handlers.BookingHandler
	rentalHandler       *handlers.RentalHandler
	chatHandler         *handlers.ChatHandler
	notificationHandler *handlers.NotificationHandler
	favoriteHandler     *handlers.FavoriteHandler
	tokenHandler        *handlers.TokenHandler
}

func initializeApp(cfg config.Config, fs *firestore.Client, fcm *messaging.Client, rdb *redis.Client, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}

	st := store.NewFirestoreStore(fs)

	// Repositories
	bookingRepo := &repositories.BookingRepository{Store: st}
	rentalRepo := &repositories.RentalRepository{Store: st}
	notificationRepo := &repositories.NotificationRepository{Store: st}
	conversationRepo := &repositories.ConversationRepository{Store: st}
	tokenRepo := &repositories.TokenRepository{Store: st}
	favoriteRepo := &repositories.FavoriteRepository{Store: st}
	recentRepo := &repositories.RecentViewedRepository{Store: st}
	popularCache := &repositories.PopularCache{Client: rdb, TTL: time.Minute}

	// Services
	popularity := &services.PopularityService{RentalRepo: rentalRepo, ErrorLog: errorLog}
	notifier := &services.NotificationService{
		NotificationRepo: notificationRepo,
		TokenRepo:        tokenRepo,
		Push:             push.NewFCMSender(fcm),
		ErrorLog:         errorLog,
	}
	bookingService := &services.BookingService{
		BookingRepo: bookingRepo,
		RentalRepo:  rentalRepo,
		Popularity:  popularity,
		Notifier:    notifier,
		ErrorLog:    errorLog,
	}
	rentalService := &services.RentalService{
		RentalRepo: rentalRepo,
		RecentRepo: recentRepo,
		Popularity: popularity,
		Cache:      popularCache,
		ErrorLog:   errorLog,
	}
	chatService := &services.ChatService{
		ConversationRepo: conversationRepo,
		Notifier:         notifier,
	}
	favoriteService := &services.FavoriteService{
		FavoriteRepo: favoriteRepo,
		RentalRepo:   rentalRepo,
		Popularity:   popularity,
	}
	tokenService := &services.TokenService{TokenRepo: tokenRepo}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		tokenManager:        tokenManager,
		notificationService: notifier,
		bookingHandler:      &handlers.BookingHandler{Service: bookingService},
		rentalHandler:       &handlers.RentalHandler{Service: rentalService},
		chatHandler:         &handlers.ChatHandler{Service: chatService},
		notificationHandler: &handlers.NotificationHandler{Service: notifier},
		favoriteHandler:     &handlers.FavoriteHandler{Service: favoriteService},
		tokenHandler:        &handlers.TokenHandler{Service: tokenService},
	}, nil
}
