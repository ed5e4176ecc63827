package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	publicMiddleware := standardMiddleware.Append(app.optionalAuth)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Bookings
	mux.Post("/booking", authMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Get("/booking/my", authMiddleware.ThenFunc(app.bookingHandler.ListMyBookings))
	mux.Get("/booking/incoming", authMiddleware.ThenFunc(app.bookingHandler.ListIncomingBookings))
	mux.Get("/booking/:id", authMiddleware.ThenFunc(app.bookingHandler.GetBooking))
	mux.Put("/booking/:id/approve", authMiddleware.ThenFunc(app.bookingHandler.ApproveBooking))
	mux.Put("/booking/:id/reject", authMiddleware.ThenFunc(app.bookingHandler.RejectBooking))
	mux.Put("/booking/:id/cancel", authMiddleware.ThenFunc(app.bookingHandler.CancelBooking))
	mux.Del("/booking/:id", authMiddleware.ThenFunc(app.bookingHandler.DeleteBooking))

	// Rentals
	mux.Post("/rental", authMiddleware.ThenFunc(app.rentalHandler.CreateRental))
	mux.Post("/rental/photo", authMiddleware.ThenFunc(app.rentalHandler.UploadPhoto))
	mux.Get("/rental/popular", publicMiddleware.ThenFunc(app.rentalHandler.ListPopular))
	mux.Get("/rental/my", authMiddleware.ThenFunc(app.rentalHandler.ListMyRentals))
	mux.Get("/rental/recent", authMiddleware.ThenFunc(app.rentalHandler.RecentlyViewed))
	mux.Put("/rental/:id/archive", authMiddleware.ThenFunc(app.rentalHandler.ArchiveRental))
	mux.Get("/rental/:id", publicMiddleware.ThenFunc(app.rentalHandler.GetRental))

	// Favorites
	mux.Get("/favorites", authMiddleware.ThenFunc(app.favoriteHandler.ListFavorites))
	mux.Get("/favorites/check/:id", authMiddleware.ThenFunc(app.favoriteHandler.IsFavorite))
	mux.Post("/favorites/:id", authMiddleware.ThenFunc(app.favoriteHandler.AddFavorite))
	mux.Del("/favorites", authMiddleware.ThenFunc(app.favoriteHandler.ClearFavorites))
	mux.Del("/favorites/:id", authMiddleware.ThenFunc(app.favoriteHandler.RemoveFavorite))

	// Chat
	mux.Post("/conversation", authMiddleware.ThenFunc(app.chatHandler.GetOrCreateConversation))
	mux.Get("/conversation", authMiddleware.ThenFunc(app.chatHandler.ListConversations))
	mux.Get("/conversation/unread", authMiddleware.ThenFunc(app.chatHandler.UnreadCount))
	mux.Get("/conversation/:id/messages", authMiddleware.ThenFunc(app.chatHandler.ListMessages))
	mux.Post("/conversation/:id/messages", authMiddleware.ThenFunc(app.chatHandler.SendMessage))
	mux.Put("/conversation/:id/messages/:message_id", authMiddleware.ThenFunc(app.chatHandler.EditMessage))
	mux.Del("/conversation/:id/messages/:message_id", authMiddleware.ThenFunc(app.chatHandler.DeleteMessage))
	mux.Put("/conversation/:id/read", authMiddleware.ThenFunc(app.chatHandler.MarkConversationRead))
	mux.Del("/conversation/:id", authMiddleware.ThenFunc(app.chatHandler.DeleteConversation))

	// Notifications
	mux.Get("/notifications", authMiddleware.ThenFunc(app.notificationHandler.ListNotifications))
	mux.Put("/notifications/read_all", authMiddleware.ThenFunc(app.notificationHandler.MarkAllNotificationsRead))
	mux.Put("/notifications/:id/read", authMiddleware.ThenFunc(app.notificationHandler.MarkNotificationRead))

	// Device tokens
	mux.Post("/fcm/token", authMiddleware.ThenFunc(app.tokenHandler.RegisterToken))
	mux.Del("/fcm/token", authMiddleware.ThenFunc(app.tokenHandler.UnregisterToken))

	// Live notification stream
	mux.Get("/ws/notifications", http.HandlerFunc(app.WebSocketHandler))

	return mux
}
