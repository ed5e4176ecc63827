package repositories

// Collection names are a compatibility contract with the data the mobile
// clients already wrote; do not rename them.
const (
	colBookings      = "bookings"
	colRentals       = "rental_houses"
	colConversations = "conversations"
	colUsers         = "users"
	colTokens        = "tokens"
)

func notificationsCol(userID string) string {
	return colUsers + "/" + userID + "/notifications"
}

func favoritesCol(userID string) string {
	return colUsers + "/" + userID + "/favorites"
}

func recentViewedCol(userID string) string {
	return colUsers + "/" + userID + "/recent_viewed"
}

func messagesCol(conversationID string) string {
	return colConversations + "/" + conversationID + "/messages"
}
