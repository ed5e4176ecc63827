// Package push is the fire-and-forget delivery channel for device
// notifications. Delivery failures are reported to the caller for logging
// but never block or roll back the triggering operation.
package push

import "context"

// Sender delivers one notification to one device token.
type Sender interface {
	Send(ctx context.Context, token, targetUID, title, body, msgType string, data map[string]string) error
}
