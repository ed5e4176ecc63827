package services

import (
	"context"

	"khstayBack/utils"
)

// callerID resolves the authenticated user from the request context.
func callerID(ctx context.Context) (string, bool) {
	return utils.UserIDFromContext(ctx)
}
