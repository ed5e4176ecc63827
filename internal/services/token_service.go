package services

import (
	"context"

	"khstayBack/internal/models"
	"khstayBack/internal/repositories"
)

// TokenService registers device push tokens for the caller.
type TokenService struct {
	TokenRepo *repositories.TokenRepository
}

// Register binds the token to the caller, claiming it in the reverse
// index. A token moving between accounts is rebound to the new owner.
func (s *TokenService) Register(ctx context.Context, token string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	return s.TokenRepo.Save(ctx, uid, token)
}

// Unregister drops the token from the reverse index, e.g. on logout.
// Only the token's current owner may drop it.
func (s *TokenService) Unregister(ctx context.Context, token string) error {
	uid, ok := callerID(ctx)
	if !ok {
		return models.ErrUnauthenticated
	}
	owner, err := s.TokenRepo.OwnerOf(ctx, token)
	if err != nil {
		return err
	}
	if owner != "" && owner != uid {
		return models.ErrPermissionDenied
	}
	return s.TokenRepo.Delete(ctx, token)
}
