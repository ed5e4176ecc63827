package repositories

import (
	"context"
	"errors"

	"khstayBack/internal/models"
	"khstayBack/internal/store"
)

// TokenRepository keeps the FCM token registry: the token on the user
// document plus a reverse index tokens/{token} -> uid used to catch
// misrouted sends.
type TokenRepository struct {
	Store store.Store
}

func (r *TokenRepository) Save(ctx context.Context, userID, token string) error {
	err := r.Store.Update(ctx, colUsers, userID, map[string]interface{}{"fcmToken": token})
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return models.ErrUserNotFound
		}
		return err
	}
	return r.Store.Set(ctx, colTokens, token, map[string]interface{}{"uid": userID})
}

func (r *TokenRepository) TokenForUser(ctx context.Context, userID string) (string, error) {
	data, err := r.Store.Get(ctx, colUsers, userID)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return "", models.ErrUserNotFound
		}
		return "", err
	}
	return store.Str(data, "fcmToken"), nil
}

// OwnerOf resolves the reverse index. An unregistered token resolves to "".
func (r *TokenRepository) OwnerOf(ctx context.Context, token string) (string, error) {
	data, err := r.Store.Get(ctx, colTokens, token)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return "", nil
		}
		return "", err
	}
	return store.Str(data, "uid"), nil
}

func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	return r.Store.Delete(ctx, colTokens, token)
}
