package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"muaban/internal/domain/entity"
	"muaban/pkg/errors"
	"muaban/pkg/logger"
)

// SessionUseCase is the session gate. It is the only writer of the
// persisted token and username.
type SessionUseCase struct {
	gateway AuthGateway
	store   StateStore
}

func NewSessionUseCase(gateway AuthGateway, store StateStore) *SessionUseCase {
	return &SessionUseCase{
		gateway: gateway,
		store:   store,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (uc *SessionUseCase) Login(ctx context.Context, username, password string) (*entity.Session, error) {
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, errors.Validation(missing...)
	}

	result, err := uc.gateway.Login(ctx, username, password)
	if err != nil {
		// Persisted session state stays untouched on failure.
		return nil, err
	}

	return uc.persist(result.Token, username)
}

func (uc *SessionUseCase) Register(ctx context.Context, input RegisterInput) (*entity.Session, error) {
	var missing []string
	if input.Username == "" {
		missing = append(missing, "username")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, errors.Validation(missing...)
	}
	if input.Password != input.ConfirmPassword {
		return nil, errors.Validation("confirm_password")
	}

	result, err := uc.gateway.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	return uc.persist(result.Token, input.Username)
}

func (uc *SessionUseCase) persist(token, username string) (*entity.Session, error) {
	if err := uc.store.Set(StateKeyToken, token); err != nil {
		return nil, errors.Internal("failed to persist session", err)
	}
	if err := uc.store.Set(StateKeyUsername, username); err != nil {
		return nil, errors.Internal("failed to persist session", err)
	}
	logger.Info("session established for %s", username)
	return &entity.Session{Token: token, Username: username}, nil
}

// IsAuthenticated reports whether a usable session token is persisted.
// Tokens that parse as JWTs are additionally checked for expiry; the
// signature is the backend's concern, not ours.
func (uc *SessionUseCase) IsAuthenticated() bool {
	token := uc.Token()
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		// Opaque token; presence is all we can check.
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err == nil && exp != nil && exp.Before(time.Now()) {
		return false
	}
	return true
}

func (uc *SessionUseCase) Token() string {
	token, err := uc.store.Get(StateKeyToken)
	if err != nil {
		logger.Error("failed to read session token: %v", err)
		return ""
	}
	return token
}

func (uc *SessionUseCase) Username() string {
	username, err := uc.store.Get(StateKeyUsername)
	if err != nil {
		logger.Error("failed to read username: %v", err)
		return ""
	}
	return username
}

func (uc *SessionUseCase) Logout() error {
	for _, key := range []string{StateKeyToken, StateKeyUsername, StateKeySelectedItem} {
		if err := uc.store.Delete(key); err != nil {
			return errors.Internal("failed to clear session", err)
		}
	}
	return nil
}
