package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/internal/identity"
	"github.com/fastygo/taskbuddy/repository"
	"github.com/fastygo/taskbuddy/usecase"
)

type UseCase struct {
	provider identity.Provider
	sessions repository.SessionRepository
	notify   usecase.Notifier
	logger   *zap.Logger
	ttl      time.Duration
	now      func() time.Time
}

func New(provider identity.Provider, sessions repository.SessionRepository, notifier usecase.Notifier, logger *zap.Logger, ttl time.Duration) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = usecase.NopNotifier{}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UseCase{
		provider: provider,
		sessions: sessions,
		notify:   notifier,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SignIn exchanges a provider credential for a fresh session.
func (uc *UseCase) SignIn(ctx context.Context, cred identity.Credential) (*domain.Session, error) {
	ident, err := uc.provider.SignIn(ctx, cred)
	if err != nil {
		uc.logger.Warn("sign in failed", zap.Error(err))
		uc.notify.Notify(ctx, domain.Failure("Failed to sign in with Google. Please try again."))
		if !domain.IsAuth(err) {
			err = domain.WrapError(domain.ErrCodeUnauthorized, "sign in failed", err)
		}
		return nil, err
	}

	now := uc.now()
	session := &domain.Session{
		ID:          uuid.NewString(),
		UID:         ident.UID,
		DisplayName: ident.DisplayName,
		PhotoURL:    ident.PhotoURL,
		CreatedAt:   now,
		ExpiresAt:   now.Add(uc.ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Error("failed to save session", zap.Error(err))
		uc.notify.Notify(ctx, domain.Failure("Failed to sign in with Google. Please try again."))
		return nil, err
	}

	uc.logger.Info("user signed in", zap.String("uid", session.UID))
	uc.notify.Notify(ctx, domain.Info("Success", "Successfully signed in with Google"))
	return session, nil
}

// SignOut tears the session down on both sides of the identity boundary.
func (uc *UseCase) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrSessionNotFound
	}

	if err := uc.provider.SignOut(ctx, session.UID); err != nil {
		uc.notify.Notify(ctx, domain.Failure("Failed to sign out"))
		if !domain.IsAuth(err) {
			err = domain.WrapError(domain.ErrCodeUnauthorized, "sign out failed", err)
		}
		return err
	}
	if err := uc.sessions.Delete(ctx, session.ID); err != nil {
		uc.notify.Notify(ctx, domain.Failure("Failed to sign out"))
		return err
	}

	uc.notify.Notify(ctx, domain.Info("Success", "Successfully signed out"))
	return nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends a live session. ttl is capped at the configured
// session TTL; zero or negative means the full TTL.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	if ttl <= 0 || ttl > uc.ttl {
		ttl = uc.ttl
	}
	if _, err := uc.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, ttl); err != nil {
		return nil, err
	}
	return uc.sessions.Get(ctx, sessionID)
}
