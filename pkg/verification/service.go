// Package verification manages the single use tokens sent to users by email to confirm their address or reset
// their password.
package verification

import (
	"context"
	"log/slog"
	"time"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository verificationRepository, ttl time.Duration) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		ttl:        ttl,
		now:        time.Now,
	}
}

type verificationRepository interface {
	save(ctx context.Context, token *model.VerificationToken) error
	findByToken(ctx context.Context, token string) (*model.VerificationToken, error)
	findByUserId(ctx context.Context, userId uint) (*model.VerificationToken, error)
	delete(ctx context.Context, id uint) error
	deleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Service struct {
	logger     *slog.Logger
	repository verificationRepository
	ttl        time.Duration
	now        func() time.Time
}

// Save stores value as the users verification token. A user only ever has one token so an existing one is
// overwritten, which invalidates any link sent before.
func (s Service) Save(ctx context.Context, user *model.User, value string, tokenType string) (*model.VerificationToken, error) {
	token, err := s.repository.findByUserId(ctx, user.ID)
	if err != nil {
		if !errdef.IsNotFound(err) {
			return nil, err
		}
		token = &model.VerificationToken{UserID: user.ID}
	}

	token.Token = value
	token.Type = tokenType
	token.ExpiresAt = s.now().Add(s.ttl)

	if err := s.repository.save(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// FindByToken returns the verification token together with its user.
func (s Service) FindByToken(ctx context.Context, value string) (*model.VerificationToken, error) {
	return s.repository.findByToken(ctx, value)
}

// FindValid returns the token if it exists, is of given type and has not expired. Any other case is reported as
// an invalid link.
func (s Service) FindValid(ctx context.Context, value string, tokenType string, invalidMessage string) (*model.VerificationToken, error) {
	token, err := s.repository.findByToken(ctx, value)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewInvalidLink("%s", invalidMessage)
		}
		return nil, err
	}

	if token.Type != tokenType || token.IsExpired(s.now()) {
		return nil, errdef.NewInvalidLink("%s", invalidMessage)
	}

	return token, nil
}

func (s Service) Delete(ctx context.Context, token *model.VerificationToken) error {
	return s.repository.delete(ctx, token.ID)
}

// PurgeExpired deletes every token which has expired.
func (s Service) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repository.deleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.logger.InfoContext(ctx, "Purged expired verification tokens", "count", deleted)
	}
	return deleted, nil
}

// PurgeExpiredEvery runs PurgeExpired on every tick of interval until ctx is done.
func (s Service) PurgeExpiredEvery(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.PurgeExpired(ctx); err != nil {
				s.logger.ErrorContext(ctx, "Failed to purge expired verification tokens", "error", err)
			}
		}
	}
}
