package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/google/uuid"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewListener(logger *slog.Logger, verificationService verificationService, passwordService passwordService, sender sender) *Listener {
	return &Listener{
		logger:              logger,
		verificationService: verificationService,
		passwordService:     passwordService,
		sender:              sender,
	}
}

type verificationService interface {
	Save(ctx context.Context, user *model.User, value string, tokenType string) (*model.VerificationToken, error)
	FindValid(ctx context.Context, value string, tokenType string, invalidMessage string) (*model.VerificationToken, error)
}

type passwordService interface {
	NewRandomPassword() (string, string, error)
	ApplyPassword(ctx context.Context, verificationToken *model.VerificationToken, hashedPassword string) error
}

type sender interface {
	Send(to string, subject string, body string) error
}

type Listener struct {
	logger              *slog.Logger
	verificationService verificationService
	passwordService     passwordService
	sender              sender
}

// Handle decodes the payload of eventType and sends the matching mail. Unknown types and payloads which can't be
// decoded are reported as bad requests.
func (l Listener) Handle(ctx context.Context, eventType string, payload json.RawMessage) error {
	switch eventType {
	case TypeRegistrationComplete:
		var e RegistrationCompleteEvent
		if err := decode(payload, &e); err != nil {
			return err
		}
		return l.OnRegistrationComplete(ctx, e)
	case TypePasswordReset:
		var e PasswordResetEvent
		if err := decode(payload, &e); err != nil {
			return err
		}
		return l.OnPasswordReset(ctx, e)
	case TypeNewPassword:
		var e NewPasswordEvent
		if err := decode(payload, &e); err != nil {
			return err
		}
		return l.OnNewPassword(ctx, e)
	default:
		return errdef.NewBadRequest("unknown email event type %q", eventType)
	}
}

func decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return errdef.NewBadRequest("failed to decode email event: %v", err)
	}
	return nil
}

// OnRegistrationComplete issues an email verification token and mails the confirmation link.
func (l Listener) OnRegistrationComplete(ctx context.Context, e RegistrationCompleteEvent) error {
	if e.User == nil || e.User.ID == 0 {
		return errdef.NewBadRequest("registration event without user")
	}

	token := uuid.NewString()
	if _, err := l.verificationService.Save(ctx, e.User, token, model.VerificationTokenTypeEmail); err != nil {
		return fmt.Errorf("failed to save verification token for user %d: %v", e.User.ID, err)
	}

	link := fmt.Sprintf("%s/register/verify-email?token=%s", e.ApplicationURL, token)
	body := message.Get("email.verification.body", link, link)
	if err := l.sender.Send(e.Email, message.Get("email.verification.subject"), body); err != nil {
		return fmt.Errorf("failed to send verification email: %v", err)
	}

	l.logger.InfoContext(ctx, "Sent verification email", "userId", e.User.ID)
	return nil
}

// OnPasswordReset issues a password token and mails the link which generates a new password.
func (l Listener) OnPasswordReset(ctx context.Context, e PasswordResetEvent) error {
	if e.User == nil || e.User.ID == 0 {
		return errdef.NewBadRequest("password reset event without user")
	}

	token := uuid.NewString()
	if _, err := l.verificationService.Save(ctx, e.User, token, model.VerificationTokenTypePassword); err != nil {
		return fmt.Errorf("failed to save password token for user %d: %v", e.User.ID, err)
	}

	link := fmt.Sprintf("%s/forgotten-password/reset?token=%s", e.ApplicationURL, token)
	body := message.Get("email.passwordReset.body", link, link)
	if err := l.sender.Send(e.Email, message.Get("email.passwordReset.subject"), body); err != nil {
		return fmt.Errorf("failed to send password reset email: %v", err)
	}

	l.logger.InfoContext(ctx, "Sent password reset email", "userId", e.User.ID)
	return nil
}

// OnNewPassword mails a generated password to the owner of the token and only then stores it and consumes the
// token. A failed mail leaves the old password in place and the event can be retried. Events for tokens which
// are no longer valid, like a redelivery of an event already handled, are skipped.
func (l Listener) OnNewPassword(ctx context.Context, e NewPasswordEvent) error {
	token, err := l.verificationService.FindValid(ctx, e.Token, model.VerificationTokenTypePassword, "password token is no longer valid")
	if err != nil {
		if errdef.IsInvalidLink(err) {
			l.logger.InfoContext(ctx, "Skipping new password for invalid token", "userId", e.UserID)
			return nil
		}
		return err
	}
	if token.UserID != e.UserID || token.User == nil {
		return errdef.NewBadRequest("password token doesn't belong to user %d", e.UserID)
	}

	password, hashedPassword, err := l.passwordService.NewRandomPassword()
	if err != nil {
		return err
	}

	body := message.Get("email.newPassword.body", password)
	if err := l.sender.Send(token.User.Email, message.Get("email.newPassword.subject"), body); err != nil {
		return fmt.Errorf("failed to send new password email: %v", err)
	}

	if err := l.passwordService.ApplyPassword(ctx, token, hashedPassword); err != nil {
		return fmt.Errorf("failed to store new password of user %d: %v", e.UserID, err)
	}

	l.logger.InfoContext(ctx, "Sent new password email", "userId", e.UserID)
	return nil
}
