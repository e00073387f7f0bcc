// Package email dispatches the emails sent to users. Services publish events to a RabbitMQ queue and a consumer
// turns them into verification tokens and mails.
package email

import (
	"encoding/json"

	"github.com/eventforge/eventforge/pkg/model"
)

const (
	TypeRegistrationComplete = "registrationComplete"
	TypePasswordReset        = "passwordReset"
	TypeNewPassword          = "newPassword"
)

// Event is published by services to request an email.
type Event interface {
	Type() string
}

// RegistrationCompleteEvent is published once an organisation registered. The recipient receives a link to
// confirm the email address.
type RegistrationCompleteEvent struct {
	User           *model.User `json:"user"`
	Email          string      `json:"email"`
	ApplicationURL string      `json:"applicationUrl"`
}

func (e RegistrationCompleteEvent) Type() string {
	return TypeRegistrationComplete
}

// PasswordResetEvent is published when a user forgot the password. The recipient receives a link which issues a
// new password.
type PasswordResetEvent struct {
	User           *model.User `json:"user"`
	Email          string      `json:"email"`
	ApplicationURL string      `json:"applicationUrl"`
}

func (e PasswordResetEvent) Type() string {
	return TypePasswordReset
}

// NewPasswordEvent requests a generated password for the owner of a valid password token. The password itself
// never leaves the listener.
type NewPasswordEvent struct {
	UserID uint   `json:"userId"`
	Token  string `json:"token"`
}

func (e NewPasswordEvent) Type() string {
	return TypeNewPassword
}

// envelope is the message body put on the queue.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newEnvelope(event Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: event.Type(), Payload: payload})
}
