package inttest

import (
	"fmt"
	"testing"

	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

// SetupRabbitMQ creates a RabbitMQ container with an AMQP connection ready to publish and consume
// messages. We are using the management image so you can debug tests using its admin panel.
func SetupRabbitMQ(t *testing.T) *AMQP {
	t.Helper()

	container, err := gnomock.Start(
		rabbitmq.Preset(
			rabbitmq.WithUser("eventforge", "eventforge"),
			rabbitmq.WithVersion("3.13-management-alpine"),
		),
	)
	require.NoError(t, err, "failed to start RabbitMQ")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop RabbitMQ") })

	uri := fmt.Sprintf("amqp://eventforge:eventforge@%s", container.DefaultAddress())
	conn, err := amqp.Dial(uri)
	require.NoError(t, err, "failed setting up AMQP connection")
	t.Cleanup(func() { _ = conn.Close() })

	return &AMQP{URI: uri, Connection: conn}
}

// AMQP gives access to a RabbitMQ container via the low-level github.com/rabbitmq/amqp091-go
// library.
type AMQP struct {
	URI        string
	Connection *amqp.Connection
}

// Channel opens a new channel which is closed once the test finishes.
func (a *AMQP) Channel(t *testing.T) *amqp.Channel {
	t.Helper()

	channel, err := a.Connection.Channel()
	require.NoError(t, err, "failed setting up AMQP channel")
	t.Cleanup(func() { _ = channel.Close() })
	return channel
}
