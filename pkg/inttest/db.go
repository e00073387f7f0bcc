package inttest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/eventforge/eventforge/pkg/config"
	"github.com/eventforge/eventforge/pkg/storage"
	_ "github.com/lib/pq" // postgres driver
	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	dbUser     = "eventforge"
	dbPassword = "eventforge"
	dbName     = "eventforge_test"
)

// SetupDB starts PostgreSQL and returns a gorm connection with all tables of the domain migrated. Every call gets
// its own container so tests can create users and events without stepping on each other.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	container, err := gnomock.Start(
		postgres.Preset(
			postgres.WithUser(dbUser, dbPassword),
			postgres.WithDatabase(dbName),
		),
	)
	require.NoError(t, err, "failed to start PostgreSQL")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop PostgreSQL") })

	db, err := storage.NewDatabase(slog.New(slog.NewTextHandler(io.Discard, nil)), config.Postgresql{
		Host:         container.Host,
		Port:         container.DefaultPort(),
		Username:     dbUser,
		Password:     dbPassword,
		DatabaseName: dbName,
	})
	require.NoError(t, err, "failed to migrate PostgreSQL")

	return db
}
