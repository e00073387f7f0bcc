package storage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/eventforge/eventforge/pkg/config"
	"github.com/eventforge/eventforge/pkg/model"
	slogGorm "github.com/orandin/slog-gorm"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase connects to PostgreSQL, instruments gorm with tracing and runs the migrations.
func NewDatabase(logger *slog.Logger, c config.Postgresql) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", c.Host, c.Username, c.Password, c.DatabaseName, c.Port)

	databaseConfig := gorm.Config{
		Logger: slogGorm.New(
			slogGorm.WithHandler(logger.Handler()),
			slogGorm.WithSlowThreshold(200*time.Millisecond),
		),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("failed to add tracing to gorm: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Organisation{},
		&model.VerificationToken{},
		&model.Event{},
		&model.Image{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
