// Package classification EventForge Service.
//
// Backend of EventForge where organisations publish their events
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//    Version: 0.1.0
//    Contact: <info@eventforge.bg> https://github.com/eventforge/eventforge
//
//    Consumes:
//      - application/json
//      - multipart/form-data
//
//    Produces:
//      - application/json
//
//    SecurityDefinitions:
//      oauth2:
//        type: oauth2
//        tokenUrl: /tokens
//        refreshUrl: /refresh
//        flow: password
// swagger:meta
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/eventforge/eventforge/internal/handler"
	"github.com/eventforge/eventforge/internal/log"
	"github.com/eventforge/eventforge/internal/middleware"
	"github.com/eventforge/eventforge/internal/server"
	"github.com/eventforge/eventforge/internal/tracing"
	"github.com/eventforge/eventforge/pkg/config"
	"github.com/eventforge/eventforge/pkg/email"
	"github.com/eventforge/eventforge/pkg/event"
	"github.com/eventforge/eventforge/pkg/image"
	"github.com/eventforge/eventforge/pkg/organisation"
	"github.com/eventforge/eventforge/pkg/storage"
	"github.com/eventforge/eventforge/pkg/token"
	"github.com/eventforge/eventforge/pkg/user"
	"github.com/eventforge/eventforge/pkg/verification"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

const verificationPurgeInterval = time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("Failed to run eventforge", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()

	logger := slog.New(log.New(log.NewPrettyJSONHandler(os.Stdout, &log.PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{AddSource: true, Level: cfg.Logging.Level},
		PrettyPrint:    cfg.Logging.PrettyPrint,
	})))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.New(cfg.Tracing.ServiceName, cfg.Tracing.JaegerURL)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to shut down tracing", "error", err)
		}
	}()

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redis, err := storage.NewRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer redis.Close()

	amqpConn, err := amqp.Dial(cfg.RabbitMqURL.GetUrl())
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}
	defer amqpConn.Close()

	publisher, err := email.NewPublisher(logger, amqpConn, cfg.EmailQueue)
	if err != nil {
		return err
	}
	defer publisher.Close()

	privateKey, err := cfg.Authentication.Keys.GetPrivateKey()
	if err != nil {
		return err
	}

	store, err := newImageStore(ctx, logger, cfg.ImageStorage)
	if err != nil {
		return err
	}

	verificationService := verification.NewService(logger, verification.NewRepository(db), cfg.VerificationTokenTTL)
	tokenService := token.NewService(
		logger,
		token.NewRepository(redis),
		privateKey,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenSecretKey,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)
	userService := user.NewService(logger, user.NewRepository(db), verificationService, tokenService, publisher)
	organisationService := organisation.NewService(organisation.NewRepository(db))
	eventService := event.NewService(event.NewRepository(db))
	imageService := image.NewService(logger, image.NewRepository(db), store, imagePublicURL(cfg))

	err = user.CreateAdminUser(ctx, cfg.AdminUser.Email, cfg.AdminUser.Password, userService)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %v", err)
	}

	mailer := email.NewMailer(email.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password), cfg.SMTP.From)
	consumer := email.NewConsumer(logger, amqpConn, cfg.EmailQueue, email.NewListener(logger, verificationService, userService, mailer))

	err = handler.RegisterValidation()
	if err != nil {
		return err
	}

	authentication := middleware.NewAuthentication(&privateKey.PublicKey, userService)
	authorization := middleware.NewAuthorization(logger, userService)

	engine := server.GetEngine(logger, cfg.BasePath)
	router := engine.Group(cfg.BasePath)
	user.Routes(router, authentication, authorization, user.NewHandler(cfg, userService, tokenService))
	organisation.Routes(router, authentication, authorization, organisation.NewHandler(organisationService))
	event.Routes(router, authentication, authorization, event.NewHandler(eventService))
	image.Routes(router, authentication, authorization, image.NewHandler(imageService))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Listening", "port", cfg.Port, "basePath", cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return consumer.Consume(ctx)
	})
	g.Go(func() error {
		return verificationService.PurgeExpiredEvery(ctx, verificationPurgeInterval)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type imageStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Write(ctx context.Context, key string, body io.Reader, contentType string) error
	Read(ctx context.Context, key string, dst io.Writer) error
	Delete(ctx context.Context, key string) error
}

func newImageStore(ctx context.Context, logger *slog.Logger, c config.ImageStorage) (imageStore, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Backend {
	case "s3":
		client, err := storage.NewAWSS3Client(ctx, c.S3Region, c.S3Endpoint)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Client(logger, client, manager.NewUploader(client), c.S3Bucket), nil
	case "minio":
		client, err := storage.NewMinioClient(c.Minio.Endpoint, c.Minio.AccessKey, c.Minio.SecretKey, c.Minio.UseSSL)
		if err != nil {
			return nil, err
		}
		return storage.NewMinioStore(logger, client, c.S3Bucket), nil
	}

	fs, err := storage.NewFileSystem(c.FolderPath)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

func imagePublicURL(cfg config.Config) string {
	if cfg.ImageStorage.PublicURL != "" {
		return cfg.ImageStorage.PublicURL
	}
	return "https://" + cfg.Hostname + strings.TrimSuffix(cfg.BasePath, "/") + "/images"
}
