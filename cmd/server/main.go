package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/napat-t/task-tracker-api/internal/auth"
	"github.com/napat-t/task-tracker-api/internal/config"
	"github.com/napat-t/task-tracker-api/internal/handler"
	"github.com/napat-t/task-tracker-api/internal/mailer"
	"github.com/napat-t/task-tracker-api/internal/repository"
	"github.com/napat-t/task-tracker-api/internal/token"
	"github.com/napat-t/task-tracker-api/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "task-tracker-api").Logger()

	cfg := config.New(&logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.MongoDatabase)

	indexCtx, cancelIndex := context.WithTimeout(ctx, 10*time.Second)
	defer cancelIndex()
	userRepo := repository.NewUserMongoRepository(indexCtx, &logger, db)
	todoRepo := repository.NewTodoMongoRepository(indexCtx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)
	resetMailer := mailer.NewMailer(&logger)
	tokens := token.NewGenerator(token.WithTTL(cfg.ResetTokenTTL))

	authUsecase := usecase.NewAuthUsecase(userRepo, todoRepo, jwtAuth, cfg)
	userUsecase := usecase.NewUserUsecase(userRepo, todoRepo)
	todoUsecase := usecase.NewTodoUsecase(todoRepo)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, tokens, resetMailer, cfg)

	h := handler.New(authUsecase, userUsecase, todoUsecase, passwordResetUsecase, jwtAuth, cfg, &logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
