package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	restctx "github.com/auxesia/auxesia-server/internal/api/rest/context"
	"github.com/auxesia/auxesia-server/internal/api/rest/router"
	restServer "github.com/auxesia/auxesia-server/internal/api/rest/server"
	"github.com/auxesia/auxesia-server/internal/config"
	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/mail"
	"github.com/auxesia/auxesia-server/internal/model"
	"github.com/auxesia/auxesia-server/internal/password"
	"github.com/auxesia/auxesia-server/internal/repository/postgres"
	"github.com/auxesia/auxesia-server/internal/server"
	"github.com/auxesia/auxesia-server/internal/service"
	storage "github.com/auxesia/auxesia-server/internal/storage/minio"
	"github.com/auxesia/auxesia-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	mealRepo := postgres.NewMealRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)
	hasher := password.NewHasher()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	imageStore, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, storageBaseURL(cfg))
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTP, cfg.HTTP.PublicBaseURL)
	dispatcher := mail.NewDispatcher(mailer, logger)

	authService := service.NewAuth(userRepo, hasher, tokenManager, dispatcher, logger)
	userService := service.NewUser(userRepo, logger)
	mealService := service.NewMeal(mealRepo, imageStore, logger)
	favoriteService := service.NewFavorite(favoriteRepo, mealRepo, logger)
	ctxMgr := restctx.NewManager()

	httpServer := registerHTTPServer(authService, userService, mealService, favoriteService, ctxMgr, logger, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	dispatcher.Wait()
	wg.Wait()
	logger.Info("shutdown complete")
}

func storageBaseURL(cfg *config.Config) string {
	scheme := "http"
	if cfg.Storage.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, cfg.Storage.Endpoint)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	authService *service.Auth,
	userService *service.User,
	mealService *service.Meal,
	favoriteService *service.Favorite,
	ctxMgr model.ContextManager,
	logger *logger.Logger,
	addr string,
) *restServer.HTTPServer {
	r := router.New(authService, userService, mealService, favoriteService, ctxMgr, logger)
	app := r.Register()

	return restServer.NewHTTPServer(app, addr)
}
