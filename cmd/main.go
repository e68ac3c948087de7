package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/grpc/health"

	grpchealth "github.com/dtroode/otp-signup/internal/api/grpc/health"
	grpcrouter "github.com/dtroode/otp-signup/internal/api/grpc/router"
	grpcServer "github.com/dtroode/otp-signup/internal/api/grpc/server"
	"github.com/dtroode/otp-signup/internal/api/rest/handler"
	restrouter "github.com/dtroode/otp-signup/internal/api/rest/router"
	httpServer "github.com/dtroode/otp-signup/internal/api/rest/server"
	"github.com/dtroode/otp-signup/internal/config"
	"github.com/dtroode/otp-signup/internal/guard"
	"github.com/dtroode/otp-signup/internal/hasher"
	"github.com/dtroode/otp-signup/internal/logger"
	"github.com/dtroode/otp-signup/internal/model"
	"github.com/dtroode/otp-signup/internal/notify"
	"github.com/dtroode/otp-signup/internal/otp"
	"github.com/dtroode/otp-signup/internal/repository/mongo"
	"github.com/dtroode/otp-signup/internal/repository/postgres"
	"github.com/dtroode/otp-signup/internal/server"
	"github.com/dtroode/otp-signup/internal/service"
	"github.com/dtroode/otp-signup/internal/storage/local"
	storage "github.com/dtroode/otp-signup/internal/storage/minio"
	"github.com/dtroode/otp-signup/internal/token"
	"github.com/dtroode/otp-signup/internal/upload"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// userStore is a durable store that can also be probed and closed.
type userStore interface {
	model.UserStore
	model.Pinger
	io.Closer
}

type pgStore struct {
	*postgres.UserRepository
	*postgres.Connection
}

type mongoStore struct {
	*mongo.UserRepository
	*mongo.Connection
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	users, err := openUserStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize user store", "driver", cfg.Database.Driver, "error", err)
	}
	defer users.Close()

	files, err := openFileStorage(ctx, cfg.Upload, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize file storage", "backend", cfg.Upload.Backend, "error", err)
	}

	consumption, closeGuard, err := openGuard(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("failed to initialize consumption guard", "error", err)
	}
	defer closeGuard()

	bcryptHasher, err := hasher.NewBcrypt(cfg.Bcrypt.Cost)
	if err != nil {
		logger.Fatal("failed to initialize hasher", "error", err)
	}
	codes, err := otp.NewGenerator(cfg.OTP.Length, cfg.OTP.Alphabet)
	if err != nil {
		logger.Fatal("failed to initialize otp generator", "error", err)
	}
	mailer := notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.JWT.PendingTTL)

	validate := validator.New(validator.WithRequiredStructEnabled())

	committer := service.NewCommitter(token.NewIdentityCodec(cfg.JWT.Secret), users, consumption, cfg.JWT.AuthTTL, logger)
	registration := service.NewRegistration(
		bcryptHasher,
		codes,
		token.NewPendingCodec(cfg.JWT.Secret),
		mailer,
		committer,
		cfg.JWT.PendingTTL,
		validate,
		logger,
	)

	uploader := upload.NewUploader(files, cfg.Upload.Field, cfg.Upload.MaxSize)
	registrationHandler := handler.NewRegistration(registration, uploader, cfg.Upload.Field, handler.CookieOptions{
		Secure: cfg.HTTP.CookieSecure,
		MaxAge: cfg.JWT.PendingTTL,
	}, logger)

	e := restrouter.New(registrationHandler, validate, restrouter.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		BodyLimit:      cfg.HTTP.BodyLimit,
	}, logger).Register()

	servers := []model.Server{httpServer.NewHTTPServer(e, fmt.Sprintf(":%s", cfg.HTTP.Port))}

	var wg sync.WaitGroup

	if cfg.GRPC.Enabled {
		healthServer := health.NewServer()
		probe := grpchealth.NewProbe(users, healthServer, cfg.GRPC.ProbeInterval, logger)

		wg.Add(1)
		go func() {
			defer wg.Done()
			probe.Run(ctx)
		}()

		s := grpcrouter.New(healthServer, logger).Register()
		servers = append(servers, grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port)))
	}

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openUserStore(ctx context.Context, cfg config.Database) (userStore, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		conn, err := mongo.NewConnection(ctx, cfg.MongoURI, cfg.MongoName)
		if err != nil {
			return nil, err
		}
		return mongoStore{mongo.NewUserRepository(conn.Users()), conn}, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return pgStore{postgres.NewUserRepository(conn.DB), conn}, nil
	}
}

func openFileStorage(ctx context.Context, cfg config.Upload, s3 config.Storage) (model.Storage, error) {
	switch cfg.Backend {
	case config.BackendMinio:
		minioClient, err := minio.New(s3.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(s3.AccessKey, s3.SecretKey, ""),
			Secure: s3.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return storage.NewClient(ctx, minioClient, s3.Bucket)
	default:
		return local.NewDisk(cfg.Dir)
	}
}

func openGuard(ctx context.Context, cfg config.Redis) (model.ConsumptionGuard, func(), error) {
	if !cfg.ConsumeOnce {
		return guard.Noop{}, func() {}, nil
	}

	client, err := guard.Connect(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return guard.NewRedis(client), func() { _ = client.Close() }, nil
}
