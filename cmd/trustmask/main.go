package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NeuralTrust/TrustMask/fonts"
	"github.com/NeuralTrust/TrustMask/pkg/app/document"
	"github.com/NeuralTrust/TrustMask/pkg/app/redaction"
	"github.com/NeuralTrust/TrustMask/pkg/config"
	"github.com/NeuralTrust/TrustMask/pkg/detection"
	handlers "github.com/NeuralTrust/TrustMask/pkg/handlers/http"
	"github.com/NeuralTrust/TrustMask/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustMask/pkg/infra/jwt"
	infraLogger "github.com/NeuralTrust/TrustMask/pkg/infra/logger"
	"github.com/NeuralTrust/TrustMask/pkg/infra/ner"
	"github.com/NeuralTrust/TrustMask/pkg/middleware"
	"github.com/NeuralTrust/TrustMask/pkg/server"
	"github.com/NeuralTrust/TrustMask/pkg/version"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	commandServe = "serve"
	commandToken = "token"

	defaultTokenTTL = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := config.Load(os.Getenv("CONFIG_PATH")); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	switch getCommand() {
	case commandToken:
		if err := issueToken(cfg, os.Args[2:]); err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}
	default:
		serve(cfg)
	}
}

func getCommand() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return commandServe
}

func serve(cfg *config.Config) {
	appLogger, err := infraLogger.NewLogger(infraLogger.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: cfg.Log.Console,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLogger.Close()
	logger := appLogger.Logger

	gazetteer, err := loadGazetteer(cfg.Detection)
	if err != nil {
		logger.WithError(err).Fatal("failed to load gazetteer")
	}

	pdfWriter, err := newPDFWriter(cfg.Export)
	if err != nil {
		logger.WithError(err).Fatal("failed to load export font")
	}

	recognizer := newRecognizer(cfg.NER, logger)

	redactionService := redaction.NewService(logger, redaction.Detectors{
		Regex:    detection.NewStructuredDetector(),
		NER:      recognizer,
		Location: detection.NewGazetteerMatcher(gazetteer),
		Medical:  detection.NewMedicalDetector(),
	}, redaction.Options{FailOpenNER: cfg.NER.FailOpen})

	middlewareTransport := middleware.Transport{
		RecoverMiddleware:   middleware.NewPanicRecoverMiddleware(logger),
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(logger),
		CORSMiddleware:      middleware.NewCORSMiddleware(cfg.Server.CORSOrigins),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(logger),
		DecodeMiddleware:    middleware.NewDecodeMiddleware(logger, int64(cfg.Server.BodyLimit)),
	}
	if cfg.Server.AuthEnabled {
		middlewareTransport.AuthMiddleware = middleware.NewAuthMiddleware(logger, jwt.NewJwtManager(&cfg.Server))
	}

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = newRedisClient(cfg.Redis, logger)
		middlewareTransport.RateLimitMiddleware = middleware.NewRateLimitMiddleware(logger, redisClient, middleware.RateLimitOpts{
			Limit:  cfg.RateLimit.Limit,
			Window: cfg.RateLimit.Window,
		})
	}

	handlerTransport := handlers.HandlerTransport{
		MaskHandler:       handlers.NewMaskHandler(logger, redactionService),
		AnalyzeHandler:    handlers.NewAnalyzeHandler(logger, redactionService),
		MaskFileHandler:   handlers.NewMaskFileHandler(logger, redactionService, int64(cfg.Server.BodyLimit)),
		ExportHandler:     handlers.NewExportHandler(logger),
		ExportPDFHandler:  handlers.NewExportPDFHandler(logger, pdfWriter),
		HealthHandler:     handlers.NewHealthHandler(logger, recognizer),
		GetVersionHandler: handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewAPIServer(server.APIServerDI{
		Config:              cfg,
		Logger:              logger,
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
	})

	logger.WithFields(logrus.Fields{
		"version":        version.Version,
		"gazetteer_size": gazetteer.Size(),
		"ner":            recognizer.Status(),
		"auth":           cfg.Server.AuthEnabled,
		"rate_limit":     cfg.RateLimit.Enabled,
	}).Info("TrustMask initialized")

	go func() {
		if err := srv.Run(); err != nil {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("error shutting down server")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}
	logger.Info("server gracefully stopped")
}

func loadGazetteer(cfg config.DetectionConfig) (*detection.Gazetteer, error) {
	if cfg.GazetteerFile != "" {
		return detection.LoadGazetteer(cfg.GazetteerFile)
	}
	return detection.DefaultGazetteer()
}

// newPDFWriter renders a sample so a broken font file fails at startup.
func newPDFWriter(cfg config.ExportConfig) (*document.PDFWriter, error) {
	font := fonts.DejaVuSansCondensed()
	if cfg.FontFile != "" {
		var err error
		if font, err = os.ReadFile(cfg.FontFile); err != nil {
			return nil, err
		}
	}
	writer := document.NewPDFWriter(font)
	if _, err := writer.Render("ğüşıöç ĞÜŞİÖÇ"); err != nil {
		return nil, err
	}
	return writer, nil
}

type recognizer interface {
	detection.Detector
	Status() string
}

func newRecognizer(cfg config.NERConfig, logger *logrus.Logger) recognizer {
	if !cfg.Enabled {
		logger.Info("entity recognizer disabled")
		return ner.NoopRecognizer{}
	}
	client := httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.Timeout),
		httpx.WithUserAgent(version.UserAgent()),
	)
	breaker := httpx.NewCircuitBreaker("ner", cfg.BreakerTimeout, cfg.MaxFailures)
	return ner.NewClient(logger, client, breaker, ner.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
}

func newRedisClient(cfg config.RedisConfig, logger *logrus.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// the limiter lets requests through until redis is reachable
		logger.WithError(err).Warn("redis unreachable, rate limiting inactive")
	}
	return client
}

func issueToken(cfg *config.Config, args []string) error {
	if cfg.Server.SecretKey == "" {
		return fmt.Errorf("server.secret_key is not set")
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: trustmask token <subject> [ttl]")
	}
	ttl := defaultTokenTTL
	if len(args) > 1 {
		parsed, err := time.ParseDuration(args[1])
		if err != nil {
			return fmt.Errorf("invalid ttl: %w", err)
		}
		ttl = parsed
	}
	token, err := jwt.NewJwtManager(&cfg.Server).CreateToken(args[0], ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
