package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/legalens/docuverify/internal/config"
	"github.com/legalens/docuverify/internal/domain/chunk"
	"github.com/legalens/docuverify/internal/domain/prompt"
	logpkg "github.com/legalens/docuverify/internal/logger"
	"github.com/legalens/docuverify/internal/metrics"
	"github.com/legalens/docuverify/internal/repository/docstore"
	chiTransport "github.com/legalens/docuverify/internal/transport/chi"
	openaiCompletion "github.com/legalens/docuverify/internal/transport/openai"
	analysisuc "github.com/legalens/docuverify/internal/usecase/analysis"
	chatuc "github.com/legalens/docuverify/internal/usecase/chat"
	healthuc "github.com/legalens/docuverify/internal/usecase/health"
	"github.com/legalens/docuverify/internal/version"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docuverify API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	// Create document store based on driver
	var store docstore.Store
	switch cfg.Storage.Driver {
	case "memory":
		store = docstore.NewMemory()
	case "redis":
		redisStore, rerr := docstore.NewRedis(docstore.RedisConfig{
			Addrs:     cfg.Storage.Addrs,
			Password:  cfg.Storage.Password,
			KeyPrefix: cfg.Storage.KeyPrefix,
			TTL:       time.Duration(cfg.Storage.TTLHours) * time.Hour,
		})
		if rerr != nil {
			logger.Fatal("Failed to create document store", zap.Error(rerr))
		}
		ctx := context.Background()
		if rerr := redisStore.WaitForReady(ctx, 30*time.Second); rerr != nil {
			logger.Fatal("Document store not ready", zap.Error(rerr))
		}
		store = redisStore
	default:
		logger.Fatal("Unknown storage driver", zap.String("driver", cfg.Storage.Driver))
	}
	defer store.Close()

	// Register chat metrics explicitly (no init())
	metrics.RegisterChatMetrics()

	// Pass nil interface (not typed nil pointer!) when no credential is
	// configured. Go gotcha: (*openaiCompletion.Completer)(nil) wrapped in
	// chatuc.Completer != nil.
	var completer chatuc.Completer
	var completionChecker healthuc.CompletionChecker
	if cfg.OpenAI.APIKey != "" {
		c := openaiCompletion.NewCompleter(&openaiCompletion.Config{
			APIKey:      cfg.OpenAI.APIKey,
			BaseURL:     cfg.OpenAI.BaseURL,
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			TopP:        cfg.OpenAI.TopP,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Timeout:     time.Duration(cfg.OpenAI.TimeoutSec) * time.Second,
			Logger:      logger,
		})
		completer = c
		completionChecker = c
		logger.Info("Completion client created", zap.String("model", cfg.OpenAI.Model))
	} else {
		logger.Warn("No completion API key configured, chat runs in permanent fallback mode")
	}

	// Create use case services
	analysisSvc := analysisuc.New(store)
	chatSvc := chatuc.New(
		store,
		completer,
		chunk.New(cfg.Chat.ChunkSize, cfg.Chat.ChunkOverlap),
		prompt.New(cfg.Chat.TokenCeiling),
		config.IsDevelopment(env),
	)
	healthSvc := healthuc.New(store, completionChecker)

	// Create chi server
	server := chiTransport.NewServer(
		store, analysisSvc, chatSvc, healthSvc,
		int64(cfg.HTTP.MaxUploadMB)<<20, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
