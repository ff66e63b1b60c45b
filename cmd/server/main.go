package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitbill/internal/auth"
	"github.com/mmynk/splitbill/internal/config"
	"github.com/mmynk/splitbill/internal/metrics"
	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/receipt"
	"github.com/mmynk/splitbill/internal/rpc"
	"github.com/mmynk/splitbill/internal/service"
	"github.com/mmynk/splitbill/internal/storage/sqlite"
	"github.com/mmynk/splitbill/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		slog.Error("Failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	processor := newProcessor(cfg)

	rpcMetrics := metrics.NewRPCMetrics(prometheus.DefaultRegisterer)
	splitMetrics := metrics.NewSplitMetrics(prometheus.DefaultRegisterer)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Auth runs first so the logging interceptor can see the user ID.
	observe := []connect.Interceptor{middleware.LoggingInterceptor(), middleware.MetricsInterceptor(rpcMetrics)}
	optional := connect.WithInterceptors(append([]connect.Interceptor{middleware.OptionalAuth(jwtManager)}, observe...)...)
	required := connect.WithInterceptors(append([]connect.Interceptor{middleware.RequireAuth(jwtManager)}, observe...)...)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(rpc.NewBillServiceHandler(service.NewBillService(store, processor, splitMetrics), optional))
	mux.Handle(rpc.NewPeopleServiceHandler(service.NewPeopleService(store), required))
	mux.Handle(rpc.NewAuthServiceHandler(service.NewAuthService(authenticator, store, jwtManager, slog.Default()), optional))

	mux.Handle("/metrics", promhttp.Handler())

	// Serve static files from frontend/static
	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	handler := loggingMiddleware(corsMiddleware(cfg.CORSAllowedOrigins, mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := cfg.HTTPAddr()
	slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr), "scanning", processor.Configured())
	server := &http.Server{
		Addr:              addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// newProcessor builds the receipt pipeline. Scanning stays disabled without an
// API key; the cache is skipped without a Redis URL.
func newProcessor(cfg *config.Config) *receipt.Processor {
	var extractor receipt.Extractor
	if cfg.ScanningEnabled() {
		extractor = receipt.NewGeminiClient(receipt.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.GeminiTimeout,
		})
	} else {
		slog.Warn("GEMINI_API_KEY not set, receipt scanning disabled")
	}

	var cache *receipt.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("Invalid REDIS_URL, scan cache disabled", "error", err)
		} else {
			client := redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := client.Ping(ctx).Err(); err != nil {
				slog.Warn("Redis not reachable, scans will miss the cache until it is", "addr", opts.Addr, "error", err)
			}
			cancel()
			cache = receipt.NewCache(client, cfg.ScanCacheTTL)
			slog.Info("Scan cache enabled", "addr", opts.Addr, "ttl", cfg.ScanCacheTTL)
		}
	}

	return receipt.NewProcessor(extractor, cache)
}

// staticHandler serves the frontend. Unknown paths get index.html.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown Connect procedures are not pages.
		if strings.HasPrefix(r.URL.Path, "/splitbill.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access from the allowed origins.
func corsMiddleware(allowed []string, next http.Handler) http.Handler {
	anyOrigin := slices.Contains(allowed, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case anyOrigin:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowed, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
