package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"locking-gateway/middleware/locking"
	"locking-gateway/middleware/locking/domain"
	"locking-gateway/middleware/locking/infra"
)

func main() {
	// .env é opcional; variáveis de ambiente reais têm precedência
	_ = godotenv.Load()

	cfg, err := readConfig()
	logger := initLogger(cfg.debug)
	defer func() { _ = logger.Sync() }()
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}

	target, err := url.Parse(cfg.upstreamURL)
	if err != nil {
		logger.Fatal("invalid UPSTREAM_URL", zap.Error(err))
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("proxy error", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}

	promStats, err := infra.NewPromStatsStore(nil)
	if err != nil {
		logger.Fatal("prometheus stats error", zap.Error(err))
	}
	stats := multiStats{promStats}

	if cfg.statsRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			logger.Fatal("redis stats ping error", zap.Error(err))
		}

		stats = append(stats, infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
		))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	h := http.Handler(proxy)
	h = locking.Middleware(locking.Options{
		Max:            cfg.lockMax,
		DefaultTimeout: cfg.lockTimeout,
		RejectStatus:   http.StatusServiceUnavailable,
		Stats:          stats,
		Name:           cfg.lockName,
		AddHeaders:     cfg.addHeaders,
	})(h)
	if cfg.rateEnabled {
		h = rateLimitMiddleware(newKeyedLimiter(cfg.rateRPS, cfg.rateBurst, cfg.rateMaxClients), cfg.trustXFF)(h)
	}

	metricsSrv := &http.Server{Addr: cfg.metricsAddr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("gateway listening",
		zap.String("addr", cfg.listenAddr),
		zap.String("upstream", target.String()),
		zap.String("metrics", cfg.metricsAddr))
	logger.Info("lock",
		zap.Int("max", cfg.lockMax),
		zap.Duration("timeout", cfg.lockTimeout),
		zap.String("name", cfg.lockName))
	logger.Info("rate",
		zap.Bool("enabled", cfg.rateEnabled),
		zap.Float64("rps", cfg.rateRPS),
		zap.Int("burst", cfg.rateBurst),
		zap.Bool("trustXFF", cfg.trustXFF))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// multiStats replica cada evento em todos os stores, best-effort.
type multiStats []domain.StatsStore

func (m multiStats) Record(ctx context.Context, ev domain.AcquireEvent) error {
	for _, s := range m {
		_ = s.Record(ctx, ev)
	}
	return nil
}

type config struct {
	listenAddr  string
	metricsAddr string
	upstreamURL string
	debug       bool

	lockMax     int
	lockTimeout time.Duration
	lockName    string
	addHeaders  bool

	rateEnabled    bool
	rateRPS        float64
	rateBurst      int
	rateMaxClients int
	trustXFF       bool

	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
	statsBucket        string
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.metricsAddr = getenvDefault("METRICS_ADDR", ":9091")
	cfg.upstreamURL = os.Getenv("UPSTREAM_URL")
	cfg.debug = getenvBoolDefault("DEBUG", false)

	cfg.lockMax = getenvIntDefault("LOCK_MAX", 100)
	// LOCK_TIMEOUT zero nega na hora quando o gate está cheio;
	// não existe espera infinita, só timeouts explícitos.
	cfg.lockTimeout = getenvDurationDefault("LOCK_TIMEOUT", 0)
	cfg.lockName = getenvDefault("LOCK_NAME", "proxy")
	cfg.addHeaders = getenvBoolDefault("ADD_CONCURRENCY_HEADERS", false)

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", false)
	cfg.rateRPS = getenvFloatDefault("RATE_RPS", 10)
	cfg.rateBurst = getenvIntDefault("RATE_BURST", 20)
	cfg.rateMaxClients = getenvIntDefault("RATE_MAX_CLIENTS", 4096)
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)

	cfg.statsRedisAddr = getenvDefault("STATS_REDIS_ADDR", "")
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "locking:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("STATS_BUCKET", "minute")

	if strings.TrimSpace(cfg.upstreamURL) == "" {
		return config{}, errors.New("UPSTREAM_URL is required")
	}
	if cfg.lockMax < 0 {
		return config{}, errors.New("LOCK_MAX must be >= 0")
	}
	if cfg.lockTimeout < 0 {
		return config{}, errors.New("LOCK_TIMEOUT must be >= 0")
	}
	if cfg.rateEnabled {
		if cfg.rateRPS <= 0 {
			return config{}, errors.New("RATE_RPS must be > 0")
		}
		if cfg.rateBurst <= 0 {
			return config{}, errors.New("RATE_BURST must be > 0")
		}
		if cfg.rateMaxClients <= 0 {
			return config{}, errors.New("RATE_MAX_CLIENTS must be > 0")
		}
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
