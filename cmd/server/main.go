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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	red "github.com/redis/go-redis/v9"

	grpchandler "github.com/dtroode/scorepredictor-server/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/scorepredictor-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/scorepredictor-server/internal/api/grpc/server"
	httpcontext "github.com/dtroode/scorepredictor-server/internal/api/http/context"
	httphandler "github.com/dtroode/scorepredictor-server/internal/api/http/handler"
	"github.com/dtroode/scorepredictor-server/internal/api/http/middleware"
	httprouter "github.com/dtroode/scorepredictor-server/internal/api/http/router"
	httpserver "github.com/dtroode/scorepredictor-server/internal/api/http/server"
	"github.com/dtroode/scorepredictor-server/internal/config"
	"github.com/dtroode/scorepredictor-server/internal/logger"
	"github.com/dtroode/scorepredictor-server/internal/metrics"
	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/repository/memory"
	"github.com/dtroode/scorepredictor-server/internal/repository/postgres"
	redisrepo "github.com/dtroode/scorepredictor-server/internal/repository/redis"
	"github.com/dtroode/scorepredictor-server/internal/repository/sqlite"
	"github.com/dtroode/scorepredictor-server/internal/scoring"
	"github.com/dtroode/scorepredictor-server/internal/security"
	"github.com/dtroode/scorepredictor-server/internal/server"
	"github.com/dtroode/scorepredictor-server/internal/service"
	storage "github.com/dtroode/scorepredictor-server/internal/storage/minio"
	"github.com/dtroode/scorepredictor-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	healthInterval  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	pipeline, err := loadPipeline(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to load prediction model", "error", err)
	}
	logger.Info("prediction model loaded", "source", cfg.Model.Source, "features", len(pipeline.Features()))

	state, statePinger, closeState := openSessionState(ctx, cfg.Redis, cfg.Session.PurgeInterval)
	defer closeState()

	hasher, err := security.NewArgon2Hasher(security.Argon2Params{
		Time:    cfg.KDF.Time,
		MemKiB:  cfg.KDF.MemKiB,
		Par:     cfg.KDF.Par,
		SaltLen: cfg.KDF.SaltLen,
		KeyLen:  cfg.KDF.KeyLen,
	})
	if err != nil {
		logger.Fatal("failed to configure password hashing", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	sessionService := service.NewSessions(tokenManager, st.sessions, cfg.Session.TTL, logger)
	credentialService := service.NewCredentials(st.users, st.predictions, hasher, logger)

	domainMetrics, err := metrics.New(metrics.Options{Registerer: prometheus.DefaultRegisterer})
	if err != nil {
		logger.Fatal("failed to register metrics", "error", err)
	}
	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{Registerer: prometheus.DefaultRegisterer})
	if err != nil {
		logger.Fatal("failed to register http metrics", "error", err)
	}

	gate := service.NewGate(credentialService, sessionService, pipeline, domainMetrics, logger)
	ctxMgr := httpcontext.NewManager()

	readiness := map[string]httphandler.ReadinessCheck{"database": st.db.Ping}
	healthChecks := map[string]grpchandler.Pinger{"database": st.db}
	if statePinger != nil {
		readiness["session_state"] = statePinger.Ping
		healthChecks["session_state"] = statePinger
	}

	cookie := middleware.CookieOptions{
		Name:   cfg.HTTP.CookieName,
		Secure: cfg.HTTP.CookieSecure || cfg.HTTP.EnableHTTPS,
	}

	engine := httprouter.Register(httprouter.Dependencies{
		Logger:      logger,
		Gate:        gate,
		Account:     credentialService,
		Sessions:    middleware.NewSessions(sessionService, state, ctxMgr, cookie, logger),
		Contexts:    ctxMgr,
		Descriptor:  pipeline.Descriptor(),
		HTTPMetrics: httpMetrics,
		Gatherer:    prometheus.DefaultGatherer,
		Readiness:   readiness,
	})
	httpSrv := httpserver.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.HTTP.Port))

	health := grpchandler.NewHealth(healthChecks, logger)
	grpcSrv := grpcserver.NewGRPCServer(grpcrouter.New(health.Server(), logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		sessionService.RunPurger(ctx, cfg.Session.PurgeInterval)
	}()
	go func() {
		defer wg.Done()
		health.Run(ctx, healthInterval)
	}()

	servers := []struct {
		srv model.Server
		sl  model.SecurityLayer
	}{
		{httpSrv, server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)},
		{grpcSrv, server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
	}
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.srv, s.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	health.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.srv.Address())
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

// stores is the credential store backend picked by configuration.
type stores struct {
	users       model.UserStore
	predictions model.PredictionStore
	sessions    model.SessionStore
	db          grpchandler.Pinger
	close       func() error
}

func openStores(ctx context.Context, cfg config.Database) (*stores, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:       postgres.NewUserRepository(db),
			predictions: postgres.NewPredictionRepository(db),
			sessions:    postgres.NewSessionRepository(db),
			db:          db,
			close:       db.Close,
		}, nil
	default:
		db, err := sqlite.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:       sqlite.NewUserRepository(db),
			predictions: sqlite.NewPredictionRepository(db),
			sessions:    sqlite.NewSessionRepository(db),
			db:          db,
			close:       db.Close,
		}, nil
	}
}

func loadPipeline(ctx context.Context, cfg *config.Config) (*scoring.Pipeline, error) {
	var src scoring.Source
	switch cfg.Model.Source {
	case "minio":
		store, err := storage.Connect(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Prefix:    cfg.Model.Prefix,
		})
		if err != nil {
			return nil, err
		}
		src = store
	default:
		src = scoring.NewDirSource(cfg.Model.Dir)
	}

	return scoring.Load(ctx, src, scoring.DefaultArtifactFiles())
}

// openSessionState returns Redis-backed state when an address is configured
// and process memory otherwise. The pinger is nil for memory.
func openSessionState(ctx context.Context, cfg config.Redis, sweep time.Duration) (model.SessionStateStore, grpchandler.Pinger, func()) {
	if cfg.Addr == "" {
		mem := memory.NewSessionStateRepository()
		go mem.RunSweeper(ctx, sweep)
		return mem, nil, func() {}
	}

	client := red.NewClient(&red.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	repo := redisrepo.NewSessionStateRepository(client, cfg.Prefix)
	return repo, repo, func() { _ = client.Close() }
}
