package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/config"
	"course-quiz-service/internal/infra/memory"
	pgstore "course-quiz-service/internal/infra/postgres"
	rediscache "course-quiz-service/internal/infra/redis"
	"course-quiz-service/internal/logging"
	"course-quiz-service/internal/metrics"
	"course-quiz-service/internal/seed"
	transport "course-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	secret := cfg.Auth.Secret
	if secret == "" {
		secret = os.Getenv("AUTH_SECRET")
	}
	if secret == "" {
		return errors.New("auth secret not configured")
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var (
		loader   memory.QuizLoader
		catalog  app.CatalogRepository
		attempts app.AttemptRepository
	)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgstore.NewQuizLoader(pool)
		catalog = pgstore.NewCatalogStore(pool)
		attempts = pgstore.NewAttemptStore(pool)
	} else {
		data, err := seed.Default()
		if err != nil {
			return err
		}
		mem := memory.NewCatalog(data)
		loader, catalog = mem, mem
		attempts = memory.NewAttemptStore().WithQuizTitles(mem)
		log.Warn("postgres not configured; serving the seed catalog from memory, attempts are not persisted")
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = rediscache.NewQuizRepository(redisClient, loader, quizTTL, log.Named("quiz-cache"))
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	m := metrics.New()
	handler := transport.NewHandler(app.NewQuizService(quizRepo, attempts), app.NewCatalogService(catalog), log, m)
	router := transport.NewRouter(handler, transport.NewWSHandler(handler), transport.NewAuthenticator(secret, cfg.Auth.Issuer), transport.RouterConfig{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: config.TTLDuration(cfg.Server.RequestTimeout, 30*time.Second),
	})

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting quiz service", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
