package cli

import (
	"context"

	"course-quiz-service/internal/config"
	"course-quiz-service/internal/infra/postgres"
	rediscache "course-quiz-service/internal/infra/redis"
	"course-quiz-service/internal/logging"
	"course-quiz-service/internal/seed"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd loads the starter catalog into an empty database.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load initial courses, PDFs and quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to load instead of the built-in one")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	data, err := seed.Default()
	if file != "" {
		data, err = seed.Load(file)
	}
	if err != nil {
		return err
	}

	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateDB(ctx, db, log); err != nil {
		return err
	}
	report, err := postgres.Seed(ctx, db, data)
	if err != nil {
		return err
	}
	if !report.Inserted {
		log.Info("catalog already present, nothing to seed")
		return nil
	}
	log.Info("initial data loaded", zap.Int("courses", len(data.Courses)), zap.Int("quizzes", len(report.QuizIDs)))

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		// Ids can be reused after a database reset; stale snapshots must not survive.
		if err := rediscache.InvalidateQuizzes(ctx, client, report.QuizIDs...); err != nil {
			log.Warn("quiz cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
