package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carebridge/scheduler/internal/config"
	"github.com/carebridge/scheduler/internal/domain/coverage"
	"github.com/carebridge/scheduler/internal/domain/location"
	"github.com/carebridge/scheduler/internal/domain/roster"
	"github.com/carebridge/scheduler/internal/domain/scheduling"
	"github.com/carebridge/scheduler/internal/platform/auth"
	"github.com/carebridge/scheduler/internal/platform/db"
	"github.com/carebridge/scheduler/internal/platform/lock"
	"github.com/carebridge/scheduler/internal/platform/middleware"
	"github.com/carebridge/scheduler/internal/platform/sweep"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler-server",
		Short: "Clinical staffing scheduler API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduler API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Booking lock: Redis when configured, in-process otherwise
	var locker lock.Locker
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client, 10*time.Second)
		logger.Info().Msg("using redis booking locks")
	} else {
		locker = lock.NewLocalLocker()
		logger.Warn().Msg("REDIS_URL not set, using in-process booking locks")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(cfg.AuthSecret))
	}

	// API group with rate limiting
	api := e.Group("/api/v1")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Domain wiring
	locationSvc := location.NewService(location.NewRepoPG(pool))
	location.NewHandler(locationSvc).RegisterRoutes(api)

	apptRepo := scheduling.NewRepoPG(pool)
	schedSvc := scheduling.NewService(apptRepo, locker, scheduling.DefaultPolicy(), locationSvc)
	scheduling.NewHandler(schedSvc).RegisterRoutes(api)

	rosterSvc := roster.NewService(roster.NewStaffRepoPG(pool), roster.NewTeamRepoPG(pool))
	roster.NewHandler(rosterSvc).RegisterRoutes(api)

	coverageSvc := coverage.NewService(apptRepo, rosterSvc, coverage.DefaultBreakPolicy())
	coverage.NewHandler(coverageSvc).RegisterRoutes(api)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Nightly coverage sweep
	sweeper := sweep.New(coverageSvc, rosterSvc, logger)
	if err := sweeper.Start(cfg.SweepCron); err != nil {
		logger.Fatal().Err(err).Str("spec", cfg.SweepCron).Msg("invalid sweep cron spec")
	}
	defer sweeper.Stop()
	logger.Info().Str("spec", cfg.SweepCron).Msg("coverage sweep scheduled")

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo teams, staff, locations, and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			staffCount, _ := cmd.Flags().GetInt("staff")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			gofakeit.Seed(time.Now().UnixNano())
			return runSeed(ctx, pool, staffCount)
		},
	}
	cmd.Flags().Int("staff", 12, "Number of staff members to create")
	return cmd
}

func runSeed(ctx context.Context, pool *pgxpool.Pool, staffCount int) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	locationID := uuid.New()
	if _, err := tx.Exec(ctx, `
		INSERT INTO location (id, name, open_minute, close_minute, slot_minutes)
		VALUES ($1, $2, $3, $4, $5)`,
		locationID, gofakeit.Company()+" Clinic", 8*60, 18*60, 30); err != nil {
		return fmt.Errorf("seed location: %w", err)
	}

	teamIDs := make([]uuid.UUID, 0, 3)
	for _, name := range []string{"Blue Team", "Green Team", "Red Team"} {
		id := uuid.New()
		teamIDs = append(teamIDs, id)
		if _, err := tx.Exec(ctx, `INSERT INTO team (id, name) VALUES ($1, $2)`, id, name); err != nil {
			return fmt.Errorf("seed team: %w", err)
		}
	}

	roles := []string{"therapist", "clinician", "lead"}
	staffIDs := make([]uuid.UUID, 0, staffCount)
	for i := 0; i < staffCount; i++ {
		id := uuid.New()
		staffIDs = append(staffIDs, id)
		teamID := teamIDs[i%len(teamIDs)]
		role := roles[gofakeit.Number(0, len(roles)-1)]
		if _, err := tx.Exec(ctx, `
			INSERT INTO staff_member (id, name, role, team_id, active)
			VALUES ($1, $2, $3, $4, TRUE)`,
			id, gofakeit.Name(), role, teamID); err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
	}

	// A day of direct sessions per staff member, split around the lunch
	// window so coverage reports have something to find.
	day := time.Now().Truncate(24 * time.Hour)
	count := 0
	for _, staffID := range staffIDs {
		patientID := uuid.New()
		morning := day.Add(8 * time.Hour)
		for _, span := range []struct {
			start, end time.Duration
		}{
			{0, 4 * time.Hour},
			{5 * time.Hour, 9 * time.Hour},
		} {
			if _, err := tx.Exec(ctx, `
				INSERT INTO appointment (id, patient_id, staff_id, location_id, status, category, title, start_time, end_time)
				VALUES ($1, $2, $3, $4, 'scheduled', 'direct', $5, $6, $7)`,
				uuid.New(), patientID, staffID, locationID,
				gofakeit.HackerVerb()+" session",
				morning.Add(span.start), morning.Add(span.end)); err != nil {
				return fmt.Errorf("seed appointment: %w", err)
			}
			count++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	fmt.Printf("Seeded 1 location, %d teams, %d staff, %d appointments.\n",
		len(teamIDs), len(staffIDs), count)
	return nil
}
