package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medicare/medicare/internal/config"
	"github.com/medicare/medicare/internal/domain/hospital"
	"github.com/medicare/medicare/internal/platform/auth"
	"github.com/medicare/medicare/internal/platform/dashboard"
	"github.com/medicare/medicare/internal/platform/db"
	"github.com/medicare/medicare/internal/platform/middleware"
	"github.com/medicare/medicare/internal/platform/output"
	"github.com/medicare/medicare/internal/platform/reporting"
	"github.com/medicare/medicare/internal/platform/synth"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "medicare",
		Short:        "Synthetic hospital data generator and analytics dashboard",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

// loadConfig reads the configuration and builds the process logger.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, newLogger(cfg, os.Stderr), nil
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	if cfg.IsDev() {
		w = zerolog.ConsoleWriter{Out: w}
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic hospital dataset as CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if err := applyGenerateFlags(cmd, cfg); err != nil {
				return err
			}
			return runGenerate(cfg, logger, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Int("patients", 0, "number of patients (overrides NUM_PATIENTS)")
	cmd.Flags().Uint64("seed", 0, "random seed (overrides SEED)")
	cmd.Flags().String("out", "", "output directory (overrides OUTPUT_DIR)")
	cmd.Flags().Int("years", 0, "years of history (overrides NUM_YEARS)")
	cmd.Flags().String("start", "", "first day of history, YYYY-MM-DD (overrides START_DATE)")
	cmd.Flags().Bool("xlsx", false, "also write summary.xlsx (overrides WRITE_XLSX)")
	return cmd
}

// applyGenerateFlags copies explicitly set flags over the configuration.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("patients") {
		if cfg.NumPatients, err = flags.GetInt("patients"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetUint64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("out") {
		if cfg.OutputDir, err = flags.GetString("out"); err != nil {
			return err
		}
	}
	if flags.Changed("years") {
		if cfg.NumYears, err = flags.GetInt("years"); err != nil {
			return err
		}
	}
	if flags.Changed("start") {
		if cfg.StartDate, err = flags.GetString("start"); err != nil {
			return err
		}
	}
	if flags.Changed("xlsx") {
		if cfg.WriteXLSX, err = flags.GetBool("xlsx"); err != nil {
			return err
		}
	}
	return nil
}

func runGenerate(cfg *config.Config, logger zerolog.Logger, out io.Writer) error {
	gc, err := cfg.GeneratorConfig()
	if err != nil {
		return err
	}
	logger.Info().
		Int("patients", gc.Patients).
		Int("years", gc.Years).
		Uint64("seed", gc.Seed).
		Str("start", gc.Start.Format(hospital.DateLayout)).
		Msg("generating dataset")

	ds, err := synth.Generate(gc, logger)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	summary, err := output.NewWriter(cfg.OutputDir, cfg.WriteXLSX, logger).Write(ds)
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	logger.Info().Str("dir", cfg.OutputDir).Str("run_id", summary.RunID).Msg("dataset written")
	return summary.WriteText(out)
}

// ---------------------------------------------------------------------------
// load
// ---------------------------------------------------------------------------

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a generated dataset into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = cfg.OutputDir
			}
			return runLoad(cmd.Context(), cfg, logger, dir, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("dir", "", "dataset directory (defaults to OUTPUT_DIR)")
	return cmd
}

// loadRunID returns the run id recorded in the dataset manifest, or a fresh
// id when the directory has none.
func loadRunID(dir string, logger zerolog.Logger) string {
	m, err := output.ReadManifest(dir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("no manifest; assigning a new run id")
		return uuid.NewString()
	}
	return m.RunID
}

func runLoad(ctx context.Context, cfg *config.Config, logger zerolog.Logger, dir string, out io.Writer) error {
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, db.ApplicationName("medicare-load"))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	runID := loadRunID(dir, logger)
	res, err := db.NewLoader(pool, logger).Load(ctx, dir, runID)
	if err != nil {
		return err
	}
	logger.Info().Str("run_id", runID).Int64("rows", res.Rows).Dur("duration", res.Duration).Msg("dataset loaded")
	_, err = fmt.Fprintf(out, "Loaded %d rows from %s (run %s) in %s\n", res.Rows, dir, runID, res.Duration.Round(time.Millisecond))
	return err
}

// ---------------------------------------------------------------------------
// summary
// ---------------------------------------------------------------------------

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary of a generated dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = cfg.OutputDir
			}
			m, err := output.ReadManifest(dir)
			if err != nil {
				return err
			}
			return m.Summary.WriteText(cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("dir", "", "dataset directory (defaults to OUTPUT_DIR)")
	return cmd
}

// ---------------------------------------------------------------------------
// token
// ---------------------------------------------------------------------------

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			roles, _ := cmd.Flags().GetStringSlice("role")

			tok, err := auth.IssueToken(jwtConfig(cfg), subject, roles, ttl)
			if err != nil {
				if errors.Is(err, auth.ErrNoSigningKey) {
					return errors.New("DASHBOARD_JWT_SECRET is not set")
				}
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().String("subject", "dashboard", "token subject")
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().StringSlice("role", []string{"viewer"}, "roles to embed in the token")
	return cmd
}

func jwtConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		Issuer:     auth.DefaultIssuer,
		SigningKey: []byte(cfg.JWTSecret),
		Skipper:    auth.AuthSkipper,
	}
}

// ---------------------------------------------------------------------------
// serve
// ---------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the analytics dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns,
		db.ReadOnly(), db.ApplicationName("medicare-dashboard"))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	if loaded, err := db.DatasetLoaded(ctx, pool); err != nil || !loaded {
		logger.Warn().Err(err).Msg("no dataset loaded; run generate and load first")
	}

	runner := reporting.OpenPool(pool)
	defer runner.Close()

	e := newServer(cfg, runner, pool, logger)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Bool("auth", cfg.AuthEnabled()).Msg("starting dashboard server")
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
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer wires the dashboard API. pool may be nil, in which case the
// database health route is not registered.
func newServer(cfg *config.Config, runner reporting.Runner, pool *pgxpool.Pool, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = middleware.NewValidator()

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.RequestTimeout(cfg.QueryTimeout))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	reg := prometheus.NewRegistry()
	lib := reporting.NewLibrary(runner,
		reporting.WithCache(cfg.CacheTTL),
		reporting.WithMetrics(reporting.NewMetrics(reg)),
		reporting.WithLogger(logger),
	)
	svc := dashboard.NewService(lib, cfg.HospitalName, logger)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	apiV1 := e.Group("/api/v1")
	if cfg.AuthEnabled() {
		apiV1.Use(auth.JWTMiddleware(jwtConfig(cfg)))
	}
	reporting.NewHandler(lib).RegisterRoutes(apiV1)
	dashboard.NewHandler(svc).RegisterRoutes(apiV1)

	return e
}
