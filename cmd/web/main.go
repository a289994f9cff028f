package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/envstruct"
	"github.com/saulgabriel7/athlete-core/internal/errors"
	"github.com/saulgabriel7/athlete-core/internal/flightrecorder"
	"github.com/saulgabriel7/athlete-core/internal/logging"
	"github.com/saulgabriel7/athlete-core/internal/plan"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/scoring"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	profileService *profile.Service
	catalogService *catalog.Service
	planService    *plan.Service
	scoringService *scoring.Service
	corsOrigins    []string
	flightRecorder *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"ATHLETE_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"ATHLETE_SQLITE_URL" envDefault:"./athlete.sqlite3"`
	// OpenAIAPIKey enables AI-generated exercise content when set.
	OpenAIAPIKey string `env:"ATHLETE_OPENAI_API_KEY" envDefault:""`
	// CORSOrigins is a comma-separated list of origins allowed to call the API.
	CORSOrigins string `env:"ATHLETE_CORS_ORIGINS" envDefault:"*"`
	// TracesDirectory enables slow request trace capture when set.
	TracesDirectory string `env:"ATHLETE_TRACES_DIRECTORY" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	profileService := profile.NewService(db, logger)
	catalogService := catalog.NewService(db, logger, cfg.OpenAIAPIKey)

	app := application{
		logger:         logger,
		profileService: profileService,
		catalogService: catalogService,
		planService:    plan.NewService(db, profileService, catalogService, logger),
		scoringService: scoring.NewService(db, profileService, catalogService, logger),
		corsOrigins:    strings.Split(cfg.CORSOrigins, ","),
	}

	if cfg.TracesDirectory != "" {
		recorder, recorderErr := flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			TracesDirectory: cfg.TracesDirectory,
		})
		if recorderErr != nil {
			return errors.Wrap(recorderErr, "create flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
		app.flightRecorder = recorder
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	// Local development reads the environment from a .env file when present.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.LogAttrs(ctx, slog.LevelWarn, "failed to load .env file", slog.Any("error", err))
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
