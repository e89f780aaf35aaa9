package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/pulsecoach/internal/chatbot"
	"github.com/myrjola/pulsecoach/internal/chatbot/tools"
	"github.com/myrjola/pulsecoach/internal/envstruct"
	"github.com/myrjola/pulsecoach/internal/errors"
	"github.com/myrjola/pulsecoach/internal/logging"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/sqlite"
	"github.com/myrjola/pulsecoach/internal/workout"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	profiles       profile.Store
	workoutService *workout.Service
	chatbotService *chatbot.Service
	planStore      *workout.SQLitePlanStore
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"PULSECOACH_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"PULSECOACH_SQLITE_URL" envDefault:"./pulsecoach.sqlite3"`
	// OpenAIAPIKey authenticates the coaching assistant. Chat endpoints fail without it.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
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

	sessionManager := initializeSessionManager(db)

	profiles := profile.NewSQLiteStore(db)
	planStore := workout.NewSQLitePlanStore(db)
	workoutService := workout.NewService(logger, profiles, workout.NewSQLiteExercisePool(db), planStore)

	chatbotService := chatbot.NewService(db, logger, cfg.OpenAIAPIKey)
	chatbotService.RegisterTool(tools.NewZoneTool(workoutService, profiles))
	chatbotService.RegisterTool(tools.NewSafetyTool(workoutService, profiles))
	chatbotService.RegisterTool(tools.NewRecommendationTool(workoutService))
	chatbotService.RegisterTool(tools.NewStatisticsTool(planStore, profiles))
	chatbotService.RegisterTool(tools.NewLoadTool(profiles))
	chatbotService.RegisterTool(tools.NewCalorieTool(profiles))

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		profiles:       profiles,
		workoutService: workoutService,
		chatbotService: chatbotService,
		planStore:      planStore,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                                //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
