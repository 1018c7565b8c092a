package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vdsgame/vds-api/internal/config"
	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/infrastructure/identity/reddit"
	cacherepo "github.com/vdsgame/vds-api/internal/infrastructure/repository/cache"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/memory"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/postgres"
	"github.com/vdsgame/vds-api/internal/interfaces/httpapi"
	basecache "github.com/vdsgame/vds-api/internal/platform/cache"
	idgen "github.com/vdsgame/vds-api/internal/platform/id"
	"github.com/vdsgame/vds-api/internal/platform/logging"
	"github.com/vdsgame/vds-api/internal/platform/resilience"
	"github.com/vdsgame/vds-api/internal/usecase"
)

type repositories struct {
	games    game.Repository
	riders   rider.Repository
	races    race.Repository
	rosters  roster.Repository
	players  player.Repository
	sessions player.SessionRepository
}

// NewHTTPServer wires storage, services and the HTTP surface into one server.
// The returned cleanup releases storage resources and must run on shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var cacheStore *basecache.Store
	if cfg.CacheEnabled {
		cacheStore = basecache.NewStore(cfg.CacheTTL)
		repos.games = cacherepo.NewGameRepository(repos.games, cacheStore)
		repos.races = cacherepo.NewRaceRepository(repos.races, cacheStore)
	}

	identityProvider := reddit.NewClient(reddit.Config{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		RedirectURL:  cfg.RedditRedirectURL,
		AuthBaseURL:  cfg.RedditAuthBaseURL,
		APIBaseURL:   cfg.RedditAPIBaseURL,
		UserAgent:    cfg.RedditUserAgent,
		Timeout:      cfg.RedditTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RedditCircuitEnabled,
			FailureThreshold: cfg.RedditCircuitFailureCount,
			OpenTimeout:      cfg.RedditCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RedditCircuitHalfOpenMaxReq,
		},
	}, logger)

	gameSvc := usecase.NewGameService(repos.games)
	riderSvc := usecase.NewRiderService(repos.riders, repos.races, cacheStore, logger)
	teamSvc := usecase.NewTeamService(repos.rosters, repos.riders, logger)
	scoringSvc := usecase.NewScoringService(repos.rosters, repos.riders, repos.races, repos.players)
	raceSvc := usecase.NewRaceService(repos.races)
	authSvc := usecase.NewAuthService(repos.players, repos.sessions, identityProvider, idgen.NewRandomGenerator(), cfg.SessionTTL, logger)
	revalidateSvc := usecase.NewRevalidateService(repos.rosters, repos.riders, cfg.RevalidateWorkers, logger)

	handler := httpapi.NewHandler(
		gameSvc,
		riderSvc,
		teamSvc,
		scoringSvc,
		raceSvc,
		authSvc,
		revalidateSvc,
		httpapi.SessionCookie{
			Name:   cfg.SessionCookieName,
			MaxAge: cfg.SessionTTL,
			Secure: cfg.AppEnv != config.EnvDev,
		},
		cfg.FrontendBaseURL,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewServer(handler, authSvc, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage configured", "driver", config.StorageMemory, "seed_year", memory.SeedYear)
		return repositories{
			games:    memory.NewGameRepository(memory.SeedGames()),
			riders:   memory.NewRiderRepository(memory.SeedRiders()),
			races:    memory.NewRaceRepository(memory.SeedRaces(), memory.SeedStages(), memory.SeedFinishers(), memory.SeedJerseys()),
			rosters:  memory.NewRosterRepository(memory.SeedRiders()),
			players:  memory.NewPlayerRepository(),
			sessions: memory.NewSessionRepository(),
		}, noop, nil
	case config.StoragePostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("storage configured", "driver", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))
		return repositories{
			games:    postgres.NewGameRepository(db),
			riders:   postgres.NewRiderRepository(db),
			races:    postgres.NewRaceRepository(db),
			rosters:  postgres.NewRosterRepository(db),
			players:  postgres.NewPlayerRepository(db),
			sessions: postgres.NewSessionRepository(db),
		}, func(context.Context) error { return db.Close() }, nil
	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}
