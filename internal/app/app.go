package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/sportorg/competition-api/internal/config"
	"github.com/sportorg/competition-api/internal/domain/club"
	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/place"
	"github.com/sportorg/competition-api/internal/domain/player"
	"github.com/sportorg/competition-api/internal/domain/registration"
	"github.com/sportorg/competition-api/internal/infrastructure/account/sessions"
	cacherepo "github.com/sportorg/competition-api/internal/infrastructure/repository/cache"
	"github.com/sportorg/competition-api/internal/infrastructure/repository/memory"
	"github.com/sportorg/competition-api/internal/infrastructure/repository/postgres"
	"github.com/sportorg/competition-api/internal/interfaces/httpapi"
	basecache "github.com/sportorg/competition-api/internal/platform/cache"
	idgen "github.com/sportorg/competition-api/internal/platform/id"
	"github.com/sportorg/competition-api/internal/platform/resilience"
	"github.com/sportorg/competition-api/internal/usecase"
)

type repositories struct {
	places        place.Repository
	clubs         club.Repository
	groups        group.Repository
	players       player.Repository
	competitions  competition.Repository
	registrations registration.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup closes the database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.places = cacherepo.NewPlaceRepository(repos.places, store)
		repos.clubs = cacherepo.NewClubRepository(repos.clubs, store)
		repos.groups = cacherepo.NewGroupRepository(repos.groups, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.competitions = cacherepo.NewCompetitionRepository(repos.competitions, store)
	}

	rules := eligibility.Rules{
		U18Cap:             cfg.RosterU18Cap,
		SeniorAgeThreshold: cfg.SeniorAgeThreshold,
		U18AgeLimit:        cfg.U18AgeLimit,
	}
	generator := idgen.NewRandomGenerator()

	handler := httpapi.NewHandler(
		usecase.NewClubService(repos.clubs, repos.places),
		usecase.NewPlayerService(repos.clubs, repos.groups, repos.players, generator, logger),
		usecase.NewCompetitionService(repos.competitions, repos.groups, repos.players, rules, generator, logger),
		usecase.NewRosterService(repos.competitions, repos.players, repos.registrations, rules, generator, logger),
		usecase.NewDashboardService(repos.clubs, repos.places, repos.groups, repos.competitions, repos.players, repos.registrations),
		usecase.NewEligibilityAuditService(repos.competitions, repos.players, repos.registrations, rules, logger),
		logger,
	)

	verifier := sessions.NewClient(
		&http.Client{Timeout: cfg.SessionsTimeout},
		cfg.SessionsBaseURL,
		cfg.SessionsIntrospectPath,
		cfg.SessionsAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.SessionsCircuitEnabled,
			FailureThreshold: cfg.SessionsCircuitFailureCount,
			OpenTimeout:      cfg.SessionsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SessionsCircuitHalfOpenMax,
		},
		logger,
	)

	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		cleanupQuietly(cleanup)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config) (repositories, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return repositories{
			places:        memory.NewPlaceRepository(memory.SeedPlaces()),
			clubs:         memory.NewClubRepository(memory.SeedClubs()),
			groups:        memory.NewGroupRepository(memory.SeedGroups()),
			players:       memory.NewPlayerRepository(memory.SeedPlayers()),
			competitions:  memory.NewCompetitionRepository(memory.SeedCompetitions()),
			registrations: memory.NewRegistrationRepository(nil),
		}, noop, nil

	case config.StorageDriverPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			places:        postgres.NewPlaceRepository(db),
			clubs:         postgres.NewClubRepository(db),
			groups:        postgres.NewGroupRepository(db),
			players:       postgres.NewPlayerRepository(db),
			competitions:  postgres.NewCompetitionRepository(db),
			registrations: postgres.NewRegistrationRepository(db),
		}, db.Close, nil

	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return db, nil
}

func cleanupQuietly(cleanup func() error) {
	if cleanup != nil {
		_ = cleanup()
	}
}
