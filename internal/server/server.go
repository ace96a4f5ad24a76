package server

import (
	"fmt"
	"log"
	"time"

	"election-service/configs"
	"election-service/internal/cache"
	"election-service/internal/engine"
	"election-service/internal/events"
	"election-service/internal/ports"
	"election-service/internal/server/handlers"
	"election-service/internal/storage/memory"
	"election-service/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const resultsCacheTTL = 10 * time.Second

type App struct {
	router    *gin.Engine
	cfg       *configs.Config
	publisher *events.Publisher
}

func NewApp() (*App, error) {
	cfg := configs.Load()

	stores, tx, err := buildStores(cfg)
	if err != nil {
		return nil, err
	}
	eng := engine.New(stores, tx)

	var publisher *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Printf("Audit events enabled on topic %q", cfg.Kafka.Topic)
	}

	var resultsCache *cache.ResultsCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		resultsCache = cache.NewResultsCache(redis.NewClient(opts), resultsCacheTTL)
		log.Printf("Results cache enabled")
	}

	// Setup handlers
	authHandler := handlers.NewAuthHandler(cfg.App.AdminEmail, cfg.App.AdminPasswordHash, cfg.App.JWTSecret, cfg.App.JWTExpire)
	electionHandler := handlers.NewElectionHandler(eng, publisher, resultsCache)
	candidateHandler := handlers.NewCandidateHandler(eng)
	voterHandler := handlers.NewVoterHandler(eng)
	voteHandler := handlers.NewVoteHandler(eng, publisher, resultsCache)
	resultsHandler := handlers.NewResultsHandler(eng, resultsCache)

	// Setup router
	router := gin.Default()
	SetupRoutes(router, cfg.App.JWTSecret, authHandler, electionHandler, candidateHandler, voterHandler, voteHandler, resultsHandler)

	return &App{
		router:    router,
		cfg:       cfg,
		publisher: publisher,
	}, nil
}

// buildStores picks the storage backend. Both backends satisfy the same
// contracts; the engine never knows which one it got.
func buildStores(cfg *configs.Config) (ports.Stores, ports.TxRunner, error) {
	switch cfg.StorageBackend {
	case "postgres":
		dsn := cfg.Postgres.URL
		if dsn == "" {
			dsn = postgres.DSNFromComponents(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DB)
		}
		db, err := postgres.NewConnection(dsn)
		if err != nil {
			return ports.Stores{}, nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return ports.Stores{}, nil, err
		}
		log.Printf("Using postgres storage backend")
		store := postgres.NewStore(db)
		return store.Stores(), store, nil
	case "memory", "":
		log.Printf("Using in-memory storage backend")
		store := memory.NewStore()
		return store.Stores(), store, nil
	default:
		return ports.Stores{}, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (a *App) Run() error {
	defer a.publisher.Close()
	return a.router.Run(":" + a.cfg.App.Port)
}
