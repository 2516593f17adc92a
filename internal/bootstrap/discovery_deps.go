package bootstrap

import (
	httpadapter "discovery_server/adapter/in/http"
	"discovery_server/adapter/out/llm"
	"discovery_server/adapter/out/persistence"
	"discovery_server/config"
	"discovery_server/core/port/in"
	"discovery_server/core/port/out"
	"discovery_server/core/service/chat"
	"discovery_server/core/service/event"
	"discovery_server/core/service/user"
	"discovery_server/infra/database"
	"discovery_server/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds every wired component of the API.
type Dependencies struct {
	Config *config.Config
	DB     *pgxpool.Pool
	SQLDB  *sqlx.DB
	Redis  *redis.Client

	// Repositories
	EventRepo out.EventRepository
	UserRepo  out.UserRepository

	// External collaborator
	IntentService out.IntentService

	// Services
	EventService in.EventService
	UserService  in.UserService
	ChatService  in.ChatService

	// Handlers
	EventHandler  *httpadapter.EventHandler
	UserHandler   *httpadapter.UserHandler
	ChatHandler   *httpadapter.ChatHandler
	HealthHandler *httpadapter.HealthHandler
}

// NewDependencies wires the full dependency graph and returns a cleanup
// function that releases every acquired resource.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	pgCfg := database.DefaultPostgresConfig()

	pool, err := database.NewPostgresWithConfig(cfg.DatabaseURL, pgCfg)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := database.NewSQLx(cfg.DatabaseURL, pgCfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, rate limiting disabled")
		redisClient = nil
	}

	eventRepo := persistence.NewEventRepository(sqlDB)
	userRepo := persistence.NewUserRepository(sqlDB)

	intentService := llm.NewAdapter(llm.Config{
		BaseURL: cfg.LLMServiceURL,
		Timeout: cfg.LLMTimeout,
	})

	eventService := event.NewService(eventRepo)
	userService := user.NewService(userRepo)
	chatService := chat.NewService(intentService, eventRepo, cfg.ChatEventLimit)

	deps := &Dependencies{
		Config: cfg,
		DB:     pool,
		SQLDB:  sqlDB,
		Redis:  redisClient,

		EventRepo: eventRepo,
		UserRepo:  userRepo,

		IntentService: intentService,

		EventService: eventService,
		UserService:  userService,
		ChatService:  chatService,

		EventHandler:  httpadapter.NewEventHandler(eventService),
		UserHandler:   httpadapter.NewUserHandler(userService),
		ChatHandler:   httpadapter.NewChatHandler(chatService),
		HealthHandler: httpadapter.NewHealthHandler(pool, redisClient, intentService),
	}

	cleanup := func() {
		if sqlDB != nil {
			sqlDB.Close()
		}
		if pool != nil {
			pool.Close()
		}
		if redisClient != nil {
			redisClient.Close()
		}
	}

	return deps, cleanup, nil
}
