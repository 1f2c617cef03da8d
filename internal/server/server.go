package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/jeredeldo/car-sales-api/internal/config"
	"github.com/jeredeldo/car-sales-api/internal/database"
	custommiddleware "github.com/jeredeldo/car-sales-api/internal/middleware"
	"github.com/jeredeldo/car-sales-api/internal/repository"
	"github.com/jeredeldo/car-sales-api/internal/service"
	"github.com/jeredeldo/car-sales-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env != "production"))

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Service identity endpoint
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":  "operational",
			"service": config.AppName,
			"version": config.AppVersion,
		})
	})

	// Database health endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, database.Health(r.Context(), db))
	})

	// Initialize repositories
	autoRepo := repository.NewAutoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	paisRepo := repository.NewPaisRepository(db)
	personaRepo := repository.NewPersonaRepository(db)

	// Initialize services
	autoService := service.NewAutoService(autoRepo, nil)
	ventaService := service.NewVentaService(ventaRepo, autoRepo)
	paisService := service.NewPaisService(paisRepo)
	personaService := service.NewPersonaService(personaRepo, paisRepo)

	// Initialize handlers
	autoHandler := transport.NewAutoHandler(autoService, logger)
	ventaHandler := transport.NewVentaHandler(ventaService, logger)
	registroHandler := transport.NewRegistroHandler(paisService, personaService, logger)

	// Register routes
	autoHandler.RegisterRoutes(router)
	ventaHandler.RegisterRoutes(router)
	registroHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
