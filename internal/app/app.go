package app

import (
	"context"
	"net/http"

	"github.com/RubachokBoss/student-registry/internal/config"
	"github.com/RubachokBoss/student-registry/internal/delivery/httpd"
	appmw "github.com/RubachokBoss/student-registry/internal/middleware"
	"github.com/RubachokBoss/student-registry/internal/repository"
	"github.com/RubachokBoss/student-registry/internal/service"
	"github.com/RubachokBoss/student-registry/internal/service/integration"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *mongo.Database
	publisher integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger, db *mongo.Database) (*App, error) {
	var publisher integration.EventPublisher
	if cfg.RabbitMQ.Enabled {
		var err error
		publisher, err = integration.NewRabbitMQPublisher(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.RoutingKey,
			cfg.RabbitMQ.QueueName,
			log,
		)
		if err != nil {
			// Events are best-effort: run without them rather than
			// refusing to start.
			log.Error().Err(err).Msg("Failed to create RabbitMQ publisher, events disabled")
			publisher = nil
		}
	}

	studentRepo := repository.NewStudentRepository(db, log)
	studentService := service.NewStudentService(studentRepo, publisher, log)
	handler := httpd.NewHandler(studentService, log)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appmw.RequestLogger(log))
	router.Use(appmw.Recovery(log))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        db,
		publisher: publisher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting student registry on %s", a.config.Server.Address)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down student registry...")

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Client().Disconnect(ctx); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close MongoDB connection")
		}
	}

	return a.server.Shutdown(ctx)
}
