package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clientdesk/internal/config"
	"clientdesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	router   *gin.Engine
	mongo    *mongo.Client
	services *Services
}

// New creates a new server instance
func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	repos := InitRepositories(db)
	services := InitServices(cfg, repos, log)
	handlers := InitHandlers(services)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := PopulateInitialData(ctx, services); err != nil {
		return nil, fmt.Errorf("failed to populate initial data: %w", err)
	}

	router := setupRouter(handlers, services)

	return &Server{
		cfg:      cfg,
		log:      log,
		router:   router,
		mongo:    mongoClient,
		services: services,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Close disconnects MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	s.log.Info("server listening", "addr", s.cfg.Server.Address())
	return s.router.Run(s.cfg.Server.Address())
}

func setupRouter(h *Handlers, s *Services) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Static files (dashboard UI)
	r.Static("/ui", "./static")

	api := r.Group("/api")

	// Login route (no auth)
	api.POST("/login", h.Auth.Login)

	// Everything else requires a live session
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.Auth))

	protected.POST("/logout", h.Auth.Logout)
	protected.PUT("/credentials", h.Auth.UpdateCredentials)

	// Client routes
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)

		clients.GET("/:id/files", h.File.List)
		clients.POST("/:id/files", h.File.Upload)
		clients.DELETE("/:id/files/:fileId", h.File.Delete)
		clients.GET("/:id/files/:fileId/download", h.File.Download)

		clients.GET("/:id/annotations", h.Annotation.List)
		clients.POST("/:id/annotations", h.Annotation.Create)
		clients.PUT("/:id/annotations/:annotationId", h.Annotation.Update)
		clients.DELETE("/:id/annotations/:annotationId", h.Annotation.Delete)

		clients.GET("/:id/marks", h.Client.GetMarks)
		clients.PUT("/:id/marks", h.Client.SetMarks)
	}

	// Cross-client file views and tag catalogs
	protected.GET("/files", h.File.ListAll)
	protected.GET("/years", h.File.Years)
	protected.GET("/periods", h.File.Periods)

	// Merged-PDF routes
	merged := protected.Group("/merged")
	{
		merged.GET("", h.Merge.List)
		merged.POST("", h.Merge.Create)
		merged.DELETE("", h.Merge.Clear)
		merged.GET("/candidates", h.Merge.Candidates)
		merged.GET("/name-suggestion", h.Merge.SuggestName)
		merged.GET("/:id/download", h.Merge.Download)
		merged.DELETE("/:id", h.Merge.Delete)
	}

	// Archive packing
	protected.POST("/archives", h.Archive.Create)

	// Control-mark catalog
	marks := protected.Group("/marks")
	{
		marks.GET("", h.Mark.List)
		marks.POST("", h.Mark.Create)
		marks.PUT("/:id", h.Mark.Update)
		marks.DELETE("/:id", h.Mark.Delete)
	}

	// Snapshot export/import
	protected.GET("/export", h.Backup.Export)
	protected.POST("/import", h.Backup.Import)

	return r
}
