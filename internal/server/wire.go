package server

import (
	"context"
	"log/slog"

	"clientdesk/internal/config"
	"clientdesk/internal/handler"
	"clientdesk/internal/repository"
	"clientdesk/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles every persistence interface
type Repositories struct {
	Clients     repository.IClientRepository
	Merged      repository.IMergedRepository
	Marks       repository.IMarkRepository
	Credentials repository.ICredentialsRepository
}

// Services bundles the business logic layer
type Services struct {
	Clients  *service.ClientService
	Merge    *service.MergeService
	Archives *service.ArchiveService
	Marks    *service.MarkService
	Auth     *service.AuthService
	Backup   *service.BackupService
}

// Handlers bundles the HTTP layer
type Handlers struct {
	Auth        *handler.AuthHandler
	Client      *handler.ClientHandler
	File        *handler.FileHandler
	Annotation  *handler.AnnotationHandler
	Merge       *handler.MergeHandler
	Archive     *handler.ArchiveHandler
	Mark        *handler.MarkHandler
	Backup      *handler.BackupHandler
}

// InitRepositories creates the mongo-backed repositories
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Clients:     repository.NewClientRepository(db),
		Merged:      repository.NewMergedRepository(db),
		Marks:       repository.NewMarkRepository(db),
		Credentials: repository.NewCredentialsRepository(db),
	}
}

// InitServices creates the service layer
func InitServices(cfg *config.Config, repos *Repositories, log *slog.Logger) *Services {
	clients := service.NewClientService(cfg, repos.Clients)
	return &Services{
		Clients:  clients,
		Merge:    service.NewMergeService(clients, repos.Merged, log),
		Archives: service.NewArchiveService(clients, log),
		Marks:    service.NewMarkService(repos.Marks),
		Auth:     service.NewAuthService(repos.Credentials, cfg),
		Backup:   service.NewBackupService(repos.Clients, repos.Merged, repos.Marks, log),
	}
}

// InitHandlers creates the HTTP handlers
func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		Auth:       handler.NewAuthHandler(services.Auth),
		Client:     handler.NewClientHandler(services.Clients, services.Marks),
		File:       handler.NewFileHandler(services.Clients),
		Annotation: handler.NewAnnotationHandler(services.Clients),
		Merge:      handler.NewMergeHandler(services.Merge),
		Archive:    handler.NewArchiveHandler(services.Archives),
		Mark:       handler.NewMarkHandler(services.Marks),
		Backup:     handler.NewBackupHandler(services.Backup),
	}
}

// PopulateInitialData seeds the admin credential pair on first boot
func PopulateInitialData(ctx context.Context, services *Services) error {
	return services.Auth.Seed(ctx)
}
