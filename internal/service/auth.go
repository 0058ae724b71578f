package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clientdesk/internal/config"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AuthService checks the single administrator credential pair and hands out
// session tokens. This is deliberately thin: the tool has one user and no
// authorization model.
type AuthService struct {
	repo repository.ICredentialsRepository
	cfg  *config.Config

	mu       sync.RWMutex
	sessions map[string]time.Time // token -> expiry
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.ICredentialsRepository, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, cfg: cfg, sessions: map[string]time.Time{}}
}

// Seed stores the configured default credential pair when none exists yet.
func (s *AuthService) Seed(ctx context.Context) error {
	creds, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if creds != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}
	return s.repo.Put(ctx, &model.Credentials{
		Username:     s.cfg.Admin.Username,
		PasswordHash: string(hash),
		UpdatedAt:    time.Now(),
	})
}

// Login validates the pair and returns a fresh session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	creds, err := s.repo.Get(ctx)
	if err != nil {
		return "", err
	}
	if creds == nil || creds.Username != username {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	now := time.Now()
	s.mu.Lock()
	// Abandoned sessions would otherwise linger for the process lifetime.
	for t, expiry := range s.sessions {
		if now.After(expiry) {
			delete(s.sessions, t)
		}
	}
	s.sessions[token] = now.Add(time.Duration(s.cfg.Session.TTLSeconds) * time.Second)
	s.mu.Unlock()
	return token, nil
}

// ValidateToken reports whether a session token is live; expired tokens are
// evicted on sight.
func (s *AuthService) ValidateToken(token string) bool {
	s.mu.RLock()
	expiry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return false
	}
	return true
}

// Logout drops a session token.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// UpdateCredentials replaces the username and/or password; empty arguments
// keep the current value, like the original settings screen.
func (s *AuthService) UpdateCredentials(ctx context.Context, username, password string) error {
	creds, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if creds == nil {
		return ErrNotFound
	}
	if username != "" {
		creds.Username = username
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		creds.PasswordHash = string(hash)
	}
	creds.UpdatedAt = time.Now()
	return s.repo.Put(ctx, creds)
}
