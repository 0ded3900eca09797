// Package auth manages local accounts and the persisted login session.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
)

// Accounts is the account backend the service authenticates against.
type Accounts interface {
	CreateUser(ctx context.Context, name, email, password string) (*core.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*core.User, error)
}

// Service exposes the current session and login/logout operations.
type Service struct {
	accounts Accounts
	storage  *SessionStorage

	mu      sync.RWMutex
	session *Session
}

// NewService creates an auth service and restores any persisted session.
func NewService(accounts Accounts, storage *SessionStorage) (*Service, error) {
	s := &Service{accounts: accounts, storage: storage}

	session, err := storage.Load()
	if err != nil {
		return nil, err
	}
	s.session = session
	return s, nil
}

// Authenticated reports whether a user is signed in.
func (s *Service) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// CurrentUser returns the signed-in user, or nil.
func (s *Service) CurrentUser() *core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	u := s.session.User
	return &u
}

// Login validates credentials and persists the session.
func (s *Service) Login(ctx context.Context, email, password string) (*core.User, error) {
	if email == "" || password == "" {
		return nil, errors.ErrInvalidLogin
	}

	user, err := s.accounts.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return user, s.setSession(user)
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*core.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.ErrInvalidLogin
	}

	user, err := s.accounts.CreateUser(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	return user, s.setSession(user)
}

// Logout clears the session in memory and on disk.
func (s *Service) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	return s.storage.Delete()
}

func (s *Service) setSession(user *core.User) error {
	session := &Session{User: *user, CreatedAt: time.Now()}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return s.storage.Save(session)
}
