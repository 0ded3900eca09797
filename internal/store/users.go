package store

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
)

// CreateUser registers a local account. The email must be unused.
func (s *Store) CreateUser(ctx context.Context, name, email, password string) (*core.User, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email,
	).Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.ErrEmailTaken
	}

	u := &core.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, name, email, hashPassword(password), time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// AuthenticateUser checks credentials and returns the matching account.
func (s *Store) AuthenticateUser(ctx context.Context, email, password string) (*core.User, error) {
	var u core.User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, avatar FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Avatar)
	if err == sql.ErrNoRows {
		return nil, errors.ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	want := hashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(want)) != 1 {
		return nil, errors.ErrInvalidLogin
	}
	return &u, nil
}

// GetUser loads an account by id.
func (s *Store) GetUser(ctx context.Context, id string) (*core.User, error) {
	var u core.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
