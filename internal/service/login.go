package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"zayura-backend/internal/auth"
	"zayura-backend/internal/model"
	"zayura-backend/internal/store"
)

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// Login checks credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	token, exp, err := s.issuer.Issue(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, Username: user.Username, Role: user.Role}, nil
}

// EnsureAdmin creates the first operator account when no user exists yet.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	n, err := s.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if username == "" || password == "" {
		log.Printf("No users exist and auth.admin_password is empty; login is disabled until an admin is created")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.store.CreateUser(ctx, &model.User{Username: username, PasswordHash: hash, Role: "admin"}); err != nil {
		return err
	}
	log.Printf("Created admin user %q", username)
	return nil
}
