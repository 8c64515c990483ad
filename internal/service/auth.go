package service

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/store"
)

var (
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrUserNotFound   = errors.New("user not found")
)

// AuthService resolves sessions issued by the external login flow.
type AuthService interface {
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, *model.Session, error)
}

type authService struct {
	sessions store.SessionStore
	users    store.UserStore
}

func NewAuthService(sessions store.SessionStore, users store.UserStore) AuthService {
	return &authService{sessions: sessions, users: users}
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, *model.Session, error) {
	session, err := s.sessions.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, fmt.Errorf("fetching session: %w", err)
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("fetching user: %w", err)
	}

	return user, session, nil
}
