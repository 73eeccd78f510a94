package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
)

// CreateSession mints a session row with a fresh opaque token and no login.
func (s *Storage) CreateSession(ctx context.Context) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	sess := domain.Session{Token: uuid.NewString()}
	_, err := s.db.ExecContext(ctx, "INSERT INTO sessions(token) VALUES($1)", sess.Token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}
	return sess, nil
}

// Session resolves a token to its session record.
func (s *Storage) Session(ctx context.Context, sessionToken string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sess domain.Session
	err := s.db.QueryRowContext(ctx, "SELECT token, login FROM sessions WHERE token = $1", sessionToken).
		Scan(&sess.Token, &sess.Login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Session not found", StatusCode: http.StatusNotFound}
		}
		return domain.Session{}, fmt.Errorf("failed to query session: %w", err)
	}
	return sess, nil
}

// SetSessionLogin sets or clears (login == nil) the login bound to a session.
func (s *Storage) SetSessionLogin(ctx context.Context, sessionToken string, login *string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "UPDATE sessions SET login = $1, updated_at = now() WHERE token = $2", login, sessionToken)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for session update: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Session not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
