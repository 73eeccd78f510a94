package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
)

// SaveUser persists a new credential record. The primary key on login makes
// duplicate signups fail atomically, including ones racing each other; the
// unique violation is reported as the login-taken conflict.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.saveUser(ctx, tx, user)
	})
}

// User fetches a credential record by login.
func (s *Storage) User(ctx context.Context, login string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.user(ctx, s.db, login)
}

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) error {
	_, err := q.ExecContext(ctx, "INSERT INTO users(login, password_hash, created_at) VALUES($1, $2, $3)",
		user.Login, user.PassHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &internal_errors.ErrorWithStatusCode{Message: "User with such login already exists", StatusCode: http.StatusBadRequest}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Storage) user(ctx context.Context, q Querier, login string) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx, "SELECT login, password_hash, created_at FROM users WHERE login = $1", login).
		Scan(&user.Login, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
