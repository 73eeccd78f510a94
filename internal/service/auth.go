package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
	"github.com/dkoval-dev/goblog/internal/logger"
)

// AuthService is the login/signup/logout state machine over the credential
// and session stores. The session is passed in explicitly; the services hold
// no per-request state of their own.
type AuthService interface {
	Signup(ctx context.Context, sess *domain.Session, login, password string) error
	Login(ctx context.Context, sess *domain.Session, login, password string) (string, error)
	Logout(ctx context.Context, sess *domain.Session) error
	CurrentLogin(sess *domain.Session) *string
}

type CredentialStorage interface {
	SaveUser(ctx context.Context, user domain.User) error
	User(ctx context.Context, login string) (domain.User, error)
}

type SessionWriter interface {
	SetSessionLogin(ctx context.Context, sessionToken string, login *string) error
}

type Auth struct {
	users    CredentialStorage
	sessions SessionWriter
}

func NewAuth(users CredentialStorage, sessions SessionWriter) *Auth {
	return &Auth{users, sessions}
}

// Signup creates a new credential record. The caller stays anonymous; the
// legacy flow makes users log in explicitly after signing up.
func (a *Auth) Signup(ctx context.Context, sess *domain.Session, login, password string) error {
	if sess.LoggedIn() {
		return &internal_errors.ErrorWithStatusCode{Message: "You are already logged in", StatusCode: http.StatusBadRequest, Login: *sess.Login}
	}

	_, err := a.users.User(ctx, login)
	if err == nil {
		return &internal_errors.ErrorWithStatusCode{Message: "User with such login already exists", StatusCode: http.StatusBadRequest}
	}
	if !internal_errors.IsNotFound(err) {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	// The login column's uniqueness constraint backstops the lookup above:
	// a concurrent signup of the same login fails here instead of
	// overwriting anything.
	return a.users.SaveUser(ctx, domain.User{Login: login, PassHash: string(passHash), CreatedAt: time.Now().UTC()})
}

// Login authenticates the session. Re-login with the login the session
// already carries is a no-op; a different login is a conflict.
func (a *Auth) Login(ctx context.Context, sess *domain.Session, login, password string) (string, error) {
	if sess.LoggedIn() {
		if *sess.Login == login {
			return login, nil
		}
		return "", &internal_errors.ErrorWithStatusCode{Message: "You are already logged in as " + *sess.Login, StatusCode: http.StatusBadRequest, Login: *sess.Login}
	}

	user, err := a.users.User(ctx, login)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Wrong login", StatusCode: http.StatusBadRequest}
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Wrong password", StatusCode: http.StatusBadRequest}
		}
		logger.Log.Error("failed to verify password", "error", err)
		return "", err
	}

	if err := a.sessions.SetSessionLogin(ctx, sess.Token, &login); err != nil {
		return "", err
	}
	sess.Login = &login

	return login, nil
}

// Logout clears the login bound to the session.
func (a *Auth) Logout(ctx context.Context, sess *domain.Session) error {
	if !sess.LoggedIn() {
		return &internal_errors.ErrorWithStatusCode{Message: "You are not logged in", StatusCode: http.StatusBadRequest}
	}

	if err := a.sessions.SetSessionLogin(ctx, sess.Token, nil); err != nil {
		return err
	}
	sess.Login = nil

	return nil
}

// CurrentLogin is a pure read of the session state.
func (a *Auth) CurrentLogin(sess *domain.Session) *string {
	return sess.Login
}
