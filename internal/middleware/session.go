package middleware

import (
	"context"
	"net/http"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
	"github.com/dkoval-dev/goblog/internal/logger"
	"github.com/dkoval-dev/goblog/internal/token"
	"github.com/dkoval-dev/goblog/internal/utils"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

// Key to store the session in the request context
type key int

const sessionKey key = 0

type SessionStorage interface {
	CreateSession(ctx context.Context) (domain.Session, error)
	Session(ctx context.Context, sessionToken string) (domain.Session, error)
}

// Session resolves the inbound signed cookie to a session record and injects
// it into the request context. A missing, invalid or expired cookie, or a
// token that no longer resolves to a stored session, gets a fresh
// anonymous session and a re-issued cookie, so every request downstream sees
// exactly one session.
type Session struct {
	storage       SessionStorage
	codec         *token.Codec
	cookieMaxAge  int
	secureCookies bool
}

func NewSession(storage SessionStorage, codec *token.Codec, cookieMaxAgeSeconds int, secureCookies bool) *Session {
	return &Session{storage, codec, cookieMaxAgeSeconds, secureCookies}
}

func (m *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, fresh, err := m.resolve(r)
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		if fresh {
			m.setCookie(w, sess.Token)
		}

		ctx := ContextWithSession(r.Context(), &sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Session) resolve(r *http.Request) (sess domain.Session, fresh bool, err error) {
	cookie, err := r.Cookie(SessionCookie)
	if err == nil {
		sessionToken, decodeErr := m.codec.Decode(cookie.Value)
		if decodeErr == nil {
			sess, err = m.storage.Session(r.Context(), sessionToken)
			if err == nil {
				return sess, false, nil
			}
			// Only a stale token (the session row is gone) mints a new
			// session. A store failure must not log the user out.
			if !internal_errors.IsNotFound(err) {
				return domain.Session{}, false, err
			}
			logger.Log.Debug("session token did not resolve", "error", err)
		}
	}

	sess, err = m.storage.CreateSession(r.Context())
	if err != nil {
		return domain.Session{}, false, err
	}
	return sess, true, nil
}

func (m *Session) setCookie(w http.ResponseWriter, sessionToken string) {
	signed, err := m.codec.Encode(sessionToken)
	if err != nil {
		// The session row exists but the client won't be able to return to
		// it. The request itself still proceeds anonymously.
		logger.Log.Error("failed to sign session cookie", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     SessionCookie,
		Value:    signed,
		MaxAge:   m.cookieMaxAge,
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ContextWithSession attaches sess to ctx. Exposed for handler tests.
func ContextWithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// GetSessionFromContext returns the session the middleware attached, or nil
// when the middleware did not run.
func GetSessionFromContext(r *http.Request) *domain.Session {
	sess, ok := r.Context().Value(sessionKey).(*domain.Session)
	if !ok {
		return nil
	}
	return sess
}
