package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dkoval-dev/goblog/internal/domain"
	"github.com/dkoval-dev/goblog/internal/middleware"
)

// --- Mocks ---

type MockAuthService struct {
	SignupFunc func(ctx context.Context, sess *domain.Session, login, password string) error
	LoginFunc  func(ctx context.Context, sess *domain.Session, login, password string) (string, error)
	LogoutFunc func(ctx context.Context, sess *domain.Session) error
}

func (m *MockAuthService) Signup(ctx context.Context, sess *domain.Session, login, password string) error {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, sess, login, password)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, sess *domain.Session, login, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, sess, login, password)
	}
	return login, nil
}

func (m *MockAuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sess)
	}
	return nil
}

func (m *MockAuthService) CurrentLogin(sess *domain.Session) *string {
	return sess.Login
}

type MockBlogService struct {
	CreateFunc func(ctx context.Context, sess *domain.Session, title, text string) (domain.BlogPost, error)
	PageFunc   func(ctx context.Context, page int) ([]domain.BlogPost, int, error)
	BySlugFunc func(ctx context.Context, slug string) (domain.BlogPost, error)
}

func (m *MockBlogService) Create(ctx context.Context, sess *domain.Session, title, text string) (domain.BlogPost, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sess, title, text)
	}
	return domain.BlogPost{}, nil
}

func (m *MockBlogService) Page(ctx context.Context, page int) ([]domain.BlogPost, int, error) {
	if m.PageFunc != nil {
		return m.PageFunc(ctx, page)
	}
	return []domain.BlogPost{}, 1, nil
}

func (m *MockBlogService) BySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	if m.BySlugFunc != nil {
		return m.BySlugFunc(ctx, slug)
	}
	return domain.BlogPost{}, nil
}

// --- Helpers ---

// testRouter mirrors the application's route table without the real session
// middleware; tests attach a session to the request context directly.
func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Get("/blogs/page/{page}", h.ListBlogs)
	r.Post("/blogs", h.CreateBlog)
	r.Get("/blog/{author}/{year}/{month}/{day}/{blogtitle}", h.GetBlog)
	return r
}

func createRequest(t *testing.T, method, url string, body []byte, sess *domain.Session) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	if sess != nil {
		req = req.WithContext(middleware.ContextWithSession(req.Context(), sess))
	}
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func strPtr(s string) *string {
	return &s
}
