package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
)

func TestCreateBlogHandler(t *testing.T) {
	requestBody := []byte(`{"title": "Test", "text": "Body"}`)

	t.Run("successful request", func(t *testing.T) {
		var gotTitle, gotText string
		h := New(&MockAuthService{}, &MockBlogService{
			CreateFunc: func(ctx context.Context, sess *domain.Session, title, text string) (domain.BlogPost, error) {
				gotTitle, gotText = title, text
				return domain.BlogPost{Author: *sess.Login, Title: title, Text: text}, nil
			},
		})
		router := testRouter(h)

		req := createRequest(t, http.MethodPost, "/blogs", requestBody, &domain.Session{Token: "t", Login: strPtr("bob")})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", decodeBody(t, rr)["status"])
		assert.Equal(t, "Test", gotTitle)
		assert.Equal(t, "Body", gotText)
	})

	t.Run("not logged in", func(t *testing.T) {
		h := New(&MockAuthService{}, &MockBlogService{
			CreateFunc: func(ctx context.Context, sess *domain.Session, title, text string) (domain.BlogPost, error) {
				return domain.BlogPost{}, &internal_errors.ErrorWithStatusCode{Message: "You are not logged in", StatusCode: http.StatusBadRequest}
			},
		})
		router := testRouter(h)

		req := createRequest(t, http.MethodPost, "/blogs", requestBody, &domain.Session{Token: "t"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "You are not logged in", decodeBody(t, rr)["msg"])
	})

	t.Run("missing title", func(t *testing.T) {
		h := New(&MockAuthService{}, &MockBlogService{})
		router := testRouter(h)

		req := createRequest(t, http.MethodPost, "/blogs", []byte(`{"text": "Body"}`), &domain.Session{Token: "t", Login: strPtr("bob")})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeBody(t, rr)["msg"], "title must not be empty")
	})
}

func TestListBlogsHandler(t *testing.T) {
	t.Run("returns blogs and last page", func(t *testing.T) {
		date := time.Date(2021, 3, 5, 12, 0, 0, 0, time.UTC)
		h := New(&MockAuthService{}, &MockBlogService{
			PageFunc: func(ctx context.Context, page int) ([]domain.BlogPost, int, error) {
				assert.Equal(t, 2, page)
				return []domain.BlogPost{
					{Author: "bob", Title: "Test", Text: "Body", CreatedAt: date, Slug: "bob/2021/03/05/test"},
				}, 3, nil
			},
		})
		router := testRouter(h)

		req := createRequest(t, http.MethodGet, "/blogs/page/2", nil, &domain.Session{Token: "t"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, float64(3), body["lastpage"])

		blogs, ok := body["blogs"].([]interface{})
		require.True(t, ok)
		require.Len(t, blogs, 1)
		blog := blogs[0].(map[string]interface{})
		assert.Equal(t, "bob", blog["author"])
		assert.Equal(t, "Test", blog["title"])
		assert.Equal(t, "Body", blog["text"])
		assert.Equal(t, "bob/2021/03/05/test", blog["id"])
	})

	t.Run("empty page keeps blogs an array", func(t *testing.T) {
		h := New(&MockAuthService{}, &MockBlogService{})
		router := testRouter(h)

		req := createRequest(t, http.MethodGet, "/blogs/page/1", nil, &domain.Session{Token: "t"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"blogs":[]`)
	})

	t.Run("non-integer page", func(t *testing.T) {
		h := New(&MockAuthService{}, &MockBlogService{})
		router := testRouter(h)

		req := createRequest(t, http.MethodGet, "/blogs/page/abc", nil, &domain.Session{Token: "t"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetBlogHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		date := time.Date(2021, 3, 5, 12, 0, 0, 0, time.UTC)
		h := New(&MockAuthService{}, &MockBlogService{
			BySlugFunc: func(ctx context.Context, slug string) (domain.BlogPost, error) {
				assert.Equal(t, "alice/2021/03/05/hello-world", slug)
				return domain.BlogPost{Author: "alice", Title: "Hello World", Text: "Body", CreatedAt: date, Slug: slug}, nil
			},
		})
		router := testRouter(h)

		req := createRequest(t, http.MethodGet, "/blog/alice/2021/03/05/hello-world", nil, &domain.Session{Token: "t"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "alice", body["author"])
		assert.Equal(t, "Hello World", body["title"])
		assert.Equal(t, "Body", body["text"])
		assert.Equal(t, "alice/2021/03/05/hello-world", body["id"])
	})

	t.Run("not found is an empty 404", func(t *testing.T) {
		h := New(&MockAuthService{}, &MockBlogService{
			BySlugFunc: func(ctx context.Context, slug string) (domain.BlogPost, error) {
				return domain.BlogPost{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
			},
		})
		router := testRouter(h)

		req := createRequest(t, http.MethodGet, "/blog/nobody/2000/01/01/nothing", nil, &domain.Session{Token: "t"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}
