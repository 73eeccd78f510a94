package service

import (
	"context"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
)

type BlogService interface {
	Create(ctx context.Context, sess *domain.Session, title, text string) (domain.BlogPost, error)
	Page(ctx context.Context, page int) ([]domain.BlogPost, int, error)
	BySlug(ctx context.Context, slug string) (domain.BlogPost, error)
}

type BlogStorage interface {
	SaveBlog(ctx context.Context, post domain.BlogPost) error
	Blogs(ctx context.Context, limit, offset int) ([]domain.BlogPost, error)
	CountBlogs(ctx context.Context) (int, error)
	Blog(ctx context.Context, slug string) (domain.BlogPost, error)
}

type Blog struct {
	storage      BlogStorage
	titlePolicy  *bluemonday.Policy
	textPolicy   *bluemonday.Policy
	postsPerPage int
	now          func() time.Time
}

func NewBlog(storage BlogStorage, postsPerPage int) *Blog {
	return &Blog{
		storage: storage,
		// Titles become part of permalinks, so they are stripped to plain
		// text; post bodies keep user-generated-content markup.
		titlePolicy:  bluemonday.StrictPolicy(),
		textPolicy:   bluemonday.UGCPolicy(),
		postsPerPage: postsPerPage,
		now:          time.Now,
	}
}

// Create persists a post authored by the session's login, stamping the
// creation time and deriving the permalink slug from it.
func (b *Blog) Create(ctx context.Context, sess *domain.Session, title, text string) (domain.BlogPost, error) {
	if !sess.LoggedIn() {
		return domain.BlogPost{}, &internal_errors.ErrorWithStatusCode{Message: "You are not logged in", StatusCode: http.StatusBadRequest}
	}

	title = b.titlePolicy.Sanitize(title)
	text = b.textPolicy.Sanitize(text)
	createdAt := b.now().UTC()

	post := domain.BlogPost{
		Author:    *sess.Login,
		Title:     title,
		Text:      text,
		CreatedAt: createdAt,
		Slug:      domain.Slug(*sess.Login, createdAt, title),
	}

	if err := b.storage.SaveBlog(ctx, post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

// Page returns one page of posts, newest first, along with the number of the
// last page. Out-of-range page numbers are clamped, never rejected: requests
// below 1 get page 1, requests past the end get the last page. An empty store
// yields lastPage 1 and an empty page.
func (b *Blog) Page(ctx context.Context, page int) ([]domain.BlogPost, int, error) {
	if page < 1 {
		page = 1
	}

	count, err := b.storage.CountBlogs(ctx)
	if err != nil {
		return nil, 0, err
	}

	lastPage := (count + b.postsPerPage - 1) / b.postsPerPage
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}

	posts, err := b.storage.Blogs(ctx, b.postsPerPage, (page-1)*b.postsPerPage)
	if err != nil {
		return nil, 0, err
	}
	return posts, lastPage, nil
}

// BySlug fetches a single post by exact slug match. Slugs are unique by
// constraint, so at most one post can answer.
func (b *Blog) BySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	return b.storage.Blog(ctx, slug)
}
