package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
)

// SaveBlog persists a new post. The primary key on slug rejects permalink
// collisions (same author, same day, same title) at write time.
func (s *Storage) SaveBlog(ctx context.Context, post domain.BlogPost) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO blogs(slug, author, title, text, created_at) VALUES($1, $2, $3, $4, $5)",
			post.Slug, post.Author, post.Title, post.Text, post.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return &internal_errors.ErrorWithStatusCode{Message: "Post with such permalink already exists", StatusCode: http.StatusBadRequest}
			}
			return fmt.Errorf("failed to insert blog post: %w", err)
		}
		return nil
	})
}

// Blogs returns one page of posts, newest first.
func (s *Storage) Blogs(ctx context.Context, limit, offset int) ([]domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT slug, author, title, text, created_at FROM blogs ORDER BY created_at DESC, slug LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		var post domain.BlogPost
		if err := rows.Scan(&post.Slug, &post.Author, &post.Title, &post.Text, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blog posts: %w", err)
	}
	return posts, nil
}

// CountBlogs returns the total number of stored posts.
func (s *Storage) CountBlogs(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}
	return count, nil
}

// Blog fetches a single post by its slug.
func (s *Storage) Blog(ctx context.Context, slug string) (domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post domain.BlogPost
	err := s.db.QueryRowContext(ctx, "SELECT slug, author, title, text, created_at FROM blogs WHERE slug = $1", slug).
		Scan(&post.Slug, &post.Author, &post.Title, &post.Text, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BlogPost{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.BlogPost{}, fmt.Errorf("failed to query blog post: %w", err)
	}
	return post, nil
}
