package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkoval-dev/goblog/internal/domain"
	internal_errors "github.com/dkoval-dev/goblog/internal/errors"
	"github.com/dkoval-dev/goblog/internal/logger"
	"github.com/dkoval-dev/goblog/internal/utils"
)

type createBlogRequest struct {
	Title string `validate:"required" json:"title"`
	Text  string `validate:"required" json:"text"`
}

// blogJSON is the wire shape of a post. Id is the slug, which doubles as the
// permalink path.
type blogJSON struct {
	Author string    `json:"author"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
	Id     string    `json:"id"`
}

type blogPageResponse struct {
	Status   string     `json:"status"`
	Blogs    []blogJSON `json:"blogs"`
	LastPage int        `json:"lastpage"`
}

type blogResponse struct {
	Status string    `json:"status"`
	Author string    `json:"author"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
	Id     string    `json:"id"`
}

func toBlogJSON(post domain.BlogPost) blogJSON {
	return blogJSON{
		Author: post.Author,
		Title:  post.Title,
		Text:   post.Text,
		Date:   post.CreatedAt,
		Id:     post.Slug,
	}
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("create blog request")

	sess, err := session(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var body createBlogRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	if _, err := h.blog.Create(r.Context(), sess, body.Title, body.Text); err != nil {
		utils.WriteError(w, err)
		return
	}

	writeOK(w)
}

func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	pageStr := chi.URLParam(r, "page")
	logger.Log.Info("blogs request", "page", pageStr)

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		utils.WriteError(w, internal_errors.New("Invalid request: page must be an integer", http.StatusBadRequest))
		return
	}

	posts, lastPage, err := h.blog.Page(r.Context(), page)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	blogs := make([]blogJSON, 0, len(posts))
	for _, post := range posts {
		blogs = append(blogs, toBlogJSON(post))
	}

	utils.WriteJSON(w, http.StatusOK, blogPageResponse{Status: "ok", Blogs: blogs, LastPage: lastPage})
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	slug := strings.Join([]string{
		chi.URLParam(r, "author"),
		chi.URLParam(r, "year"),
		chi.URLParam(r, "month"),
		chi.URLParam(r, "day"),
		chi.URLParam(r, "blogtitle"),
	}, "/")
	logger.Log.Info("blog request", "slug", slug)

	post, err := h.blog.BySlug(r.Context(), slug)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			// A miss is an empty 404, not an error envelope: the client
			// treats "no such permalink" as an empty page.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, blogResponse{
		Status: "ok",
		Author: post.Author,
		Title:  post.Title,
		Text:   post.Text,
		Date:   post.CreatedAt,
		Id:     post.Slug,
	})
}
