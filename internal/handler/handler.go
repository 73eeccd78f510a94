package handler

import (
	"errors"
	"net/http"

	"github.com/dkoval-dev/goblog/internal/domain"
	"github.com/dkoval-dev/goblog/internal/middleware"
	"github.com/dkoval-dev/goblog/internal/service"
	"github.com/dkoval-dev/goblog/internal/utils"
)

type Handler struct {
	auth service.AuthService
	blog service.BlogService
}

func New(auth service.AuthService, blog service.BlogService) *Handler {
	return &Handler{auth, blog}
}

type statusOK struct {
	Status string `json:"status"`
}

func writeOK(w http.ResponseWriter) {
	utils.WriteJSON(w, http.StatusOK, statusOK{Status: "ok"})
}

// session pulls the session the middleware attached to the request. Absence
// means a wiring bug, not a client error.
func session(r *http.Request) (*domain.Session, error) {
	sess := middleware.GetSessionFromContext(r)
	if sess == nil {
		return nil, errors.New("no session in request context")
	}
	return sess, nil
}
