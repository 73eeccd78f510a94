package handler

import (
	"net/http"

	"github.com/dkoval-dev/goblog/internal/logger"
	"github.com/dkoval-dev/goblog/internal/utils"
)

type signupRequest struct {
	Login    string `validate:"required" json:"login"`
	Password string `validate:"required,min=4,max=50" json:"password"`
}

type loginRequest struct {
	Login    string `validate:"required" json:"login"`
	Password string `validate:"required" json:"password"`
}

type loginResponse struct {
	Status string `json:"status"`
	Login  string `json:"login"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("signup request")

	sess, err := session(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// A logged-in session is rejected regardless of payload shape, so
	// validation only applies on the anonymous path.
	var body signupRequest
	if sess.LoggedIn() {
		if err := utils.Decode(r.Body, &body); err != nil {
			utils.WriteError(w, err)
			return
		}
	} else if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.auth.Signup(r.Context(), sess, body.Login, body.Password); err != nil {
		utils.WriteError(w, err)
		return
	}

	writeOK(w)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("login request")

	sess, err := session(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// Re-login with the session's current login short-circuits before
	// validation, mirroring the idempotent fast path of the legacy flow.
	var body loginRequest
	if sess.LoggedIn() {
		if err := utils.Decode(r.Body, &body); err != nil {
			utils.WriteError(w, err)
			return
		}
	} else if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	login, err := h.auth.Login(r.Context(), sess, body.Login, body.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, loginResponse{Status: "ok", Login: login})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("logout request")

	sess, err := session(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.auth.Logout(r.Context(), sess); err != nil {
		utils.WriteError(w, err)
		return
	}

	writeOK(w)
}
