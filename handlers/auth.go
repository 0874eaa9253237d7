package handlers

import (
	"net/http"

	"urbanset/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves account sign-up, login and the caller's account.
type AuthHandler struct {
	Auth auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Auth: svc}
}

func (h *AuthHandler) RegisterUserHandler(c *gin.Context) {
	var in auth.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.Auth.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, resp)
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var in auth.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.Auth.Login(c.Request.Context(), in)
	if err != nil {
		getLogger(c).Debug("login rejected", zap.String("email", in.Email))
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, resp)
}

func (h *AuthHandler) MeHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	user, err := h.Auth.Me(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *AuthHandler) UpdateMeHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var in auth.UpdateMeInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.Auth.UpdateMe(c.Request.Context(), p, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
