package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/service"
)

type AuthHandler struct {
	svc *service.AuthSvc
}

func NewAuthHandler(svc *service.AuthSvc) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			respondErr(c, http.StatusBadRequest, "role must be farmer, owner or admin")
		case errors.Is(err, domain.ErrEmailTaken):
			respondErr(c, http.StatusConflict, err.Error())
		default:
			respondInternal(c, "Failed to register", err)
		}
		return
	}
	respond(c, http.StatusCreated, "Registered successfully", u)
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	u, access, refresh, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondErr(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondInternal(c, "Failed to login", err)
		return
	}
	respond(c, http.StatusOK, "Logged in successfully", gin.H{
		"user": u, "access_token": access, "refresh_token": refresh,
	})
}

// POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	access, refresh, err := h.svc.Refresh(c.Request.Context(), in.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			respondErr(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondInternal(c, "Failed to refresh", err)
		return
	}
	respond(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"access_token": access, "refresh_token": refresh,
	})
}

// POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Logout(c.Request.Context(), in.RefreshToken); err != nil {
		respondInternal(c, "Failed to logout", err)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}
