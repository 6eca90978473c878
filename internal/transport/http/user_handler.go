package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/middlewares"
	"github.com/graphuraprojects/farming-sub001/internal/service"
)

type UserHandler struct {
	svc *service.UserSvc
}

func NewUserHandler(svc *service.UserSvc) *UserHandler {
	return &UserHandler{svc: svc}
}

// GET /v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := middlewares.Actor(c)
	u, err := h.svc.GetByID(c.Request.Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondErr(c, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(c, "Failed to fetch profile", err)
		return
	}
	respond(c, http.StatusOK, "Profile fetched successfully", u)
}

// PUT /v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var in struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	actor := middlewares.Actor(c)
	u, err := h.svc.Update(c.Request.Context(), actor.UserID, in.Name, in.Phone)
	if err != nil {
		respondInternal(c, "Failed to update profile", err)
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully", u)
}

// GET /v1/users?page=1&page_size=20&q=...&role=... (admin)
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	role := domain.Role("")
	if rs := c.Query("role"); rs != "" {
		parsed, err := domain.ParseRole(rs)
		if err != nil {
			respondErr(c, http.StatusBadRequest, "role must be farmer, owner or admin")
			return
		}
		role = parsed
	}
	items, total, err := h.svc.List(c.Request.Context(), int32(page-1), int32(size), c.Query("q"), role)
	if err != nil {
		respondInternal(c, "Failed to list users", err)
		return
	}
	respond(c, http.StatusOK, "Users fetched successfully", gin.H{"items": items, "total": total})
}
