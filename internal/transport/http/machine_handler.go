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

type MachineHandler struct {
	svc *service.MachineSvc
}

func NewMachineHandler(svc *service.MachineSvc) *MachineHandler {
	return &MachineHandler{svc: svc}
}

// POST /v1/machines (owner/admin)
func (h *MachineHandler) Create(c *gin.Context) {
	var in struct {
		Name        string `json:"name" binding:"required"`
		Category    string `json:"category" binding:"required"`
		Description string `json:"description"`
		Location    string `json:"location" binding:"required"`
		DailyRate   int64  `json:"daily_rate" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	actor := middlewares.Actor(c)
	m, err := h.svc.Create(c.Request.Context(), actor.UserID, in.Name, in.Category, in.Description, in.Location, in.DailyRate)
	if err != nil {
		respondInternal(c, "Failed to create machine", err)
		return
	}
	respond(c, http.StatusCreated, "Machine listed successfully", m)
}

// GET /v1/machines?page=1&page_size=20&category=...&location=...
func (h *MachineHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	items, total, err := h.svc.List(c.Request.Context(), int32(page-1), int32(size), c.Query("category"), c.Query("location"))
	if err != nil {
		respondInternal(c, "Failed to list machines", err)
		return
	}
	respond(c, http.StatusOK, "Machines fetched successfully", gin.H{"items": items, "total": total})
}

// GET /v1/machines/:id
func (h *MachineHandler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMachineNotFound) {
			respondErr(c, http.StatusNotFound, "Machine not found")
			return
		}
		respondInternal(c, "Failed to fetch machine", err)
		return
	}
	respond(c, http.StatusOK, "Machine fetched successfully", m)
}

// PUT /v1/machines/:id (owning owner or admin)
func (h *MachineHandler) Update(c *gin.Context) {
	var in struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Location    string `json:"location"`
		DailyRate   int64  `json:"daily_rate"`
		Available   *bool  `json:"available"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), middlewares.Actor(c),
		in.Name, in.Category, in.Description, in.Location, in.DailyRate, in.Available)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMachineNotFound):
			respondErr(c, http.StatusNotFound, "Machine not found")
		case errors.Is(err, domain.ErrNotMachineOwner):
			respondErr(c, http.StatusForbidden, "You can update only your own machines")
		default:
			respondInternal(c, "Failed to update machine", err)
		}
		return
	}
	respond(c, http.StatusOK, "Machine updated successfully", m)
}

// DELETE /v1/machines/:id (owning owner or admin)
func (h *MachineHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), middlewares.Actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMachineNotFound):
			respondErr(c, http.StatusNotFound, "Machine not found")
		case errors.Is(err, domain.ErrNotMachineOwner):
			respondErr(c, http.StatusForbidden, "You can delete only your own machines")
		default:
			respondInternal(c, "Failed to delete machine", err)
		}
		return
	}
	respond(c, http.StatusOK, "Machine deleted successfully", nil)
}
