package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/middlewares"
	"github.com/graphuraprojects/farming-sub001/internal/repository"
	"github.com/graphuraprojects/farming-sub001/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		MachineID string `json:"machine_id" binding:"required"`
		StartISO  string `json:"start_iso" binding:"required"` // RFC3339
		EndISO    string `json:"end_iso"   binding:"required"` // RFC3339
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	start, err := time.Parse(time.RFC3339, in.StartISO)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "start_iso must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, in.EndISO)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "end_iso must be RFC3339")
		return
	}

	actor := middlewares.Actor(c)
	b, err := h.svc.Create(c.Request.Context(), actor.UserID, in.MachineID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDateRange),
			errors.Is(err, domain.ErrMachineUnavailable),
			errors.Is(err, domain.ErrDatesOverlap):
			respondErr(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrMachineNotFound):
			respondErr(c, http.StatusNotFound, "Machine not found")
		default:
			respondInternal(c, "Failed to create booking", err)
		}
		return
	}
	respond(c, http.StatusCreated, "Booking requested successfully", b)
}

// PATCH /v1/bookings/:id/decision (owner/admin)
func (h *BookingHandler) Decide(c *gin.Context) {
	var in struct {
		Action          string `json:"action" binding:"required"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.svc.Decide(c.Request.Context(), c.Param("id"), in.Action, in.RejectionReason, middlewares.Actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAction),
			errors.Is(err, domain.ErrReasonRequired):
			respondErr(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAlreadyProcessed):
			respondErr(c, http.StatusBadRequest, "Booking already processed")
		case errors.Is(err, domain.ErrBookingNotFound):
			respondErr(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, domain.ErrNotMachineOwner):
			respondErr(c, http.StatusForbidden, "You can decide only your machine bookings")
		default:
			respondInternal(c, "Failed to process booking", err)
		}
		return
	}
	respond(c, http.StatusOK, fmt.Sprintf("Booking %sed successfully", in.Action), b)
}

// POST /v1/bookings/:id/cancel (requesting farmer or admin)
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), middlewares.Actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			respondErr(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, domain.ErrAlreadyProcessed):
			respondErr(c, http.StatusBadRequest, "Booking already processed")
		case errors.Is(err, domain.ErrNotBookingFarmer):
			respondErr(c, http.StatusForbidden, "You can cancel only your own bookings")
		default:
			respondInternal(c, "Failed to cancel booking", err)
		}
		return
	}
	respond(c, http.StatusOK, "Booking cancelled successfully", b)
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"), middlewares.Actor(c))
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			respondErr(c, http.StatusNotFound, "Booking not found")
			return
		}
		respondInternal(c, "Failed to fetch booking", err)
		return
	}
	respond(c, http.StatusOK, "Booking fetched successfully", b)
}

// GET /v1/bookings?page=1&page_size=20&machine_id=...&status=...
func (h *BookingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}

	f := repository.BookingFilter{
		Page:      int32(page - 1),
		Size:      int32(size),
		MachineID: c.Query("machine_id"),
		Status:    domain.BookingStatus(c.Query("status")),
	}
	items, total, err := h.svc.ListForActor(c.Request.Context(), middlewares.Actor(c), f)
	if err != nil {
		respondInternal(c, "Failed to list bookings", err)
		return
	}
	respond(c, http.StatusOK, "Bookings fetched successfully", gin.H{"items": items, "total": total})
}
