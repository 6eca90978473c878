package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/graphuraprojects/farming-sub001/internal/export"
	"github.com/graphuraprojects/farming-sub001/internal/service"
)

type AdminHandler struct {
	bookings *service.BookingSvc
}

func NewAdminHandler(bookings *service.BookingSvc) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// GET /v1/admin/bookings/export?from=RFC3339&to=RFC3339 (admin)
// Streams an xlsx of all bookings created inside the period.
func (h *AdminHandler) ExportBookings(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "from must be RFC3339")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "to must be RFC3339")
		return
	}
	if !to.After(from) {
		respondErr(c, http.StatusBadRequest, "to must be after from")
		return
	}

	bookings, err := h.bookings.ListBetween(c.Request.Context(), from, to)
	if err != nil {
		respondInternal(c, "Failed to export bookings", err)
		return
	}
	f, err := export.BookingsWorkbook(from, to, bookings)
	if err != nil {
		respondInternal(c, "Failed to export bookings", err)
		return
	}

	filename := fmt.Sprintf("bookings_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		// headers are gone already, just log via gin's error list
		_ = c.Error(err)
	}
}
