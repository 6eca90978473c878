package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
)

const sheet = "Bookings"

// BookingsWorkbook builds the admin dashboard export: one row per booking
// inside the period, flat table, styled header. Caller writes the file to
// the response.
func BookingsWorkbook(from, to time.Time, bookings []domain.Booking) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Bookings %s - %s",
		from.Format("2006-01-02"), to.Format("2006-01-02")))

	headers := []string{"ID", "Machine", "Farmer", "Owner", "Start", "End", "Status", "Reason", "Decided At", "Total"}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 3
		decidedAt := ""
		if b.DecisionAt != nil {
			decidedAt = b.DecisionAt.Format(time.RFC3339)
		}
		values := []any{
			b.ID, b.MachineID, b.FarmerID, b.OwnerID,
			b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"),
			string(b.BookingStatus), b.RejectionReason, decidedAt,
			float64(b.TotalPrice) / 100,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}
