package admin

import (
	"context"
	"fmt"
	"io"
	"time"

	"scrapiz/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Bookings"

var exportHeaders = []string{
	"Booking ID", "Created", "Customer", "Phone", "Material", "Quantity",
	"Pickup Date", "Time Slot", "Address", "City", "PIN", "Status", "Payment",
	"Estimated Price", "Final Price", "Agent Notes", "Photos",
}

// ExportBookings writes the filtered bookings table as an xlsx workbook.
func (s *DefaultAdminService) ExportBookings(ctx context.Context, status string, w io.Writer) error {
	list, err := s.ListBookings(ctx, status)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.Logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("error removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("error creating style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", last, headerStyle)

	for r, b := range list {
		row := exportRow(b, s.Location)
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	f.SetColWidth(exportSheet, "A", "A", 38)
	f.SetColWidth(exportSheet, "B", "Q", 18)
	f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	s.Logger.Info("Bookings exported", zap.String("status", status), zap.Int("rows", len(list)))
	return nil
}

func exportRow(b models.BookingWithDetails, loc *time.Location) []interface{} {
	row := []interface{}{
		b.ID,
		b.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		"", "",
		b.MaterialCategory.Label(),
		b.QuantityEstimation,
		b.PickupDate,
		b.TimeSlot,
		"", "", "",
		b.Status.Label(),
		string(b.PaymentMethod),
		"", "",
		"",
		len(b.Photos),
	}
	if b.Customer != nil {
		row[2] = deref(b.Customer.FullName)
		row[3] = deref(b.Customer.Phone)
	}
	if b.Address != nil {
		line := b.Address.AddressLine
		if b.Address.Area != nil && *b.Address.Area != "" {
			line += ", " + *b.Address.Area
		}
		row[8] = line
		row[9] = b.Address.City
		row[10] = b.Address.PinCode
	}
	if b.EstimatedPrice != nil {
		row[13] = *b.EstimatedPrice
	}
	if b.FinalPrice != nil {
		row[14] = *b.FinalPrice
	}
	row[15] = deref(b.AgentNotes)
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
