package booking

import (
	"context"
	"fmt"

	"flynext/models"
	"flynext/utils"

	"github.com/xuri/excelize/v2"
)

const (
	bookingsSheet     = "Bookings"
	availabilitySheet = "Availability"
)

var bookingColumns = []string{"Booking ID", "Guest ID", "Room ID", "Room Type", "Check-in", "Check-out", "Nights", "Status", "Flight Reference"}

// ExportOwnerBookings renders ListOwnerBookings as an XLSX workbook.
func (s *DefaultBookingService) ExportOwnerBookings(ctx context.Context, ownerID, hotelID string, filter models.OwnerBookingFilter) ([]byte, error) {
	data, err := s.ListOwnerBookings(ctx, ownerID, hotelID, filter)
	if err != nil {
		return nil, err
	}
	b, err := BookingsWorkbook(data)
	if err != nil {
		return nil, utils.Internal("failed to build spreadsheet", err)
	}
	return b, nil
}

// BookingsWorkbook writes one sheet of bookings and one of room availability.
func BookingsWorkbook(data *models.OwnerBookings) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return nil, err
	}
	for i, col := range bookingColumns {
		if err := setCell(f, bookingsSheet, i+1, 1, col); err != nil {
			return nil, err
		}
	}
	for r, ob := range data.Bookings {
		roomType := ""
		if ob.Room != nil {
			roomType = ob.Room.Type
		}
		row := []any{ob.ID, ob.UserID, ob.RoomID, roomType, formatDay(ob.CheckIn), formatDay(ob.CheckOut), ob.Nights(), ob.BookStatus, ob.Reference}
		for c, v := range row {
			if err := setCell(f, bookingsSheet, c+1, r+2, v); err != nil {
				return nil, err
			}
		}
	}

	if _, err := f.NewSheet(availabilitySheet); err != nil {
		return nil, err
	}
	if err := setCell(f, availabilitySheet, 1, 1, "Room Type"); err != nil {
		return nil, err
	}
	if err := setCell(f, availabilitySheet, 2, 1, "Available"); err != nil {
		return nil, err
	}
	for r, a := range data.RoomAvailability {
		if err := setCell(f, availabilitySheet, 1, r+2, a.Type); err != nil {
			return nil, err
		}
		if err := setCell(f, availabilitySheet, 2, r+2, a.Available); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
