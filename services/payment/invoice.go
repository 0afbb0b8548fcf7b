package payment

import (
	"bytes"
	"fmt"
	"time"

	"flynext/models"

	"github.com/jung-kurt/gofpdf"
)

const dateFormat = "2006-01-02"

// GenerateInvoice renders the booking invoice as a PDF.
func GenerateInvoice(booking *models.Booking, payment *models.Payment, user *models.User) ([]byte, error) {
	if booking == nil || payment == nil || user == nil {
		return nil, fmt.Errorf("booking, payment and user are required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("FlyNext Booking Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "FlyNext Booking Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	line := func(text string) {
		pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
	}
	heading := func(text string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		line(text)
		pdf.SetFont("Helvetica", "", 11)
	}

	pdf.SetFont("Helvetica", "", 11)
	line("Name: " + user.FullName())
	line("Email: " + user.Email)
	line("Booking ID: " + booking.ID)
	line("Date: " + payment.CreatedAt.Format(dateFormat))
	if booking.Reference != "" {
		line("Flight Reference: " + booking.Reference)
	}

	if info, err := models.ParseFlightInfo(booking.FlightBookingInfo); err == nil && len(info.Flights) > 0 {
		heading("Flight Details")
		for i, f := range info.Flights {
			line(fmt.Sprintf("Flight %d: %s %s", i+1, f.Airline, f.FlightNumber))
			line(fmt.Sprintf("  %s -> %s", f.Origin, f.Destination))
			line(fmt.Sprintf("  Departure: %s  Arrival: %s", f.DepartureTime, f.ArrivalTime))
			line(fmt.Sprintf("  Price: $%.2f", f.Price))
		}
	}

	if booking.HasRoom() {
		heading("Hotel Details")
		line("Hotel ID: " + booking.HotelID)
		line("Room ID: " + booking.RoomID)
		line("Check-in: " + formatDate(booking.CheckIn))
		line("Check-out: " + formatDate(booking.CheckOut))
	}

	heading("Payment")
	line(fmt.Sprintf("Total Amount: $%.2f", payment.Amount))
	line("Payment Status: " + payment.Status)
	if payment.CardLast4 != "" {
		line("Card: **** **** **** " + payment.CardLast4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateFormat)
}
