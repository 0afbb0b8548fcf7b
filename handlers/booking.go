package handlers

import (
	"net/http"

	"flynext/models"
	"flynext/services/booking"
	"flynext/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Bookings booking.BookingService
}

// CreateBookingHandler handles POST /api/user/booking/create/combined.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking": b})
}

// EditBookingHandler handles PATCH /api/user/booking/edit.
func (h *BookingHandler) EditBookingHandler(c *gin.Context) {
	var req models.EditBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	b, err := h.Bookings.Edit(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated", "booking": b})
}

// CancelBookingHandler handles PATCH /api/user/booking/cancel/combined.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var req models.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	b, err := h.Bookings.Cancel(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated", "booking": b})
}

// CheckoutHandler handles POST /api/user/booking/checkout/combined.
func (h *BookingHandler) CheckoutHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	res, err := h.Bookings.Checkout(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RetrieveBookingHandler handles GET /api/user/booking/retrieve?bookingId=.
func (h *BookingHandler) RetrieveBookingHandler(c *gin.Context) {
	res, err := h.Bookings.Retrieve(c.Request.Context(), currentUserID(c), c.Query("bookingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UserBookingsHandler handles GET /api/user/booking/user.
func (h *BookingHandler) UserBookingsHandler(c *gin.Context) {
	res, err := h.Bookings.ListUserBookings(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// VerifyBookingHandler handles GET /api/user/booking/verify?bookingId=.
func (h *BookingHandler) VerifyBookingHandler(c *gin.Context) {
	res, err := h.Bookings.Verify(c.Request.Context(), currentUserID(c), c.Query("bookingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
