package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"flynext/models"
	"flynext/services/booking"
	"flynext/services/hotel"
	"flynext/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HotelHandler serves the hotel-owner endpoints and hotel creation by users.
type HotelHandler struct {
	Hotels   hotel.HotelService
	Bookings booking.BookingService
}

// AddHotelHandler handles POST /api/user/add-hotel.
func (h *HotelHandler) AddHotelHandler(c *gin.Context) {
	var in models.HotelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	res, err := h.Hotels.AddHotel(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	getLogger(c).Info("hotel added", zap.String("hotelId", res.Hotel.ID), zap.Bool("roleChanged", res.IsRoleChanged))
	c.JSON(http.StatusCreated, res)
}

// UpdateHotelHandler handles PATCH /api/user/add-hotel; the hotel id travels in the body.
func (h *HotelHandler) UpdateHotelHandler(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
		models.HotelInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.ID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Hotel id is missing", "")
		return
	}
	updated, err := h.Hotels.UpdateHotel(c.Request.Context(), currentUserID(c), req.ID, req.HotelInput)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListMyHotelsHandler handles GET /api/hotel-owner/my-hotels.
func (h *HotelHandler) ListMyHotelsHandler(c *gin.Context) {
	hotels, err := h.Hotels.ListOwnerHotels(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// GetMyHotelHandler handles GET /api/hotel-owner/my-hotels/:id.
func (h *HotelHandler) GetMyHotelHandler(c *gin.Context) {
	res, err := h.Hotels.GetOwnerHotel(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AddRoomHandler handles POST /api/hotel-owner/my-hotels/:id/add-room.
func (h *HotelHandler) AddRoomHandler(c *gin.Context) {
	var in models.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	room, err := h.Hotels.AddRoom(c.Request.Context(), currentUserID(c), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoomHandler handles PATCH /api/hotel-owner/my-hotels/:id/add-room with roomId in the body.
func (h *HotelHandler) UpdateRoomHandler(c *gin.Context) {
	var in models.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if in.RoomID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Room id is missing", "")
		return
	}
	h.editRoom(c, in.RoomID, in)
}

// EditRoomHandler handles PATCH /api/hotel-owner/my-hotels/:id/:roomId/edit.
func (h *HotelHandler) EditRoomHandler(c *gin.Context) {
	var in models.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	h.editRoom(c, c.Param("roomId"), in)
}

func (h *HotelHandler) editRoom(c *gin.Context, roomID string, in models.RoomInput) {
	room, err := h.Hotels.EditRoom(c.Request.Context(), currentUserID(c), c.Param("id"), roomID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoomHandler handles DELETE /api/hotel-owner/my-hotels/:id/:roomId/edit.
func (h *HotelHandler) DeleteRoomHandler(c *gin.Context) {
	if err := h.Hotels.DeleteRoom(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("roomId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// GetMyRoomHandler handles GET /api/hotel-owner/my-hotels/:id/:roomId.
func (h *HotelHandler) GetMyRoomHandler(c *gin.Context) {
	room, err := h.Hotels.GetOwnerRoom(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func parseOwnerFilter(c *gin.Context) (models.OwnerBookingFilter, error) {
	filter := models.OwnerBookingFilter{RoomType: strings.TrimSpace(c.Query("roomType"))}
	if s := c.Query("startDate"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			return filter, utils.BadRequest("Invalid startDate format")
		}
		filter.StartDate = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			return filter, utils.BadRequest("Invalid endDate format")
		}
		filter.EndDate = &t
	}
	return filter, nil
}

// OwnerBookingsHandler handles GET /api/hotel-owner/my-hotels/:id/bookings.
func (h *HotelHandler) OwnerBookingsHandler(c *gin.Context) {
	filter, err := parseOwnerFilter(c)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := h.Bookings.ListOwnerBookings(c.Request.Context(), currentUserID(c), c.Param("id"), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ExportOwnerBookingsHandler handles GET /api/hotel-owner/my-hotels/:id/bookings/export.
func (h *HotelHandler) ExportOwnerBookingsHandler(c *gin.Context) {
	filter, err := parseOwnerFilter(c)
	if err != nil {
		fail(c, err)
		return
	}
	data, err := h.Bookings.ExportOwnerBookings(c.Request.Context(), currentUserID(c), c.Param("id"), filter)
	if err != nil {
		fail(c, err)
		return
	}
	name := fmt.Sprintf("bookings-%s-%s.xlsx", c.Param("id"), time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// OwnerCancelBookingHandler handles DELETE /api/hotel-owner/my-hotels/:id/bookings/:bookingId.
func (h *HotelHandler) OwnerCancelBookingHandler(c *gin.Context) {
	b, err := h.Bookings.OwnerCancel(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("bookingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}
