package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"flynext/models"
	"flynext/services/flights"
	"flynext/services/hotel"
	"flynext/services/location"
	"flynext/utils"

	"github.com/gin-gonic/gin"
)

// VisitorHandler serves the public search endpoints.
type VisitorHandler struct {
	Hotels    hotel.HotelService
	Locations *location.LocationService
	Flights   *flights.SearchService
}

// CitiesHandler handles GET /api/visitor/cities?query=.
func (h *VisitorHandler) CitiesHandler(c *gin.Context) {
	suggestions, err := h.Locations.SuggestCities(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// FlightPlacesHandler handles GET /api/visitor/flights/search?query=.
func (h *VisitorHandler) FlightPlacesHandler(c *gin.Context) {
	suggestions, err := h.Locations.SuggestFlightPlaces(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// SearchFlightsHandler handles GET /api/visitor/flights.
func (h *VisitorHandler) SearchFlightsHandler(c *gin.Context) {
	res, err := h.Flights.Search(c.Request.Context(), models.FlightSearchQuery{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		TripType:    c.DefaultQuery("tripType", models.TripOneWay),
		ReturnDate:  c.Query("returnDate"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func optionalFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, utils.BadRequest("Invalid " + key)
	}
	return &v, nil
}

// SearchHotelsHandler handles GET /api/visitor/hotels.
func (h *VisitorHandler) SearchHotelsHandler(c *gin.Context) {
	q := models.HotelSearchQuery{
		City:           strings.TrimSpace(c.Query("city")),
		Name:           strings.TrimSpace(c.Query("name")),
		PriceAscending: c.Query("priceAscending") == "true",
	}
	if s := c.Query("checkIn"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid checkIn date", "")
			return
		}
		q.CheckIn = t
	}
	if s := c.Query("checkOut"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid checkOut date", "")
			return
		}
		q.CheckOut = t
	}
	if s := c.Query("starRating"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid starRating", "")
			return
		}
		q.StarRating = n
	}
	var err error
	if q.MinPrice, err = optionalFloat(c, "minPrice"); err != nil {
		fail(c, err)
		return
	}
	if q.MaxPrice, err = optionalFloat(c, "maxPrice"); err != nil {
		fail(c, err)
		return
	}

	hotels, err := h.Hotels.SearchHotels(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": hotels})
}

// GetHotelHandler handles GET /api/visitor/hotels/:id?rooms=a,b.
func (h *VisitorHandler) GetHotelHandler(c *gin.Context) {
	var roomIDs []string
	if raw := c.Query("rooms"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				roomIDs = append(roomIDs, id)
			}
		}
	}
	res, err := h.Hotels.GetHotel(c.Request.Context(), c.Param("id"), roomIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetRoomHandler handles GET /api/visitor/hotels/:id/:roomId.
func (h *VisitorHandler) GetRoomHandler(c *gin.Context) {
	room, err := h.Hotels.GetRoom(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		fail(c, err)
		return
	}
	if room.HotelID != c.Param("id") {
		utils.JSONError(c, http.StatusNotFound, "Room not found", "")
		return
	}
	c.JSON(http.StatusOK, room)
}

// HealthHandler handles GET /health.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm FlyNext"})
}
