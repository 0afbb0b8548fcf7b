package hotel

import (
	"context"
	"math"
	"sort"

	hotelRepo "flynext/database/repository/hotel"
	"flynext/models"
	"flynext/utils"
)

func inPriceRange(price float64, q models.HotelSearchQuery) bool {
	if q.MinPrice != nil && price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && price > *q.MaxPrice {
		return false
	}
	return true
}

// SearchHotels returns hotels with at least one available room in the price
// range that is free for the whole stay. Dates are optional.
func (s *DefaultHotelService) SearchHotels(ctx context.Context, q models.HotelSearchQuery) ([]models.HotelSearchResult, error) {
	hotels, err := s.Hotels.Search(ctx, hotelRepo.HotelSearchCriteria{
		City:       q.City,
		Name:       q.Name,
		StarRating: q.StarRating,
	})
	if err != nil {
		return nil, utils.Internal("failed to search hotels", err)
	}
	if len(hotels) == 0 {
		return []models.HotelSearchResult{}, nil
	}

	hotelIDs := make([]string, 0, len(hotels))
	for _, h := range hotels {
		hotelIDs = append(hotelIDs, h.ID)
	}
	rooms, err := s.Rooms.ListAvailableByHotels(ctx, hotelIDs)
	if err != nil {
		return nil, utils.Internal("failed to load rooms", err)
	}

	booked := map[string]bool{}
	if !q.CheckIn.IsZero() && !q.CheckOut.IsZero() && len(rooms) > 0 {
		roomIDs := make([]string, 0, len(rooms))
		for _, r := range rooms {
			roomIDs = append(roomIDs, r.ID)
		}
		overlapping, err := s.Bookings.ListOverlapping(ctx, roomIDs, q.CheckIn, q.CheckOut)
		if err != nil {
			return nil, utils.Internal("failed to check availability", err)
		}
		for _, b := range overlapping {
			booked[b.RoomID] = true
		}
	}

	startingPrice := map[string]float64{}
	matching := map[string][]string{}
	for _, r := range rooms {
		if p, ok := startingPrice[r.HotelID]; !ok || r.PricePerNight < p {
			startingPrice[r.HotelID] = r.PricePerNight
		}
		if booked[r.ID] || !inPriceRange(r.PricePerNight, q) {
			continue
		}
		matching[r.HotelID] = append(matching[r.HotelID], r.ID)
	}

	results := make([]models.HotelSearchResult, 0, len(matching))
	for _, h := range hotels {
		ids, ok := matching[h.ID]
		if !ok {
			continue
		}
		res := models.HotelSearchResult{
			Hotel:         h,
			MapLocation:   h.City + ", " + h.Country,
			FilteredRooms: ids,
		}
		if p, ok := startingPrice[h.ID]; ok {
			price := p
			res.StartingPrice = &price
		}
		results = append(results, res)
	}

	priceOf := func(r models.HotelSearchResult) float64 {
		if r.StartingPrice == nil {
			return math.Inf(1)
		}
		return *r.StartingPrice
	}
	sort.SliceStable(results, func(i, j int) bool {
		if q.PriceAscending {
			return priceOf(results[i]) < priceOf(results[j])
		}
		return priceOf(results[i]) > priceOf(results[j])
	})
	return results, nil
}
