package flights

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"flynext/models"
	"flynext/utils"

	"golang.org/x/sync/errgroup"
)

// SearchService validates visitor flight searches before hitting AFS.
type SearchService struct {
	Provider FlightProvider
}

// Search returns the AFS payload for one-way trips and a RoundTripResult otherwise.
func (s *SearchService) Search(ctx context.Context, q models.FlightSearchQuery) (any, error) {
	q.Origin = strings.TrimSpace(q.Origin)
	q.Destination = strings.TrimSpace(q.Destination)
	if q.Origin == "" || q.Destination == "" || q.Date == "" {
		return nil, utils.BadRequest("origin, destination and date are required")
	}
	if strings.EqualFold(q.Origin, q.Destination) {
		return nil, utils.BadRequest("Origin and destination cannot be the same")
	}
	if q.TripType == "" {
		q.TripType = models.TripOneWay
	}
	if q.TripType != models.TripOneWay && q.TripType != models.TripRoundTrip {
		return nil, utils.BadRequest("tripType must be one-way or round-trip")
	}
	departure, err := utils.ParseDate(q.Date)
	if err != nil {
		return nil, utils.BadRequest("Invalid date")
	}
	if !s.Provider.Configured() {
		return nil, utils.Internal("Flight search is unavailable", ErrNotConfigured)
	}

	if q.TripType == models.TripOneWay {
		out, err := s.Provider.Search(ctx, q.Origin, q.Destination, q.Date)
		if err != nil {
			return nil, afsError(err)
		}
		return out, nil
	}

	if q.ReturnDate == "" {
		return nil, utils.BadRequest("returnDate is required for round-trip")
	}
	ret, err := utils.ParseDate(q.ReturnDate)
	if err != nil {
		return nil, utils.BadRequest("Invalid returnDate")
	}
	if ret.Before(departure) {
		return nil, utils.BadRequest("returnDate cannot be before date")
	}

	var outbound, inbound json.RawMessage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outbound, err = s.Provider.Search(gctx, q.Origin, q.Destination, q.Date)
		return err
	})
	g.Go(func() error {
		var err error
		inbound, err = s.Provider.Search(gctx, q.Destination, q.Origin, q.ReturnDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, afsError(err)
	}
	return models.RoundTripResult{Outbound: outbound, Inbound: inbound}, nil
}

// afsError keeps AFS 4xx answers visible to the caller and hides everything else.
func afsError(err error) error {
	var se *StatusError
	if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 {
		return utils.BadRequest("Flight search rejected: " + se.Body)
	}
	return utils.Internal("Failed to fetch flights", err)
}
