package location

import (
	"context"
	"strings"

	locationRepo "flynext/database/repository/location"
	"flynext/models"
	"flynext/utils"

	"golang.org/x/sync/errgroup"
)

const maxSuggestions = 5

// LocationService backs the autocomplete endpoints.
type LocationService struct {
	Repo locationRepo.LocationRepository
}

// SuggestCities returns up to five cities starting with query.
func (s *LocationService) SuggestCities(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}
	cities, err := s.Repo.CitiesWithPrefix(ctx, query, maxSuggestions)
	if err != nil {
		return nil, utils.Internal("failed to suggest cities", err)
	}
	return cities, nil
}

// SuggestFlightPlaces mixes city names and airport codes, cities first.
func (s *LocationService) SuggestFlightPlaces(ctx context.Context, query string) ([]models.PlaceSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.PlaceSuggestion{}, nil
	}

	var (
		cities   []string
		airports []models.Airport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cities, err = s.Repo.CitiesWithPrefix(gctx, query, maxSuggestions)
		return err
	})
	g.Go(func() error {
		var err error
		airports, err = s.Repo.AirportsWithCodePrefix(gctx, query, maxSuggestions)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.Internal("failed to suggest places", err)
	}

	out := make([]models.PlaceSuggestion, 0, maxSuggestions)
	for _, c := range cities {
		out = append(out, models.PlaceSuggestion{Label: c, Type: "city", City: c})
	}
	for _, a := range airports {
		out = append(out, models.PlaceSuggestion{
			Label: a.Code + " - " + a.Name,
			Type:  "airport",
			Code:  a.Code,
			City:  a.City,
		})
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}
