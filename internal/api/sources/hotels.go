package sources

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// HotelPriceSource resolves a destination to a set of priced listings through
// a SerpAPI-style hotel search endpoint.
type HotelPriceSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHotelPriceSource(cfg *config.Config, logger *slog.Logger) *HotelPriceSource {
	apiKey := os.Getenv("HOTELS_API_KEY")
	if apiKey == "" {
		logger.Warn("HOTELS_API_KEY not set, hotel enrichment disabled")
	}
	return &HotelPriceSource{
		apiKey:  apiKey,
		baseURL: cfg.Providers.HotelsBaseURL,
		client:  newHTTPClient(cfg.Providers.TimeoutSeconds),
		logger:  logger,
	}
}

type hotelsResponse struct {
	Properties []struct {
		Name         string `json:"name"`
		Link         string `json:"link"`
		RatePerNight struct {
			Lowest string `json:"lowest"`
		} `json:"rate_per_night"`
		OverallRating float64 `json:"overall_rating"`
	} `json:"properties"`
}

func (s *HotelPriceSource) FetchListings(ctx context.Context, destination string) ([]types.HotelListing, bool) {
	ctx, span := otel.Tracer("HotelSource").Start(ctx, "FetchListings")
	defer span.End()
	span.SetAttributes(attribute.String("hotel.destination", destination))

	if s.apiKey == "" || destination == "" {
		return nil, false
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", destination)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to build hotel request", slog.Any("error", err))
		return nil, false
	}

	body, err := doJSON(s.client, req)
	if err != nil {
		s.logger.WarnContext(ctx, "Hotel lookup failed",
			slog.String("destination", destination), slog.Any("error", err))
		span.RecordError(err)
		return nil, false
	}

	var parsed hotelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		s.logger.WarnContext(ctx, "Failed to parse hotel response", slog.Any("error", err))
		span.RecordError(err)
		return nil, false
	}
	if len(parsed.Properties) == 0 {
		return nil, false
	}

	listings := make([]types.HotelListing, 0, len(parsed.Properties))
	for _, p := range parsed.Properties {
		listings = append(listings, types.HotelListing{
			Name:   p.Name,
			Price:  p.RatePerNight.Lowest,
			Rating: p.OverallRating,
			Link:   p.Link,
		})
	}
	return listings, true
}
