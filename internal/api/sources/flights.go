package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// FlightPriceSource resolves an (origin, destination) pair to a set of fares
// through a SerpAPI-style flight search endpoint.
type FlightPriceSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewFlightPriceSource(cfg *config.Config, logger *slog.Logger) *FlightPriceSource {
	apiKey := os.Getenv("FLIGHTS_API_KEY")
	if apiKey == "" {
		logger.Warn("FLIGHTS_API_KEY not set, flight enrichment disabled")
	}
	return &FlightPriceSource{
		apiKey:  apiKey,
		baseURL: cfg.Providers.FlightsBaseURL,
		client:  newHTTPClient(cfg.Providers.TimeoutSeconds),
		logger:  logger,
	}
}

type flightsResponse struct {
	BestFlights []struct {
		Flights []struct {
			Airline          string `json:"airline"`
			DepartureAirport struct {
				Time string `json:"time"`
			} `json:"departure_airport"`
			ArrivalAirport struct {
				Time string `json:"time"`
			} `json:"arrival_airport"`
		} `json:"flights"`
		Price int `json:"price"`
	} `json:"best_flights"`
}

func (s *FlightPriceSource) FetchFares(ctx context.Context, origin, destination string) ([]types.FlightFare, bool) {
	ctx, span := otel.Tracer("FlightSource").Start(ctx, "FetchFares")
	defer span.End()
	span.SetAttributes(
		attribute.String("flight.origin", origin),
		attribute.String("flight.destination", destination),
	)

	if s.apiKey == "" || origin == "" || destination == "" {
		return nil, false
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", origin)
	params.Set("arrival_id", destination)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to build flight request", slog.Any("error", err))
		return nil, false
	}

	body, err := doJSON(s.client, req)
	if err != nil {
		s.logger.WarnContext(ctx, "Flight lookup failed",
			slog.String("origin", origin), slog.String("destination", destination), slog.Any("error", err))
		span.RecordError(err)
		return nil, false
	}

	var parsed flightsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		s.logger.WarnContext(ctx, "Failed to parse flight response", slog.Any("error", err))
		span.RecordError(err)
		return nil, false
	}
	if len(parsed.BestFlights) == 0 {
		return nil, false
	}

	fares := make([]types.FlightFare, 0, len(parsed.BestFlights))
	for _, bf := range parsed.BestFlights {
		fare := types.FlightFare{
			Price:    fmt.Sprintf("%d", bf.Price),
			Currency: "USD",
			Stops:    len(bf.Flights) - 1,
		}
		if len(bf.Flights) > 0 {
			fare.Airline = bf.Flights[0].Airline
			fare.DepartureTime = bf.Flights[0].DepartureAirport.Time
			fare.ArrivalTime = bf.Flights[len(bf.Flights)-1].ArrivalAirport.Time
		}
		fares = append(fares, fare)
	}
	return fares, true
}
