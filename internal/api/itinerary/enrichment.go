package itinerary

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/sources"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Orchestrator fans out to the enrichment sources and merges their results
// into the itinerary in place. Sources own their fields exclusively: the
// photo source only ever sets activity imageUrl, the flight and hotel sources
// only ever set tripDetails.verifiedFlights / verifiedHotels.
type Orchestrator struct {
	photos  sources.PhotoSource
	flights sources.FlightSource
	hotels  sources.HotelSource
	logger  *slog.Logger
}

func NewOrchestrator(photos sources.PhotoSource, flights sources.FlightSource, hotels sources.HotelSource, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		photos:  photos,
		flights: flights,
		hotels:  hotels,
		logger:  logger,
	}
}

// Enrich attaches real-world data to a generated itinerary: one concurrent
// photo lookup per activity that carries an imageQuery and no imageUrl, plus
// one flight lookup (when origin and destination are known) and one hotel
// lookup (when destination is known), each skipped when its verified field is
// already set. It joins every outstanding call before returning; a failed
// lookup leaves its field untouched, so enrichment is best-effort and
// re-running it on an enriched document is a no-op.
func (o *Orchestrator) Enrich(ctx context.Context, it *types.Itinerary, origin, destination string) {
	ctx, span := otel.Tracer("EnrichmentOrchestrator").Start(ctx, "Enrich", trace.WithAttributes(
		attribute.String("itinerary.destination", it.Destination),
	))
	defer span.End()

	var wg sync.WaitGroup
	pending := 0

	// Each goroutine writes to a distinct field, so no mutex is needed: the
	// WaitGroup join is the only synchronization point.
	for di := range it.Days {
		for ai := range it.Days[di].Activities {
			act := &it.Days[di].Activities[ai]
			if act.ImageURL != "" || act.ImageQuery == "" {
				continue
			}
			pending++
			wg.Add(1)
			go func(act *types.Activity) {
				defer wg.Done()
				img, ok := o.photos.FetchImage(ctx, act.ImageQuery)
				if !ok {
					metrics.Get().EnrichmentFailuresTotal.Add(ctx, 1)
					o.logger.DebugContext(ctx, "Photo lookup absent, leaving activity pending",
						slog.String("query", act.ImageQuery))
					return
				}
				act.ImageURL = img.URL
			}(act)
		}
	}

	if origin != "" && destination != "" && it.TripDetails.VerifiedFlights == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fares, ok := o.flights.FetchFares(ctx, origin, destination)
			if !ok {
				metrics.Get().EnrichmentFailuresTotal.Add(ctx, 1)
				return
			}
			it.TripDetails.VerifiedFlights = fares
		}()
	}

	if destination != "" && it.TripDetails.VerifiedHotels == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listings, ok := o.hotels.FetchListings(ctx, destination)
			if !ok {
				metrics.Get().EnrichmentFailuresTotal.Add(ctx, 1)
				return
			}
			it.TripDetails.VerifiedHotels = listings
		}()
	}

	wg.Wait()

	span.SetAttributes(attribute.Int("enrichment.pending_images", pending))
	span.SetStatus(codes.Ok, "Enrichment pass complete")
}
