package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/cache"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service is the top-level itinerary contract exposed to the HTTP layer.
type Service interface {
	Search(ctx context.Context, req types.SearchRequest) (*types.Itinerary, error)
	Refine(ctx context.Context, req types.RefineRequest) (*types.Itinerary, error)
	GetCached(ctx context.Context, key string) (*types.Itinerary, error)
}

// ServiceImpl owns the itinerary lifecycle end to end: creation via the
// generator, mutation via the enrichment orchestrator, persistence via the
// cache store.
type ServiceImpl struct {
	logger       *slog.Logger
	generator    *Generator
	orchestrator *Orchestrator
	store        cache.Store
	group        singleflight.Group
}

func NewService(generator *Generator, orchestrator *Orchestrator, store cache.Store, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		generator:    generator,
		orchestrator: orchestrator,
		store:        store,
	}
}

// Search serves a new itinerary request: cache hit returns the stored
// post-enrichment document as-is; a miss runs generate, enrich, cache-write.
// Concurrent identical searches are collapsed onto one generation via
// singleflight; each caller still decodes its own copy of the document.
func (s *ServiceImpl) Search(ctx context.Context, req types.SearchRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("search.destination", req.Destination),
	))
	defer span.End()

	if req.Destination == "" {
		return nil, &types.InvalidRequestError{Field: "destination", Reason: "destination is required"}
	}

	days := ResolveDays(req.Destination, req.Days)
	key := cache.SearchKey(req.Destination, days, req.Interests, req.Origin)
	span.SetAttributes(attribute.String("cache.key", key), attribute.Int("search.days", days))
	l := s.logger.With(slog.String("cache_key", key))

	metrics.Get().SearchRequestsTotal.Add(ctx, 1)

	raw, err, _ := s.group.Do(key, func() (interface{}, error) {
		if cached, err := s.store.Get(ctx, key); err == nil {
			metrics.Get().CacheHitsTotal.Add(ctx, 1)
			l.InfoContext(ctx, "Serving itinerary from cache")
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		} else if !errors.Is(err, types.ErrCacheMiss) {
			l.WarnContext(ctx, "Cache read failed, regenerating", slog.Any("error", err))
		}
		metrics.Get().CacheMissesTotal.Add(ctx, 1)
		span.SetAttributes(attribute.Bool("cache.hit", false))

		it, err := s.generator.Generate(ctx, req.Destination, days, req.Interests, req.Origin)
		if err != nil {
			return nil, err
		}

		s.orchestrator.Enrich(ctx, it, req.Origin, req.Destination)

		encoded, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("failed to encode itinerary for caching: %w", err)
		}
		// Always the post-enrichment document: a later cache hit never needs
		// re-enrichment.
		if err := s.store.Set(ctx, key, encoded, cache.ItineraryTTL); err != nil {
			l.WarnContext(ctx, "Cache write failed", slog.Any("error", err))
		}
		return encoded, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Search failed")
		return nil, err
	}

	var it types.Itinerary
	if err := json.Unmarshal(raw.([]byte), &it); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary: %w", err)
	}

	span.SetStatus(codes.Ok, "Search complete")
	return &it, nil
}

// Refine runs the chat flow: a fresh model call scoped to the supplied
// document, then another enrichment pass that only does new work for
// activities the revision introduced. No cache interaction.
func (s *ServiceImpl) Refine(ctx context.Context, req types.RefineRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Refine")
	defer span.End()

	if req.Itinerary == nil || req.Itinerary.Destination == "" {
		return nil, &types.InvalidRequestError{Field: "itinerary", Reason: "an existing itinerary is required"}
	}
	if req.Instruction == "" {
		return nil, &types.InvalidRequestError{Field: "instruction", Reason: "instruction is required"}
	}
	span.SetAttributes(attribute.String("refine.destination", req.Itinerary.Destination))

	revised, err := s.generator.Revise(ctx, req.Itinerary, req.Instruction)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Revision failed")
		return nil, err
	}

	s.orchestrator.Enrich(ctx, revised, "", revised.Destination)

	span.SetStatus(codes.Ok, "Refine complete")
	return revised, nil
}

// GetCached returns the itinerary stored under key, or types.ErrCacheMiss.
func (s *ServiceImpl) GetCached(ctx context.Context, key string) (*types.Itinerary, error) {
	cached, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var it types.Itinerary
	if err := json.Unmarshal(cached, &it); err != nil {
		// A stale-shape entry reads as a miss; the version tag in new keys
		// orphans these over time.
		s.logger.Warn("Cached itinerary failed to decode, treating as miss", slog.Any("error", err))
		return nil, types.ErrCacheMiss
	}
	return &it, nil
}
