package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// writeServiceError maps the error taxonomy onto HTTP statuses: a rejected
// request is the caller's fault, an unusable model response is an upstream
// failure.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidErr *types.InvalidRequestError
	var genErr *types.GenerationError
	switch {
	case errors.As(err, &invalidErr):
		api.ErrorResponse(w, r, http.StatusBadRequest, invalidErr.Error())
	case errors.As(err, &genErr):
		api.ErrorResponse(w, r, http.StatusBadGateway, genErr.Error())
	case errors.Is(err, types.ErrCacheMiss):
		api.ErrorResponse(w, r, http.StatusNotFound, "itinerary not found")
	default:
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// SearchItinerary generates (or serves from cache) an enriched itinerary.
func (h *Handler) SearchItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "SearchItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchItinerary"))

	var req types.SearchRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.Search(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Search failed", slog.String("destination", req.Destination), slog.Any("error", err))
		writeServiceError(w, r, err)
		return
	}

	l.InfoContext(ctx, "Itinerary search complete",
		slog.String("destination", it.Destination), slog.Int("days", len(it.Days)))
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// RefineItinerary applies a conversational change request to an existing
// itinerary.
func (h *Handler) RefineItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "RefineItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/refine"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RefineItinerary"))

	var req types.RefineRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.Refine(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Refine failed", slog.Any("error", err))
		writeServiceError(w, r, err)
		return
	}

	l.InfoContext(ctx, "Itinerary refined", slog.String("destination", it.Destination))
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}
