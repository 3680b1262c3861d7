package destination

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
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

// GetProfile serves the destination page profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations/{destination}/profile"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetProfile"))
	dest := chi.URLParam(r, "destination")

	profile, err := h.service.Profile(ctx, dest)
	if err != nil {
		var invalidErr *types.InvalidRequestError
		var genErr *types.GenerationError
		switch {
		case errors.As(err, &invalidErr):
			api.ErrorResponse(w, r, http.StatusBadRequest, invalidErr.Error())
		case errors.As(err, &genErr):
			l.ErrorContext(ctx, "Profile generation failed", slog.String("destination", dest), slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadGateway, genErr.Error())
		default:
			l.ErrorContext(ctx, "Profile lookup failed", slog.String("destination", dest), slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
}

// GetHeroImage serves the destination hero photo.
func (h *Handler) GetHeroImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetHeroImage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations/{destination}/hero"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetHeroImage"))
	dest := chi.URLParam(r, "destination")

	img, err := h.service.HeroImage(ctx, dest)
	if err != nil {
		var invalidErr *types.InvalidRequestError
		switch {
		case errors.As(err, &invalidErr):
			api.ErrorResponse(w, r, http.StatusBadRequest, invalidErr.Error())
		case errors.Is(err, ErrNoHeroImage):
			api.ErrorResponse(w, r, http.StatusNotFound, "no hero image available")
		default:
			l.ErrorContext(ctx, "Hero lookup failed", slog.String("destination", dest), slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, img)
}
