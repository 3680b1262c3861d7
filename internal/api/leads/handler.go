package leads

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

// CaptureLead stores a travel enquiry.
func (h *Handler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LeadsHandler").Start(r.Context(), "CaptureLead", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/leads"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CaptureLead"))

	var lead types.Lead
	if err := api.DecodeJSONBody(w, r, &lead); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.CaptureLead(ctx, lead)
	if err != nil {
		var invalidErr *types.InvalidRequestError
		if errors.As(err, &invalidErr) {
			api.ErrorResponse(w, r, http.StatusBadRequest, invalidErr.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to capture lead", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to capture lead")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]string{"id": id.String()})
}
