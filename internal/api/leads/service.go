package leads

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

type Service interface {
	CaptureLead(ctx context.Context, lead types.Lead) (uuid.UUID, error)
}

// ServiceImpl persists a lead and then notifies downstream out of band. The
// notification is fire-and-forget: its failure is logged and never affects
// the response.
type ServiceImpl struct {
	logger   *slog.Logger
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		repo:     repo,
		notifier: notifier,
	}
}

func (s *ServiceImpl) CaptureLead(ctx context.Context, lead types.Lead) (uuid.UUID, error) {
	ctx, span := otel.Tracer("LeadsService").Start(ctx, "CaptureLead")
	defer span.End()

	if strings.TrimSpace(lead.Email) == "" {
		return uuid.Nil, &types.InvalidRequestError{Field: "email", Reason: "email is required"}
	}
	if strings.TrimSpace(lead.Name) == "" {
		return uuid.Nil, &types.InvalidRequestError{Field: "name", Reason: "name is required"}
	}

	id, err := s.repo.SaveLead(ctx, lead)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist lead")
		return uuid.Nil, err
	}
	span.SetAttributes(attribute.String("lead.id", id.String()))
	metrics.Get().LeadsCapturedTotal.Add(ctx, 1)

	// Detached from the request context on purpose: the caller aborting must
	// not cancel the notification.
	go func() {
		if err := s.notifier.NotifyLead(context.Background(), id, lead); err != nil {
			s.logger.Warn("Lead notification failed",
				slog.String("lead_id", id.String()), slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "Lead captured", slog.String("lead_id", id.String()))
	return id, nil
}
