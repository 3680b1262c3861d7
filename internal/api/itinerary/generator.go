package itinerary

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const (
	defaultDays        = 2
	defaultTemperature = 0.5
)

// TextGenerator is the opaque model call: prompt in, raw text out.
// generativeAI.AIClient satisfies it.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Generator wraps the model call with deterministic prompt templates and
// strict response validation. Neither operation retries internally.
type Generator struct {
	ai     TextGenerator
	logger *slog.Logger
}

func NewGenerator(ai TextGenerator, logger *slog.Logger) *Generator {
	return &Generator{ai: ai, logger: logger}
}

var embeddedDaysRe = regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*day`)

// ResolveDays picks the day count for a search: a count embedded in the
// destination string ("3 day trip to Goa") wins, then the explicit parameter,
// then the default of 2.
func ResolveDays(destination string, days int) int {
	if m := embeddedDaysRe.FindStringSubmatch(destination); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	if days > 0 {
		return days
	}
	return defaultDays
}

// Generate produces a structured itinerary for a destination. The response
// must parse as the itinerary schema or the call fails with a
// GenerationError.
func (g *Generator) Generate(ctx context.Context, destination string, days int, interests []string, origin string) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("itinerary.destination", destination),
		attribute.Int("itinerary.days", days),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](defaultTemperature)}
	prompt := getItineraryPrompt(destination, days, interests, origin)
	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	startTime := time.Now()
	txt, err := g.ai.GenerateText(ctx, prompt, config)
	metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(startTime).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model call failed")
		return nil, &types.GenerationError{Reason: "model call failed", Err: err}
	}

	it, err := parseItinerary(txt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unusable model output")
		g.logger.WarnContext(ctx, "Discarding unparseable itinerary response",
			slog.String("destination", destination), slog.Any("error", err))
		return nil, err
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	return it, nil
}

// Revise regenerates a full document from an existing one plus a free-text
// change request. The destination is pinned: whatever the model returns, the
// revised document keeps the original destination.
func (g *Generator) Revise(ctx context.Context, existing *types.Itinerary, instruction string) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryGenerator").Start(ctx, "Revise", trace.WithAttributes(
		attribute.String("itinerary.destination", existing.Destination),
	))
	defer span.End()

	existingJSON, err := json.Marshal(existing)
	if err != nil {
		return nil, &types.GenerationError{Reason: "failed to encode existing itinerary", Err: err}
	}

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](defaultTemperature)}
	prompt := getRevisionPrompt(string(existingJSON), existing.Destination, instruction)

	startTime := time.Now()
	txt, err := g.ai.GenerateText(ctx, prompt, config)
	metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(startTime).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model call failed")
		return nil, &types.GenerationError{Reason: "model call failed", Err: err}
	}

	revised, err := parseItinerary(txt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unusable model output")
		return nil, err
	}
	revised.Destination = existing.Destination

	span.SetStatus(codes.Ok, "Itinerary revised")
	return revised, nil
}
