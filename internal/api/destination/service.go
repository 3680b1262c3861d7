package destination

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/cache"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/sources"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const defaultTemperature = 0.5

// TextGenerator is the opaque model call, same contract the itinerary
// generator consumes.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service serves destination page content: the slow-changing profile (longest
// TTL) and the frequently-rotated hero image (shortest TTL).
type Service interface {
	Profile(ctx context.Context, destination string) (*types.DestinationProfile, error)
	HeroImage(ctx context.Context, destination string) (*types.ImageResult, error)
}

// ErrNoHeroImage means the photo source had nothing for the destination;
// absent results are not cached.
var ErrNoHeroImage = errors.New("no hero image available")

type ServiceImpl struct {
	logger *slog.Logger
	ai     TextGenerator
	photos sources.PhotoSource
	store  cache.Store
}

func NewService(ai TextGenerator, photos sources.PhotoSource, store cache.Store, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		ai:     ai,
		photos: photos,
		store:  store,
	}
}

// Profile returns the destination profile, generating it on a cache miss.
func (s *ServiceImpl) Profile(ctx context.Context, destination string) (*types.DestinationProfile, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "Profile")
	defer span.End()
	span.SetAttributes(attribute.String("destination", destination))

	if destination == "" {
		return nil, &types.InvalidRequestError{Field: "destination", Reason: "destination is required"}
	}

	key := cache.ProfileKey(destination)
	if cached, err := s.store.Get(ctx, key); err == nil {
		var profile types.DestinationProfile
		if err := json.Unmarshal(cached, &profile); err == nil {
			metrics.Get().CacheHitsTotal.Add(ctx, 1)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &profile, nil
		}
		s.logger.WarnContext(ctx, "Cached profile failed to decode, regenerating", slog.String("key", key))
	}
	metrics.Get().CacheMissesTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Bool("cache.hit", false))

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](defaultTemperature)}
	txt, err := s.ai.GenerateText(ctx, getProfilePrompt(destination), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model call failed")
		return nil, &types.GenerationError{Reason: "model call failed", Err: err}
	}

	profile, err := parseProfile(txt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unusable model output")
		return nil, err
	}

	encoded, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode destination profile: %w", err)
	}
	if err := s.store.Set(ctx, key, encoded, cache.ProfileTTL); err != nil {
		s.logger.WarnContext(ctx, "Profile cache write failed", slog.Any("error", err))
	}

	span.SetStatus(codes.Ok, "Profile generated")
	return profile, nil
}

// HeroImage returns the destination hero photo, looked up on a cache miss.
func (s *ServiceImpl) HeroImage(ctx context.Context, destination string) (*types.ImageResult, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "HeroImage")
	defer span.End()
	span.SetAttributes(attribute.String("destination", destination))

	if destination == "" {
		return nil, &types.InvalidRequestError{Field: "destination", Reason: "destination is required"}
	}

	key := cache.HeroKey(destination)
	if cached, err := s.store.Get(ctx, key); err == nil {
		var img types.ImageResult
		if err := json.Unmarshal(cached, &img); err == nil {
			metrics.Get().CacheHitsTotal.Add(ctx, 1)
			return &img, nil
		}
	}
	metrics.Get().CacheMissesTotal.Add(ctx, 1)

	img, ok := s.photos.FetchImage(ctx, fmt.Sprintf("%s travel landscape", destination))
	if !ok {
		return nil, ErrNoHeroImage
	}

	encoded, err := json.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hero image: %w", err)
	}
	if err := s.store.Set(ctx, key, encoded, cache.HeroTTL); err != nil {
		s.logger.WarnContext(ctx, "Hero cache write failed", slog.Any("error", err))
	}
	return img, nil
}

func getProfilePrompt(destination string) string {
	return fmt.Sprintf(`
        Generate a destination profile for %s.
        Return the response STRICTLY as a JSON object with:
        {
        "destination": "%s",
        "country": "the country",
        "summary": "2-3 paragraph description covering history, atmosphere and main attractions",
        "bestTimeToVisit": "best months or season to visit",
        "coordinates": {"lat": <float>, "lng": <float>}
        }`, destination, destination)
}

func parseProfile(txt string) (*types.DestinationProfile, error) {
	cleaned := strings.TrimSpace(txt)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var profile types.DestinationProfile
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &profile); err != nil {
		return nil, &types.GenerationError{Reason: "response is not valid JSON", Err: err}
	}
	if profile.Destination == "" || profile.Summary == "" {
		return nil, &types.GenerationError{Reason: "response is missing destination or summary"}
	}
	return &profile, nil
}
