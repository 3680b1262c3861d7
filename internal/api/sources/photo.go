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

// PexelsSource fetches a single photo for a free-text query from the Pexels
// search API. A missing PEXELS_API_KEY degrades the source to always-absent
// rather than failing at startup.
type PexelsSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewPexelsSource(cfg *config.Config, logger *slog.Logger) *PexelsSource {
	apiKey := os.Getenv("PEXELS_API_KEY")
	if apiKey == "" {
		logger.Warn("PEXELS_API_KEY not set, photo enrichment disabled")
	}
	return &PexelsSource{
		apiKey:  apiKey,
		baseURL: cfg.Providers.PhotoBaseURL,
		client:  newHTTPClient(cfg.Providers.TimeoutSeconds),
		logger:  logger,
	}
}

type pexelsResponse struct {
	Photos []struct {
		URL          string `json:"url"`
		Photographer string `json:"photographer"`
		Src          struct {
			Large2x string `json:"large2x"`
			Large   string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func (s *PexelsSource) FetchImage(ctx context.Context, query string) (*types.ImageResult, bool) {
	ctx, span := otel.Tracer("PhotoSource").Start(ctx, "FetchImage")
	defer span.End()
	span.SetAttributes(attribute.String("photo.query", query))

	if s.apiKey == "" || query == "" {
		return nil, false
	}

	endpoint := fmt.Sprintf("%s/search?query=%s&per_page=1", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to build photo request", slog.Any("error", err))
		return nil, false
	}
	req.Header.Set("Authorization", s.apiKey)

	body, err := doJSON(s.client, req)
	if err != nil {
		s.logger.WarnContext(ctx, "Photo lookup failed", slog.String("query", query), slog.Any("error", err))
		span.RecordError(err)
		return nil, false
	}

	var parsed pexelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		s.logger.WarnContext(ctx, "Failed to parse photo response", slog.Any("error", err))
		span.RecordError(err)
		return nil, false
	}
	if len(parsed.Photos) == 0 {
		return nil, false
	}

	photo := parsed.Photos[0]
	imageURL := photo.Src.Large2x
	if imageURL == "" {
		imageURL = photo.Src.Large
	}
	if imageURL == "" {
		return nil, false
	}
	return &types.ImageResult{
		URL:          imageURL,
		Photographer: photo.Photographer,
		SourceURL:    photo.URL,
	}, true
}
