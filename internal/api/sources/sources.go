// Package sources holds the enrichment source adapters: one per external
// capability (photos, flight prices, hotel prices). Every adapter follows the
// same contract: a fetch that fails for any reason (network error, non-2xx,
// malformed body, missing credential) resolves to absent instead of returning
// an error, so the enrichment pass can always complete.
package sources

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// PhotoSource resolves a free-text query to at most one image reference.
type PhotoSource interface {
	FetchImage(ctx context.Context, query string) (*types.ImageResult, bool)
}

// FlightSource looks up fares for an origin/destination pair.
type FlightSource interface {
	FetchFares(ctx context.Context, origin, destination string) ([]types.FlightFare, bool)
}

// HotelSource looks up listings for a destination.
type HotelSource interface {
	FetchListings(ctx context.Context, destination string) ([]types.HotelListing, bool)
}

const defaultTimeout = 10 * time.Second

func newHTTPClient(timeoutSeconds int) *http.Client {
	timeout := defaultTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// doJSON issues the request and returns the body only for a 2xx response.
func doJSON(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
