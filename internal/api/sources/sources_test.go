package sources

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Providers.PhotoBaseURL = baseURL
	cfg.Providers.FlightsBaseURL = baseURL
	cfg.Providers.HotelsBaseURL = baseURL
	cfg.Providers.TimeoutSeconds = 2
	return cfg
}

func TestPexelsSource_FetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "sunset beach", r.URL.Query().Get("query"))
		w.Write([]byte(`{"photos":[{"url":"https://pexels.com/photo/1","photographer":"Ana","src":{"large2x":"https://img/large2x.jpg","large":"https://img/large.jpg"}}]}`))
	}))
	defer srv.Close()

	t.Setenv("PEXELS_API_KEY", "test-key")
	source := NewPexelsSource(testConfig(srv.URL), testLogger())

	img, ok := source.FetchImage(context.Background(), "sunset beach")
	require.True(t, ok)
	assert.Equal(t, "https://img/large2x.jpg", img.URL)
	assert.Equal(t, "Ana", img.Photographer)
	assert.Equal(t, "https://pexels.com/photo/1", img.SourceURL)
}

func TestPexelsSource_AbsentWithoutCredential(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "")
	source := NewPexelsSource(testConfig("http://unused"), testLogger())

	_, ok := source.FetchImage(context.Background(), "anything")
	assert.False(t, ok)
}

func TestPexelsSource_AbsentOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("PEXELS_API_KEY", "test-key")
	source := NewPexelsSource(testConfig(srv.URL), testLogger())

	_, ok := source.FetchImage(context.Background(), "anything")
	assert.False(t, ok)
}

func TestPexelsSource_AbsentOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	t.Setenv("PEXELS_API_KEY", "test-key")
	source := NewPexelsSource(testConfig(srv.URL), testLogger())

	_, ok := source.FetchImage(context.Background(), "anything")
	assert.False(t, ok)
}

func TestPexelsSource_AbsentOnEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos":[]}`))
	}))
	defer srv.Close()

	t.Setenv("PEXELS_API_KEY", "test-key")
	source := NewPexelsSource(testConfig(srv.URL), testLogger())

	_, ok := source.FetchImage(context.Background(), "anything")
	assert.False(t, ok)
}

func TestFlightPriceSource_FetchFares(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_flights", r.URL.Query().Get("engine"))
		assert.Equal(t, "LIS", r.URL.Query().Get("departure_id"))
		assert.Equal(t, "GOI", r.URL.Query().Get("arrival_id"))
		w.Write([]byte(`{"best_flights":[{"price":540,"flights":[{"airline":"TAP","departure_airport":{"time":"2026-09-01 09:15"},"arrival_airport":{"time":"2026-09-01 14:05"}},{"airline":"Air India","departure_airport":{"time":"2026-09-01 16:00"},"arrival_airport":{"time":"2026-09-02 04:40"}}]}]}`))
	}))
	defer srv.Close()

	t.Setenv("FLIGHTS_API_KEY", "test-key")
	source := NewFlightPriceSource(testConfig(srv.URL), testLogger())

	fares, ok := source.FetchFares(context.Background(), "LIS", "GOI")
	require.True(t, ok)
	require.Len(t, fares, 1)
	assert.Equal(t, "TAP", fares[0].Airline)
	assert.Equal(t, "540", fares[0].Price)
	assert.Equal(t, 1, fares[0].Stops)
	assert.Equal(t, "2026-09-01 09:15", fares[0].DepartureTime)
	assert.Equal(t, "2026-09-02 04:40", fares[0].ArrivalTime)
}

func TestFlightPriceSource_AbsentWithoutParams(t *testing.T) {
	t.Setenv("FLIGHTS_API_KEY", "test-key")
	source := NewFlightPriceSource(testConfig("http://unused"), testLogger())

	_, ok := source.FetchFares(context.Background(), "", "GOI")
	assert.False(t, ok)
	_, ok = source.FetchFares(context.Background(), "LIS", "")
	assert.False(t, ok)
}

func TestFlightPriceSource_AbsentWithoutCredential(t *testing.T) {
	t.Setenv("FLIGHTS_API_KEY", "")
	source := NewFlightPriceSource(testConfig("http://unused"), testLogger())

	_, ok := source.FetchFares(context.Background(), "LIS", "GOI")
	assert.False(t, ok)
}

func TestHotelPriceSource_FetchListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_hotels", r.URL.Query().Get("engine"))
		assert.Equal(t, "Goa", r.URL.Query().Get("q"))
		w.Write([]byte(`{"properties":[{"name":"Taj Exotica","link":"https://hotel/1","rate_per_night":{"lowest":"$210"},"overall_rating":4.7},{"name":"Beach Hut","link":"https://hotel/2","rate_per_night":{"lowest":"$35"},"overall_rating":4.1}]}`))
	}))
	defer srv.Close()

	t.Setenv("HOTELS_API_KEY", "test-key")
	source := NewHotelPriceSource(testConfig(srv.URL), testLogger())

	listings, ok := source.FetchListings(context.Background(), "Goa")
	require.True(t, ok)
	require.Len(t, listings, 2)
	assert.Equal(t, "Taj Exotica", listings[0].Name)
	assert.Equal(t, "$210", listings[0].Price)
	assert.Equal(t, 4.7, listings[0].Rating)
}

func TestHotelPriceSource_AbsentOnTimeoutLikeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	t.Setenv("HOTELS_API_KEY", "test-key")
	source := NewHotelPriceSource(testConfig(srv.URL), testLogger())

	_, ok := source.FetchListings(context.Background(), "Goa")
	assert.False(t, ok)
}
