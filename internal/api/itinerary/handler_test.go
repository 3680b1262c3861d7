package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Search(ctx context.Context, req types.SearchRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, req)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Refine(ctx context.Context, req types.RefineRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, req)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) GetCached(ctx context.Context, key string) (*types.Itinerary, error) {
	args := m.Called(ctx, key)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestHandler_SearchItinerary(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, testLogger())

	want := &types.Itinerary{Destination: "Goa", Days: []types.Day{{Day: 1, Title: "Beaches"}}}
	svc.On("Search", mock.Anything, types.SearchRequest{Destination: "Goa", Days: 2}).Return(want, nil).Once()

	rr := postJSON(t, h.SearchItinerary, "/api/v1/itineraries/search", types.SearchRequest{Destination: "Goa", Days: 2})
	assert.Equal(t, http.StatusOK, rr.Code)

	var got types.Itinerary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Goa", got.Destination)
	svc.AssertExpectations(t)
}

func TestHandler_SearchItineraryErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid request", &types.InvalidRequestError{Field: "destination", Reason: "required"}, http.StatusBadRequest},
		{"generation failure", &types.GenerationError{Reason: "response is not valid JSON"}, http.StatusBadGateway},
		{"cache miss", types.ErrCacheMiss, http.StatusNotFound},
		{"unexpected failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, testLogger())
			svc.On("Search", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rr := postJSON(t, h.SearchItinerary, "/api/v1/itineraries/search", types.SearchRequest{Destination: "Goa"})
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestHandler_SearchItineraryRejectsBadBody(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/search", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.SearchItinerary(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Search")
}

func TestHandler_RefineItinerary(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, testLogger())

	want := &types.Itinerary{Destination: "Goa", Days: []types.Day{{Day: 1, Title: "Quieter beaches"}}}
	svc.On("Refine", mock.Anything, mock.Anything).Return(want, nil).Once()

	rr := postJSON(t, h.RefineItinerary, "/api/v1/itineraries/refine", types.RefineRequest{
		Itinerary:   &types.Itinerary{Destination: "Goa", Days: []types.Day{{Day: 1}}},
		Instruction: "make it less crowded",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var got types.Itinerary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Quieter beaches", got.Days[0].Title)
	svc.AssertExpectations(t)
}
