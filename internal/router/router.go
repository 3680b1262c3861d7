package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/destination"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/leads"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler   *itinerary.Handler
	DestinationHandler *destination.Handler
	LeadsHandler       *leads.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Heartbeat/Health check endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/search", cfg.ItineraryHandler.SearchItinerary)
			r.Post("/refine", cfg.ItineraryHandler.RefineItinerary)
		})

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/{destination}/profile", cfg.DestinationHandler.GetProfile)
			r.Get("/{destination}/hero", cfg.DestinationHandler.GetHeroImage)
		})

		r.Post("/leads", cfg.LeadsHandler.CaptureLead)
	})

	return r
}
