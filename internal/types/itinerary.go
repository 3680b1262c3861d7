package types

// Itinerary is the central document: produced by the generator, mutated in
// place by enrichment, stored as an opaque value by the cache layer.
type Itinerary struct {
	Destination   string         `json:"destination"`
	Summary       string         `json:"summary"`
	TripDetails   TripDetails    `json:"tripDetails"`
	SpecialEvents []SpecialEvent `json:"specialEvents,omitempty"`
	Days          []Day          `json:"days"`
}

// TripDetails carries destination-level facts. VerifiedFlights and
// VerifiedHotels are enrichment-only: the generator never sets them and a
// failed lookup leaves them absent.
type TripDetails struct {
	Currency               string            `json:"currency"`
	EstimatedBudget        string            `json:"estimatedBudget"`
	BestTimeToVisit        string            `json:"bestTimeToVisit"`
	TravelLogistics        TravelLogistics   `json:"travelLogistics"`
	HotelSuggestions       []HotelSuggestion `json:"hotelSuggestions,omitempty"`
	DestinationCoordinates Coordinates       `json:"destinationCoordinates"`
	VerifiedFlights        []FlightFare      `json:"verifiedFlights,omitempty"`
	VerifiedHotels         []HotelListing    `json:"verifiedHotels,omitempty"`
}

type TravelLogistics struct {
	Bus    string `json:"bus,omitempty"`
	Train  string `json:"train,omitempty"`
	Flight string `json:"flight,omitempty"`
	Car    string `json:"car,omitempty"`
}

type HotelSuggestion struct {
	Name       string `json:"name"`
	Tier       string `json:"tier"`
	PriceRange string `json:"priceRange"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SpecialEvent struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type Day struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Activity is the unit of enrichment: an activity carrying an ImageQuery and
// no ImageURL is a pending photo-lookup target. Once ImageURL is set it is
// never overwritten by a later enrichment pass.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
	TicketPrice string `json:"ticketPrice,omitempty"`
	ImageQuery  string `json:"imageQuery,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ImageResult is the normalized photo-source payload: at most one image per
// query, with attribution for display.
type ImageResult struct {
	URL          string `json:"url"`
	Photographer string `json:"photographer,omitempty"`
	SourceURL    string `json:"sourceUrl,omitempty"`
}

type FlightFare struct {
	Airline       string `json:"airline"`
	Price         string `json:"price"`
	Currency      string `json:"currency,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Stops         int    `json:"stops"`
}

type HotelListing struct {
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	Currency string  `json:"currency,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Link     string  `json:"link,omitempty"`
}

// DestinationProfile is the slow-changing destination page content, cached on
// its own key with the longest TTL.
type DestinationProfile struct {
	Destination     string      `json:"destination"`
	Country         string      `json:"country"`
	Summary         string      `json:"summary"`
	BestTimeToVisit string      `json:"bestTimeToVisit"`
	Coordinates     Coordinates `json:"coordinates"`
}
