package types

// SearchRequest is a new itinerary search. Destination is required; Days,
// Interests and Origin are optional.
type SearchRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Origin      string   `json:"origin,omitempty"`
}

// RefineRequest carries an already-generated itinerary plus a free-text
// change request from the chat flow.
type RefineRequest struct {
	Itinerary   *Itinerary `json:"itinerary"`
	Instruction string     `json:"instruction"`
}

// Lead is a captured travel enquiry.
type Lead struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Destination string `json:"destination,omitempty"`
	Message     string `json:"message,omitempty"`
}
