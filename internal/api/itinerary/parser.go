package itinerary

import (
	"encoding/json"
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// cleanJSONResponse strips the markdown code fences models like to wrap JSON
// in before parsing.
func cleanJSONResponse(txt string) string {
	cleaned := strings.TrimSpace(txt)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// parseItinerary validates the model output strictly: either the text is JSON
// matching the expected top-level shape (destination present, non-empty days)
// or the whole call fails with a GenerationError. No guessing among
// alternative response shapes.
func parseItinerary(txt string) (*types.Itinerary, error) {
	var it types.Itinerary
	if err := json.Unmarshal([]byte(cleanJSONResponse(txt)), &it); err != nil {
		return nil, &types.GenerationError{Reason: "response is not valid JSON", Err: err}
	}
	if it.Destination == "" {
		return nil, &types.GenerationError{Reason: "response is missing destination"}
	}
	if len(it.Days) == 0 {
		return nil, &types.GenerationError{Reason: "response has no days"}
	}
	for i := range it.Days {
		if it.Days[i].Day == 0 {
			it.Days[i].Day = i + 1
		}
	}
	return &it, nil
}
