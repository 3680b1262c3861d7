package itinerary

import (
	"fmt"
	"strings"
)

const itinerarySchemaPart = `
        {
        "destination": "the destination name",
        "summary": "A short engaging summary of the trip.",
        "tripDetails": {
            "currency": "local currency code",
            "estimatedBudget": "estimated budget range for the whole trip",
            "bestTimeToVisit": "best months or season to visit",
            "travelLogistics": {
                "bus": "how to arrive or move around by bus",
                "train": "how to arrive or move around by train",
                "flight": "nearest airport and flight guidance",
                "car": "driving and parking guidance"
            },
            "hotelSuggestions": [
                {"name": "Hotel name", "tier": "budget | mid-range | luxury", "priceRange": "price range per night"}
            ],
            "destinationCoordinates": {"lat": <float>, "lng": <float>}
        },
        "specialEvents": [
            {"name": "Event name", "date": "approximate date", "description": "one sentence", "location": "where"}
        ],
        "days": [
            {
            "day": 1,
            "title": "Theme of the day",
            "activities": [
                {
                "time": "e.g. 09:00",
                "description": "What to do, 1-2 sentences.",
                "location": "Name of the place",
                "ticketPrice": "entry price or empty if free",
                "imageQuery": "a short image search query for this activity"
                }
            ]
            }
        ]
        }`

func getItineraryPrompt(destination string, days int, interests []string, origin string) string {
	interestsPart := ""
	if len(interests) > 0 {
		interestsPart = fmt.Sprintf("\n        The traveller's interests are: [%s]. Bias activities towards them.", strings.Join(interests, ", "))
	}
	originPart := ""
	if origin != "" {
		originPart = fmt.Sprintf("\n        The traveller departs from %s; tailor travelLogistics accordingly.", origin)
	}
	return fmt.Sprintf(`
        Generate a complete %d day travel itinerary for %s.%s%s
        Do not include imageUrl fields; images are attached later.
        Return the response STRICTLY as a JSON object with exactly this shape:%s`,
		days, destination, interestsPart, originPart, itinerarySchemaPart)
}

func getRevisionPrompt(existingJSON, destination, instruction string) string {
	return fmt.Sprintf(`
        Here is an existing travel itinerary for %s as JSON:
        %s

        Apply the following change request and return the FULL revised itinerary:
        "%s"

        The destination must remain "%s". You may add, remove or alter days,
        activities and tripDetails, but keep the exact same JSON shape:%s
        Keep any existing imageUrl values untouched and do not invent new ones.
        Return STRICTLY the JSON object, nothing else.`,
		destination, existingJSON, instruction, destination, itinerarySchemaPart)
}
