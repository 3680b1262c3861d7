package cache

import (
	"fmt"
	"strings"
	"time"
)

// Keys are composite strings of the form <kind>:<version>:<normalized-params>.
// The version tag is bumped whenever the stored document shape changes, so
// stale-shape entries are orphaned instead of migrated.
const (
	itineraryVersion = "v2"
	profileVersion   = "v1"
	heroVersion      = "v1"
)

// TTL policy: frequently-changing hero media is short-lived, full itineraries
// last about a day, destination profiles change slowest.
const (
	HeroTTL      = 6 * time.Hour
	ItineraryTTL = 24 * time.Hour
	ProfileTTL   = 30 * 24 * time.Hour
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SearchKey derives the deterministic cache key for an itinerary search. Two
// logically-identical requests must produce the same string, so every
// parameter is normalized before joining.
func SearchKey(destination string, days int, interests []string, origin string) string {
	norm := make([]string, 0, len(interests))
	for _, it := range interests {
		if v := normalize(it); v != "" {
			norm = append(norm, v)
		}
	}
	return fmt.Sprintf("itinerary:%s:%s:%d:%s:%s",
		itineraryVersion, normalize(destination), days, strings.Join(norm, ","), normalize(origin))
}

// ProfileKey embeds only the destination path.
func ProfileKey(destination string) string {
	return fmt.Sprintf("profile:%s:%s", profileVersion, normalize(destination))
}

func HeroKey(destination string) string {
	return fmt.Sprintf("hero:%s:%s", heroVersion, normalize(destination))
}
