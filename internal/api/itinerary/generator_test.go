package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type stubTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubTextGenerator) GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

const goaResponse = `{
	"destination": "Goa",
	"tripDetails": {"durationDays": 2, "bestTimeToVisit": "November to February"},
	"days": [
		{"day": 1, "title": "Beaches", "activities": [
			{"time": "09:00", "description": "Morning at Palolem Beach", "location": "Palolem", "imageQuery": "Palolem beach Goa"}
		]},
		{"day": 2, "title": "Heritage", "activities": [
			{"time": "10:00", "description": "Walk Fontainhas Latin Quarter", "location": "Panjim", "imageQuery": "Fontainhas Panjim"}
		]}
	]
}`

func TestResolveDays(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		days        int
		want        int
	}{
		{"default when nothing given", "Goa", 0, 2},
		{"explicit parameter", "Goa", 5, 5},
		{"embedded count wins over parameter", "3 day trip to Goa", 5, 3},
		{"embedded with hyphen", "4-day Lisbon getaway", 0, 4},
		{"embedded case insensitive", "7 DAY alaska cruise", 0, 7},
		{"negative parameter falls back to default", "Goa", -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDays(tt.destination, tt.days))
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	ai := &stubTextGenerator{response: goaResponse}
	g := NewGenerator(ai, testLogger())

	it, err := g.Generate(context.Background(), "Goa", 2, []string{"beaches", "food"}, "LIS")
	require.NoError(t, err)
	assert.Equal(t, "Goa", it.Destination)
	require.Len(t, it.Days, 2)
	assert.Equal(t, "Beaches", it.Days[0].Title)

	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "Goa")
	assert.Contains(t, ai.prompts[0], "beaches, food")
	assert.Contains(t, ai.prompts[0], "LIS")
}

func TestGenerator_GenerateStripsFences(t *testing.T) {
	ai := &stubTextGenerator{response: "```json\n" + goaResponse + "\n```"}
	g := NewGenerator(ai, testLogger())

	it, err := g.Generate(context.Background(), "Goa", 2, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Goa", it.Destination)
}

func TestGenerator_GenerateRejectsNonJSON(t *testing.T) {
	ai := &stubTextGenerator{response: "I'm sorry, I cannot plan that trip."}
	g := NewGenerator(ai, testLogger())

	_, err := g.Generate(context.Background(), "Goa", 2, nil, "")
	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestGenerator_GenerateRejectsEmptyDays(t *testing.T) {
	ai := &stubTextGenerator{response: `{"destination": "Goa", "days": []}`}
	g := NewGenerator(ai, testLogger())

	_, err := g.Generate(context.Background(), "Goa", 2, nil, "")
	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestGenerator_GenerateRejectsMissingDestination(t *testing.T) {
	ai := &stubTextGenerator{response: `{"days": [{"day": 1, "activities": []}]}`}
	g := NewGenerator(ai, testLogger())

	_, err := g.Generate(context.Background(), "Goa", 2, nil, "")
	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestGenerator_GenerateWrapsModelFailure(t *testing.T) {
	modelErr := errors.New("quota exceeded")
	ai := &stubTextGenerator{err: modelErr}
	g := NewGenerator(ai, testLogger())

	_, err := g.Generate(context.Background(), "Goa", 2, nil, "")
	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, modelErr)
}

func TestParseItinerary_BackfillsDayNumbers(t *testing.T) {
	it, err := parseItinerary(`{
		"destination": "Lisbon",
		"days": [
			{"title": "Alfama", "activities": []},
			{"title": "Belem", "activities": []}
		]
	}`)
	require.NoError(t, err)
	assert.Equal(t, 1, it.Days[0].Day)
	assert.Equal(t, 2, it.Days[1].Day)
}

func TestGenerator_RevisePinsDestination(t *testing.T) {
	drifted := `{
		"destination": "North Goa",
		"days": [{"day": 1, "title": "Quieter beaches", "activities": [
			{"time": "09:00", "description": "Morning at Ashwem", "location": "Ashwem", "imageQuery": "Ashwem beach"}
		]}]
	}`
	ai := &stubTextGenerator{response: drifted}
	g := NewGenerator(ai, testLogger())

	existing := &types.Itinerary{
		Destination: "Goa",
		Days:        []types.Day{{Day: 1, Title: "Beaches"}},
	}
	revised, err := g.Revise(context.Background(), existing, "make it less crowded")
	require.NoError(t, err)
	assert.Equal(t, "Goa", revised.Destination)
	assert.Equal(t, "Quieter beaches", revised.Days[0].Title)

	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "make it less crowded")
	assert.Contains(t, ai.prompts[0], `"destination":"Goa"`)
}

func TestGenerator_ReviseRejectsUnusableOutput(t *testing.T) {
	ai := &stubTextGenerator{response: "not json"}
	g := NewGenerator(ai, testLogger())

	existing := &types.Itinerary{Destination: "Goa", Days: []types.Day{{Day: 1}}}
	_, err := g.Revise(context.Background(), existing, "add a museum")
	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)
}
