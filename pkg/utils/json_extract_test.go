package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editReply struct {
	Itinerary string   `json:"itinerary"`
	Places    []string `json:"places"`
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain", `{"itinerary":"Day 1: a","places":["Fort"]}`},
		{"fenced", "```json\n{\"itinerary\":\"Day 1: a\",\"places\":[\"Fort\"]}\n```"},
		{"prose around", "Sure! Here it is:\n{\"itinerary\":\"Day 1: a\",\"places\":[\"Fort\"]}\nEnjoy."},
		{"comments", "{\n// updated\n\"itinerary\":\"Day 1: a\", /* pins */ \"places\":[\"Fort\"]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON[editReply](tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "Day 1: a", got.Itinerary)
			assert.Equal(t, []string{"Fort"}, got.Places)
		})
	}
}

func TestExtractJSON_BracesInStrings(t *testing.T) {
	got, err := ExtractJSON[editReply](`{"itinerary":"Day 1: {see} \"quoted\" }","places":[]} trailing }`)
	require.NoError(t, err)
	assert.Equal(t, `Day 1: {see} "quoted" }`, got.Itinerary)
}

func TestExtractJSON_Errors(t *testing.T) {
	_, err := ExtractJSON[editReply]("no json here")
	assert.ErrorIs(t, err, ErrInvalidOutput)

	_, err = ExtractJSON[editReply](`{"itinerary": }`)
	assert.ErrorIs(t, err, ErrInvalidOutput)

	_, err = ExtractJSON[editReply](`{"itinerary": "unterminated"`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
