package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	costLineRe   = regexp.MustCompile(`(?i)Cost:\s*([0-9]+)\s*(?:INR|USD|EUR)?`)
	placesLineRe = regexp.MustCompile(`(?i)Places:\s*(.+?)(?:\.|\n|$)`)
)

// ExtractCost returns the amount of the first "Cost: N" in block, or 0.
// Amounts above MaxDayCost, including ones too long for an int, are
// clamped to MaxDayCost.
func ExtractCost(block string) int {
	m := costLineRe.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > MaxDayCost {
		return MaxDayCost
	}
	return n
}

// ExtractPlaces returns the comma separated names of the first "Places:" line.
// Order and duplicates are kept.
func ExtractPlaces(block string) []string {
	places := []string{}
	m := placesLineRe.FindStringSubmatch(block)
	if m == nil {
		return places
	}
	for _, p := range strings.Split(m[1], ",") {
		if p = strings.TrimSpace(p); p != "" {
			places = append(places, p)
		}
	}
	return places
}

// Parse segments text and extracts cost and places for every day.
func Parse(text string) Document {
	blocks := Segment(text)
	days := make(Document, 0, len(blocks))
	for _, b := range blocks {
		days = append(days, DayRecord{
			DayNumber:   b.DayNumber,
			Description: b.Text,
			Cost:        ExtractCost(b.Text),
			Places:      ExtractPlaces(b.Text),
		})
	}
	return days
}
