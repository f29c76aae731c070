package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

var dayHeaderRe = regexp.MustCompile(`^Day\s*([0-9]+):`)

// Block is the raw text of one day, header line included.
type Block struct {
	DayNumber int
	Text      string
}

// Segment splits itinerary text into day blocks keyed by "Day N:" headers.
// Blocks keep emission order; lines before the first header are dropped.
// A header numbered 0 closes the open day without opening a new one.
// An empty result means the structure was not recognised.
func Segment(text string) []Block {
	var (
		blocks  []Block
		current int
		lines   []string
	)

	closeDay := func() {
		if current <= 0 {
			return
		}
		blocks = append(blocks, Block{
			DayNumber: current,
			Text:      strings.TrimSpace(strings.Join(lines, "\n")),
		})
	}

	for _, line := range splitLines(text) {
		if m := dayHeaderRe.FindStringSubmatch(line); m != nil {
			closeDay()
			n, err := strconv.Atoi(m[1])
			if err != nil {
				n = 0
			}
			current = n
			lines = []string{line}
			continue
		}
		if current > 0 {
			lines = append(lines, line)
		}
	}
	closeDay()

	return blocks
}

// lineBreaks are the separators that survive Sanitize: CRLF, CR and the
// Unicode line and paragraph separators.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n")

func splitLines(text string) []string {
	return strings.Split(lineBreaks.Replace(text), "\n")
}
