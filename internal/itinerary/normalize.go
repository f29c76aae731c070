package itinerary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxChars caps sanitized model output.
const DefaultMaxChars = 100000

const (
	itineraryStartMarker = "<<ITINERARY_START>>"
	itineraryEndMarker   = "<<ITINERARY_END>>"
)

var (
	markupTagRe    = regexp.MustCompile(`<[^>]+>`)
	nonPrintableRe = regexp.MustCompile(`[^\t\n\r\x20-\x7E\x{00A0}-\x{FFFF}]`)
	hSpaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe     = regexp.MustCompile(`\n[\s\p{Z}\x{0085}]*\n+`)

	leadingHSpaceRe = regexp.MustCompile(`^[ \t]+`)
	bulletRunRe     = regexp.MustCompile(`^[-*\x{2022}\s]+`)
	innerSpaceRe    = regexp.MustCompile(`[ \t]{2,}`)
	newlineRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Sanitize neutralises markup and prompt markers in raw model output,
// collapses whitespace and cuts the result at maxChars runes.
// A maxChars of zero or less falls back to DefaultMaxChars.
func Sanitize(raw string, maxChars int) string {
	if raw == "" {
		return ""
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	text := strings.ToValidUTF8(raw, " ")
	text = strings.ReplaceAll(text, "```", "` ` `")
	text = strings.ReplaceAll(text, itineraryStartMarker, " ")
	text = strings.ReplaceAll(text, itineraryEndMarker, " ")
	text = markupTagRe.ReplaceAllString(text, " ")
	text = nonPrintableRe.ReplaceAllString(text, " ")
	text = hSpaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	if utf8.RuneCountInString(text) > maxChars {
		text = string([]rune(text)[:maxChars])
	}
	return text
}

// StripMarkers deletes every asterisk. It is not markdown aware.
func StripMarkers(text string) string {
	if text == "" {
		return text
	}
	return strings.ReplaceAll(text, "*", "")
}

// Align normalises indentation and bullets for display. Any leading run of
// '-', '*', '•' and whitespace that holds a bullet glyph becomes "• ".
// Align is idempotent.
func Align(text string) string {
	if text == "" {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}

		s := leadingHSpaceRe.ReplaceAllString(line, "")
		if run := bulletRunRe.FindString(s); run != "" {
			prefix := ""
			if strings.ContainsAny(run, "-*•") {
				prefix = "• "
			}
			s = prefix + s[len(run):]
		}
		s = innerSpaceRe.ReplaceAllString(s, " ")
		s = strings.TrimRightFunc(s, unicode.IsSpace)

		out = append(out, s)
	}

	return newlineRunRe.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
}

// Normalize is the pre-processing applied to generated and chat-modified text.
func Normalize(raw string, maxChars int) string {
	return Align(StripMarkers(Sanitize(raw, maxChars)))
}
