package helpers

import "strings"

// HighlightSegment represents a split section of text with optional emphasis.
type HighlightSegment struct {
	Text  string
	Match bool
}

// HighlightSegments splits text into segments, marking case-insensitive occurrences of term.
func HighlightSegments(text, term string) []HighlightSegment {
	if text == "" {
		return nil
	}
	needle := []rune(term)
	if strings.TrimSpace(term) == "" {
		return []HighlightSegment{{Text: text}}
	}

	runes := []rune(text)
	var segments []HighlightSegment
	start := 0
	for i := 0; i+len(needle) <= len(runes); {
		if !strings.EqualFold(string(runes[i:i+len(needle)]), term) {
			i++
			continue
		}
		if i > start {
			segments = append(segments, HighlightSegment{Text: string(runes[start:i])})
		}
		segments = append(segments, HighlightSegment{Text: string(runes[i : i+len(needle)]), Match: true})
		i += len(needle)
		start = i
	}
	if start < len(runes) {
		segments = append(segments, HighlightSegment{Text: string(runes[start:])})
	}
	return segments
}
