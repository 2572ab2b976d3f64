// Package answer interprets the semi-structured reply of the SmartSight
// backend. The primary answer arrives as a string that is usually a JSON
// array of insight points, often wrapped in a markdown code fence, but the
// model is free to return looser shapes. Parsing is tolerant: every input
// resolves to a usable list of points, never an error.
package answer

import (
	"encoding/json"
	"strings"

	"github.com/smartsight-ai/sightchat/internal/domain"
)

const (
	// NoCaption is substituted when the backend omits a caption for a
	// retrieved image index.
	NoCaption = "No caption available"

	// NoInsights is what the presentation layer shows for an empty point
	// list. An empty list is a valid result, not an error.
	NoInsights = "No relevant insights available."

	invalidFormat = "Invalid response format."
	couldNotParse = "Could not parse AI response."
)

// Kind tags the shape the raw answer resolved to.
type Kind int

const (
	// KindPoints: a JSON array of strings, used directly.
	KindPoints Kind = iota
	// KindWrapped: a JSON object carrying a single "response" string.
	KindWrapped
	// KindUnrecognized: valid JSON matching neither shape.
	KindUnrecognized
	// KindUnparseable: not JSON at all.
	KindUnparseable
)

// Result is the outcome of interpreting one raw answer.
type Result struct {
	Kind   Kind
	points []string
}

// Parse strips any surrounding ```json / ``` fence markers and resolves the
// remainder against the ordered policy: string list, wrapped single answer,
// unrecognized structure, unparseable.
func Parse(raw string) Result {
	cleaned := stripFences(raw)

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return Result{Kind: KindUnparseable}
	}

	switch v := probe.(type) {
	case []any:
		points := make([]string, 0, len(v))
		for _, el := range v {
			s, ok := el.(string)
			if !ok {
				return Result{Kind: KindUnrecognized}
			}
			points = append(points, s)
		}
		return Result{Kind: KindPoints, points: points}
	case map[string]any:
		if s, ok := v["response"].(string); ok && s != "" {
			return Result{Kind: KindWrapped, points: []string{s}}
		}
		return Result{Kind: KindUnrecognized}
	default:
		return Result{Kind: KindUnrecognized}
	}
}

// Points returns the insight list, substituting the fixed fallback marker for
// the degenerate kinds. The result is always usable for rendering; an empty
// slice means the model genuinely answered with no points.
func (r Result) Points() []string {
	switch r.Kind {
	case KindPoints, KindWrapped:
		return r.points
	case KindUnparseable:
		return []string{couldNotParse}
	default:
		return []string{invalidFormat}
	}
}

// stripFences removes markdown code fence markers anywhere in s. The model
// sometimes emits ```json ... ``` and sometimes bare fences.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// PairRetrieved pairs image references with their captions by index. A
// missing caption gets the NoCaption placeholder; a nil reference list yields
// an empty result, not an error.
func PairRetrieved(urls, captions []string) []domain.RetrievedImage {
	images := make([]domain.RetrievedImage, 0, len(urls))
	for i, url := range urls {
		caption := NoCaption
		if i < len(captions) && captions[i] != "" {
			caption = captions[i]
		}
		images = append(images, domain.RetrievedImage{URL: url, Caption: caption})
	}
	return images
}
