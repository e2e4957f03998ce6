// Package gemini implements the inference capability using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/showreel"
	"google.golang.org/genai"
)

// DefaultModel is used when the caller does not name one.
const DefaultModel = "gemini-2.5-flash"

// Ensure Suggester implements showreel.Suggester at compile time.
var _ showreel.Suggester = (*Suggester)(nil)

// Suggester implements showreel.Suggester using Google Gemini.
type Suggester struct {
	client *genai.Client
}

// NewSuggester creates a new Suggester.
func NewSuggester(client *genai.Client) *Suggester {
	return &Suggester{client: client}
}

// Suggest asks the model for selectors or values covering the missing fields.
func (s *Suggester) Suggest(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
	if len(missing) == 0 {
		return map[string]showreel.Suggestion{}, nil
	}
	if model == "" {
		model = DefaultModel
	}

	prompt := BuildSuggestPrompt(markup, missing)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, showreel.Errorf(showreel.EINTERNAL, "gemini returned nil result")
	}

	return ParseSuggestions(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The temperature is low: selector suggestions should be reproducible.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert web scraper. Given an HTML excerpt and a list of missing fields, respond with a JSON object keyed by field name. Each entry has an optional \"selector\" (a CSS selector locating the field in the HTML), an optional \"value\" (the literal value when no selector applies), and an optional \"explanation\". Respond with JSON only.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildSuggestPrompt builds the user prompt containing the markup excerpt
// and the missing field names.
func BuildSuggestPrompt(markup string, missing []string) string {
	var sb strings.Builder
	sb.WriteString("<html_excerpt>\n")
	sb.WriteString(markup)
	sb.WriteString("\n</html_excerpt>\n\n")
	fmt.Fprintf(&sb, "Missing fields: %s\n", strings.Join(missing, ", "))
	sb.WriteString("Suggest a CSS selector or literal value for each missing field.")
	return sb.String()
}

// ParseSuggestions extracts the suggestion object from a model response.
// Responses wrapped in markdown code fences are unwrapped; otherwise the
// first balanced JSON object in the text is parsed.
func ParseSuggestions(text string) (map[string]showreel.Suggestion, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, showreel.Errorf(showreel.EINTERNAL, "no JSON object in model response")
	}

	var suggestions map[string]showreel.Suggestion
	if err := json.Unmarshal([]byte(payload), &suggestions); err != nil {
		return nil, showreel.Errorf(showreel.EINTERNAL, "unparseable model response: %v", err)
	}
	return suggestions, nil
}

// extractJSON returns the JSON object embedded in text, preferring fenced
// blocks over a bare object scan.
func extractJSON(text string) string {
	if _, after, found := strings.Cut(text, "```json"); found {
		if inner, _, found := strings.Cut(after, "```"); found {
			return strings.TrimSpace(inner)
		}
	}
	if _, after, found := strings.Cut(text, "```"); found {
		if inner, _, found := strings.Cut(after, "```"); found {
			return strings.TrimSpace(inner)
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
