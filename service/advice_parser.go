package service

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Keys a model uses for the list of items, in an envelope object or on each
// object in an array.
var (
	adviceListKeys = []string{"recommendations", "advice", "analysis", "suggestions", "items"}
	adviceTextKeys = []string{"recommendation", "advice", "suggestion", "text", "title", "description"}
)

// ParseRecommendations turns raw model output into a list of recommendations.
// JSON output (an array of strings or objects, or an envelope such as
// {"recommendations": [...]}) is repaired before decoding, since models often
// emit trailing commas, code fences or truncated arrays. JSON that holds no
// text yields no recommendations. Anything else is split into non-empty lines
// with list markers removed.
func ParseRecommendations(raw string) []string {
	raw = strings.TrimSpace(stripCodeFences(raw))
	if raw == "" {
		return nil
	}

	if recs, ok := parseJSONRecommendations(raw); ok {
		return limitRecommendations(recs)
	}

	var recs []string
	for _, line := range strings.Split(raw, "\n") {
		if line = cleanRecommendation(line); line != "" {
			recs = append(recs, line)
		}
	}
	return limitRecommendations(recs)
}

// parseJSONRecommendations reports ok once raw decodes as JSON, even when no
// recommendation text was found in it.
func parseJSONRecommendations(raw string) ([]string, bool) {
	if raw[0] != '[' && raw[0] != '{' {
		return nil, false
	}

	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, false
	}

	var doc any
	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return nil, false
	}

	switch v := doc.(type) {
	case []any:
		return adviceItems(v), true
	case map[string]any:
		for _, key := range adviceListKeys {
			if list, ok := v[key].([]any); ok {
				return adviceItems(list), true
			}
		}
		return nil, true
	default:
		return nil, true
	}
}

func adviceItems(list []any) []string {
	var out []string
	for _, item := range list {
		var text string
		switch v := item.(type) {
		case string:
			text = v
		case map[string]any:
			text = adviceText(v)
		}
		if text = cleanRecommendation(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func adviceText(obj map[string]any) string {
	title, _ := obj["title"].(string)
	desc, _ := obj["description"].(string)
	if title, desc = strings.TrimSpace(title), strings.TrimSpace(desc); title != "" && desc != "" {
		return title + ": " + desc
	}
	for _, key := range adviceTextKeys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func stripCodeFences(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func cleanRecommendation(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*•# \t")
	// numbered items: "1." or "2)"
	if i := strings.IndexAny(s, ".)"); i > 0 && i <= 3 && isDigits(s[:i]) && i+1 < len(s) && s[i+1] == ' ' {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func limitRecommendations(recs []string) []string {
	if len(recs) > MaxRecommendations {
		return recs[:MaxRecommendations]
	}
	return recs
}
