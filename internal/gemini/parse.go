package gemini

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

const (
	// MaxInsights is the most insights kept from one response.
	MaxInsights = 4
	// MaxCandidates is the most search candidates kept from one response.
	MaxCandidates = 8
)

var (
	fenceRe       = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")
	labeledPrice  = regexp.MustCompile(`(?i)price[^0-9\-]{0,24}([0-9][0-9,]*(?:\.[0-9]+)?)`)
	numberCleanup = strings.NewReplacer(",", "", "₹", "", "$", "", "INR", "", "USD", "", " ", "")
)

// decodeJSON locates the JSON document inside a model answer and decodes it.
// Code fences and surrounding prose are tolerated.
func decodeJSON(text string) (any, error) {
	body := strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(body); m != nil {
		body = strings.TrimSpace(m[1])
	}

	start := strings.IndexAny(body, "[{")
	end := strings.LastIndexAny(body, "]}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON document found", apperrors.ErrMalformedResponse)
	}

	var v any
	if err := json.Unmarshal([]byte(body[start:end+1]), &v); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMalformedResponse, err)
	}
	return v, nil
}

// lookup returns the value at a JSONPath expression. Missing keys and
// non-object documents report false.
func lookup(path string, v any) (any, bool) {
	got, err := jsonpath.Get(path, v)
	if err != nil || got == nil {
		return nil, false
	}
	return got, true
}

// listAt returns v itself when it is a list, otherwise the first list found under one of keys.
func listAt(v any, keys ...string) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	for _, k := range keys {
		if got, ok := lookup("$."+k, v); ok {
			if list, ok := got.([]any); ok {
				return list, true
			}
		}
	}
	return nil, false
}

// toPrice converts a JSON number or numeric string into a non-negative finite price.
func toPrice(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(numberCleanup.Replace(strings.TrimSpace(t)), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// ParsePriceMap reads a symbol → price object. Entries that are null, negative
// or not numeric are dropped. An object nested under "prices" is accepted too.
func ParsePriceMap(text string) (map[string]float64, error) {
	v, err := decodeJSON(text)
	if err != nil {
		return nil, err
	}
	if nested, ok := lookup("$.prices", v); ok {
		v = nested
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object of prices", apperrors.ErrMalformedResponse)
	}

	prices := make(map[string]float64, len(obj))
	for symbol, raw := range obj {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}
		if p, ok := toPrice(raw); ok {
			prices[symbol] = p
		}
	}
	return prices, nil
}

// ParseInsights reads a list of insights, either bare or wrapped in {"insights": [...]}.
// Items without a title or content are dropped, unknown classifications become
// neutral and at most MaxInsights are kept.
func ParseInsights(text string) ([]model.Insight, error) {
	v, err := decodeJSON(text)
	if err != nil {
		return nil, err
	}
	items, ok := listAt(v, "insights")
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of insights", apperrors.ErrMalformedResponse)
	}

	insights := make([]model.Insight, 0, MaxInsights)
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title := stringField(m, "title")
		content := stringField(m, "content", "description", "text")
		if title == "" || content == "" {
			continue
		}
		insights = append(insights, model.Insight{
			Title:   title,
			Content: content,
			Type:    model.ParseInsightType(stringField(m, "type", "classification")),
		})
		if len(insights) == MaxInsights {
			break
		}
	}
	return insights, nil
}

// ParseCandidates reads symbol search results. Items need both a name and a symbol;
// duplicates by symbol are dropped and at most MaxCandidates are kept.
func ParseCandidates(text string) ([]model.SearchCandidate, error) {
	v, err := decodeJSON(text)
	if err != nil {
		return nil, err
	}
	items, ok := listAt(v, "results", "candidates")
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of candidates", apperrors.ErrMalformedResponse)
	}

	seen := make(map[string]bool)
	candidates := make([]model.SearchCandidate, 0, MaxCandidates)
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := model.SearchCandidate{
			Name:     stringField(m, "name"),
			Symbol:   stringField(m, "symbol", "ticker"),
			Exchange: stringField(m, "exchange"),
		}
		key := strings.ToUpper(c.Symbol)
		if c.Name == "" || c.Symbol == "" || seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, c)
		if len(candidates) == MaxCandidates {
			break
		}
	}
	return candidates, nil
}

// ParseSinglePrice extracts one price from an answer. It prefers a JSON "price"
// field and falls back to a "price: 123.45" pattern or a bare number.
func ParseSinglePrice(text string) (float64, error) {
	if v, err := decodeJSON(text); err == nil {
		if raw, ok := lookup("$.price", v); ok {
			if p, ok := toPrice(raw); ok {
				return p, nil
			}
		}
	}

	if m := labeledPrice.FindStringSubmatch(text); m != nil {
		if p, ok := toPrice(m[1]); ok {
			return p, nil
		}
	}

	if p, ok := toPrice(strings.TrimSpace(text)); ok {
		return p, nil
	}

	return 0, apperrors.ErrNoPriceFound
}
