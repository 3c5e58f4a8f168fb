package model

import (
	"strings"
	"time"
)

// InsightType classifies the tone of an insight.
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightNeutral  InsightType = "neutral"
)

// ParseInsightType maps a free-form classification onto a known type.
// Anything unrecognized is neutral.
func ParseInsightType(s string) InsightType {
	switch InsightType(strings.ToLower(strings.TrimSpace(s))) {
	case InsightPositive:
		return InsightPositive
	case InsightWarning:
		return InsightWarning
	default:
		return InsightNeutral
	}
}

// Insight is a short piece of advisory commentary about the holdings.
// Insights are never persisted.
type Insight struct {
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Type    InsightType `json:"type"`
}

// InsightState is what the dashboard shows in the insights panel.
type InsightState struct {
	Insights    []Insight  `json:"insights"`
	Loading     bool       `json:"loading"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
}
