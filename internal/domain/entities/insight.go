package entities

import "strings"

// MeetingType is the closed set of meeting classifications
type MeetingType string

const (
	MeetingTypeProject  MeetingType = "project"
	MeetingTypeSales    MeetingType = "sales"
	MeetingTypeInternal MeetingType = "internal"
	MeetingTypeClient   MeetingType = "client"
	MeetingTypeStandup  MeetingType = "standup"
	MeetingTypePlanning MeetingType = "planning"
	MeetingTypeReview   MeetingType = "review"
	MeetingTypeOther    MeetingType = "other"
)

// MeetingTypes lists every accepted classification, in prompt order
var MeetingTypes = []MeetingType{
	MeetingTypeProject,
	MeetingTypeSales,
	MeetingTypeInternal,
	MeetingTypeClient,
	MeetingTypeStandup,
	MeetingTypePlanning,
	MeetingTypeReview,
	MeetingTypeOther,
}

// ParseMeetingType maps free text onto the enumeration, defaulting to project
func ParseMeetingType(s string) MeetingType {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, mt := range MeetingTypes {
		if string(mt) == s {
			return mt
		}
	}
	return MeetingTypeProject
}

// Severity of a risk flag
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity maps free text onto low/medium/high, defaulting to medium
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow
	case "high", "critical":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// InsightType is the kind of project-level insight
type InsightType string

const (
	InsightTypeRisk        InsightType = "risk"
	InsightTypeOpportunity InsightType = "opportunity"
	InsightTypeBlocker     InsightType = "blocker"
)

// ParseInsightType returns false for anything outside risk/opportunity/blocker
func ParseInsightType(s string) (InsightType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "risk":
		return InsightTypeRisk, true
	case "opportunity":
		return InsightTypeOpportunity, true
	case "blocker":
		return InsightTypeBlocker, true
	default:
		return "", false
	}
}

// RiskFlag is a titled risk with a severity
type RiskFlag struct {
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
}

// ExtractedInsight is a project-level finding produced by the model
type ExtractedInsight struct {
	Type           InsightType `json:"type"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	RequiresAction bool        `json:"requiresAction"`
	Confidence     float64     `json:"confidence"`
}

// Insight is the structured extraction for one transcript
type Insight struct {
	Summary          string             `json:"summary"`
	MeetingType      MeetingType        `json:"meetingType"`
	ActionItems      []string           `json:"actionItems"`
	Decisions        []string           `json:"decisions"`
	Risks            []RiskFlag         `json:"risks"`
	Insights         []ExtractedInsight `json:"insights"`
	FollowUpRequired bool               `json:"followUpRequired"`
}

// FallbackInsight is the degraded result used whenever extraction fails
func FallbackInsight(title string) *Insight {
	return &Insight{
		Summary:          title,
		MeetingType:      MeetingTypeProject,
		ActionItems:      []string{},
		Decisions:        []string{},
		Risks:            []RiskFlag{},
		Insights:         []ExtractedInsight{},
		FollowUpRequired: false,
	}
}
