package ai

import (
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
)

// rawInsight mirrors the JSON object the model is asked for. List members are
// kept raw because models return plain strings and objects interchangeably.
type rawInsight struct {
	Summary          string            `json:"summary"`
	MeetingType      string            `json:"meetingType"`
	ActionItems      []json.RawMessage `json:"actionItems"`
	Decisions        []json.RawMessage `json:"decisions"`
	Risks            []json.RawMessage `json:"risks"`
	Insights         []rawExtracted    `json:"insights"`
	FollowUpRequired bool              `json:"followUpRequired"`
}

type rawExtracted struct {
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	RequiresAction bool    `json:"requiresAction"`
	Confidence     float64 `json:"confidence"`
}

type rawRisk struct {
	Title    string `json:"title"`
	Severity string `json:"severity"`
}

// ParseInsight decodes model output into a normalized Insight. The output may
// be wrapped in a markdown code fence or surrounded by prose; the first
// candidate that decodes wins.
func ParseInsight(content, title string) (*entities.Insight, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, entities.ErrEmptyCompletion
	}

	for _, candidate := range []string{extractJSON(content), braceSpan(content)} {
		if candidate == "" {
			continue
		}
		var raw rawInsight
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			continue
		}
		return raw.normalize(title), nil
	}
	return nil, entities.ErrUnparsableOutput
}

func (r rawInsight) normalize(title string) *entities.Insight {
	out := entities.FallbackInsight(title)

	if s := strings.TrimSpace(r.Summary); s != "" {
		out.Summary = s
	}
	out.MeetingType = entities.ParseMeetingType(r.MeetingType)
	out.ActionItems = textList(r.ActionItems)
	out.Decisions = textList(r.Decisions)
	out.FollowUpRequired = r.FollowUpRequired

	for _, item := range r.Risks {
		if risk, ok := parseRisk(item); ok {
			out.Risks = append(out.Risks, risk)
		}
	}

	for _, in := range r.Insights {
		typ, ok := entities.ParseInsightType(in.Type)
		if !ok {
			continue
		}
		t := strings.TrimSpace(in.Title)
		if t == "" {
			continue
		}
		out.Insights = append(out.Insights, entities.ExtractedInsight{
			Type:           typ,
			Title:          t,
			Description:    strings.TrimSpace(in.Description),
			RequiresAction: in.RequiresAction,
			Confidence:     entities.ClampConfidence(in.Confidence),
		})
	}
	return out
}

// textList accepts strings or objects carrying a title/text/description field
func textList(items []json.RawMessage) []string {
	out := []string{}
	for _, item := range items {
		if s := itemText(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func itemText(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Title       string `json:"title"`
		Text        string `json:"text"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(item, &obj); err != nil {
		return ""
	}
	for _, v := range []string{obj.Title, obj.Text, obj.Description} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func parseRisk(item json.RawMessage) (entities.RiskFlag, bool) {
	var r rawRisk
	if err := json.Unmarshal(item, &r); err != nil {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return entities.RiskFlag{}, false
		}
		r.Title = s
	}
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return entities.RiskFlag{}, false
	}
	return entities.RiskFlag{Title: title, Severity: entities.ParseSeverity(r.Severity)}, true
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "```")
	if start == -1 {
		return content
	}
	content = content[start+3:]
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimPrefix(content, "JSON")
	if idx := strings.LastIndex(content, "```"); idx != -1 {
		content = content[:idx]
	}

	return strings.TrimSpace(content)
}

// braceSpan returns the text between the first '{' and the last '}'
func braceSpan(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}
