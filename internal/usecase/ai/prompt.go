package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
)

const extractionInstructions = `You are a business analyst reviewing a recorded meeting.
Return ONLY a JSON object, with no prose and no markdown, using exactly these keys:
{
  "summary": "3-5 sentence summary of what was discussed and agreed",
  "meetingType": one of %s,
  "actionItems": ["concrete follow-up task, with owner when mentioned"],
  "decisions": ["decision that was made"],
  "risks": [{"title": "risk description", "severity": "low" | "medium" | "high"}],
  "insights": [{"type": "risk" | "opportunity" | "blocker", "title": "short title", "description": "one or two sentences", "requiresAction": true | false, "confidence": number between 0 and 1}],
  "followUpRequired": true | false
}
Use empty lists when nothing applies.`

// BuildExtractionPrompt renders the structured-extraction prompt. The
// transcript body is cut to maxChars runes.
func BuildExtractionPrompt(t entities.Transcript, maxChars int) string {
	types := make([]string, 0, len(entities.MeetingTypes))
	for _, mt := range entities.MeetingTypes {
		types = append(types, fmt.Sprintf("%q", mt))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(extractionInstructions, strings.Join(types, ", ")))
	sb.WriteString("\n\nMeeting title: ")
	sb.WriteString(t.Title)
	if !t.Date.IsZero() {
		sb.WriteString("\nDate: ")
		sb.WriteString(t.Date.UTC().Format(time.RFC3339))
	}
	if len(t.Participants) > 0 {
		sb.WriteString("\nParticipants: ")
		sb.WriteString(strings.Join(t.Participants, ", "))
	}
	sb.WriteString("\n\nTranscript:\n")
	sb.WriteString(Truncate(t.Text(), maxChars))
	return sb.String()
}

// Truncate cuts s to at most n runes; n <= 0 disables the limit
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// BuildSummaryPrompt renders the executive-summary prompt for a dashboard
func BuildSummaryPrompt(view *entities.DashboardView) string {
	p := view.Project

	var sb strings.Builder
	sb.WriteString("Write a 3-4 sentence executive summary of this project's current state for leadership. ")
	sb.WriteString("Mention schedule health, budget, notable risks or blockers, and the next steps. Plain text only.\n\n")
	sb.WriteString(fmt.Sprintf("Project: %s\nStatus: %s\nTimeline health: %s\nPriority: %s\n", p.Name, p.Status, p.TimelineHealth, p.Priority))
	sb.WriteString(fmt.Sprintf("Budget: $%.2f spent of $%.2f (profit margin %.1f%%)\n", p.ActualCost, p.EstimatedValue, p.ProfitMargin))
	sb.WriteString(fmt.Sprintf("Tasks: %d of %d completed\n", p.CompletedTasks, p.TotalTasks))

	if len(view.TaskBreakdown) > 0 {
		sb.WriteString("\nTasks by status:\n")
		for _, b := range view.TaskBreakdown {
			sb.WriteString(fmt.Sprintf("- %s: %d (est %.1fh, actual %.1fh)\n", b.Status, b.Count, b.EstimatedHours, b.ActualHours))
		}
	}
	if len(view.Insights) > 0 {
		sb.WriteString("\nRecent insights:\n")
		for _, in := range view.Insights {
			sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n", in.InsightType, in.Title, in.Description))
		}
	}
	if len(view.RecentMeetings) > 0 {
		sb.WriteString("\nRecent meetings:\n")
		for _, m := range view.RecentMeetings {
			sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", m.Title, m.Date.UTC().Format("2006-01-02"), m.Summary))
		}
	}
	return sb.String()
}
