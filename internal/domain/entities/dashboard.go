package entities

import (
	"fmt"
	"time"
)

// ProjectDashboard is a row of the project_dashboard view: the project summary
// plus counters derived from meetings, tasks and insights.
type ProjectDashboard struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Status         ProjectStatus  `json:"status"`
	ClientID       string         `json:"clientId"`
	EstimatedValue float64        `json:"estimatedValue"`
	ActualCost     float64        `json:"actualCost"`
	ProfitMargin   float64        `json:"profitMargin"`
	TimelineHealth TimelineHealth `json:"timelineHealth"`
	Priority       string         `json:"priority"`
	MeetingCount   int64          `json:"meetingCount"`
	TotalTasks     int64          `json:"totalTasks"`
	CompletedTasks int64          `json:"completedTasks"`
	OpenInsights   int64          `json:"openInsights"`
}

// TableName points GORM at the view
func (ProjectDashboard) TableName() string {
	return "project_dashboard"
}

// MeetingDigest is the dashboard projection of a recent meeting
type MeetingDigest struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Date        time.Time   `json:"date"`
	Summary     string      `json:"summary"`
	MeetingType MeetingType `json:"meetingType"`
	ActionItems []string    `json:"actionItems"`
	RiskFlags   []RiskFlag  `json:"riskFlags"`
}

// NewMeetingDigest decodes the JSON columns of a meeting row
func NewMeetingDigest(m *Meeting) MeetingDigest {
	return MeetingDigest{
		ID:          m.ID,
		Title:       m.Title,
		Date:        m.Date,
		Summary:     m.Summary,
		MeetingType: m.MeetingType,
		ActionItems: m.ActionItemList(),
		RiskFlags:   m.RiskFlagList(),
	}
}

// DashboardView is everything the dashboard shows for one project
type DashboardView struct {
	Project          *ProjectDashboard     `json:"project"`
	Insights         []*ProjectInsight     `json:"insights"`
	RecentMeetings   []MeetingDigest       `json:"recentMeetings"`
	TaskBreakdown    []TaskStatusBreakdown `json:"taskBreakdown"`
	ExecutiveSummary string                `json:"executiveSummary"`
}

// ExecutiveSummaryFallback is shown when no executive summary could be generated
func ExecutiveSummaryFallback(projectName string) string {
	return fmt.Sprintf("Executive summary unavailable for %s.", projectName)
}
