package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Meeting is the persisted, enriched view of one source transcript. The ID is
// the source transcript id, so re-syncing a transcript replaces its row.
type Meeting struct {
	ID               string         `json:"id" gorm:"type:varchar(128);primaryKey"`
	Title            string         `json:"title" gorm:"type:text;not null"`
	Date             time.Time      `json:"date" gorm:"index"`
	Duration         int            `json:"duration"` // minutes
	Participants     datatypes.JSON `json:"participants"`
	Summary          string         `json:"summary" gorm:"type:text"`
	MeetingType      MeetingType    `json:"meetingType" gorm:"type:varchar(32)"`
	ProjectID        *string        `json:"projectId" gorm:"type:varchar(64);index"`
	ActionItems      datatypes.JSON `json:"actionItems"`
	Decisions        datatypes.JSON `json:"decisions"`
	RiskFlags        datatypes.JSON `json:"riskFlags"`
	FollowUpRequired bool           `json:"followUpRequired"`
	CreatedAt        time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting builds the meeting row for a transcript and its extracted insight
func NewMeeting(t Transcript, insight *Insight, projectID *string) *Meeting {
	if insight == nil {
		insight = FallbackInsight(t.Title)
	}
	return &Meeting{
		ID:               t.ID,
		Title:            t.Title,
		Date:             t.Date.UTC(),
		Duration:         t.DurationRounded(),
		Participants:     mustJSON(nonNilStrings(t.Participants)),
		Summary:          insight.Summary,
		MeetingType:      insight.MeetingType,
		ProjectID:        projectID,
		ActionItems:      mustJSON(nonNilStrings(insight.ActionItems)),
		Decisions:        mustJSON(nonNilStrings(insight.Decisions)),
		RiskFlags:        mustJSON(nonNilRisks(insight.Risks)),
		FollowUpRequired: insight.FollowUpRequired,
	}
}

// ActionItemList decodes the serialized action items
func (m *Meeting) ActionItemList() []string {
	out := []string{}
	if m != nil && len(m.ActionItems) > 0 {
		_ = json.Unmarshal(m.ActionItems, &out)
	}
	return out
}

// DecisionList decodes the serialized decisions
func (m *Meeting) DecisionList() []string {
	out := []string{}
	if m != nil && len(m.Decisions) > 0 {
		_ = json.Unmarshal(m.Decisions, &out)
	}
	return out
}

// RiskFlagList decodes the serialized risk flags
func (m *Meeting) RiskFlagList() []RiskFlag {
	out := []RiskFlag{}
	if m != nil && len(m.RiskFlags) > 0 {
		_ = json.Unmarshal(m.RiskFlags, &out)
	}
	return out
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilRisks(v []RiskFlag) []RiskFlag {
	if v == nil {
		return []RiskFlag{}
	}
	return v
}
