package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProjectInsight is an append-only finding attached to a project. Rows are
// never updated or deleted by the pipeline; re-syncing a meeting adds new rows.
type ProjectInsight struct {
	ID              string      `json:"id" gorm:"type:varchar(255);primaryKey"`
	ProjectID       string      `json:"projectId" gorm:"type:varchar(64);not null;index"`
	InsightType     InsightType `json:"insightType" gorm:"type:varchar(32);not null"`
	Title           string      `json:"title" gorm:"type:text;not null"`
	Description     string      `json:"description" gorm:"type:text"`
	SourceMeetingID string      `json:"sourceMeetingId" gorm:"type:varchar(128);index"`
	RequiresAction  bool        `json:"requiresAction" gorm:"index"`
	ConfidenceScore float64     `json:"confidenceScore"`
	ExtractedAt     time.Time   `json:"extractedAt" gorm:"index"`
}

// TableName specifies the table name for GORM
func (ProjectInsight) TableName() string {
	return "project_insights"
}

// NewProjectInsight converts an extracted insight into a row. The id embeds the
// source transcript id, the extraction time and the position within the batch,
// plus a random suffix so repeated syncs never collide.
func NewProjectInsight(projectID, meetingID string, idx int, in ExtractedInsight, now time.Time) *ProjectInsight {
	return &ProjectInsight{
		ID:              fmt.Sprintf("%s_%d_%d_%s", meetingID, now.UnixMilli(), idx, uuid.NewString()[:8]),
		ProjectID:       projectID,
		InsightType:     in.Type,
		Title:           in.Title,
		Description:     in.Description,
		SourceMeetingID: meetingID,
		RequiresAction:  in.RequiresAction,
		ConfidenceScore: ClampConfidence(in.Confidence),
		ExtractedAt:     now.UTC(),
	}
}

// ClampConfidence bounds a confidence score to [0, 1]
func ClampConfidence(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
