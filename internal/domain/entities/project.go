package entities

import (
	"strings"
	"time"
)

// TimelineHealth classifies a project's schedule
type TimelineHealth string

const (
	TimelineOnTrack TimelineHealth = "ON_TRACK"
	TimelineAtRisk  TimelineHealth = "AT_RISK"
	TimelineOverdue TimelineHealth = "OVERDUE"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive ProjectStatus = "active"
	ProjectStatusOnHold ProjectStatus = "on-hold"
	ProjectStatusClosed ProjectStatus = "closed"
)

// Project is a tracked engagement. Projects are created by an external system;
// the pipeline only reads them.
type Project struct {
	ID             string         `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(255);not null;index"`
	Aliases        string         `json:"aliases,omitempty" gorm:"type:text"` // comma separated alias/tag list
	Status         ProjectStatus  `json:"status" gorm:"type:varchar(32);index"`
	ClientID       string         `json:"clientId" gorm:"type:varchar(64);index"`
	EstimatedValue float64        `json:"estimatedValue"`
	ActualCost     float64        `json:"actualCost"`
	ProfitMargin   float64        `json:"profitMargin"`
	TimelineHealth TimelineHealth `json:"timelineHealth" gorm:"type:varchar(16)"`
	Priority       string         `json:"priority" gorm:"type:varchar(16)"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updatedAt" gorm:"autoUpdateTime;index"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// AliasList returns the trimmed, non-empty aliases
func (p *Project) AliasList() []string {
	if p == nil || strings.TrimSpace(p.Aliases) == "" {
		return nil
	}
	parts := strings.Split(p.Aliases, ",")
	out := make([]string, 0, len(parts))
	for _, a := range parts {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// ProjectFilter narrows project listings
type ProjectFilter struct {
	Status   string
	ClientID string
}
