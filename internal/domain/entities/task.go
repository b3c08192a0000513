package entities

import "time"

// Task is owned by an external system; only aggregates over it are read here
type Task struct {
	ID             string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	ProjectID      string    `json:"projectId" gorm:"type:varchar(64);index"`
	Title          string    `json:"title" gorm:"type:text"`
	Status         string    `json:"status" gorm:"type:varchar(32);index"`
	EstimatedHours float64   `json:"estimatedHours"`
	ActualHours    float64   `json:"actualHours"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// TaskStatusBreakdown is one row of the grouped task statistics
type TaskStatusBreakdown struct {
	Status         string  `json:"status"`
	Count          int64   `json:"count"`
	EstimatedHours float64 `json:"estimatedHours"`
	ActualHours    float64 `json:"actualHours"`
}
