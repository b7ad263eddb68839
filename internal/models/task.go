package models

import (
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

type Task struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       string       `gorm:"type:varchar(20)" json:"status"`
	Priority     TaskPriority `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	Type         string       `gorm:"type:varchar(50)" json:"type"`
	StoryPoints  *int         `json:"story_points,omitempty"`
	Labels       StringList   `gorm:"type:json" json:"labels,omitempty"`
	Dependencies IDList       `gorm:"type:json" json:"dependencies,omitempty"`
	DueDate      *time.Time   `json:"due_date"`
	Completed    bool         `gorm:"not null;default:false" json:"completed"`
	UserID       uint64       `gorm:"not null;index" json:"user_id"`
	AssigneeID   *uint64      `json:"assignee_id,omitempty"`
	CategoryID   *uint64      `json:"category_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
