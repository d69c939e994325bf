package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Well-known notification type tags. The column stays free text so callers
// can log ad hoc event kinds.
const (
	NotificationTypeEnrollment = "Enrollment"
	NotificationTypeQuery      = "Query Submission"
)

// Notification is one append-only event log entry for a student. Only the
// IsRead flag ever changes after insert.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID uint           `gorm:"index;not null" json:"student_id"`
	Type      string         `gorm:"type:varchar(50);not null" json:"type"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

// NotificationResponse is the API projection of a Notification with the
// subject student's contact details joined in
type NotificationResponse struct {
	ID           uint           `json:"id"`
	StudentID    uint           `json:"student_id"`
	StudentName  string         `json:"student_name,omitempty"`
	StudentEmail string         `json:"student_email,omitempty"`
	Type         string         `json:"type"`
	Message      string         `json:"message"`
	IsRead       bool           `json:"is_read"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ToResponse converts a Notification to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		StudentID:    n.StudentID,
		StudentName:  n.Student.Name,
		StudentEmail: n.Student.Email,
		Type:         n.Type,
		Message:      n.Message,
		IsRead:       n.IsRead,
		Metadata:     n.Metadata,
		CreatedAt:    n.CreatedAt,
	}
}
