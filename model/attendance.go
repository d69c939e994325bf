package model

import (
	"time"

	"gorm.io/gorm"
)

// ActorType discriminates who an attendance record belongs to
type ActorType string

const (
	ActorTypeStudent ActorType = "Student"
	ActorTypeAdmin   ActorType = "Admin"
)

// AttendanceStatus is the recorded presence state
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance is one per-date presence record for a student or an admin.
// ActorName is a display snapshot taken at write time; it is never used for
// identity comparison.
type Attendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
	ActorID   uint             `gorm:"index;not null" json:"actor_id"`
	ActorType ActorType        `gorm:"type:varchar(10);index;not null" json:"actor_type"`
	ActorName string           `gorm:"not null" json:"actor_name"`
	BatchID   *uint            `gorm:"index" json:"batch_id,omitempty"`
	Date      time.Time        `gorm:"index;not null" json:"date"`
	Status    AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
}

// AttendanceResponse is the API projection of an Attendance record with the
// actor's current contact details joined in for display
type AttendanceResponse struct {
	ID         uint             `json:"id"`
	ActorID    uint             `json:"actor_id"`
	ActorType  ActorType        `json:"actor_type"`
	ActorName  string           `json:"actor_name"`
	ActorEmail string           `json:"actor_email,omitempty"`
	BatchID    *uint            `json:"batch_id,omitempty"`
	Date       time.Time        `json:"date"`
	Status     AttendanceStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}
