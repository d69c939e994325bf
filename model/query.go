package model

import (
	"time"

	"gorm.io/gorm"
)

// Query is one append-only free-text message from a student. StudentName is
// a point-in-time snapshot.
type Query struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID   uint           `gorm:"index;not null" json:"student_id"`
	StudentName string         `gorm:"not null" json:"student_name"`
	Message     string         `gorm:"type:text;not null" json:"message"`
}
