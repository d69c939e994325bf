package model

import (
	"time"

	"gorm.io/gorm"
)

// ResultStatus is the derived pass/fail outcome of an exam result
type ResultStatus string

const (
	ResultPass ResultStatus = "Pass"
	ResultFail ResultStatus = "Fail"
)

// Result is one immutable exam outcome for a student. Corrections are posted
// as new records; there is no update or delete operation. StudentName is a
// point-in-time snapshot.
type Result struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID     uint           `gorm:"index;not null" json:"student_id"`
	StudentName   string         `gorm:"not null" json:"student_name"`
	MarksObtained int            `gorm:"not null" json:"marks_obtained"`
	TotalMarks    int            `gorm:"not null" json:"total_marks"`
	Grade         string         `gorm:"type:varchar(10);not null" json:"grade"`
	Status        ResultStatus   `gorm:"type:varchar(10);not null" json:"status"`
	Comments      string         `gorm:"type:text" json:"comments"`
}
