package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents an offered course students can enroll in
type Course struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`

	// Relationships
	StudentsEnrolled []Student `gorm:"many2many:enrollments;" json:"students_enrolled,omitempty"`
}

// Enrollment is the join row behind the Student<->Course relation. The
// composite primary key doubles as the duplicate-enrollment guard: a second
// insert for the same pair fails with the store's duplicate-key error.
type Enrollment struct {
	StudentID uint      `gorm:"primaryKey" json:"student_id"`
	CourseID  uint      `gorm:"primaryKey" json:"course_id"`
	CreatedAt time.Time `json:"enrolled_at"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Course  Course  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CourseResponse is the API projection of a Course
type CourseResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StudentsEnrolled []uint    `json:"students_enrolled,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToResponse converts a Course to CourseResponse
func (c *Course) ToResponse() CourseResponse {
	res := CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for i := range c.StudentsEnrolled {
		res.StudentsEnrolled = append(res.StudentsEnrolled, c.StudentsEnrolled[i].ID)
	}
	return res
}
