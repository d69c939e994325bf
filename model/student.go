package model

import (
	"time"

	"gorm.io/gorm"
)

// Student represents a student account with fee balances and course enrollments
type Student struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Age          int            `gorm:"not null" json:"age"`
	Gender       string         `gorm:"type:varchar(20);not null" json:"gender"`
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"`

	// Fee balances. RemainingFees is kept equal to TotalFees - PaidFees on
	// every mutation; FeeService is the only writer after registration.
	TotalFees     int64 `gorm:"not null;default:0" json:"total_fees"`
	PaidFees      int64 `gorm:"not null;default:0" json:"paid_fees"`
	RemainingFees int64 `gorm:"not null;default:0" json:"remaining_fees"`

	// Relationships
	EnrolledCourses []Course `gorm:"many2many:enrollments;" json:"enrolled_courses,omitempty"`
}

// StudentResponse is the API projection of a Student
type StudentResponse struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Age             int              `json:"age"`
	Gender          string           `json:"gender"`
	Role            string           `json:"role"`
	TotalFees       int64            `json:"total_fees"`
	PaidFees        int64            `json:"paid_fees"`
	RemainingFees   int64            `json:"remaining_fees"`
	EnrolledCourses []CourseResponse `json:"enrolled_courses,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ToResponse converts a Student to StudentResponse
func (s *Student) ToResponse() StudentResponse {
	res := StudentResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Age:           s.Age,
		Gender:        s.Gender,
		Role:          s.Role,
		TotalFees:     s.TotalFees,
		PaidFees:      s.PaidFees,
		RemainingFees: s.RemainingFees,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	for i := range s.EnrolledCourses {
		res.EnrolledCourses = append(res.EnrolledCourses, s.EnrolledCourses[i].ToResponse())
	}
	return res
}
