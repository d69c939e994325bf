package model

import (
	"time"

	"gorm.io/gorm"
)

// Batch groups students under a free-text course label for attendance taking.
// CourseLabel is display text, not a Course reference.
type Batch struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"not null" json:"name"`
	CourseLabel string         `gorm:"not null" json:"course"`

	// Relationships
	Students []Student `gorm:"many2many:batch_students;" json:"students,omitempty"`
}

// BatchResponse is the API projection of a Batch with member summaries
type BatchResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	CourseLabel string         `json:"course"`
	Students    []BatchStudent `json:"students"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BatchStudent is the name/email summary of a batch member
type BatchStudent struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToResponse converts a Batch to BatchResponse
func (b *Batch) ToResponse() BatchResponse {
	res := BatchResponse{
		ID:          b.ID,
		Name:        b.Name,
		CourseLabel: b.CourseLabel,
		Students:    []BatchStudent{},
		CreatedAt:   b.CreatedAt,
	}
	for i := range b.Students {
		res.Students = append(res.Students, BatchStudent{
			ID:    b.Students[i].ID,
			Name:  b.Students[i].Name,
			Email: b.Students[i].Email,
		})
	}
	return res
}
