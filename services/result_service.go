package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupanel/campus-api/model"
	"gorm.io/gorm"
)

// ResultService owns the immutable exam results ledger
type ResultService struct {
	db *gorm.DB
}

// NewResultService creates a new result service
func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

// PostResultInput carries one exam outcome to record
type PostResultInput struct {
	StudentID     uint
	MarksObtained int
	TotalMarks    int
	Grade         string
	Status        model.ResultStatus
	Comments      string
}

// PostResult records one result with the student's name snapshotted at
// write time. Records are immutable; corrections are new records.
func (s *ResultService) PostResult(ctx context.Context, in PostResultInput) (*model.Result, error) {
	var student model.Student
	if err := s.db.WithContext(ctx).First(&student, in.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	result := &model.Result{
		StudentID:     in.StudentID,
		StudentName:   student.Name,
		MarksObtained: in.MarksObtained,
		TotalMarks:    in.TotalMarks,
		Grade:         in.Grade,
		Status:        in.Status,
		Comments:      in.Comments,
	}
	if err := s.db.WithContext(ctx).Create(result).Error; err != nil {
		return nil, fmt.Errorf("failed to post result: %w", err)
	}

	return result, nil
}

// ListByStudent returns a student's results. An unknown student id yields an
// empty slice, not an error.
func (s *ResultService) ListByStudent(ctx context.Context, studentID uint) ([]model.Result, error) {
	results := []model.Result{}
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}
