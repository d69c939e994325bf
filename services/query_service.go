package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupanel/campus-api/model"
	"gorm.io/gorm"
)

// QueryService owns the append-only student query log
type QueryService struct {
	db *gorm.DB
}

// NewQueryService creates a new query service
func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// Submit records a student query and its companion notification in one
// transaction. The student must exist before anything is written; a blank
// id is a bad request, a missing student is not found.
func (s *QueryService) Submit(ctx context.Context, studentID uint, message string) (*model.Query, error) {
	if studentID == 0 {
		return nil, fmt.Errorf("studentId is required: %w", ErrBadRequest)
	}
	if message == "" {
		return nil, fmt.Errorf("message is required: %w", ErrBadRequest)
	}

	var query *model.Query
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student model.Student
		if err := tx.First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("student %w", ErrNotFound)
			}
			return fmt.Errorf("failed to fetch student: %w", err)
		}

		query = &model.Query{
			StudentID:   studentID,
			StudentName: student.Name,
			Message:     message,
		}
		if err := tx.Create(query).Error; err != nil {
			return fmt.Errorf("failed to create query: %w", err)
		}

		notification := &model.Notification{
			StudentID: studentID,
			Type:      model.NotificationTypeQuery,
			Message:   fmt.Sprintf("%s has submitted a new query: %q", student.Name, message),
		}
		if err := tx.Create(notification).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return query, nil
}

// List returns all queries, newest first
func (s *QueryService) List(ctx context.Context) ([]model.Query, error) {
	var queries []model.Query
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&queries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	return queries, nil
}

// ListByStudent returns one student's queries, newest first
func (s *QueryService) ListByStudent(ctx context.Context, studentID uint) ([]model.Query, error) {
	var queries []model.Query
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&queries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	return queries, nil
}
