package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupanel/campus-api/model"
	"gorm.io/gorm"
)

// CatalogService owns courses, batches and the enrollment relation between
// students and courses.
type CatalogService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *gorm.DB, notifications *NotificationService) *CatalogService {
	return &CatalogService{db: db, notifications: notifications}
}

// CreateCourse creates a course
func (s *CatalogService) CreateCourse(ctx context.Context, title, description string) (*model.Course, error) {
	course := &model.Course{
		Title:       title,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(course).Error; err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// GetCourse returns one course with its enrolled students populated
func (s *CatalogService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := s.db.WithContext(ctx).Preload("StudentsEnrolled").First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}
	return &course, nil
}

// ListCourses returns all courses with enrollments populated
func (s *CatalogService) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := s.db.WithContext(ctx).Preload("StudentsEnrolled").Order("created_at DESC").Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// UpdateCourseInput is a partial course update
type UpdateCourseInput struct {
	Title       *string
	Description *string
}

// UpdateCourse applies the provided fields to one course
func (s *CatalogService) UpdateCourse(ctx context.Context, id uint, in UpdateCourseInput) (*model.Course, error) {
	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&course).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update course: %w", err)
		}
	}

	return &course, nil
}

// DeleteCourse soft-deletes a course
func (s *CatalogService) DeleteCourse(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Course{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("course %w", ErrNotFound)
	}
	return nil
}

// CreateBatch creates a batch and attaches the given students. Unknown
// student ids are skipped rather than rejected; membership is advisory
// until attendance is taken against it.
func (s *CatalogService) CreateBatch(ctx context.Context, name, courseLabel string, studentIDs []uint) (*model.Batch, error) {
	var students []model.Student
	if len(studentIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", studentIDs).Find(&students).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve batch students: %w", err)
		}
	}

	batch := &model.Batch{
		Name:        name,
		CourseLabel: courseLabel,
		Students:    students,
	}
	if err := s.db.WithContext(ctx).Create(batch).Error; err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return batch, nil
}

// GetBatch returns one batch with member students populated
func (s *CatalogService) GetBatch(ctx context.Context, id uint) (*model.Batch, error) {
	var batch model.Batch
	err := s.db.WithContext(ctx).Preload("Students").First(&batch, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("batch %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}
	return &batch, nil
}

// ListBatches returns all batches with members populated
func (s *CatalogService) ListBatches(ctx context.Context) ([]model.Batch, error) {
	var batches []model.Batch
	err := s.db.WithContext(ctx).Preload("Students").Order("created_at DESC").Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

// Enroll records a student into a course. The relation write and the
// enrollment notification happen inside one transaction, so callers see a
// single atomic operation: success, NotFound, or Conflict. The composite
// key on the enrollments table is the duplicate guard; a concurrent
// duplicate insert loses with the store's duplicate-key error rather than
// slipping past a stale pre-check.
func (s *CatalogService) Enroll(ctx context.Context, studentID, courseID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("course %w", ErrNotFound)
			}
			return fmt.Errorf("failed to fetch course: %w", err)
		}

		var student model.Student
		if err := tx.First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("student %w", ErrNotFound)
			}
			return fmt.Errorf("failed to fetch student: %w", err)
		}

		enrollment := model.Enrollment{
			StudentID: studentID,
			CourseID:  courseID,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("student is already enrolled in this course: %w", ErrConflict)
			}
			return fmt.Errorf("failed to create enrollment: %w", err)
		}

		message := fmt.Sprintf("%s has enrolled in the course: %s", student.Name, course.Title)
		if err := s.notifications.logTx(tx, studentID, model.NotificationTypeEnrollment, message); err != nil {
			return err
		}

		return nil
	})
}
