package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edupanel/campus-api/model"
	"gorm.io/gorm"
)

// AttendanceService owns the append-only attendance ledger
type AttendanceService struct {
	db *gorm.DB
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// SubmitBatchAttendance writes one record per batch member for the given
// date. Statuses are keyed by student id; members missing from the map are
// recorded Absent. The student's name goes in as a display snapshot only.
// All records land in one bulk insert.
func (s *AttendanceService) SubmitBatchAttendance(ctx context.Context, batchID uint, date time.Time, statusByStudentID map[uint]model.AttendanceStatus) ([]model.Attendance, error) {
	var batch model.Batch
	err := s.db.WithContext(ctx).Preload("Students").First(&batch, batchID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("batch %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}

	if len(batch.Students) == 0 {
		return []model.Attendance{}, nil
	}

	records := make([]model.Attendance, 0, len(batch.Students))
	for _, student := range batch.Students {
		status, ok := statusByStudentID[student.ID]
		if !ok {
			status = model.AttendanceAbsent
		}
		records = append(records, model.Attendance{
			ActorID:   student.ID,
			ActorType: model.ActorTypeStudent,
			ActorName: student.Name,
			BatchID:   &batch.ID,
			Date:      date,
			Status:    status,
		})
	}

	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to insert attendance records: %w", err)
	}

	return records, nil
}

// MarkActorAttendance writes one self-marked record for a student or admin,
// dated now
func (s *AttendanceService) MarkActorAttendance(ctx context.Context, actorID uint, actorType model.ActorType, status model.AttendanceStatus) (*model.Attendance, error) {
	var actorName string

	switch actorType {
	case model.ActorTypeStudent:
		var student model.Student
		if err := s.db.WithContext(ctx).First(&student, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("student %w", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to fetch student: %w", err)
		}
		actorName = student.Name

	case model.ActorTypeAdmin:
		var admin model.Admin
		if err := s.db.WithContext(ctx).First(&admin, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("admin %w", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to fetch admin: %w", err)
		}
		actorName = admin.Name

	default:
		return nil, fmt.Errorf("unknown actor type %q: %w", actorType, ErrBadRequest)
	}

	record := &model.Attendance{
		ActorID:   actorID,
		ActorType: actorType,
		ActorName: actorName,
		Date:      time.Now(),
		Status:    status,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to insert attendance record: %w", err)
	}

	return record, nil
}

// ListByStudent returns a student's attendance records, newest first
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID uint) ([]model.AttendanceResponse, error) {
	var records []model.Attendance
	err := s.db.WithContext(ctx).
		Where("actor_id = ? AND actor_type = ?", studentID, model.ActorTypeStudent).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return s.withActorDetails(ctx, records)
}

// ListByBatch returns a batch's attendance records, newest first
func (s *AttendanceService) ListByBatch(ctx context.Context, batchID uint) ([]model.AttendanceResponse, error) {
	var records []model.Attendance
	err := s.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return s.withActorDetails(ctx, records)
}

// ListByActorType returns all attendance records for one actor type,
// newest first
func (s *AttendanceService) ListByActorType(ctx context.Context, actorType model.ActorType) ([]model.AttendanceResponse, error) {
	var records []model.Attendance
	err := s.db.WithContext(ctx).
		Where("actor_type = ?", actorType).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return s.withActorDetails(ctx, records)
}

// withActorDetails joins current actor emails onto the records for display.
// The stored ActorName snapshot stays; a deleted actor simply has no email.
func (s *AttendanceService) withActorDetails(ctx context.Context, records []model.Attendance) ([]model.AttendanceResponse, error) {
	studentIDs := make([]uint, 0)
	adminIDs := make([]uint, 0)
	for _, r := range records {
		switch r.ActorType {
		case model.ActorTypeStudent:
			studentIDs = append(studentIDs, r.ActorID)
		case model.ActorTypeAdmin:
			adminIDs = append(adminIDs, r.ActorID)
		}
	}

	emails := make(map[string]string, len(records))

	if len(studentIDs) > 0 {
		var students []model.Student
		if err := s.db.WithContext(ctx).Where("id IN ?", studentIDs).Find(&students).Error; err != nil {
			return nil, fmt.Errorf("failed to join student details: %w", err)
		}
		for _, st := range students {
			emails[fmt.Sprintf("%s:%d", model.ActorTypeStudent, st.ID)] = st.Email
		}
	}
	if len(adminIDs) > 0 {
		var admins []model.Admin
		if err := s.db.WithContext(ctx).Where("id IN ?", adminIDs).Find(&admins).Error; err != nil {
			return nil, fmt.Errorf("failed to join admin details: %w", err)
		}
		for _, ad := range admins {
			emails[fmt.Sprintf("%s:%d", model.ActorTypeAdmin, ad.ID)] = ad.Email
		}
	}

	responses := make([]model.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, model.AttendanceResponse{
			ID:         r.ID,
			ActorID:    r.ActorID,
			ActorType:  r.ActorType,
			ActorName:  r.ActorName,
			ActorEmail: emails[fmt.Sprintf("%s:%d", r.ActorType, r.ActorID)],
			BatchID:    r.BatchID,
			Date:       r.Date,
			Status:     r.Status,
			CreatedAt:  r.CreatedAt,
		})
	}
	return responses, nil
}
