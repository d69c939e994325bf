package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/edupanel/campus-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService owns the append-only notification log
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Log appends one notification for a student
func (s *NotificationService) Log(ctx context.Context, studentID uint, notificationType, message string, metadata interface{}) (*model.Notification, error) {
	notification := &model.Notification{
		StudentID: studentID,
		Type:      notificationType,
		Message:   message,
		IsRead:    false,
	}

	if metadata != nil {
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		notification.Metadata = datatypes.JSON(metadataJSON)
	}

	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	log.Printf("Logged notification %d for student %d: %s", notification.ID, studentID, notificationType)
	return notification, nil
}

// logTx appends one notification inside an existing transaction; used by
// operations that must make their side-effect log atomic with their writes.
func (s *NotificationService) logTx(tx *gorm.DB, studentID uint, notificationType, message string) error {
	notification := &model.Notification{
		StudentID: studentID,
		Type:      notificationType,
		Message:   message,
		IsRead:    false,
	}
	if err := tx.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns all notifications, newest first, with the subject student
// populated for display
func (s *NotificationService) List(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.WithContext(ctx).
		Preload("Student").
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// ListByStudent returns one student's notifications, newest first
func (s *NotificationService) ListByStudent(ctx context.Context, studentID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips a notification's IsRead flag. Re-marking an already-read
// notification is a no-op success.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID uint) error {
	var notification model.Notification
	if err := s.db.WithContext(ctx).First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("notification %w", ErrNotFound)
		}
		return fmt.Errorf("failed to fetch notification: %w", err)
	}

	if notification.IsRead {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&notification).Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
