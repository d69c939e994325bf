package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupanel/campus-api/model"
)

func TestEnrollVisibleFromBothSides(t *testing.T) {
	db := newTestDB(t)
	notifications := NewNotificationService(db)
	catalog := NewCatalogService(db, notifications)
	accounts := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")
	course := seedCourse(t, db, "Distributed Systems")

	if err := catalog.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	gotStudent, err := accounts.GetStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("failed to fetch student: %v", err)
	}
	if len(gotStudent.EnrolledCourses) != 1 || gotStudent.EnrolledCourses[0].ID != course.ID {
		t.Fatalf("course missing from student side: %+v", gotStudent.EnrolledCourses)
	}

	gotCourse, err := catalog.GetCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("failed to fetch course: %v", err)
	}
	if len(gotCourse.StudentsEnrolled) != 1 || gotCourse.StudentsEnrolled[0].ID != student.ID {
		t.Fatalf("student missing from course side: %+v", gotCourse.StudentsEnrolled)
	}

	feed, err := notifications.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("expected one enrollment notification, got %d", len(feed))
	}
	if feed[0].Type != model.NotificationTypeEnrollment {
		t.Fatalf("expected type %q, got %q", model.NotificationTypeEnrollment, feed[0].Type)
	}
}

func TestEnrollTwiceIsConflict(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, NewNotificationService(db))
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")
	course := seedCourse(t, db, "Distributed Systems")

	if err := catalog.Enroll(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}

	err := catalog.Enroll(ctx, student.ID, course.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for double enrollment, got %v", err)
	}

	var count int64
	if err := db.Model(&model.Notification{}).Where("student_id = ?", student.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	if count != 1 {
		t.Fatalf("conflict rollback leaked a notification, found %d", count)
	}
}

func TestEnrollMissingPartyWritesNothing(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, NewNotificationService(db))
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")
	course := seedCourse(t, db, "Distributed Systems")

	if err := catalog.Enroll(ctx, student.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing course: expected ErrNotFound, got %v", err)
	}
	if err := catalog.Enroll(ctx, 9999, course.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing student: expected ErrNotFound, got %v", err)
	}

	var enrollments, notifications int64
	db.Model(&model.Enrollment{}).Count(&enrollments)
	db.Model(&model.Notification{}).Count(&notifications)
	if enrollments != 0 || notifications != 0 {
		t.Fatalf("failed enroll wrote rows: enrollments=%d notifications=%d", enrollments, notifications)
	}
}

func TestCreateBatchSkipsUnknownStudents(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, NewNotificationService(db))
	ctx := context.Background()

	a := seedStudent(t, db, "Asha Verma", "asha@example.com")
	b := seedStudent(t, db, "Ravi Kumar", "ravi@example.com")

	batch, err := catalog.CreateBatch(ctx, "Morning A", "Distributed Systems", []uint{a.ID, b.ID, 9999})
	if err != nil {
		t.Fatalf("create batch failed: %v", err)
	}

	got, err := catalog.GetBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("get batch failed: %v", err)
	}
	if len(got.Students) != 2 {
		t.Fatalf("expected 2 members after skipping unknown id, got %d", len(got.Students))
	}
}

func TestCourseUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, NewNotificationService(db))
	ctx := context.Background()

	course := seedCourse(t, db, "Distributed Systems")

	title := "Advanced Distributed Systems"
	if _, err := catalog.UpdateCourse(ctx, course.ID, UpdateCourseInput{Title: &title}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := catalog.GetCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != title {
		t.Fatalf("expected title %q, got %q", title, got.Title)
	}

	if err := catalog.DeleteCourse(ctx, course.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := catalog.GetCourse(ctx, course.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := catalog.DeleteCourse(ctx, course.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
