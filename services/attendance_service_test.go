package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edupanel/campus-api/model"
)

func TestSubmitBatchAttendanceDefaultsAbsent(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, NewNotificationService(db))
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	a := seedStudent(t, db, "Asha Verma", "asha@example.com")
	b := seedStudent(t, db, "Ravi Kumar", "ravi@example.com")
	c := seedStudent(t, db, "Meena Iyer", "meena@example.com")

	batch, err := catalog.CreateBatch(ctx, "Morning A", "Distributed Systems", []uint{a.ID, b.ID, c.ID})
	if err != nil {
		t.Fatalf("create batch failed: %v", err)
	}

	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	records, err := attendance.SubmitBatchAttendance(ctx, batch.ID, date, map[uint]model.AttendanceStatus{
		a.ID: model.AttendancePresent,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected one record per member, got %d", len(records))
	}

	statuses := make(map[uint]model.AttendanceStatus, len(records))
	for _, r := range records {
		statuses[r.ActorID] = r.Status
	}
	if statuses[a.ID] != model.AttendancePresent {
		t.Fatalf("expected %d Present, got %q", a.ID, statuses[a.ID])
	}
	if statuses[b.ID] != model.AttendanceAbsent || statuses[c.ID] != model.AttendanceAbsent {
		t.Fatalf("members missing from the map must default Absent: %+v", statuses)
	}
}

func TestSubmitBatchAttendanceUnknownBatch(t *testing.T) {
	db := newTestDB(t)
	attendance := NewAttendanceService(db)

	_, err := attendance.SubmitBatchAttendance(context.Background(), 9999, time.Now(), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitBatchAttendanceEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, NewNotificationService(db))
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	batch, err := catalog.CreateBatch(ctx, "Empty", "Nothing Yet", nil)
	if err != nil {
		t.Fatalf("create batch failed: %v", err)
	}

	records, err := attendance.SubmitBatchAttendance(ctx, batch.ID, time.Now(), nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records for an empty batch, got %d", len(records))
	}
}

func TestMarkActorAttendance(t *testing.T) {
	db := newTestDB(t)
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	admin := seedAdmin(t, db, "Priya Nair", "priya@example.com")

	record, err := attendance.MarkActorAttendance(ctx, admin.ID, model.ActorTypeAdmin, model.AttendancePresent)
	if err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if record.ActorName != admin.Name {
		t.Fatalf("expected name snapshot %q, got %q", admin.Name, record.ActorName)
	}
	if record.BatchID != nil {
		t.Fatal("self-marked attendance must not carry a batch id")
	}

	if _, err := attendance.MarkActorAttendance(ctx, 9999, model.ActorTypeAdmin, model.AttendancePresent); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown admin: expected ErrNotFound, got %v", err)
	}
	if _, err := attendance.MarkActorAttendance(ctx, admin.ID, "Ghost", model.AttendancePresent); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("unknown actor type: expected ErrBadRequest, got %v", err)
	}
}

func TestListByStudentJoinsCurrentEmail(t *testing.T) {
	db := newTestDB(t)
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")
	if _, err := attendance.MarkActorAttendance(ctx, student.ID, model.ActorTypeStudent, model.AttendancePresent); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	records, err := attendance.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ActorEmail != "asha@example.com" {
		t.Fatalf("expected joined email, got %q", records[0].ActorEmail)
	}
}
