package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupanel/campus-api/model"
)

func TestListResultsEmptyIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	results := NewResultService(db)

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")

	got, err := results.ListByStudent(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("empty history must not error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestPostResultSnapshotsStudentName(t *testing.T) {
	db := newTestDB(t)
	results := NewResultService(db)
	accounts := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")

	posted, err := results.PostResult(ctx, PostResultInput{
		StudentID:     student.ID,
		MarksObtained: 72,
		TotalMarks:    100,
		Grade:         "B",
		Status:        model.ResultPass,
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	newName := "Asha Sharma"
	if _, err := accounts.UpdateStudent(ctx, student.ID, UpdateStudentInput{Name: &newName}); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	history, err := results.ListByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 result, got %d", len(history))
	}
	if history[0].StudentName != "Asha Verma" {
		t.Fatalf("snapshot must keep the name at post time, got %q", history[0].StudentName)
	}
	if history[0].ID != posted.ID {
		t.Fatalf("expected result %d, got %d", posted.ID, history[0].ID)
	}
}

func TestPostResultUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	results := NewResultService(db)

	_, err := results.PostResult(context.Background(), PostResultInput{
		StudentID:  9999,
		TotalMarks: 100,
		Grade:      "A",
		Status:     model.ResultPass,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
