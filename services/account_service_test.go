package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupanel/campus-api/model"
)

func TestRegisterStudentDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	in := RegisterStudentInput{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "strongpassword",
		Age:      21,
		Gender:   "female",
	}

	if _, err := svc.RegisterStudent(ctx, in); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.RegisterStudent(ctx, in)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestRegisterStudentStartsWithZeroFees(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestJWTManager())

	student, err := svc.RegisterStudent(context.Background(), RegisterStudentInput{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Password: "strongpassword",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if student.TotalFees != 0 || student.PaidFees != 0 || student.RemainingFees != 0 {
		t.Fatalf("expected zeroed fee balances, got total=%d paid=%d remaining=%d",
			student.TotalFees, student.PaidFees, student.RemainingFees)
	}
	if student.Role != model.RoleStudent {
		t.Fatalf("expected role %q, got %q", model.RoleStudent, student.Role)
	}
}

// A missing account and a wrong password must be indistinguishable to the
// caller.
func TestLoginFailureCollapse(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	if _, err := svc.RegisterStudent(ctx, RegisterStudentInput{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "strongpassword",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, unknownErr := svc.Login(ctx, model.RoleStudent, "nobody@example.com", "strongpassword")
	_, wrongPassErr := svc.Login(ctx, model.RoleStudent, "asha@example.com", "not-the-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
}

func TestLoginIssuesTokenPairForRole(t *testing.T) {
	db := newTestDB(t)
	jwtManager := newTestJWTManager()
	svc := NewAccountService(db, jwtManager)
	ctx := context.Background()

	student, err := svc.RegisterStudent(ctx, RegisterStudentInput{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "strongpassword",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	result, err := svc.Login(ctx, model.RoleStudent, "asha@example.com", "strongpassword")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.SubjectID != student.ID {
		t.Fatalf("expected subject id %d, got %d", student.ID, result.SubjectID)
	}
	if result.Role != model.RoleStudent {
		t.Fatalf("expected role %q, got %q", model.RoleStudent, result.Role)
	}

	claims, err := jwtManager.ValidateToken(result.AccessToken)
	if err != nil {
		t.Fatalf("access token did not validate: %v", err)
	}
	if claims.TokenType != "access" || claims.Role != model.RoleStudent || claims.SubjectID != student.ID {
		t.Fatalf("unexpected access claims: %+v", claims)
	}

	refreshClaims, err := jwtManager.ValidateToken(result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token did not validate: %v", err)
	}
	if refreshClaims.TokenType != "refresh" {
		t.Fatalf("expected refresh token type, got %q", refreshClaims.TokenType)
	}
}

func TestLoginSuperAdminStampsLastLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	hash := seedStudent(t, db, "placeholder", "placeholder@example.com").PasswordHash

	superAdmin := &model.SuperAdmin{
		Name:         "Root",
		Email:        "root@example.com",
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
	}
	if err := db.Create(superAdmin).Error; err != nil {
		t.Fatalf("failed to seed superadmin: %v", err)
	}

	if _, err := svc.Login(ctx, model.RoleSuperAdmin, "root@example.com", "correct-horse-battery"); err != nil {
		t.Fatalf("superadmin login failed: %v", err)
	}

	var reloaded model.SuperAdmin
	if err := db.First(&reloaded, superAdmin.ID).Error; err != nil {
		t.Fatalf("failed to reload superadmin: %v", err)
	}
	if reloaded.LastLogin.IsZero() {
		t.Fatal("expected last_login to be stamped after login")
	}
}

func TestUpdateStudentTotalFeesRecomputesRemaining(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")
	if err := db.Model(student).UpdateColumns(map[string]interface{}{
		"total_fees":     int64(1000),
		"paid_fees":      int64(400),
		"remaining_fees": int64(600),
	}).Error; err != nil {
		t.Fatalf("failed to prime balances: %v", err)
	}

	newTotal := int64(1500)
	if _, err := svc.UpdateStudent(ctx, student.ID, UpdateStudentInput{TotalFees: &newTotal}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var reloaded model.Student
	if err := db.First(&reloaded, student.ID).Error; err != nil {
		t.Fatalf("failed to reload student: %v", err)
	}
	if reloaded.TotalFees != 1500 || reloaded.PaidFees != 400 || reloaded.RemainingFees != 1100 {
		t.Fatalf("invariant broken after total change: total=%d paid=%d remaining=%d",
			reloaded.TotalFees, reloaded.PaidFees, reloaded.RemainingFees)
	}
}

func TestDeleteStudentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestJWTManager())

	err := svc.DeleteStudent(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteStudentKeepsLedgerRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")

	result := model.Result{
		StudentID:     student.ID,
		StudentName:   student.Name,
		MarksObtained: 80,
		TotalMarks:    100,
		Grade:         "A",
		Status:        model.ResultPass,
	}
	if err := db.Create(&result).Error; err != nil {
		t.Fatalf("failed to seed result: %v", err)
	}

	if err := svc.DeleteStudent(ctx, student.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var count int64
	if err := db.Model(&model.Result{}).Where("student_id = ?", student.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count results: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected result row to survive student deletion, found %d", count)
	}
}
