package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edupanel/campus-api/database"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/utils/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database with the full schema. Each
// call gets its own named memory database so tests cannot see each
// other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(auth.JWTConfig{
		Secret:        "test-secret-do-not-use",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "campus-api-test",
	})
}

// seedStudent inserts a student directly, bypassing registration
func seedStudent(t *testing.T, db *gorm.DB, name, email string) *model.Student {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}

	student := &model.Student{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Age:          20,
		Gender:       "other",
		Role:         model.RoleStudent,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to seed student: %v", err)
	}
	return student
}

func seedAdmin(t *testing.T, db *gorm.DB, name, email string) *model.Admin {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}

	admin := &model.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return admin
}

func seedCourse(t *testing.T, db *gorm.DB, title string) *model.Course {
	t.Helper()

	course := &model.Course{Title: title, Description: "seeded"}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}
	return course
}
