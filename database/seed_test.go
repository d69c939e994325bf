package database

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/edupanel/campus-api/config"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/utils/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seedTestCounter int64

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&seedTestCounter, 1)
	dsn := fmt.Sprintf("file:seedtest%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestEnsureSuperAdminIsIdempotent(t *testing.T) {
	db := newSeedTestDB(t)
	seeder := NewSeeder(db)

	env := &config.EnviornmentVariable{
		SUPERADMIN_NAME:     "Root",
		SUPERADMIN_EMAIL:    "root@example.com",
		SUPERADMIN_PASSWORD: "bootstrap-password",
	}

	if err := seeder.EnsureSuperAdmin(env); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := seeder.EnsureSuperAdmin(env); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	var count int64
	if err := db.Model(&model.SuperAdmin{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one superadmin, got %d", count)
	}
}

func TestEnsureSuperAdminHashesPassword(t *testing.T) {
	db := newSeedTestDB(t)
	seeder := NewSeeder(db)

	env := &config.EnviornmentVariable{
		SUPERADMIN_EMAIL:    "root@example.com",
		SUPERADMIN_PASSWORD: "bootstrap-password",
	}

	if err := seeder.EnsureSuperAdmin(env); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	var superAdmin model.SuperAdmin
	if err := db.Where("email = ?", env.SUPERADMIN_EMAIL).First(&superAdmin).Error; err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if superAdmin.PasswordHash == env.SUPERADMIN_PASSWORD {
		t.Fatal("password must never be stored in plaintext")
	}
	if err := auth.VerifyPassword(superAdmin.PasswordHash, env.SUPERADMIN_PASSWORD); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if superAdmin.Name != "Super Admin" {
		t.Fatalf("expected default name when unset, got %q", superAdmin.Name)
	}
	if superAdmin.Role != model.RoleSuperAdmin {
		t.Fatalf("expected role %q, got %q", model.RoleSuperAdmin, superAdmin.Role)
	}
}

func TestEnsureSuperAdminRequiresCredentials(t *testing.T) {
	db := newSeedTestDB(t)
	seeder := NewSeeder(db)

	if err := seeder.EnsureSuperAdmin(&config.EnviornmentVariable{}); err == nil {
		t.Fatal("expected an error when bootstrap credentials are unset")
	}

	var count int64
	if err := db.Model(&model.SuperAdmin{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no superadmin rows, got %d", count)
	}
}
