package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/edupanel/campus-api/config"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// EnsureSuperAdmin creates the configured SuperAdmin if none exists. It is
// idempotent and runs on every start before the server accepts requests.
func (s *Seeder) EnsureSuperAdmin(env *config.EnviornmentVariable) error {
	var count int64
	if err := s.db.Model(&model.SuperAdmin{}).Where("role = ?", model.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("SuperAdmin already exists, skipping bootstrap")
		return nil
	}

	if env.SUPERADMIN_EMAIL == "" || env.SUPERADMIN_PASSWORD == "" {
		return fmt.Errorf("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD must be set for bootstrap")
	}

	passwordHash, err := auth.HashPassword(env.SUPERADMIN_PASSWORD)
	if err != nil {
		return fmt.Errorf("failed to hash superadmin password: %w", err)
	}

	name := env.SUPERADMIN_NAME
	if name == "" {
		name = "Super Admin"
	}

	superAdmin := &model.SuperAdmin{
		Name:         name,
		Email:        env.SUPERADMIN_EMAIL,
		PasswordHash: passwordHash,
		Role:         model.RoleSuperAdmin,
	}

	if err := s.db.Create(superAdmin).Error; err != nil {
		// A concurrent start may have won the race; the unique email
		// index makes that a non-error for bootstrap purposes.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Println("SuperAdmin created concurrently, skipping bootstrap")
			return nil
		}
		return err
	}

	log.Printf("Created default SuperAdmin: %s", superAdmin.Email)
	return nil
}
