package model

import (
	"time"

	"gorm.io/gorm"
)

// SuperAdmin is the singleton root account, created idempotently at startup
type SuperAdmin struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"type:varchar(20);default:'superadmin'" json:"role"`
	LastLogin    time.Time      `json:"last_login"`
}

// SuperAdminResponse is the API projection of the SuperAdmin
type SuperAdminResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a SuperAdmin to SuperAdminResponse
func (s *SuperAdmin) ToResponse() SuperAdminResponse {
	return SuperAdminResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role,
		LastLogin: s.LastLogin,
		CreatedAt: s.CreatedAt,
	}
}
