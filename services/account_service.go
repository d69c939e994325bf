package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/utils/auth"
	"gorm.io/gorm"
)

// AccountService owns the three identity collections: registration, login,
// lookup, partial update and deletion, symmetric across roles where the
// roles allow it.
type AccountService struct {
	db         *gorm.DB
	jwtManager *auth.JWTManager
}

// NewAccountService creates a new account service
func NewAccountService(db *gorm.DB, jwtManager *auth.JWTManager) *AccountService {
	return &AccountService{db: db, jwtManager: jwtManager}
}

// RegisterStudentInput carries the fields required to create a student
type RegisterStudentInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   string
}

// RegisterAdminInput carries the fields required to create an admin
type RegisterAdminInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is what a successful login returns to the dispatch front
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Role         string `json:"role"`
	SubjectID    uint   `json:"subject_id"`
}

// RegisterStudent creates a student with zeroed fee balances. The unique
// email index is the duplicate guard; its violation surfaces as ErrConflict.
func (s *AccountService) RegisterStudent(ctx context.Context, in RegisterStudentInput) (*model.Student, error) {
	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	}

	student := &model.Student{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Age:          in.Age,
		Gender:       in.Gender,
		Role:         model.RoleStudent,
		// Fees start at zero; RemainingFees == TotalFees - PaidFees holds
		TotalFees:     0,
		PaidFees:      0,
		RemainingFees: 0,
	}

	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("student with this email %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return student, nil
}

// RegisterAdmin creates an admin account
func (s *AccountService) RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*model.Admin, error) {
	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	}

	admin := &model.Admin{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	}

	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("admin with this email %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

// Login authenticates an identity of the given role and issues a token pair.
// A missing email and a wrong password both come back as
// ErrInvalidCredentials; callers get no distinction.
func (s *AccountService) Login(ctx context.Context, role, email, password string) (*LoginResult, error) {
	var (
		subjectID uint
		hash      string
	)

	switch role {
	case model.RoleStudent:
		var student model.Student
		if err := s.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
			return nil, s.loginLookupFailure(err)
		}
		subjectID, hash = student.ID, student.PasswordHash

	case model.RoleAdmin:
		var admin model.Admin
		if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
			return nil, s.loginLookupFailure(err)
		}
		subjectID, hash = admin.ID, admin.PasswordHash

	case model.RoleSuperAdmin:
		var superAdmin model.SuperAdmin
		if err := s.db.WithContext(ctx).Where("email = ?", email).First(&superAdmin).Error; err != nil {
			return nil, s.loginLookupFailure(err)
		}
		subjectID, hash = superAdmin.ID, superAdmin.PasswordHash

	default:
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrBadRequest)
	}

	if err := auth.VerifyPassword(hash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, _, err := s.jwtManager.GenerateAccessToken(subjectID, email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, _, err := s.jwtManager.GenerateRefreshToken(subjectID, email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if role == model.RoleSuperAdmin {
		// Best effort; a failed stamp must not fail the login
		s.db.WithContext(ctx).Model(&model.SuperAdmin{}).
			Where("id = ?", subjectID).
			UpdateColumn("last_login", time.Now())
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwtManager.AccessExpirySeconds(),
		Role:         role,
		SubjectID:    subjectID,
	}, nil
}

func (s *AccountService) loginLookupFailure(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("login lookup failed: %w", err)
}

// GetStudent returns one student with enrolled courses, hash excluded from
// the response projection.
func (s *AccountService) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).Preload("EnrolledCourses").First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	return &student, nil
}

// ListStudents returns all students
func (s *AccountService) ListStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// GetAdmin returns one admin
func (s *AccountService) GetAdmin(ctx context.Context, id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("admin %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return &admin, nil
}

// ListAdmins returns all admins
func (s *AccountService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// GetSuperAdmin returns the bootstrap SuperAdmin
func (s *AccountService) GetSuperAdmin(ctx context.Context, id uint) (*model.SuperAdmin, error) {
	var superAdmin model.SuperAdmin
	if err := s.db.WithContext(ctx).First(&superAdmin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("superadmin %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch superadmin: %w", err)
	}
	return &superAdmin, nil
}

// UpdateStudentInput is a partial update; nil fields are left untouched.
// Paid/remaining fees are deliberately absent: FeeService is their only
// writer. Changing TotalFees recomputes RemainingFees to keep the invariant.
type UpdateStudentInput struct {
	Name      *string
	Email     *string
	Password  *string
	Age       *int
	Gender    *string
	TotalFees *int64
}

// UpdateStudent applies the provided fields to one student
func (s *AccountService) UpdateStudent(ctx context.Context, id uint, in UpdateStudentInput) (*model.Student, error) {
	var student model.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Age != nil {
		updates["age"] = *in.Age
	}
	if in.Gender != nil {
		updates["gender"] = *in.Gender
	}
	if in.TotalFees != nil {
		updates["total_fees"] = *in.TotalFees
		updates["remaining_fees"] = *in.TotalFees - student.PaidFees
	}
	if in.Password != nil {
		passwordHash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
		}
		updates["password_hash"] = passwordHash
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&student).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("student with this email %w", ErrConflict)
			}
			return nil, fmt.Errorf("failed to update student: %w", err)
		}
	}

	return &student, nil
}

// UpdateAdminInput is a partial admin update; nil fields are left untouched
type UpdateAdminInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateAdmin applies the provided fields to one admin
func (s *AccountService) UpdateAdmin(ctx context.Context, id uint, in UpdateAdminInput) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("admin %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Password != nil {
		passwordHash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
		}
		updates["password_hash"] = passwordHash
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&admin).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("admin with this email %w", ErrConflict)
			}
			return nil, fmt.Errorf("failed to update admin: %w", err)
		}
	}

	return &admin, nil
}

// DeleteStudent soft-deletes a student. Results, attendance, notifications
// and queries keep their snapshots; there is no cascade.
func (s *AccountService) DeleteStudent(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Student{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("student %w", ErrNotFound)
	}
	return nil
}

// DeleteAdmin soft-deletes an admin
func (s *AccountService) DeleteAdmin(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Admin{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete admin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("admin %w", ErrNotFound)
	}
	return nil
}
