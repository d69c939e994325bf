package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupanel/campus-api/model"
	"gorm.io/gorm"
)

// FeeService is the only writer of paid/remaining balances after
// registration defaults.
type FeeService struct {
	db *gorm.DB
}

// NewFeeService creates a new fee service
func NewFeeService(db *gorm.DB) *FeeService {
	return &FeeService{db: db}
}

// FeeBalance is the read-only projection of a student's balances
type FeeBalance struct {
	StudentID     uint  `json:"student_id"`
	TotalFees     int64 `json:"total_fees"`
	PaidFees      int64 `json:"paid_fees"`
	RemainingFees int64 `json:"remaining_fees"`
}

// PostPayment applies one incremental payment:
// paidFees += amount; remainingFees = totalFees - paidFees.
// Zero and negative amounts are rejected. Overpayment is allowed and shows
// up as a negative remaining balance (a credit). Both fields move in a
// single row update so the invariant holds after every mutation.
func (s *FeeService) PostPayment(ctx context.Context, studentID uint, amountPaid int64) (*FeeBalance, error) {
	if amountPaid <= 0 {
		return nil, fmt.Errorf("amount paid must be positive: %w", ErrBadRequest)
	}

	// Both columns move in one UPDATE against the stored values, so two
	// concurrent payments cannot interleave a stale read into the balance.
	result := s.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ?", studentID).
		UpdateColumns(map[string]interface{}{
			"paid_fees":      gorm.Expr("paid_fees + ?", amountPaid),
			"remaining_fees": gorm.Expr("total_fees - (paid_fees + ?)", amountPaid),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update fees: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("student %w", ErrNotFound)
	}

	return s.Balance(ctx, studentID)
}

// Balance returns a student's current balances
func (s *FeeService) Balance(ctx context.Context, studentID uint) (*FeeBalance, error) {
	var student model.Student
	if err := s.db.WithContext(ctx).First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	return &FeeBalance{
		StudentID:     student.ID,
		TotalFees:     student.TotalFees,
		PaidFees:      student.PaidFees,
		RemainingFees: student.RemainingFees,
	}, nil
}
