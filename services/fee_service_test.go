package services

import (
	"context"
	"errors"
	"testing"
)

func primeFees(t *testing.T, svc *FeeService, accounts *AccountService, studentID uint, total int64) {
	t.Helper()
	if _, err := accounts.UpdateStudent(context.Background(), studentID, UpdateStudentInput{TotalFees: &total}); err != nil {
		t.Fatalf("failed to set total fees: %v", err)
	}
}

func TestPostPaymentSequenceKeepsInvariant(t *testing.T) {
	db := newTestDB(t)
	fees := NewFeeService(db)
	accounts := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")
	primeFees(t, fees, accounts, student.ID, 1000)

	payments := []int64{200, 300, 150}
	var paidSoFar int64

	for _, amount := range payments {
		balance, err := fees.PostPayment(ctx, student.ID, amount)
		if err != nil {
			t.Fatalf("payment of %d failed: %v", amount, err)
		}
		paidSoFar += amount

		if balance.PaidFees != paidSoFar {
			t.Fatalf("expected paid %d, got %d", paidSoFar, balance.PaidFees)
		}
		if balance.RemainingFees != balance.TotalFees-balance.PaidFees {
			t.Fatalf("invariant broken: total=%d paid=%d remaining=%d",
				balance.TotalFees, balance.PaidFees, balance.RemainingFees)
		}
	}
}

func TestPostPaymentRejectsNonPositiveAmounts(t *testing.T) {
	db := newTestDB(t)
	fees := NewFeeService(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")

	for _, amount := range []int64{0, -50} {
		if _, err := fees.PostPayment(ctx, student.ID, amount); !errors.Is(err, ErrBadRequest) {
			t.Fatalf("amount %d: expected ErrBadRequest, got %v", amount, err)
		}
	}

	balance, err := fees.Balance(ctx, student.ID)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance.PaidFees != 0 {
		t.Fatalf("rejected payments must not move the balance, paid=%d", balance.PaidFees)
	}
}

func TestPostPaymentOverpaymentBecomesCredit(t *testing.T) {
	db := newTestDB(t)
	fees := NewFeeService(db)
	accounts := NewAccountService(db, newTestJWTManager())
	ctx := context.Background()

	student := seedStudent(t, db, "Asha Verma", "asha@example.com")
	primeFees(t, fees, accounts, student.ID, 500)

	balance, err := fees.PostPayment(ctx, student.ID, 800)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if balance.RemainingFees != -300 {
		t.Fatalf("expected remaining -300 (credit), got %d", balance.RemainingFees)
	}
}

func TestPostPaymentUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	fees := NewFeeService(db)

	_, err := fees.PostPayment(context.Background(), 9999, 100)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
