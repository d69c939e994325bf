package cron

import (
	"context"
	"log"
	"time"

	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/utils/auth"
)

// CleanupTokenBlacklist removes blacklist rows whose tokens have expired
// anyway; revocation checks only consider live entries.
func (m *CronManager) CleanupTokenBlacklist() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	blacklist := auth.NewBlacklistService(m.db)
	cleaned, err := blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		log.Printf("[CRON] Failed to clean token blacklist: %v", err)
		return
	}
	if cleaned > 0 {
		log.Printf("[CRON] Cleaned %d expired blacklist tokens", cleaned)
	}
}

// AuditFeeBalances logs every student row where remaining != total - paid.
// The fee writer keeps the invariant on every mutation, so a hit here means
// an out-of-band write and deserves a loud log line.
func (m *CronManager) AuditFeeBalances() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var drifted []model.Student
	err := m.db.WithContext(ctx).
		Where("remaining_fees != total_fees - paid_fees").
		Find(&drifted).Error
	if err != nil {
		log.Printf("[CRON] Fee audit query failed: %v", err)
		return
	}

	for _, s := range drifted {
		log.Printf("[CRON] FEE DRIFT student=%d total=%d paid=%d remaining=%d",
			s.ID, s.TotalFees, s.PaidFees, s.RemainingFees)
	}
	if len(drifted) == 0 {
		log.Println("[CRON] Fee audit clean")
	}
}
