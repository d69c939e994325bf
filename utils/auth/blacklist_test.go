package auth

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edupanel/campus-api/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var blacklistTestCounter int64

func newBlacklistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&blacklistTestCounter, 1)
	dsn := fmt.Sprintf("file:blacklisttest%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.TokenBlacklist{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestRevokeTokenBlocksJTI(t *testing.T) {
	db := newBlacklistTestDB(t)
	blacklist := NewBlacklistService(db)
	ctx := context.Background()

	jti := "session-jti-1"
	if err := blacklist.RevokeToken(ctx, jti, 42, "student", time.Now().Add(time.Hour), "logout"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	revoked, err := blacklist.IsTokenRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !revoked {
		t.Fatal("revoked JTI must read as revoked")
	}

	other, err := blacklist.IsTokenRevoked(ctx, "some-other-jti")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if other {
		t.Fatal("unrevoked JTI must not read as revoked")
	}
}

// A blacklist row past the token's natural expiry no longer blocks anything
// (the token itself is dead) and is eligible for cleanup.
func TestExpiredRevocationAgesOut(t *testing.T) {
	db := newBlacklistTestDB(t)
	blacklist := NewBlacklistService(db)
	ctx := context.Background()

	jti := "session-jti-2"
	if err := blacklist.RevokeToken(ctx, jti, 42, "student", time.Now().Add(-time.Minute), "logout"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	revoked, err := blacklist.IsTokenRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if revoked {
		t.Fatal("expired revocation must not block")
	}

	cleaned, err := blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if cleaned != 1 {
		t.Fatalf("expected 1 row cleaned, got %d", cleaned)
	}

	var count int64
	if err := db.Model(&model.TokenBlacklist{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty blacklist after cleanup, got %d rows", count)
	}
}
