package token

import (
	"testing"
	"time"

	"github.com/passgate/passgate/internal/auth/domain"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/config"
)

func newTestSigner(t *testing.T) (*Signer, *clock.FakeClock) {
	t.Helper()
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	signer, err := NewSigner(config.Config{
		SessionSecret:  "test-secret-not-for-production",
		SessionTTL:     8 * time.Hour,
		SessionRefresh: time.Hour,
	}, clk)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return signer, clk
}

func testClaims() domain.AdminClaims {
	return domain.AdminClaims{
		AdminID:     "1234567890",
		Email:       "admin@example.com",
		Permissions: []string{"SCAN_TICKETS", "VIEW_DASHBOARD"},
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, clk := newTestSigner(t)

	signed, expiresAt, err := signer.Sign(testClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if want := clk.Now().Add(8 * time.Hour); !expiresAt.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, want)
	}

	claims, err := signer.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.AdminID != "1234567890" || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if len(claims.Permissions) != 2 {
		t.Errorf("permissions = %v, want 2 entries", claims.Permissions)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, clk := newTestSigner(t)

	signed, _, err := signer.Sign(testClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	clk.Advance(8*time.Hour + time.Second)
	if _, err := signer.Verify(signed); err != domain.ErrTokenExpired {
		t.Fatalf("verify: got %v, want ErrTokenExpired", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	signer, _ := newTestSigner(t)

	signed, _, err := signer.Sign(testClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tampered := signed[:len(signed)-3] + "xyz"
	if _, err := signer.Verify(tampered); err != domain.ErrTokenInvalid {
		t.Fatalf("verify: got %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	signer, clk := newTestSigner(t)
	other, err := NewSigner(config.Config{
		SessionSecret:  "a-different-secret-entirely",
		SessionTTL:     8 * time.Hour,
		SessionRefresh: time.Hour,
	}, clk)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	signed, _, err := other.Sign(testClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Verify(signed); err != domain.ErrTokenInvalid {
		t.Fatalf("verify: got %v, want ErrTokenInvalid", err)
	}
}

func TestShouldRefreshWindow(t *testing.T) {
	signer, clk := newTestSigner(t)

	signed, _, err := signer.Sign(testClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := signer.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if signer.ShouldRefresh(claims) {
		t.Fatal("fresh token should not need a refresh")
	}

	clk.Advance(7*time.Hour + 30*time.Minute)
	if !signer.ShouldRefresh(claims) {
		t.Fatal("token with <1h left should refresh")
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	if _, err := NewSigner(config.Config{}, clk); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
