package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/admin/domain"
	"github.com/passgate/passgate/internal/admin/repository"
	"github.com/passgate/passgate/internal/auth/password"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/permission"
	"github.com/passgate/passgate/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Permission{}, &domain.Admin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	for _, p := range permission.All() {
		row := domain.Permission{
			ID:          node.Generate(),
			Name:        string(p),
			Description: permission.Descriptions[p],
		}
		if err := conn.Create(&row).Error; err != nil {
			t.Fatalf("seed permission %s: %v", p, err)
		}
	}

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	}).(*Service)
	return svc, conn
}

func TestCreateHashesPasswordAndNormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, domain.CreateAdminRequest{
		FullName:    "Door Crew",
		Email:       "  Crew@Example.COM ",
		Password:    "letmein-please",
		Permissions: []string{string(permission.ScanTickets)},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if admin.Email != "crew@example.com" {
		t.Errorf("email = %q, want normalized lowercase", admin.Email)
	}
	if admin.PasswordHash == "letmein-please" {
		t.Fatal("password stored in plaintext")
	}
	if !password.Verify("letmein-please", admin.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}
	if !admin.PermissionSet().Has(permission.ScanTickets) {
		t.Fatal("permission set missing SCAN_TICKETS")
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.CreateAdminRequest
		want error
	}{
		{"short name", domain.CreateAdminRequest{FullName: "x", Email: "a@b.com", Password: "longenough"}, domain.ErrInvalidName},
		{"bad email", domain.CreateAdminRequest{FullName: "Crew", Email: "not-an-email", Password: "longenough"}, domain.ErrInvalidEmail},
		{"short password", domain.CreateAdminRequest{FullName: "Crew", Email: "a@b.com", Password: "short"}, domain.ErrWeakPassword},
		{"unknown permission", domain.CreateAdminRequest{FullName: "Crew", Email: "a@b.com", Password: "longenough", Permissions: []string{"RULE_THE_WORLD"}}, domain.ErrUnknownPermission},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.req); err != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := domain.CreateAdminRequest{FullName: "Crew", Email: "dup@example.com", Password: "longenough"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, req); err != domain.ErrEmailTaken {
		t.Fatalf("second create: got %v, want ErrEmailTaken", err)
	}
}

func TestDeleteRefusesSelf(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, domain.CreateAdminRequest{
		FullName: "Lone Admin",
		Email:    "lone@example.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, admin.ID.String(), admin.ID.String()); err != domain.ErrSelfDelete {
		t.Fatalf("self delete: got %v, want ErrSelfDelete", err)
	}
	if _, err := svc.GetByID(ctx, admin.ID.String()); err != nil {
		t.Fatalf("admin should still exist: %v", err)
	}
}

func TestUpdateReplacesPermissions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, domain.CreateAdminRequest{
		FullName:    "Gate Lead",
		Email:       "lead@example.com",
		Password:    "longenough",
		Permissions: []string{string(permission.ScanTickets)},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	perms := []string{string(permission.ViewDashboard), string(permission.ManageEvents)}
	updated, err := svc.Update(ctx, admin.ID.String(), domain.UpdateAdminRequest{Permissions: &perms})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	set := updated.PermissionSet()
	if set.Has(permission.ScanTickets) {
		t.Error("SCAN_TICKETS should have been replaced")
	}
	if !set.Has(permission.ViewDashboard) || !set.Has(permission.ManageEvents) {
		t.Errorf("permission set = %v, want dashboard+events", updated.PermissionNames())
	}
}
