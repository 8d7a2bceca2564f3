package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/event/domain"
	"github.com/passgate/passgate/internal/event/repository"
	"github.com/passgate/passgate/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, clk clock.Clock) (*Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := conn.Exec("CREATE TABLE tickets (id INTEGER PRIMARY KEY, event_id INTEGER NOT NULL)").Error; err != nil {
		t.Fatalf("create tickets table: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
	}).(*Service)
	return svc, conn
}

func TestCreateValidatesFields(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(t, clk)
	ctx := context.Background()

	start := clk.Now().Add(24 * time.Hour)
	end := start.Add(4 * time.Hour)

	cases := []struct {
		name string
		req  domain.CreateEventRequest
		want error
	}{
		{"short name", domain.CreateEventRequest{Name: "ab", Venue: "Main Hall", StartDate: start, EndDate: end}, domain.ErrInvalidName},
		{"short venue", domain.CreateEventRequest{Name: "Launch Party", Venue: "x", StartDate: start, EndDate: end}, domain.ErrInvalidVenue},
		{"end before start", domain.CreateEventRequest{Name: "Launch Party", Venue: "Main Hall", StartDate: end, EndDate: start}, domain.ErrInvalidDates},
		{"negative price", domain.CreateEventRequest{Name: "Launch Party", Venue: "Main Hall", StartDate: start, EndDate: end, Price: decimal.NewFromInt(-5)}, domain.ErrInvalidPrice},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.req); err != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCreateDerivesSlugAndStatus(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(t, clk)
	ctx := context.Background()

	event, err := svc.Create(ctx, domain.CreateEventRequest{
		Name:      "Summer Beach Fest",
		Venue:     "Pirates Beach",
		StartDate: clk.Now().Add(-time.Hour),
		EndDate:   clk.Now().Add(3 * time.Hour),
		Price:     decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := "summer-beach-fest-" + event.ID.String()
	if event.Slug != want {
		t.Errorf("slug = %q, want %q", event.Slug, want)
	}
	if event.Status != domain.StatusLive {
		t.Errorf("status = %q, want LIVE for an in-progress event", event.Status)
	}
}

func TestDeleteRefusesEventWithTickets(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, conn := newTestService(t, clk)
	ctx := context.Background()

	event, err := svc.Create(ctx, domain.CreateEventRequest{
		Name:      "Ticketed Show",
		Venue:     "Main Hall",
		StartDate: clk.Now().Add(time.Hour),
		EndDate:   clk.Now().Add(5 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := conn.Exec("INSERT INTO tickets (event_id) VALUES (?)", event.ID).Error; err != nil {
		t.Fatalf("insert ticket: %v", err)
	}

	if err := svc.Delete(ctx, event.ID.String()); err != domain.ErrHasTickets {
		t.Fatalf("delete: got %v, want ErrHasTickets", err)
	}
	if _, err := svc.GetByID(ctx, event.ID.String()); err != nil {
		t.Fatalf("event should still exist: %v", err)
	}
}

func TestSweepAdvancesStatuses(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(t, clk)
	ctx := context.Background()

	upcoming, err := svc.Create(ctx, domain.CreateEventRequest{
		Name:      "Future Concert",
		Venue:     "Arena One",
		StartDate: clk.Now().Add(time.Hour),
		EndDate:   clk.Now().Add(4 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create upcoming: %v", err)
	}
	short, err := svc.Create(ctx, domain.CreateEventRequest{
		Name:      "Morning Meetup",
		Venue:     "Cafe Square",
		StartDate: clk.Now().Add(time.Hour),
		EndDate:   clk.Now().Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("create short: %v", err)
	}

	clk.Advance(2 * time.Hour)
	result, err := svc.SweepStatuses(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.UpcomingToLive != 1 {
		t.Errorf("UpcomingToLive = %d, want 1", result.UpcomingToLive)
	}
	if result.LiveToEnded != 1 {
		t.Errorf("LiveToEnded = %d, want 1", result.LiveToEnded)
	}

	got, err := svc.GetByID(ctx, upcoming.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusLive {
		t.Errorf("upcoming event status = %q, want LIVE", got.Status)
	}
	got, err = svc.GetByID(ctx, short.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusEnded {
		t.Errorf("short event status = %q, want ENDED", got.Status)
	}

	// Second sweep at the same instant touches nothing.
	result, err = svc.SweepStatuses(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if result.UpcomingToLive != 0 || result.LiveToEnded != 0 {
		t.Errorf("second sweep moved rows: %+v", result)
	}
}

func TestSweepGuardThrottles(t *testing.T) {
	var guard sweepGuard
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if !guard.tryAcquire(base) {
		t.Fatal("first acquire should succeed")
	}
	if guard.tryAcquire(base.Add(time.Minute)) {
		t.Fatal("acquire within the interval should fail")
	}
	if !guard.tryAcquire(base.Add(sweepInterval)) {
		t.Fatal("acquire after the interval should succeed")
	}
}
