package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/clock"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
	"github.com/passgate/passgate/internal/ticket/domain"
	"github.com/passgate/passgate/internal/ticket/repository"
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
	if err := conn.AutoMigrate(&eventdomain.Event{}, &domain.Ticket{}, &domain.CheckinLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	}).(*Service)
	return svc, conn
}

func seedTicket(t *testing.T, svc *Service, conn *gorm.DB) domain.Ticket {
	t.Helper()

	event := eventdomain.Event{
		ID:        svc.genID.Generate(),
		Name:      "Door Test",
		Slug:      "door-test",
		Venue:     "Gate A",
		StartDate: time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
		Status:    eventdomain.StatusLive,
	}
	if err := conn.Create(&event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	ticket, err := svc.Issue(context.Background(), conn, domain.IssueRequest{
		EventID:   event.ID,
		PaymentID: svc.genID.Generate(),
		Email:     "guest@example.com",
		Phone:     "254700000001",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return ticket
}

func TestByPaymentResolvesIssuedTicket(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)

	got, err := svc.ByPayment(context.Background(), ticket.PaymentID)
	if err != nil {
		t.Fatalf("by payment: %v", err)
	}
	if got.ID != ticket.ID {
		t.Fatalf("ticket id = %d, want %d", got.ID, ticket.ID)
	}
	if got.Event == nil || got.Event.Name != "Door Test" {
		t.Fatalf("event = %+v, want the issuing event preloaded", got.Event)
	}

	if _, err := svc.ByPayment(context.Background(), svc.genID.Generate()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown payment: got %v, want ErrNotFound", err)
	}
}

func countLogs(t *testing.T, conn *gorm.DB, status domain.CheckinStatus) int64 {
	t.Helper()
	var n int64
	if err := conn.Model(&domain.CheckinLog{}).Where("status = ?", status).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}

func TestIssueGeneratesCode(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)

	if len(ticket.TicketCode) != domain.CodeLength {
		t.Fatalf("code %q, want %d chars", ticket.TicketCode, domain.CodeLength)
	}
	for _, c := range ticket.TicketCode {
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			t.Fatalf("code %q contains %q", ticket.TicketCode, c)
		}
	}
	if ticket.CheckedIn {
		t.Fatal("fresh ticket must not be checked in")
	}
}

func TestValidateTransitionsOnce(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)
	adminID := svc.genID.Generate()
	ctx := context.Background()

	result, err := svc.Validate(ctx, ticket.TicketCode, adminID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Status != domain.CheckinSuccess {
		t.Fatalf("first validate status = %q, want SUCCESS", result.Status)
	}
	if result.Ticket == nil || !result.Ticket.CheckedIn {
		t.Fatal("returned ticket should be checked in")
	}

	result, err = svc.Validate(ctx, ticket.TicketCode, adminID)
	if err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if result.Status != domain.CheckinAlreadyChecked {
		t.Fatalf("second validate status = %q, want ALREADY_CHECKED_IN", result.Status)
	}

	if n := countLogs(t, conn, domain.CheckinSuccess); n != 1 {
		t.Errorf("SUCCESS logs = %d, want 1", n)
	}
	if n := countLogs(t, conn, domain.CheckinAlreadyChecked); n != 1 {
		t.Errorf("ALREADY_CHECKED_IN logs = %d, want 1", n)
	}
}

func TestValidateNormalizesCode(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)

	result, err := svc.Validate(context.Background(), "  "+lower(ticket.TicketCode)+" ", svc.genID.Generate())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Status != domain.CheckinSuccess {
		t.Fatalf("status = %q, want SUCCESS for lowercased padded code", result.Status)
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func TestValidateUnknownCodeWritesNoLog(t *testing.T) {
	svc, conn := newTestService(t)

	result, err := svc.Validate(context.Background(), "ZZZZZZ", svc.genID.Generate())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Status != domain.CheckinInvalidTicket {
		t.Fatalf("status = %q, want INVALID_TICKET", result.Status)
	}

	var n int64
	if err := conn.Model(&domain.CheckinLog{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("log rows = %d, want 0 for unknown code", n)
	}
}

func TestBulkValidateRejectsOversizedBatch(t *testing.T) {
	svc, _ := newTestService(t)

	codes := make([]string, domain.BulkMaxCodes+1)
	for i := range codes {
		codes[i] = "AAAAAA"
	}
	if _, err := svc.BulkValidate(context.Background(), codes, svc.genID.Generate()); err != domain.ErrTooManyCodes {
		t.Fatalf("got %v, want ErrTooManyCodes", err)
	}
}

func TestBulkValidateDuplicatesAndUnknowns(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)

	codes := []string{ticket.TicketCode, " " + ticket.TicketCode + " ", "NOSUCH"}
	result, err := svc.BulkValidate(context.Background(), codes, svc.genID.Generate())
	if err != nil {
		t.Fatalf("bulk validate: %v", err)
	}

	want := domain.BulkSummary{Total: 3, Successful: 1, AlreadyUsed: 1, Invalid: 1}
	if result.Summary != want {
		t.Fatalf("summary = %+v, want %+v", result.Summary, want)
	}
	if result.Results[0].Status != domain.CheckinSuccess {
		t.Errorf("first duplicate status = %q, want SUCCESS", result.Results[0].Status)
	}
	if result.Results[1].Status != domain.CheckinAlreadyChecked {
		t.Errorf("second duplicate status = %q, want ALREADY_CHECKED_IN", result.Results[1].Status)
	}
}

func TestCheckInCompareAndSet(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)
	ctx := context.Background()

	won, err := svc.repo.CheckIn(ctx, conn, ticket.ID)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if !won {
		t.Fatal("first transition should win")
	}

	won, err = svc.repo.CheckIn(ctx, conn, ticket.ID)
	if err != nil {
		t.Fatalf("second check in: %v", err)
	}
	if won {
		t.Fatal("second transition must lose the compare-and-set")
	}
}

func TestCheckInConcurrentScansWinOnce(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)
	ctx := context.Background()

	// One writer connection keeps sqlite happy; the compare-and-set still
	// has to pick a single winner among the goroutines.
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	const scanners = 16
	var wg sync.WaitGroup
	var wins atomic.Int64
	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := svc.repo.CheckIn(ctx, conn, ticket.ID)
			if err != nil {
				t.Errorf("check in: %v", err)
				return
			}
			if won {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Fatalf("wins = %d, want exactly 1", got)
	}

	var stored domain.Ticket
	if err := conn.First(&stored, "id = ?", ticket.ID).Error; err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if !stored.CheckedIn {
		t.Fatal("ticket should be checked in after the race")
	}
}

func TestScanStats(t *testing.T) {
	svc, conn := newTestService(t)
	ticket := seedTicket(t, svc, conn)
	ctx := context.Background()

	second, err := svc.Issue(ctx, conn, domain.IssueRequest{
		EventID:   ticket.EventID,
		PaymentID: svc.genID.Generate(),
		Email:     "other@example.com",
	})
	if err != nil {
		t.Fatalf("issue second: %v", err)
	}
	_ = second

	if _, err := svc.Validate(ctx, ticket.TicketCode, svc.genID.Generate()); err != nil {
		t.Fatalf("validate: %v", err)
	}

	stats, err := svc.ScanStats(ctx, ticket.EventID.String())
	if err != nil {
		t.Fatalf("scan stats: %v", err)
	}
	if stats.Total != 2 || stats.CheckedIn != 1 || stats.Remaining != 1 {
		t.Fatalf("stats = %+v, want total 2 checked 1 remaining 1", stats)
	}
}
