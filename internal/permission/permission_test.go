package permission

import "testing"

func TestNewSetDropsUnknownNames(t *testing.T) {
	set := NewSet([]string{"SCAN_TICKETS", "SCAN_TICKET", "", "MANAGE_EVENTS"})

	if !set.Has(ScanTickets) {
		t.Fatal("expected SCAN_TICKETS in set")
	}
	if !set.Has(ManageEvents) {
		t.Fatal("expected MANAGE_EVENTS in set")
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 permissions, got %d", len(set))
	}
}

func TestHasAny(t *testing.T) {
	set := NewSet([]string{"VIEW_DASHBOARD"})

	if !set.HasAny(ManageEvents, ViewDashboard) {
		t.Fatal("expected HasAny to match VIEW_DASHBOARD")
	}
	if set.HasAny(ManageAdmins, ScanTickets) {
		t.Fatal("expected HasAny to miss")
	}
}

func TestStringsRoundTrip(t *testing.T) {
	all := make([]string, 0, len(All()))
	for _, p := range All() {
		all = append(all, string(p))
	}

	set := NewSet(all)
	if len(set.Strings()) != len(all) {
		t.Fatalf("expected %d permissions, got %d", len(all), len(set.Strings()))
	}
	for _, name := range set.Strings() {
		if !Valid(name) {
			t.Fatalf("unexpected permission %q", name)
		}
	}
}
