// Package permission defines the fixed capability vocabulary gating admin
// operations. Permissions travel inside the session token as a string list;
// this package keeps the names typed so a misspelled capability fails at
// compile time instead of silently denying access.
package permission

import "strings"

type Permission string

const (
	ViewDashboard      Permission = "VIEW_DASHBOARD"
	ManageEvents       Permission = "MANAGE_EVENTS"
	ManageTickets      Permission = "MANAGE_TICKETS"
	ScanTickets        Permission = "SCAN_TICKETS"
	ViewPayments       Permission = "VIEW_PAYMENTS"
	ViewDesignTools    Permission = "VIEW_DESIGN_TOOLS"
	ExportData         Permission = "EXPORT_DATA"
	AccessCheckinLists Permission = "ACCESS_CHECKIN_LISTS"
	ManageAdmins       Permission = "MANAGE_ADMINS"
)

// All returns the full vocabulary in seed order.
func All() []Permission {
	return []Permission{
		ViewDashboard,
		ManageEvents,
		ManageTickets,
		ScanTickets,
		ViewPayments,
		ViewDesignTools,
		ExportData,
		AccessCheckinLists,
		ManageAdmins,
	}
}

// Descriptions maps each permission to the copy shown in the admin UI.
var Descriptions = map[Permission]string{
	ViewDashboard:      "View analytics and charts",
	ManageEvents:       "Create/update/delete events",
	ManageTickets:      "View/export ticket info",
	ScanTickets:        "Access check-in pages (QR/manual)",
	ViewPayments:       "Access payment records/logs",
	ViewDesignTools:    "Use homepage and SEO editors",
	ExportData:         "Download CSV/XLSX reports",
	AccessCheckinLists: "View offline printable lists",
	ManageAdmins:       "Create/update/delete admins",
}

// Valid reports whether name is part of the vocabulary.
func Valid(name string) bool {
	_, ok := Descriptions[Permission(strings.TrimSpace(name))]
	return ok
}

// Set is a capability set carried by an authenticated admin.
type Set map[Permission]struct{}

// NewSet builds a Set from token strings, dropping anything outside the
// vocabulary.
func NewSet(names []string) Set {
	set := make(Set, len(names))
	for _, name := range names {
		p := Permission(strings.TrimSpace(name))
		if _, ok := Descriptions[p]; ok {
			set[p] = struct{}{}
		}
	}
	return set
}

func (s Set) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAny reports whether the set contains at least one of the given
// permissions.
func (s Set) HasAny(perms ...Permission) bool {
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Strings returns the set as sorted-order-independent token strings.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for _, p := range All() {
		if s.Has(p) {
			out = append(out, string(p))
		}
	}
	return out
}
