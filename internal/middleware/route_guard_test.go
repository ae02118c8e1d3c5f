package middleware

import (
	"testing"

	"github.com/brightframe/studio-backend/internal/models"
)

func TestGuard(t *testing.T) {
	customer := &models.Session{UserID: "u1", Role: models.RoleCustomer}
	admin := &models.Session{UserID: "u2", Role: models.RoleAdmin}

	tests := []struct {
		path     string
		session  *models.Session
		redirect string
		ok       bool
	}{
		{"/", nil, "", true},
		{"/gallery/abc", nil, "", true},
		{"/pricing?plan=wedding", nil, "", true},
		{"/dashboard", nil, LoginPath, false},
		{"/my-albums/abc", nil, LoginPath, false},
		{"/my-bookings/", nil, LoginPath, false},
		{"/my-bookings", customer, "", true},
		{"/admin", nil, LoginPath, false},
		{"/admin/albums/new", customer, DashboardPath, false},
		{"/admin/albums/new", admin, "", true},
		{"/admin/albums/123", admin, "", true},
		{"/admin/unknown/page", customer, DashboardPath, false},
		{"/no-such-page", nil, "", true},
	}
	for _, tt := range tests {
		redirect, ok := Guard(tt.path, tt.session)
		if redirect != tt.redirect || ok != tt.ok {
			t.Errorf("Guard(%q, %v) = (%q, %v), want (%q, %v)", tt.path, tt.session, redirect, ok, tt.redirect, tt.ok)
		}
	}
}

func TestAccessForParameterSegments(t *testing.T) {
	if got := AccessFor("/my-albums/"); got != AccessAuthenticated {
		t.Fatalf("AccessFor(/my-albums/) = %v", got)
	}
	if got := AccessFor("/my-albums/a/b"); got != AccessPublic {
		t.Fatalf("AccessFor(/my-albums/a/b) = %v, want public fallback", got)
	}
}
