package identity_test

import (
	"testing"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/identity"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// ── Normalize ──────────────────────────────────────────────────────────────

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Backend Engineer", "backend engineer"},
		{"  Backend   Engineer  ", "backend engineer"},
		{"backend-engineer", "backend engineer"},
		{"Backend/Engineer", "backend engineer"},
		{"Désarrolladór Báckend", "desarrollador backend"},
		{"BACKEND_ENGINEER", "backend engineer"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := identity.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// ── Keyer ──────────────────────────────────────────────────────────────────

func TestNormalizedKeyer_StableAcrossRendering(t *testing.T) {
	k := identity.NormalizedKeyer{}

	a := model.RawPosting{Portal: "indeed", Title: "Backend Engineer", Company: "Acme"}
	b := model.RawPosting{Portal: "indeed", Title: "backend   engineer", Company: "ACME"}

	if k.Key(a) != k.Key(b) {
		t.Errorf("equivalent postings produced different identities: %q vs %q", k.Key(a), k.Key(b))
	}
}

func TestNormalizedKeyer_DistinctPostingsDiffer(t *testing.T) {
	k := identity.NormalizedKeyer{}

	base := model.RawPosting{Portal: "indeed", Title: "Backend Engineer", Company: "Acme"}
	variants := []model.RawPosting{
		{Portal: "infojobs", Title: "Backend Engineer", Company: "Acme"},
		{Portal: "indeed", Title: "Frontend Engineer", Company: "Acme"},
		{Portal: "indeed", Title: "Backend Engineer", Company: "Globex"},
	}
	for _, v := range variants {
		if k.Key(base) == k.Key(v) {
			t.Errorf("distinct posting %+v collided with base identity %q", v, k.Key(base))
		}
	}
}

func TestNormalizedKeyer_SalaryAndURLExcluded(t *testing.T) {
	k := identity.NormalizedKeyer{}

	a := model.RawPosting{Portal: "indeed", Title: "Backend Engineer", Company: "Acme", Salary: "30k", URL: "https://a"}
	b := model.RawPosting{Portal: "indeed", Title: "Backend Engineer", Company: "Acme", Salary: "32k", URL: "https://b"}

	if k.Key(a) != k.Key(b) {
		t.Error("salary/URL changes must not change a posting's identity")
	}
}
