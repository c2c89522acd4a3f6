// Package model defines shared data structures for the job monitor.
package model

import "time"

// Default values substituted for posting fields a portal page did not expose.
// Adapters apply these before handing a batch to the core, so downstream code
// never deals with partially extracted postings.
const (
	UnknownCompany    = "Unknown"
	UnspecifiedSalary = "Not specified"
)

// RawPosting is a single job advertisement as surfaced by one portal at one
// point in time. It is transient — only its StoredPosting form is persisted.
type RawPosting struct {
	Portal  string `json:"portal"`
	Title   string `json:"title"`
	Company string `json:"company"`
	URL     string `json:"url,omitempty"`
	Salary  string `json:"salary"`
}

// ApplyDefaults fills every optional field that extraction left empty with
// its documented default. Title and Portal are mandatory; a posting without
// them should have been discarded by the adapter.
func (p *RawPosting) ApplyDefaults() {
	if p.Company == "" {
		p.Company = UnknownCompany
	}
	if p.Salary == "" {
		p.Salary = UnspecifiedSalary
	}
}

// StoredPosting is the durable record of a posting the monitor has seen.
// Created exactly once per distinct identity, never updated, never deleted.
type StoredPosting struct {
	Identity     string    `json:"identity"`
	Portal       string    `json:"portal"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	URL          string    `json:"url,omitempty"`
	Salary       string    `json:"salary"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// Summary is the once-daily rollup of postings discovered on one calendar day.
// Count is zero on quiet days — that is still a report, not an error.
type Summary struct {
	Day      time.Time       `json:"day"`
	Count    int             `json:"count"`
	Postings []StoredPosting `json:"postings"`
}
