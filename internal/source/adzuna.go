package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

const (
	adzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize = 20
)

// AdzunaAdapter fetches job offers from the Adzuna public API.
// If AppID or AppKey is empty, FetchPostings returns (nil, nil) gracefully —
// the cycle simply skips this portal and logs a warning.
type AdzunaAdapter struct {
	AppID   string
	AppKey  string
	Country string // "es", "gb", "us", …
	baseURL string
	client  *http.Client
}

// NewAdzunaAdapter constructs an Adzuna adapter.
func NewAdzunaAdapter(appID, appKey, country string) *AdzunaAdapter {
	return &AdzunaAdapter{
		AppID:   appID,
		AppKey:  appKey,
		Country: country,
		baseURL: adzunaBaseURL,
		client:  newHTTPClient(),
	}
}

// Name implements Adapter.
func (a *AdzunaAdapter) Name() string { return "adzuna" }

// adzunaResponse mirrors the top-level Adzuna JSON response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

// adzunaResult mirrors a single Adzuna job listing.
type adzunaResult struct {
	Title       string        `json:"title"`
	Company     adzunaCompany `json:"company"`
	SalaryMin   float64       `json:"salary_min"`
	SalaryMax   float64       `json:"salary_max"`
	RedirectURL string        `json:"redirect_url"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

// FetchPostings retrieves the first page of offers for query.
// Returns nil without error when credentials are missing.
func (a *AdzunaAdapter) FetchPostings(ctx context.Context, query string) ([]model.RawPosting, error) {
	if a.AppID == "" || a.AppKey == "" {
		log.Println("[adzuna] ADZUNA_APP_ID / ADZUNA_APP_KEY not set — skipping portal")
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/%s/search/1", a.baseURL, a.Country)

	params := url.Values{}
	params.Set("app_id", a.AppID)
	params.Set("app_key", a.AppKey)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	params.Set("what", query)
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	postings := make([]model.RawPosting, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		if r.Title == "" {
			continue
		}
		postings = append(postings, model.RawPosting{
			Portal:  a.Name(),
			Title:   r.Title,
			Company: r.Company.DisplayName,
			URL:     r.RedirectURL,
			Salary:  formatSalaryRange(r.SalaryMin, r.SalaryMax),
		})
	}
	return postings, nil
}

// formatSalaryRange renders Adzuna's numeric salary bounds as display text.
// Both bounds absent means the portal did not disclose a salary.
func formatSalaryRange(min, max float64) string {
	switch {
	case min > 0 && max > 0 && min != max:
		return fmt.Sprintf("%.0f – %.0f", min, max)
	case max > 0:
		return fmt.Sprintf("%.0f", max)
	case min > 0:
		return fmt.Sprintf("%.0f", min)
	default:
		return ""
	}
}
