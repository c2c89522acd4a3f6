package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

const remotiveBaseURL = "https://remotive.com/api/remote-jobs"

// RemotiveAdapter fetches remote job offers from the Remotive public API.
// No credentials required.
type RemotiveAdapter struct {
	baseURL string
	client  *http.Client
}

// NewRemotiveAdapter constructs a Remotive adapter.
func NewRemotiveAdapter() *RemotiveAdapter {
	return &RemotiveAdapter{
		baseURL: remotiveBaseURL,
		client:  newHTTPClient(),
	}
}

// Name implements Adapter.
func (r *RemotiveAdapter) Name() string { return "remotive" }

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	URL         string `json:"url"`
	Salary      string `json:"salary"`
}

// FetchPostings returns Remotive's current matches for query.
func (r *RemotiveAdapter) FetchPostings(ctx context.Context, query string) ([]model.RawPosting, error) {
	params := url.Values{}
	params.Set("search", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remotive returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp remotiveResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	postings := make([]model.RawPosting, 0, len(apiResp.Jobs))
	for _, j := range apiResp.Jobs {
		if j.Title == "" {
			continue
		}
		postings = append(postings, model.RawPosting{
			Portal:  r.Name(),
			Title:   j.Title,
			Company: j.CompanyName,
			URL:     j.URL,
			Salary:  j.Salary,
		})
	}
	return postings, nil
}
