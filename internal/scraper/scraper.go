package scraper

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultScheduleURL is the intranet page the daily assignments are
	// published on.
	DefaultScheduleURL = "https://intranet.hospital.local/shared/viewdoc.php?A=daily_assignments"
	UserAgent          = "orwatch/1.0 (github.com/kbecker/orwatch)"
	Timeout            = 30 * time.Second

	maxFetchRetries = 3
)

// Scraper fetches the daily assignments page.
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for the given URL, falling back to
// DefaultScheduleURL when url is empty.
func New(url string) *Scraper {
	if url == "" {
		url = DefaultScheduleURL
	}
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// URL returns the page URL this scraper fetches.
func (s *Scraper) URL() string {
	return s.url
}

// Fetch retrieves the raw page content, retrying transient failures with
// exponential backoff. Client errors (4xx) are not retried.
func (s *Scraper) Fetch() (string, error) {
	var content string
	operation := func() error {
		body, err := s.fetchOnce()
		if err != nil {
			return err
		}
		content = body
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("fetching schedule: %w", err)
	}
	return content, nil
}

func (s *Scraper) fetchOnce() (string, error) {
	req, err := http.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(body), nil
}
