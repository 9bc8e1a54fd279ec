package pushover

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	apiURL  = "https://api.pushover.net/1/messages.json"
	timeout = 10 * time.Second
)

// Client represents a Pushover API client for one recipient.
type Client struct {
	appToken   string
	userKey    string
	device     string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a Pushover client. The device is optional; an empty
// device delivers to all of the recipient's devices.
func NewClient(appToken, userKey, device string) (*Client, error) {
	if appToken == "" {
		return nil, fmt.Errorf("app token is required")
	}
	if userKey == "" {
		return nil, fmt.Errorf("user key is required")
	}

	return &Client{
		appToken: appToken,
		userKey:  userKey,
		device:   device,
		apiURL:   apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Message is one notification to deliver.
type Message struct {
	Title    string
	Body     string
	Priority int // -2 to 2, 1 for schedule changes
	HTML     bool
}

// Send delivers a message to the configured recipient.
func (c *Client) Send(msg Message) error {
	if msg.Body == "" {
		return fmt.Errorf("message body is required")
	}

	form := url.Values{}
	form.Set("token", c.appToken)
	form.Set("user", c.userKey)
	form.Set("title", msg.Title)
	form.Set("message", msg.Body)
	form.Set("priority", strconv.Itoa(msg.Priority))
	form.Set("sound", "pushover")
	if c.device != "" {
		form.Set("device", c.device)
	}
	if msg.HTML {
		form.Set("html", "1")
	}

	resp, err := c.httpClient.Post(c.apiURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var result struct {
		Status int      `json:"status"`
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	if result.Status != 1 {
		if len(result.Errors) > 0 {
			return fmt.Errorf("pushover API error: %s", strings.Join(result.Errors, "; "))
		}
		return fmt.Errorf("pushover API error (status %d)", resp.StatusCode)
	}

	return nil
}
