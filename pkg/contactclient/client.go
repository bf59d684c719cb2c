// Package contactclient submits the contact form to the intake endpoint and
// tracks the form state a page renders: field values, inline errors, the
// in-flight flag and the toast shown for the outcome.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/creativemarketingpro/backend/pkg/contactform"
)

// ContactPath is the intake endpoint path.
const ContactPath = "/api/contact"

// DefaultTimeout bounds a single submission when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// StoredMessage is the record echoed back by the endpoint on success.
type StoredMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIError is a non-success reply from the endpoint.
type APIError struct {
	StatusCode int
	Message    string
	Errors     contactform.FieldErrors
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("contactclient: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("contactclient: unexpected status %d", e.StatusCode)
}

type envelope struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    *StoredMessage          `json:"data"`
	Errors  contactform.FieldErrors `json:"errors"`
}

// Client posts contact submissions.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + ContactPath,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends exactly one POST with in as the JSON body. A reply other than
// 201 with success=true comes back as *APIError; transport failures are
// returned wrapped.
func (c *Client) Submit(ctx context.Context, in contactform.Input) (*StoredMessage, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("contactclient: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("contactclient: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contactclient: post: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("contactclient: read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusCreated && decodeErr == nil && env.Success && env.Data != nil {
		return env.Data, nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if decodeErr == nil {
		apiErr.Message = env.Message
		apiErr.Errors = env.Errors
	}
	return nil, apiErr
}
