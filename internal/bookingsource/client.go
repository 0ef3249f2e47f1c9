// Package bookingsource reads the booking list from the upstream booking API.
package bookingsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Domenick1991/airquery/config"
	"github.com/Domenick1991/airquery/internal/domain"
)

const defaultMessage = "failed to fetch bookings"

// SourceError is returned when the upstream answers but refuses the request,
// either with a non-2xx status or with meta.status set to false.
type SourceError struct {
	StatusCode int
	Message    string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("booking source: %s (status %d)", e.Message, e.StatusCode)
}

type meta struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type envelope struct {
	Meta meta             `json:"meta"`
	Data []domain.Booking `json:"data"`
}

type Client struct {
	baseURL string
	perPage int
	client  *http.Client
}

func NewClient(cfg config.BookingSourceConfig) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.URL,
		perPage: cfg.PerPage,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Fetch(ctx context.Context) ([]domain.Booking, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid booking source url: %w", err)
	}
	if c.perPage > 0 {
		q := u.Query()
		q.Set("per_page", strconv.Itoa(c.perPage))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking source request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &SourceError{StatusCode: resp.StatusCode, Message: defaultMessage}
	}

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode booking list: %w", err)
	}
	if !body.Meta.Status {
		msg := body.Meta.Message
		if msg == "" {
			msg = defaultMessage
		}
		return nil, &SourceError{StatusCode: resp.StatusCode, Message: msg}
	}
	if body.Data == nil {
		return []domain.Booking{}, nil
	}
	return body.Data, nil
}
