package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrUnavailable = errors.New("recommendation service unavailable")

// Client calls the external ML recommendation service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type mlResponse struct {
	Success         bool   `json:"success"`
	Recommendations []Item `json:"recommendations"`
	Error           string `json:"error"`
}

// Similar asks the service for n products like productID.
func (c *Client) Similar(ctx context.Context, productID string, n int) ([]Item, error) {
	if c == nil || c.baseURL == "" {
		return nil, ErrUnavailable
	}
	u := fmt.Sprintf("%s/recommend/%s?n=%s", c.baseURL, url.PathEscape(productID), strconv.Itoa(n))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	var body mlResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if !body.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, body.Error)
	}
	return body.Recommendations, nil
}
