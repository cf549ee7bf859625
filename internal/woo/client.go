// Package woo is the outbound gateway to the WooCommerce REST API and
// the storefront's legacy wc-ajax endpoints. It does request/response
// mapping only; read-failure policy lives in the catalog service.
package woo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	// DefaultTimeout bounds every outbound call; the remote API defines
	// no SLA, so a stuck request must not hold a render indefinitely.
	DefaultTimeout = 10 * time.Second

	DefaultPerPage = 50
)

var (
	ErrNotFound = errors.New("resource not found")
)

type Config struct {
	// BaseURL is the versioned REST root, e.g. https://host/wp-json/wc/v3.
	BaseURL string
	// AjaxURL is the storefront root serving wc-ajax actions.
	AjaxURL string
	// ConsumerKey/ConsumerSecret authenticate via basic auth.
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

type Client struct {
	baseURL string
	ajaxURL string
	key     string
	secret  string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "woocommerce",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		ajaxURL: strings.TrimRight(cfg.AjaxURL, "/"),
		key:     cfg.ConsumerKey,
		secret:  cfg.ConsumerSecret,
		httpc:   &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

// get issues an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

// postJSON issues an authenticated POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	req.SetBasicAuth(c.key, c.secret)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("woocommerce %s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("woocommerce %s %s: status %d: %s",
				method, path, resp.StatusCode, apiErrorMessage(data))
		}
		return data, nil
	})
}

// PostForm issues a form-encoded POST to the storefront wc-ajax
// endpoint. These actions predate the REST API and keep their
// form-encoded contract.
func (c *Client) PostForm(ctx context.Context, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ajaxURL+"/",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("storefront post: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("storefront post: status %d", resp.StatusCode)
		}
		return data, nil
	})
}

// apiErrorMessage pulls the message out of a WooCommerce error body,
// falling back to a bounded slice of the raw payload.
func apiErrorMessage(data []byte) string {
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Message != "" {
		return e.Message
	}
	if len(data) > 120 {
		data = data[:120]
	}
	return string(data)
}

func pageQuery(q url.Values, page, perPage int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	q.Set("per_page", strconv.Itoa(perPage))
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}
