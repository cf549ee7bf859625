// Package wp is the outbound gateway to the WordPress content REST API.
package wp

import (
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

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultPerPage = 12
)

var ErrNotFound = errors.New("post not found")

type Config struct {
	// BaseURL is the versioned REST root, e.g. https://host/wp-json/wp/v2.
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "wordpress",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

type rendered struct {
	Rendered string `json:"rendered"`
}

type wirePost struct {
	ID       int64    `json:"id"`
	Title    rendered `json:"title"`
	Excerpt  rendered `json:"excerpt"`
	Content  rendered `json:"content"`
	Date     string   `json:"date"`
	Embedded struct {
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
			AltText   string `json:"alt_text"`
		} `json:"wp:featuredmedia"`
	} `json:"_embedded"`
}

func (w *wirePost) toDomain() domain.BlogPost {
	p := domain.BlogPost{
		ID:      w.ID,
		Title:   w.Title.Rendered,
		Excerpt: w.Excerpt.Rendered,
		Content: w.Content.Rendered,
	}
	if t, err := time.Parse("2006-01-02T15:04:05", w.Date); err == nil {
		p.Date = t
	} else if t, err := time.Parse(time.RFC3339, w.Date); err == nil {
		p.Date = t
	}
	if media := w.Embedded.FeaturedMedia; len(media) > 0 {
		p.FeaturedMedia = media[0].SourceURL
		p.MediaAlt = media[0].AltText
	}
	return p
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("wordpress GET %s: %w", path, err)
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
			return nil, fmt.Errorf("wordpress GET %s: status %d", path, resp.StatusCode)
		}
		return data, nil
	})
}

// ListPosts fetches one page of posts with embedded media.
func (c *Client) ListPosts(ctx context.Context, page, perPage int) ([]domain.BlogPost, error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	query := url.Values{}
	query.Set("_embed", "true")
	query.Set("per_page", strconv.Itoa(perPage))
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	data, err := c.get(ctx, "/posts", query)
	if err != nil {
		return nil, err
	}

	var wire []wirePost
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal posts failed: %w", err)
	}

	posts := make([]domain.BlogPost, 0, len(wire))
	for i := range wire {
		posts = append(posts, wire[i].toDomain())
	}
	return posts, nil
}

// GetPost fetches one post by id with embedded media.
func (c *Client) GetPost(ctx context.Context, id int64) (*domain.BlogPost, error) {
	query := url.Values{}
	query.Set("_embed", "true")

	data, err := c.get(ctx, "/posts/"+strconv.FormatInt(id, 10), query)
	if err != nil {
		return nil, err
	}

	var wire wirePost
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal post failed: %w", err)
	}
	post := wire.toDomain()
	return &post, nil
}
