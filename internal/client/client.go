// Package client is a typed HTTP client for the page content API.
package client

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

	"github.com/skillbanto/internal/content"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("page not found")

// StatusError describes any other non-success response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CreateRequest is the body of POST /api/pages.
type CreateRequest struct {
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Content   []content.Block `json:"content"`
	Published bool            `json:"published"`
}

// UpdateRequest is the body of PUT /api/pages/:id. Nil fields are omitted.
type UpdateRequest struct {
	Title     *string          `json:"title,omitempty"`
	Content   *[]content.Block `json:"content,omitempty"`
	Published *bool            `json:"published,omitempty"`
}

// Client talks to a running page content server.
type Client struct {
	baseURL string
	http    httpDoer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(doer httpDoer) Option {
	return func(c *Client) { c.http = doer }
}

// New returns a Client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPages returns every page, or only those matching published when non-nil.
func (c *Client) ListPages(ctx context.Context, published *bool) ([]content.Page, error) {
	path := "/api/pages"
	if published != nil {
		path += "?published=" + strconv.FormatBool(*published)
	}
	var pages []content.Page
	if err := c.do(ctx, http.MethodGet, path, nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Client) GetPage(ctx context.Context, id uint) (content.Page, error) {
	var page content.Page
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/pages/%d", id), nil, &page)
	return page, err
}

func (c *Client) GetPageBySlug(ctx context.Context, slug string) (content.Page, error) {
	var page content.Page
	err := c.do(ctx, http.MethodGet, "/api/pages/by-slug/"+url.PathEscape(slug), nil, &page)
	return page, err
}

func (c *Client) CreatePage(ctx context.Context, req CreateRequest) (content.Page, error) {
	if req.Content == nil {
		req.Content = []content.Block{}
	}
	var page content.Page
	err := c.do(ctx, http.MethodPost, "/api/pages", req, &page)
	return page, err
}

func (c *Client) UpdatePage(ctx context.Context, id uint, req UpdateRequest) (content.Page, error) {
	var page content.Page
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/pages/%d", id), req, &page)
	return page, err
}

func (c *Client) DeletePage(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/pages/%d", id), nil, nil)
}

// PageBySlug and UpdateContent let a Client back an editor session.
func (c *Client) PageBySlug(ctx context.Context, slug string) (content.Page, error) {
	return c.GetPageBySlug(ctx, slug)
}

func (c *Client) UpdateContent(ctx context.Context, id uint, blocks []content.Block, published bool) (content.Page, error) {
	payload := content.CloneBlocks(blocks)
	return c.UpdatePage(ctx, id, UpdateRequest{Content: &payload, Published: &published})
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}
