// Package todoapi fetches todos from a JSONPlaceholder-style HTTP API.
package todoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Client reads todos. It never writes; local edits stay local.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns every todo.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.get(ctx, "/todos", "list todos", &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Get returns the todo with the given id.
func (c *Client) Get(ctx context.Context, id int) (model.Todo, error) {
	var t model.Todo
	if err := c.get(ctx, "/todos/"+strconv.Itoa(id), "get todo "+strconv.Itoa(id), &t); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

func (c *Client) get(ctx context.Context, path, op string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api request", "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &model.APIError{
			Message: op,
			Response: &model.APIResponse{
				Status:     resp.StatusCode,
				StatusText: http.StatusText(resp.StatusCode),
			},
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: json decode: %w", op, err)
	}
	return nil
}
