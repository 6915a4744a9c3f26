// Package placeholder implements the service.Service interface against a
// JSONPlaceholder-style REST API (/todos and /users).
package placeholder

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
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	tasksPath  = "todos"
	ownersPath = "users"

	// DefaultUserAgent is sent when the config does not set one.
	DefaultUserAgent = "todo-cli/0.1.0"

	// RequestIDHeader carries a per-request UUID for log correlation.
	RequestIDHeader = "X-Request-Id"
)

// Client implements service.Service over HTTP.
type Client struct {
	http      *http.Client
	base      *url.URL
	userAgent string // empty when the transport sets it
	timeout   time.Duration
}

// New creates a client for cfg.BaseURL. No credentials are attached and
// the transport sets the User-Agent header.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient, _, err := htransport.NewClient(ctx,
		option.WithoutAuthentication(),
		option.WithUserAgent(userAgent(cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}
	return newClient(httpClient, cfg, "")
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// User-Agent is set on each request.
func NewWithHTTPClient(httpClient *http.Client, cfg *config.Config) (*Client, error) {
	return newClient(httpClient, cfg, userAgent(cfg))
}

func newClient(httpClient *http.Client, cfg *config.Config, ua string) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base_url: %s", cfg.BaseURL)
	}

	return &Client{
		http:      httpClient,
		base:      base,
		userAgent: ua,
		timeout:   cfg.Timeout,
	}, nil
}

func userAgent(cfg *config.Config) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return DefaultUserAgent
}

// FetchTasks returns at most limit tasks.
func (c *Client) FetchTasks(ctx context.Context, limit int) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, limitQuery(limit), nil, &tasks, tasksPath); err != nil {
		return nil, wrapError("fetch tasks", err)
	}
	return tasks, nil
}

// FetchOwners returns at most limit owners.
func (c *Client) FetchOwners(ctx context.Context, limit int) ([]service.Owner, error) {
	var owners []service.Owner
	if err := c.do(ctx, http.MethodGet, limitQuery(limit), nil, &owners, ownersPath); err != nil {
		return nil, wrapError("fetch owners", err)
	}
	return owners, nil
}

// CreateTask posts a new task and returns the server's copy of it.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, http.MethodPost, nil, task, &created, tasksPath); err != nil {
		return service.Task{}, wrapError("create task", err)
	}
	return created, nil
}

// SetTaskCompleted patches the completed flag of a task.
func (c *Client) SetTaskCompleted(ctx context.Context, id service.ID, completed bool) error {
	body := struct {
		Completed bool `json:"completed"`
	}{completed}

	if err := c.do(ctx, http.MethodPatch, nil, body, nil, tasksPath, id.String()); err != nil {
		return wrapError("update task "+id.String(), err)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id service.ID) error {
	if err := c.do(ctx, http.MethodDelete, nil, nil, nil, tasksPath, id.String()); err != nil {
		return wrapError("delete task "+id.String(), err)
	}
	return nil
}

// do sends one request and decodes a 2xx JSON response into out.
// Non-2xx responses come back as *googleapi.Error.
func (c *Client) do(ctx context.Context, method string, query url.Values, in, out any, path ...string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.base.JoinPath(path...)
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logr.FromContextOrDiscard(ctx).WithValues("method", method, "url", u.String(), "requestID", requestID)
	log.V(1).Info("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.V(1).Info("request failed", "error", err.Error())
		return err
	}
	defer resp.Body.Close()

	log.V(1).Info("received response", "status", resp.StatusCode)

	if err := googleapi.CheckResponse(resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response body: %w", err)
	}
	return nil
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("_limit", strconv.Itoa(limit))
	}
	return q
}

// wrapError turns any request failure into a *service.RemoteError.
func wrapError(op string, err error) error {
	var apiErr *googleapi.Error
	switch {
	case errors.As(err, &apiErr):
		return &service.RemoteError{Op: op, Status: apiErr.Code, Err: service.ErrConnection}
	case errors.Is(err, context.DeadlineExceeded):
		return &service.RemoteError{Op: op, Err: service.ErrTimeout}
	default:
		return &service.RemoteError{Op: op, Err: err}
	}
}
