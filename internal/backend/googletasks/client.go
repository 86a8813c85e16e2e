// Package googletasks implements the service.Service interface using the
// Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"waynotes/internal/config"
	"waynotes/internal/service"
	"waynotes/internal/syncerr"
)

const (
	// PageSize is the number of tasks requested per page.
	PageSize = 100

	// APITimeout is the per-call timeout. A timeout classifies as a
	// network failure; nothing is retried within one invocation.
	APITimeout = 10 * time.Second

	// OAuth scope for Google Tasks
	tasksScope = "https://www.googleapis.com/auth/tasks"
)

// Client implements service.Service using the Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source auto-refreshes using the stored refresh token.
	tokenSource := oauthConfig.TokenSource(ctx, &token)
	httpClient := oauth2.NewClient(ctx, tokenSource)

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// ListLists returns all task lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []service.TaskList
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			result = append(result, service.TaskList{
				ID:    list.Id,
				Title: list.Title,
			})
		}
		return nil
	})
	if err != nil {
		return nil, classify("list task lists", err)
	}

	return result, nil
}

// ListTasks returns every task in a list, including completed and hidden
// ones, so the mirror sees the full remote existence set.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []service.Task
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, fromAPI(t, listID))
			}
			return nil
		})
	if err != nil {
		return nil, classify("list tasks", err)
	}

	return result, nil
}

// CreateTask creates a task and returns it with the service-assigned ID.
func (c *Client) CreateTask(ctx context.Context, listID, title string, done bool) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	created, err := c.svc.Tasks.Insert(listID, &tasks.Task{
		Title:  title,
		Status: statusOf(done),
	}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, classify("create task", err)
	}

	return fromAPI(created, listID), nil
}

// UpdateTask rewrites a task's title and completion status.
func (c *Client) UpdateTask(ctx context.Context, listID, taskID, title string, done bool) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	// Full update rather than patch: setting needsAction clears the
	// completed timestamp server-side.
	_, err := c.svc.Tasks.Update(listID, taskID, &tasks.Task{
		Id:     taskID,
		Title:  title,
		Status: statusOf(done),
	}).Context(ctx).Do()
	if err != nil {
		return classify("update task", err)
	}
	return nil
}

// DeleteTask deletes a task. A 404 is treated as success so a push
// interrupted after the remote delete can be re-run.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	err := c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return nil
		}
		return classify("delete task", err)
	}
	return nil
}

func statusOf(done bool) string {
	if done {
		return service.StatusCompleted
	}
	return service.StatusNeedsAction
}

func fromAPI(t *tasks.Task, listID string) service.Task {
	out := service.Task{
		ID:     t.Id,
		ListID: listID,
		Title:  t.Title,
		Status: t.Status,
	}
	if ts, err := time.Parse(time.RFC3339, t.Updated); err == nil {
		out.Updated = ts
	}
	if t.Completed != nil {
		if ts, err := time.Parse(time.RFC3339, *t.Completed); err == nil {
			out.Completed = &ts
		}
	}
	return out
}

// classify maps API errors onto the sync error taxonomy: 401/403 mean the
// token is expired or revoked, timeouts and transport errors are retryable
// network failures, anything else is an unexpected API error.
func classify(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return syncerr.New(syncerr.KindAuthExpired, op, err)
		default:
			return syncerr.New(syncerr.KindRemoteAPI, op, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return syncerr.New(syncerr.KindNetwork, op, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return syncerr.New(syncerr.KindNetwork, op, err)
	}

	return syncerr.New(syncerr.KindRemoteAPI, op, err)
}
