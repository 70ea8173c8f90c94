package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
)

// HTTPClient implements DataSource by calling the liftlog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// is sent as X-API-Key when set.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func limitParams(limit int) url.Values {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func (c *HTTPClient) Workouts(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := c.get(ctx, "/api/v1/catalog", nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) Progress(ctx context.Context) ([]tracker.ExerciseView, error) {
	var views []tracker.ExerciseView
	if err := c.get(ctx, "/api/v1/progress", nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *HTTPClient) WorkoutLog(ctx context.Context, limit int) ([]models.LogEntry, error) {
	var logs []models.LogEntry
	if err := c.get(ctx, "/api/v1/logs", limitParams(limit), &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *HTTPClient) CurrentWorkout(ctx context.Context) (*tracker.CurrentWorkout, error) {
	var view tracker.View
	if err := c.get(ctx, "/api/v1/state", nil, &view); err != nil {
		return nil, err
	}
	return view.Current, nil
}

func (c *HTTPClient) History(ctx context.Context, exerciseID string, limit int) ([]models.HistoryEntry, error) {
	params := limitParams(limit)
	if exerciseID != "" {
		params.Set("exercise", exerciseID)
	}
	var entries []models.HistoryEntry
	if err := c.get(ctx, "/api/v1/history", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
