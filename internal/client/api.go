// Package client hosts the client side of the standup workflow: the REST
// client for the tracker service, the local entry cache and the Store that
// reconciles the two and applies mutations optimistically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
)

// API is the slice of the tracker service the Store depends on.
type API interface {
	ListStandups(ctx context.Context) ([]entity.StandupEntry, error)
	CreateStandup(ctx context.Context, entry entity.StandupEntry) (*entity.StandupEntry, error)
	UpdateStandup(ctx context.Context, id uuid.UUID, upd entity.StandupUpdate) (*entity.StandupEntry, error)
	DeleteStandup(ctx context.Context, id uuid.UUID) error
}

// APIClient talks to the tracker service REST API.
type APIClient struct {
	baseURL      string
	userID       string
	sessionToken string
	httpClient   *http.Client
}

// NewAPIClient creates a client for the tracker service.
func NewAPIClient(baseURL, userID, sessionToken string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &APIClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		userID:       userID,
		sessionToken: sessionToken,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// standupJSON is the wire shape of a standup entry.
type standupJSON struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	RepoFullName  string          `json:"repoFullName"`
	Date          string          `json:"date"`
	WorkCompleted string          `json:"workCompleted"`
	WorkPlanned   string          `json:"workPlanned"`
	Blockers      string          `json:"blockers"`
	TaskIDs       []string        `json:"taskIds"`
	Commits       []entity.Commit `json:"commits"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (s standupJSON) toEntity() (entity.StandupEntry, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return entity.StandupEntry{}, fmt.Errorf("invalid standup id %q: %w", s.ID, err)
	}
	return entity.StandupEntry{
		ID:            id,
		UserID:        s.UserID,
		RepoFullName:  s.RepoFullName,
		Date:          s.Date,
		WorkCompleted: s.WorkCompleted,
		WorkPlanned:   s.WorkPlanned,
		Blockers:      s.Blockers,
		TaskIDs:       s.TaskIDs,
		Commits:       s.Commits,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

// ListStandups fetches all entries for the signed-in user.
func (c *APIClient) ListStandups(ctx context.Context) ([]entity.StandupEntry, error) {
	var raw []standupJSON
	q := url.Values{}
	q.Set("userId", c.userID)
	if err := c.do(ctx, http.MethodGet, "/api/standups", q, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch standups: %w", err)
	}

	entries := make([]entity.StandupEntry, 0, len(raw))
	for _, r := range raw {
		e, err := r.toEntity()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CreateStandup persists a new entry; the server assigns the authoritative id.
func (c *APIClient) CreateStandup(ctx context.Context, entry entity.StandupEntry) (*entity.StandupEntry, error) {
	body := map[string]any{
		"repoFullName":  entry.RepoFullName,
		"date":          entry.Date,
		"workCompleted": entry.WorkCompleted,
		"workPlanned":   entry.WorkPlanned,
		"blockers":      entry.Blockers,
		"taskIds":       entry.TaskIDs,
		"commits":       entry.Commits,
	}

	q := url.Values{}
	q.Set("userId", c.userID)

	var raw standupJSON
	if err := c.do(ctx, http.MethodPost, "/api/standups", q, body, &raw); err != nil {
		return nil, fmt.Errorf("failed to create standup: %w", err)
	}
	created, err := raw.toEntity()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStandup applies a partial update to an entry.
func (c *APIClient) UpdateStandup(ctx context.Context, id uuid.UUID, upd entity.StandupUpdate) (*entity.StandupEntry, error) {
	body := map[string]any{}
	if upd.Date != nil {
		body["date"] = *upd.Date
	}
	if upd.WorkCompleted != nil {
		body["workCompleted"] = *upd.WorkCompleted
	}
	if upd.WorkPlanned != nil {
		body["workPlanned"] = *upd.WorkPlanned
	}
	if upd.Blockers != nil {
		body["blockers"] = *upd.Blockers
	}
	if upd.TaskIDs != nil {
		body["taskIds"] = upd.TaskIDs
	}

	var raw standupJSON
	if err := c.do(ctx, http.MethodPut, "/api/standups/"+id.String(), nil, body, &raw); err != nil {
		return nil, fmt.Errorf("failed to update standup: %w", err)
	}
	updated, err := raw.toEntity()
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStandup removes an entry.
func (c *APIClient) DeleteStandup(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/standups/"+id.String(), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete standup: %w", err)
	}
	return nil
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.sessionToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("server responded %d: %s", resp.StatusCode, errBody.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
