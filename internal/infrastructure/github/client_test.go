package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login/oauth/access_token", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "client-id", body["client_id"])
		assert.Equal(t, "the-code", body["code"])

		json.NewEncoder(w).Encode(map[string]string{"access_token": "gho_token"})
	}))
	defer srv.Close()

	c := NewClient("client-id", "secret", WithOAuthBaseURL(srv.URL))
	token, err := c.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "gho_token", token)
}

func TestExchangeCode_GitHubError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "bad_verification_code",
			"error_description": "The code passed is incorrect or expired.",
		})
	}))
	defer srv.Close()

	c := NewClient("client-id", "secret", WithOAuthBaseURL(srv.URL))
	_, err := c.ExchangeCode(context.Background(), "stale")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect or expired")
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"id": 42, "login": "octocat", "name": ""})
	}))
	defer srv.Close()

	c := NewClient("", "", WithAPIBaseURL(srv.URL))
	user, err := c.GetUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	// A missing display name falls back to the login.
	assert.Equal(t, "octocat", user.Name)
}

func TestListCommits_Pagination(t *testing.T) {
	page2 := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octocat/widgets/commits", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("sha"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `[
				{"sha":"aaa","commit":{"message":"first\n\nbody","author":{"name":"o","date":"2026-02-02T10:00:00Z"}}},
				{"sha":"bbb","commit":{"message":"second","author":null}}
			]`)
		case "2":
			page2 = true
			fmt.Fprint(w, `[{"sha":"ccc","commit":{"message":"third","author":{"name":"o","date":"2026-02-02T12:00:00Z"}}}]`)
		default:
			t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	c := NewClient("", "", WithAPIBaseURL(srv.URL))
	since := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	commits, err := c.ListCommits(context.Background(), "tok", "octocat", "widgets", CommitOptions{
		Branch:  "main",
		Since:   &since,
		PerPage: 2,
	})
	require.NoError(t, err)
	assert.True(t, page2, "short page should end pagination after the second page")

	require.Len(t, commits, 3)
	assert.Equal(t, "aaa", commits[0].SHA)
	assert.Equal(t, "first", commits[0].Summary())
	// Merge-style commits come back with no author block at all.
	assert.Nil(t, commits[1].AuthorDate)
	assert.Equal(t, "ccc", commits[2].SHA)
}

func TestListCommits_EmptyRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Git Repository is empty."})
	}))
	defer srv.Close()

	c := NewClient("", "", WithAPIBaseURL(srv.URL))
	commits, err := c.ListCommits(context.Background(), "tok", "octocat", "empty", CommitOptions{})
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestListCommits_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "upstream down"})
	}))
	defer srv.Close()

	c := NewClient("", "", WithAPIBaseURL(srv.URL))
	_, err := c.ListCommits(context.Background(), "tok", "octocat", "widgets", CommitOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestListBranches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octocat/widgets/branches", r.URL.Path)
		fmt.Fprint(w, `[{"name":"main"},{"name":"develop"}]`)
	}))
	defer srv.Close()

	c := NewClient("", "", WithAPIBaseURL(srv.URL))
	branches, err := c.ListBranches(context.Background(), "tok", "octocat/widgets")
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "develop"}, branches)
}
