package postman

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned JSON and records the last request.
func fakeAPI(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &captured
}

func TestClient_Auth(t *testing.T) {
	server, captured := fakeAPI(t, http.StatusOK, `{"user": {"email": "a@b.c"}}`)
	client := NewClient("PMAK-test-key", WithBaseURL(server.URL))

	_, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PMAK-test-key", captured.Header.Get("X-Api-Key"))
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/me", captured.URL.Path)
}

func TestClient_GetMe(t *testing.T) {
	server, _ := fakeAPI(t, http.StatusOK, `{
		"user": {
			"id": 12345,
			"username": "dev",
			"email": "dev@example.com",
			"fullName": "Dev Eloper",
			"teamName": "Platform",
			"teamDomain": "platform-team"
		}
	}`)
	client := NewClient("key", WithBaseURL(server.URL))

	user, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", user.Email)
	assert.Equal(t, "Dev Eloper", user.FullName)
	assert.Equal(t, "Platform", user.TeamName)
}

func TestClient_ListWorkspaces(t *testing.T) {
	server, _ := fakeAPI(t, http.StatusOK, `{
		"workspaces": [
			{"id": "ws-1", "name": "Team", "type": "team"},
			{"id": "ws-2", "name": "Personal", "type": "personal"}
		]
	}`)
	client := NewClient("key", WithBaseURL(server.URL))

	workspaces, err := client.ListWorkspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, "ws-1", workspaces[0].ID)
	assert.Equal(t, "personal", workspaces[1].Type)
}

func TestClient_GetWorkspace(t *testing.T) {
	server, captured := fakeAPI(t, http.StatusOK, `{
		"workspace": {
			"id": "ws-1",
			"name": "Team",
			"type": "team",
			"collections": [{"id": "c-1", "uid": "u-c-1", "name": "Orders API"}],
			"environments": [{"id": "e-1", "name": "Prod"}]
		}
	}`)
	client := NewClient("key", WithBaseURL(server.URL))

	ws, err := client.GetWorkspace(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "/workspaces/ws-1", captured.URL.Path)
	require.Len(t, ws.Collections, 1)
	assert.Equal(t, "Orders API", ws.Collections[0].Name)
	require.Len(t, ws.Environments, 1)
	assert.Equal(t, "Prod", ws.Environments[0].Name)
}

func TestClient_ListCollections(t *testing.T) {
	t.Run("without workspace filter", func(t *testing.T) {
		server, captured := fakeAPI(t, http.StatusOK, `{"collections": []}`)
		client := NewClient("key", WithBaseURL(server.URL))

		_, err := client.ListCollections(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, captured.URL.Query().Get("workspace"))
	})

	t.Run("with workspace filter", func(t *testing.T) {
		server, captured := fakeAPI(t, http.StatusOK, `{
			"collections": [{"id": "c-1", "uid": "owner-c-1", "name": "Orders", "updatedAt": "2026-01-02T03:04:05Z"}]
		}`)
		client := NewClient("key", WithBaseURL(server.URL))

		collections, err := client.ListCollections(context.Background(), "ws-1")
		require.NoError(t, err)
		assert.Equal(t, "ws-1", captured.URL.Query().Get("workspace"))
		require.Len(t, collections, 1)
		assert.Equal(t, "owner-c-1", collections[0].UID)
	})
}

func TestClient_GetCollection(t *testing.T) {
	server, _ := fakeAPI(t, http.StatusOK, `{
		"collection": {
			"info": {"name": "Orders API"},
			"item": [
				{
					"name": "Auth",
					"item": [
						{"name": "Login", "request": {"method": "POST", "url": "https://api.example.com/login"}}
					]
				},
				{"name": "Health", "request": {"method": "GET", "url": {"raw": "https://api.example.com/health"}}}
			]
		}
	}`)
	client := NewClient("key", WithBaseURL(server.URL))

	col, err := client.GetCollection(context.Background(), "owner-c-1")
	require.NoError(t, err)
	assert.Equal(t, "Orders API", col.Info.Name)
	require.Len(t, col.Items, 2)

	folder := col.Items[0]
	assert.True(t, folder.IsFolder())
	require.Len(t, folder.Items, 1)
	assert.Equal(t, "POST", folder.Items[0].Request.Method)
	assert.Equal(t, "https://api.example.com/login", folder.Items[0].Request.URL.String())

	request := col.Items[1]
	assert.False(t, request.IsFolder())
	assert.Equal(t, "https://api.example.com/health", request.Request.URL.String())
}

func TestClient_Environments(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		server, captured := fakeAPI(t, http.StatusOK, `{
			"environments": [{"id": "e-1", "name": "Prod"}, {"id": "e-2", "name": "Staging"}]
		}`)
		client := NewClient("key", WithBaseURL(server.URL))

		envs, err := client.ListEnvironments(context.Background(), "ws-9")
		require.NoError(t, err)
		assert.Equal(t, "ws-9", captured.URL.Query().Get("workspace"))
		require.Len(t, envs, 2)
		assert.Equal(t, "Staging", envs[1].Name)
	})

	t.Run("get", func(t *testing.T) {
		server, _ := fakeAPI(t, http.StatusOK, `{
			"environment": {
				"id": "e-1",
				"name": "Prod",
				"values": [
					{"key": "base_url", "value": "https://api.example.com", "type": "default", "enabled": true},
					{"key": "api_token", "value": "s3cret", "type": "secret"}
				]
			}
		}`)
		client := NewClient("key", WithBaseURL(server.URL))

		env, err := client.GetEnvironment(context.Background(), "e-1")
		require.NoError(t, err)
		assert.Equal(t, "Prod", env.Name)
		require.Len(t, env.Values, 2)
		assert.True(t, env.Values[0].IsEnabled())
		assert.True(t, env.Values[1].IsEnabled(), "missing enabled flag means enabled")
	})
}

func TestClient_APIError(t *testing.T) {
	t.Run("carries status and body", func(t *testing.T) {
		server, _ := fakeAPI(t, http.StatusNotFound, `{"error": {"name": "instanceNotFoundError"}}`)
		client := NewClient("key", WithBaseURL(server.URL))

		_, err := client.GetEnvironment(context.Background(), "nope")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "instanceNotFoundError")
		assert.True(t, apiErr.IsNotFound())
	})

	t.Run("malformed id counts as not found", func(t *testing.T) {
		err := &APIError{StatusCode: http.StatusBadRequest, Status: "400 Bad Request"}
		assert.True(t, err.IsNotFound())
	})

	t.Run("auth failure is not not-found", func(t *testing.T) {
		server, _ := fakeAPI(t, http.StatusUnauthorized, `{"error": {"name": "AuthenticationError"}}`)
		client := NewClient("bad-key", WithBaseURL(server.URL))

		_, err := client.ListWorkspaces(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.False(t, apiErr.IsNotFound())
	})

	t.Run("transport error is not an APIError", func(t *testing.T) {
		client := NewClient("key", WithBaseURL("http://127.0.0.1:1"))
		_, err := client.ListWorkspaces(context.Background())
		require.Error(t, err)

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}
