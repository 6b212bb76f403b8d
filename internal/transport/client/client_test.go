package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventshare/internal/domain"
)

func TestNewClient(t *testing.T) {
	serverURL := "http://localhost:8080"
	client := NewClient(serverURL)

	assert.NotNil(t, client)
	assert.Equal(t, serverURL, client.serverURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_GenerateShare(t *testing.T) {
	t.Run("successful generation", func(t *testing.T) {
		expected := domain.ShareResult{
			ShareText:          "今月のイベント情報です！\n\n03/12 もくもく会\n\nhttps://example.com/events",
			IncludedEventCount: 1,
			WasTruncated:       false,
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/share", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(expected)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		result, err := client.GenerateShare(context.Background())
		require.NoError(t, err)
		assert.Equal(t, expected, *result)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GenerateShare(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server returned status 500")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("invalid json"))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GenerateShare(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.GenerateShare(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "context canceled")
	})
}

func TestClient_GetShareConfig(t *testing.T) {
	expected := domain.ShareConfig{
		DestinationURL: "https://example.com/events",
		Hashtags:       []string{"#イベント", "#勉強会"},
		BaseMessage:    "今月のイベント情報です！",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/config", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	cfg, err := client.GetShareConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, *cfg)
}

func TestClient_UpdateShareConfig(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		newConfig := domain.ShareConfig{
			DestinationURL: "https://example.org/next",
			Hashtags:       []string{"#next"},
			BaseMessage:    "来月の予定です",
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/config", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var got domain.ShareConfig
			err := json.NewDecoder(r.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, newConfig, got)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(got)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		updated, err := client.UpdateShareConfig(context.Background(), newConfig)
		require.NoError(t, err)
		assert.Equal(t, newConfig, *updated)
	})

	t.Run("validation error includes server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid destination URL", http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.UpdateShareConfig(context.Background(), domain.ShareConfig{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server returned status 400")
		assert.Contains(t, err.Error(), "invalid destination URL")
	})
}

func TestClient_CreateEvent(t *testing.T) {
	start := time.Date(2026, time.March, 12, 19, 0, 0, 0, time.UTC)

	t.Run("successful creation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/events", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req domain.CreateEventRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			assert.NoError(t, err)
			assert.Equal(t, "もくもく会", req.Title)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(domain.Event{
				ID:        "e1",
				Title:     req.Title,
				StartDate: req.StartDate,
				EndDate:   req.StartDate,
				Status:    domain.EventStatusPending,
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		event, err := client.CreateEvent(context.Background(), domain.CreateEventRequest{
			Title:     "もくもく会",
			StartDate: start,
		})
		require.NoError(t, err)
		assert.Equal(t, "e1", event.ID)
		assert.Equal(t, domain.EventStatusPending, event.Status)
	})

	t.Run("conflict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.CreateEvent(context.Background(), domain.CreateEventRequest{
			ID:        "taken",
			Title:     "もくもく会",
			StartDate: start,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "event 'taken' already exists")
	})

	t.Run("validation error includes server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "title cannot be empty", http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.CreateEvent(context.Background(), domain.CreateEventRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "title cannot be empty")
	})
}

func TestClient_ListEvents(t *testing.T) {
	t.Run("successful listing", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		expected := []domain.Event{
			{ID: "e1", Title: "もくもく会", StartDate: now, EndDate: now, Status: domain.EventStatusApproved},
			{ID: "e2", Title: "LT大会", StartDate: now.Add(time.Hour), EndDate: now.Add(2 * time.Hour), Status: domain.EventStatusPending},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/events", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(expected)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		events, err := client.ListEvents(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "e1", events[0].ID)
		assert.Equal(t, "e2", events[1].ID)
	})

	t.Run("empty list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode([]domain.Event{})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		events, err := client.ListEvents(context.Background())
		require.NoError(t, err)
		assert.Len(t, events, 0)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.ListEvents(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server returned status 500")
	})
}

func TestClient_GetEvent(t *testing.T) {
	t.Run("successful retrieval", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/events/e1", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(domain.Event{ID: "e1", Title: "もくもく会"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		event, err := client.GetEvent(context.Background(), "e1")
		require.NoError(t, err)
		assert.Equal(t, "e1", event.ID)
		assert.Equal(t, "もくもく会", event.Title)
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GetEvent(context.Background(), "ghost")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "event 'ghost' not found")
	})
}

func TestClient_UpdateEventStatus(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/events/e1", r.URL.Path)

			var req domain.UpdateEventStatusRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			assert.NoError(t, err)
			assert.Equal(t, "approved", req.Status)

			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.UpdateEventStatus(context.Background(), "e1", "approved")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.UpdateEventStatus(context.Background(), "ghost", "approved")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("unknown status includes server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `unknown event status "live"`, http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.UpdateEventStatus(context.Background(), "e1", "live")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown event status")
	})
}

func TestClient_DeleteEvent(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/events/e1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.DeleteEvent(context.Background(), "e1")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.DeleteEvent(context.Background(), "ghost")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("unexpected status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.DeleteEvent(context.Background(), "e1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server returned status 200")
	})
}

func TestClient_NetworkErrors(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	ctx := context.Background()

	t.Run("generate share network error", func(t *testing.T) {
		_, err := client.GenerateShare(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to make request")
	})

	t.Run("create event network error", func(t *testing.T) {
		_, err := client.CreateEvent(ctx, domain.CreateEventRequest{Title: "x"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to make request")
	})

	t.Run("delete event network error", func(t *testing.T) {
		err := client.DeleteEvent(ctx, "e1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to make request")
	})
}

func TestClient_InvalidServerURL(t *testing.T) {
	client := NewClient("://invalid-url")
	ctx := context.Background()

	_, err := client.GenerateShare(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create request")
}
