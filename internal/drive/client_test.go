package drive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetFolder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"folder-1","name":"Reports"}`))
	}))
	defer server.Close()

	client, err := NewClient("test-token", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	folder, err := client.GetFolder(context.Background(), "folder-1")
	require.NoError(t, err)
	assert.Equal(t, FolderInfo{ID: "folder-1", Name: "Reports"}, folder)
}

func TestClient_ListFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		assert.Contains(t, query, "'folder-1' in parents")
		assert.Contains(t, query, "modifiedTime >")
		assert.Equal(t, "25", r.URL.Query().Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files":[
			{"id":"file-1","name":"report.pdf","size":"2048","mimeType":"application/pdf",
			 "modifiedTime":"2025-10-27T09:30:00Z","createdTime":"2025-10-27T09:00:00Z",
			 "webViewLink":"https://drive.example.com/file-1",
			 "owners":[{"emailAddress":"alice@example.com"}]},
			{"id":"file-2","name":"broken","size":"x","mimeType":"text/plain",
			 "modifiedTime":"2025-10-27T09:30:00Z"}
		]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-token", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	files, err := client.ListFiles(context.Background(), "folder-1", ListOptions{
		ModifiedSince: time.Date(2025, 10, 27, 9, 0, 0, 0, time.UTC),
		Limit:         25,
	})
	require.NoError(t, err)

	// The file with unparsable metadata is skipped, not fatal.
	require.Len(t, files, 1)
	assert.Equal(t, "file-1", files[0].ID)
	assert.Equal(t, int64(2048), files[0].Size)
	assert.Equal(t, "alice@example.com", files[0].Owner)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"folder-1","name":"Reports"}`))
	}))
	defer server.Close()

	client, err := NewClient("test-token", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	client.retryPolicy.Sleep = func(context.Context, time.Duration) error { return nil }

	_, err = client.GetFolder(context.Background(), "folder-1")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient("test-token", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.GetFolder(context.Background(), "missing")
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient("", zerolog.Nop())
	assert.Error(t, err)
}
