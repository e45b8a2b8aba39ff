package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Insights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/insights", r.URL.Path)
		assert.Equal(t, "user-1", r.Header.Get("X-User-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"title":"Coffee creep","body":"Your cafe spend doubled."}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	insights, err := client.Insights(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "Coffee creep", insights[0].Title)
}

func TestClient_Forecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forecast", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":"Tight month ahead","highlights":["Rent due early"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	note, err := client.Forecast(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Tight month ahead", note.Summary)
	assert.Len(t, note.Highlights, 1)
}

func TestClient_SidecarErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	_, err := client.Risks(context.Background(), "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_SidecarDown(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond)

	_, err := client.Insights(context.Background(), "user-1")

	assert.Error(t, err)
}
