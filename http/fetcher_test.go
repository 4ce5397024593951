package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	lochttp "github.com/fwojciec/frontier/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_returns_body_and_metadata(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><title>hi</title></html>"))
	}))
	defer srv.Close()

	f := lochttp.NewFetcher()
	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, result.URL)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", result.ContentType)
	assert.Contains(t, string(result.Body), "<title>hi</title>")
}

func TestFetcher_non_2xx_is_a_result_not_an_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := lochttp.NewFetcher()
	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestFetcher_sends_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := lochttp.NewFetcher(lochttp.WithUserAgent("test-agent/2.0"))
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "test-agent/2.0", gotUA)
}

func TestFetcher_times_out(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	f := lochttp.NewFetcher(lochttp.WithTimeout(50 * time.Millisecond))
	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Error(t, err, "slow responses surface as fetch failures")
}

func TestFetcher_caps_body_size(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	f := lochttp.NewFetcher(lochttp.WithMaxBodyBytes(100))
	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Len(t, result.Body, 100)
}

func TestFetcher_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := lochttp.NewFetcher()
	_, err := f.Fetch(ctx, srv.URL)

	assert.Error(t, err)
}
