package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cowguru2000/scili-dvds/internal/domain"
)

func TestFetchRecordPage_ReturnsBody(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("<td>AVAILABLE</td>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	body, err := c.FetchRecordPage(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(body, "AVAILABLE") {
		t.Fatalf("expected body passthrough, got %q", body)
	}
	if gotPath != "/record=ABC123" {
		t.Fatalf("expected templated record path, got %q", gotPath)
	}
}

func TestFetchRecordPage_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "catalog offline", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchRecordPage(context.Background(), "ABC123")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestFetchRecordPage_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL)
	_, err := c.FetchRecordPage(context.Background(), "ABC123")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestFetchRecordPage_TimeoutBoundsSlowUpstream(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.FetchRecordPage(context.Background(), "ABC123")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("lookup not bounded by timeout, took %s", elapsed)
	}
}

func TestFetchRecordPage_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL)
	if _, err := c.FetchRecordPage(ctx, "ABC123"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
