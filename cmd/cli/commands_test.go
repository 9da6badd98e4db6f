package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	host, week, dryRun = "http://pickem", 3, true
	defer func() { host, week, dryRun = "http://localhost:8080", 0, false }()

	assert.Equal(t, "http://pickem/standings?dry_run=true&week=3", buildURL("/standings", weekQuery()))

	dryRun = false
	assert.Equal(t, "http://pickem/health", buildURL("/health", nil))
}

func TestPerformPostRequest(t *testing.T) {
	var gotPath, gotQuery, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotPath, gotQuery, gotType, gotBody = r.URL.Path, r.URL.RawQuery, r.Header.Get("Content-Type"), string(body)
		if r.URL.Query().Get("week") == "" {
			http.Error(w, "week required", http.StatusBadRequest)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	host = srv.URL
	defer func() { host, week = "http://localhost:8080", 0 }()

	week = 2
	err := performPostRequest("/poll", weekQuery(), "text/html; charset=utf-8", strings.NewReader(`"Chiefs"`))
	require.NoError(t, err)
	assert.Equal(t, "/poll", gotPath)
	assert.Equal(t, "week=2", gotQuery)
	assert.Equal(t, "text/html; charset=utf-8", gotType)
	assert.Equal(t, `"Chiefs"`, gotBody)

	week = 0
	err = performPostRequest("/poll", weekQuery(), "", nil)
	assert.Error(t, err)
}
