package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "v1.2.3", b: "v1.2.3", want: 0},
		{name: "older patch", a: "v1.2.2", b: "v1.2.3", want: -1},
		{name: "newer patch", a: "v1.2.4", b: "v1.2.3", want: 1},
		{name: "older minor", a: "v1.1.9", b: "v1.2.0", want: -1},
		{name: "newer major", a: "v2.0.0", b: "v1.9.9", want: 1},
		{name: "double digit beats single", a: "v0.0.10", b: "v0.0.9", want: 1},
		{name: "missing v prefix", a: "1.2.3", b: "v1.2.3", want: 0},
		{name: "unparseable falls back to lexical", a: "abc", b: "abd", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"tag_name": "v0.0.9"},
			{"tag_name": "v0.0.10"},
			{"tag_name": "backend-2024-01"},
			{"tag_name": "v0.0.2"}
		]`))
	}))
	defer server.Close()

	orig := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = orig }()

	latest, err := Latest()
	require.NoError(t, err)
	assert.Equal(t, "v0.0.10", latest)
}

func TestLatestNoReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"tag_name": "backend-2024-01"}]`))
	}))
	defer server.Close()

	orig := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = orig }()

	_, err := Latest()
	assert.Error(t, err)
}

func TestLatestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	orig := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = orig }()

	_, err := Latest()
	assert.Error(t, err)
}

func TestUpdateAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"tag_name": "v1.1.0"}]`))
	}))
	defer server.Close()

	orig := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = orig }()

	t.Run("older build", func(t *testing.T) {
		available, latest, err := UpdateAvailable("v1.0.0")
		require.NoError(t, err)
		assert.True(t, available)
		assert.Equal(t, "v1.1.0", latest)
	})

	t.Run("current build", func(t *testing.T) {
		available, _, err := UpdateAvailable("v1.1.0")
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("dev build skips the check", func(t *testing.T) {
		available, _, err := UpdateAvailable("dev")
		require.NoError(t, err)
		assert.False(t, available)
	})
}
