package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosting_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Go Engineer</h1></body></html>"))
	}))
	defer server.Close()

	page, err := Posting(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, page.HTML, "<h1>Go Engineer</h1>")
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.True(t, page.IsHTML())
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestPosting_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/job", "file:///etc/passwd"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Posting(context.Background(), raw, nil)

			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	page, err := Posting(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestPosting_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	_, err := Posting(context.Background(), server.URL, &Options{MaxBytes: 32, UserAgent: DefaultUserAgent})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than 32 bytes")
}

func TestPosting_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Posting(ctx, server.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPage_IsHTML(t *testing.T) {
	assert.True(t, (&Page{ContentType: "text/html"}).IsHTML())
	assert.False(t, (&Page{ContentType: "text/plain", HTML: "<html>"}).IsHTML())
	assert.True(t, (&Page{HTML: "<!doctype html><HTML><body></body></HTML>"}).IsHTML())
	assert.False(t, (&Page{HTML: "Senior Go Engineer"}).IsHTML())
}
