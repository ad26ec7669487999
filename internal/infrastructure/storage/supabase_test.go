package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"Key":"documents/1700000000000.pdf"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/", SecretKey: "service"}
	err := c.Upload(context.Background(), "documents", "1700000000000.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/documents/1700000000000.pdf", gotPath)
	assert.Equal(t, "Bearer service", gotAuth)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "%PDF", gotBody)
}

func TestUpload_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, SecretKey: "service"}
	err := c.Upload(context.Background(), "documents", "a.pdf", "", strings.NewReader("x"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "The resource already exists", apiErr.Message)
}

func TestCreateSignedUploadURL_RelativeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/upload/sign/documents/a.pdf", r.URL.Path)
		w.Write([]byte(`{"url":"/object/upload/sign/documents/a.pdf?token=abc"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, SecretKey: "service"}
	u, err := c.CreateSignedUploadURL(context.Background(), "documents", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/upload/sign/documents/a.pdf?token=abc", u)
}

func TestNotConfigured(t *testing.T) {
	c := &Client{}
	assert.ErrorIs(t, c.Upload(context.Background(), "b", "p", "", strings.NewReader("")), ErrNotConfigured)
	_, err := c.CreateSignedUploadURL(context.Background(), "b", "p")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrNotConfigured)
}

func TestPublicURL(t *testing.T) {
	c := &Client{BaseURL: "https://abc.supabase.co/"}
	assert.Equal(t, "https://abc.supabase.co/storage/v1/object/public/documents/1.pdf", c.PublicURL("documents", "1.pdf"))
}

func TestPing_ConcurrentUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	zero := &Client{BaseURL: srv.URL, SecretKey: "service"}
	for _, c := range []*Client{zero, NewClient(srv.URL, "service")} {
		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- c.Ping(context.Background())
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}
	}
	// the shared default is used without being stored on the client
	assert.Nil(t, zero.HTTP)
}
