package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteSource_Fetch(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"success":true,"items":[
		{"id":1,"name":"Onion","image":"http://grocelist123.x10.mx/uploads/onion.jpg","category":"Vegetables"},
		{"id":2,"name":"Pear","image":"http://grocelist123.x10.mx/uploads/pear.jpg","category":"Fruits"}
	]}`)

	src := NewRemoteSource(srv.URL, time.Second, srv.Client(), logging.NewMockLogger())
	assert.Equal(t, "remote", src.Name())

	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Onion", items[0].Name)
	assert.True(t, items[0].IsRemoteImage())
}

func TestRemoteSource_EmptySuccess(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"success":true}`)

	items, err := NewRemoteSource(srv.URL, 0, nil, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.GroceryItem{}, items)
}

func TestRemoteSource_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errPart string
	}{
		{name: "success false", status: http.StatusOK, body: `{"success":false,"items":[]}`, errPart: "remote source reported failure"},
		{name: "malformed json", status: http.StatusOK, body: `<html>oops</html>`, errPart: "parse items response"},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, errPart: "unexpected status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			_, err := NewRemoteSource(srv.URL, time.Second, srv.Client(), nil).Fetch(context.Background())
			assert.ErrorContains(t, err, tt.errPart)
		})
	}
}

func TestRemoteSource_SuccessFalseIsSentinel(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"success":false}`)
	_, err := NewRemoteSource(srv.URL, time.Second, nil, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnsuccessful)
}

func TestRemoteSource_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	_, err := NewRemoteSource(srv.URL, 50*time.Millisecond, nil, nil).Fetch(context.Background())
	assert.ErrorContains(t, err, "fetch items")
}

func TestRemoteSource_Unreachable(t *testing.T) {
	srv := serve(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	_, err := NewRemoteSource(url, time.Second, nil, nil).Fetch(context.Background())
	assert.Error(t, err)
}
