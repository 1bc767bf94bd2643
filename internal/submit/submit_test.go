package submit

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"fjacquet/grocelist/internal/catalogerror"
	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() models.ItemSubmission {
	return models.ItemSubmission{Name: " Leek ", Category: "Vegetables", Image: []byte{0xff, 0xd8, 0xff}}
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.ItemSubmission)
		wantFields map[string]string
	}{
		{name: "valid", mutate: func(*models.ItemSubmission) {}},
		{
			name:       "blank name",
			mutate:     func(s *models.ItemSubmission) { s.Name = "   " },
			wantFields: map[string]string{"name": "This field is required"},
		},
		{
			name:       "name too long",
			mutate:     func(s *models.ItemSubmission) { s.Name = strings.Repeat("x", 101) },
			wantFields: map[string]string{"name": "Must be at most 100 characters"},
		},
		{
			name:       "missing category",
			mutate:     func(s *models.ItemSubmission) { s.Category = "" },
			wantFields: map[string]string{"category": "This field is required"},
		},
		{
			name:       "All category",
			mutate:     func(s *models.ItemSubmission) { s.Category = "All" },
			wantFields: map[string]string{"category": `Must not be "All"`},
		},
		{
			name:       "no image",
			mutate:     func(s *models.ItemSubmission) { s.Image = nil },
			wantFields: map[string]string{"image": "This field is required"},
		},
		{
			name:       "empty image",
			mutate:     func(s *models.ItemSubmission) { s.Image = []byte{} },
			wantFields: map[string]string{"image": "Must not be empty"},
		},
		{
			name: "several fields",
			mutate: func(s *models.ItemSubmission) {
				s.Name = ""
				s.Image = nil
			},
			wantFields: map[string]string{"name": "This field is required", "image": "This field is required"},
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			err := v.Validate(sub)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *catalogerror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.Fields)
		})
	}
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid submission"}, FormatValidationError(assert.AnError))
}

func TestClient_Endpoint(t *testing.T) {
	c := NewClient("http://grocelist123.x10.mx/", "", 0, nil, nil)
	endpoint, err := c.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "http://grocelist123.x10.mx/add_item.php", endpoint)

	_, err = NewClient("", "", 0, nil, nil).Endpoint()
	assert.ErrorContains(t, err, "base URL is not configured")
}

func TestClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/add_item.php", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Leek", r.PostForm.Get("name"))
		assert.Equal(t, "Vegetables", r.PostForm.Get("category"))

		image, err := base64.StdEncoding.DecodeString(r.PostForm.Get("image"))
		assert.NoError(t, err)
		assert.Equal(t, []byte{0xff, 0xd8, 0xff}, image)

		_, _ = w.Write([]byte(`{"success":true,"message":"Item added"}`))
	}))
	defer srv.Close()

	logger := logging.NewMockLogger()
	c := NewClient(srv.URL, "", time.Second, srv.Client(), logger)

	result, err := c.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionResult{Success: true, Message: "Item added"}, result)
	assert.True(t, logger.HasEntry("INFO", "Item saved successfully"))
}

func TestClient_SubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Duplicate item"}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL, "", time.Second, srv.Client(), nil).Submit(context.Background(), validSubmission())

	var rejected *catalogerror.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Duplicate item", rejected.Message)
	assert.False(t, result.Success)
}

func TestClient_SubmitFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errPart string
	}{
		{name: "server error", status: http.StatusBadGateway, body: "", errPart: "unexpected status 502"},
		{name: "malformed json", status: http.StatusOK, body: "<b>Warning</b>", errPart: "error parsing response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "", time.Second, srv.Client(), nil).Submit(context.Background(), validSubmission())
			assert.ErrorContains(t, err, tt.errPart)
		})
	}
}

func TestClient_InvalidSubmissionSendsNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"message":""}`))
	}))
	defer srv.Close()

	sub := validSubmission()
	sub.Image = nil
	_, err := NewClient(srv.URL, "", time.Second, srv.Client(), nil).Submit(context.Background(), sub)

	var verr *catalogerror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "image")
	assert.Zero(t, hits.Load())
}

func TestClient_SubmitTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", 20*time.Millisecond, srv.Client(), nil).Submit(context.Background(), validSubmission())
	assert.ErrorContains(t, err, "submit item")
}
