package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"
)

// ErrUnsuccessful is returned when the remote endpoint answers success=false.
var ErrUnsuccessful = errors.New("remote source reported failure")

// maxResponseBytes caps the size of a remote item listing.
const maxResponseBytes = 4 << 20

// RemoteSource fetches items from the remote PHP endpoint, which answers
// {"success": bool, "items": [{id, name, image, category}]}.
type RemoteSource struct {
	URL     string
	Timeout time.Duration

	client *http.Client
	log    logging.Logger
}

// NewRemoteSource returns a RemoteSource for url. A nil client selects
// http.DefaultClient.
func NewRemoteSource(url string, timeout time.Duration, client *http.Client, logger logging.Logger) *RemoteSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteSource{
		URL:     url,
		Timeout: timeout,
		client:  client,
		log:     logging.OrDiscard(logger),
	}
}

func (r *RemoteSource) Name() string {
	return "remote"
}

// Fetch performs one GET. Transport errors, non-2xx statuses, malformed JSON
// and success=false all come back as errors.
func (r *RemoteSource) Fetch(ctx context.Context) ([]models.GroceryItem, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	defer resp.Body.Close()

	log := r.log.WithFields(
		logging.F(logging.FieldURL, r.URL),
		logging.F(logging.FieldStatus, resp.StatusCode),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("Remote item source returned an error status")
		return nil, fmt.Errorf("fetch items: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read items response: %w", err)
	}

	var envelope models.ItemsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.WithError(err).Warn("Remote item source returned malformed JSON")
		return nil, fmt.Errorf("parse items response: %w", err)
	}
	if !envelope.Success {
		return nil, ErrUnsuccessful
	}

	log.Debug("Fetched remote items", logging.F(logging.FieldCount, len(envelope.Items)))
	if envelope.Items == nil {
		return []models.GroceryItem{}, nil
	}
	return envelope.Items, nil
}
