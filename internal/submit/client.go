package submit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fjacquet/grocelist/internal/catalogerror"
	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"
	"fjacquet/grocelist/internal/textutils"
)

// DefaultSubmitPath is the add-item endpoint relative to the base URL.
const DefaultSubmitPath = "add_item.php"

const maxResponseBytes = 64 << 10

// Client posts new items to the remote backend.
type Client struct {
	BaseURL    string
	SubmitPath string
	Timeout    time.Duration

	http      *http.Client
	validator *Validator
	log       logging.Logger
}

// NewClient returns a Client for baseURL. A nil httpClient selects
// http.DefaultClient and an empty submitPath selects DefaultSubmitPath.
func NewClient(baseURL, submitPath string, timeout time.Duration, httpClient *http.Client, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if submitPath == "" {
		submitPath = DefaultSubmitPath
	}
	return &Client{
		BaseURL:    baseURL,
		SubmitPath: submitPath,
		Timeout:    timeout,
		http:       httpClient,
		validator:  NewValidator(),
		log:        logging.OrDiscard(logger),
	}
}

// Endpoint returns the full add-item URL.
func (c *Client) Endpoint() (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("remote base URL is not configured")
	}
	return url.JoinPath(c.BaseURL, c.SubmitPath)
}

// Submit validates sub and posts it as a form with the image base64 encoded.
//
// Invalid submissions return *catalogerror.ValidationError without any
// request being sent. A response with success=false returns
// *catalogerror.RejectedError carrying the server message.
func (c *Client) Submit(ctx context.Context, sub models.ItemSubmission) (models.SubmissionResult, error) {
	if err := c.validator.Validate(sub); err != nil {
		return models.SubmissionResult{}, err
	}

	endpoint, err := c.Endpoint()
	if err != nil {
		return models.SubmissionResult{}, err
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	form := url.Values{}
	form.Set("name", textutils.NormalizeName(sub.Name))
	form.Set("category", textutils.NormalizeName(sub.Category))
	form.Set("image", base64.StdEncoding.EncodeToString(sub.Image))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return models.SubmissionResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	log := c.log.WithFields(
		logging.F(logging.FieldURL, endpoint),
		logging.F(logging.FieldCategory, form.Get("category")))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("Item submission failed")
		return models.SubmissionResult{}, fmt.Errorf("submit item: %w", err)
	}
	defer resp.Body.Close()

	log = log.WithFields(
		logging.F(logging.FieldStatus, resp.StatusCode),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("Add-item endpoint returned an error status")
		return models.SubmissionResult{}, fmt.Errorf("submit item: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.SubmissionResult{}, fmt.Errorf("read submit response: %w", err)
	}

	var result models.SubmissionResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.WithError(err).Warn("Add-item endpoint returned malformed JSON")
		return models.SubmissionResult{}, fmt.Errorf("error parsing response: %w", err)
	}
	if !result.Success {
		log.Warn("Item rejected", logging.F("message", result.Message))
		return result, &catalogerror.RejectedError{Message: result.Message}
	}

	log.Info("Item saved successfully")
	return result, nil
}
