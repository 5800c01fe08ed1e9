package assetcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"macadam/internal/logging"
	"macadam/internal/services"
)

// HTTPDoer describes the HTTP client used by the asset-cloud service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credentials carries the API key and the creator the uploads belong to.
// Exactly one of GroupID or UserID must be set.
type Credentials struct {
	APIKey  string
	GroupID uint64
	UserID  uint64
}

// UploadRequest is one image destined for the hosting service.
type UploadRequest struct {
	Name        string
	Description string
	Contents    []byte
}

const (
	// moderationFallbackName replaces a display name the service
	// moderated. It is deliberately generic and known-good.
	moderationFallbackName = "image"

	defaultMaxPollRetries = 5
	defaultInitialPoll    = 50 * time.Millisecond
)

// Client talks to the asset-hosting HTTP API. Uploads are asynchronous on
// the service side: submission yields an operation which is polled until
// the asset identifier materializes.
type Client struct {
	baseURL string
	creds   Credentials
	http    HTTPDoer
	logger  *slog.Logger

	// sleep is injectable so tests can collapse the polling backoff.
	sleep          func(time.Duration)
	maxPollRetries int
	initialPoll    time.Duration
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient substitutes the transport.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.http = doer }
}

// WithSleep substitutes the delay function used between operation polls.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

// WithPollPolicy overrides the operation-polling bound and initial delay.
func WithPollPolicy(maxRetries int, initial time.Duration) Option {
	return func(c *Client) {
		c.maxPollRetries = maxRetries
		c.initialPoll = initial
	}
}

// New validates the credentials and builds a client. A missing API key or
// an ambiguous creator is a configuration error: the caller cannot recover
// by retrying.
func New(baseURL string, creds Credentials, logger *slog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(creds.APIKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "assetcloud", "new", "api key is required", nil)
	}
	if creds.GroupID != 0 && creds.UserID != 0 {
		return nil, services.Wrap(services.ErrConfiguration, "assetcloud", "new", "group and user creator cannot both be set", nil)
	}
	if creds.GroupID == 0 && creds.UserID == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "assetcloud", "new", "a group or user creator is required", nil)
	}

	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		creds:          creds,
		http:           http.DefaultClient,
		logger:         logging.NewComponentLogger(logger, "assetcloud"),
		sleep:          time.Sleep,
		maxPollRetries: defaultMaxPollRetries,
		initialPoll:    defaultInitialPoll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UploadWithModerationRetry uploads an image, substituting a generic name
// exactly once if the service moderates the display name. The substitution
// is outside any rate-limit retry budget.
func (c *Client) UploadWithModerationRetry(ctx context.Context, req UploadRequest) (uint64, error) {
	id, err := c.Upload(ctx, req)
	if err != nil && isModerated(err) {
		c.logger.Warn("display name was moderated, retrying with generic name",
			logging.String(logging.FieldAssetName, req.Name),
			logging.String("fallback_name", moderationFallbackName))
		retried := req
		retried.Name = moderationFallbackName
		return c.Upload(ctx, retried)
	}
	return id, err
}

// Upload submits an image and polls the resulting operation until the
// asset identifier is assigned.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (uint64, error) {
	attrs := []any{logging.String(logging.FieldAssetName, req.Name)}
	if requestID, ok := services.RequestIDFromContext(ctx); ok {
		attrs = append(attrs, logging.String(logging.FieldRequestID, requestID))
	}
	c.logger.Debug("submitting asset", attrs...)

	operationID, err := c.submit(ctx, req)
	if err != nil {
		return 0, err
	}
	return c.awaitOperation(ctx, operationID)
}

// Download fetches the encoded bytes of a previously uploaded asset.
func (c *Client) Download(ctx context.Context, id uint64) ([]byte, error) {
	url := fmt.Sprintf("%s/assets/%d/content", c.baseURL, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "assetcloud", "download", "build request", err)
	}
	httpReq.Header.Set("x-api-key", c.creds.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "assetcloud", "download", "execute request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("download", resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "assetcloud", "download", "read body", err)
	}
	return data, nil
}

type creationRequest struct {
	AssetType       string          `json:"assetType"`
	DisplayName     string          `json:"displayName"`
	Description     string          `json:"description"`
	CreationContext creationContext `json:"creationContext"`
}

type creationContext struct {
	Creator creator `json:"creator"`
}

type creator struct {
	GroupID string `json:"groupId,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

type operationResponse struct {
	Path     string `json:"path"`
	Done     bool   `json:"done"`
	Response *struct {
		AssetID string `json:"assetId"`
	} `json:"response"`
}

func (c *Client) submit(ctx context.Context, req UploadRequest) (string, error) {
	payload := creationRequest{
		AssetType:   "Image",
		DisplayName: req.Name,
		Description: req.Description,
	}
	if c.creds.GroupID != 0 {
		payload.CreationContext.Creator.GroupID = strconv.FormatUint(c.creds.GroupID, 10)
	} else {
		payload.CreationContext.Creator.UserID = strconv.FormatUint(c.creds.UserID, 10)
	}
	requestJSON, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "encode request", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("request", string(requestJSON)); err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "write request field", err)
	}
	part, err := writer.CreateFormFile("fileContent", req.Name)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "create file part", err)
	}
	if _, err := part.Write(req.Contents); err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "write file part", err)
	}
	if err := writer.Close(); err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "finalize multipart body", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/assets", &body)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "build request", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("x-api-key", c.creds.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "execute request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError("submit", resp)
	}

	var op operationResponse
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "decode response", err)
	}
	if op.Path == "" {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit", "operation path is missing", nil)
	}
	operationID, ok := strings.CutPrefix(op.Path, "operations/")
	if !ok || operationID == "" {
		return "", services.Wrap(services.ErrTransport, "assetcloud", "submit",
			fmt.Sprintf("malformed operation path %q", op.Path), nil)
	}
	return operationID, nil
}

// awaitOperation polls until the asset identifier appears. The sleep
// between polls grows quadratically: initial * attempt^2. Exhausting the
// bound is a resolution failure distinct from an upload failure, because
// the service accepted the asset and may still finish on its own.
func (c *Client) awaitOperation(ctx context.Context, operationID string) (uint64, error) {
	url := fmt.Sprintf("%s/operations/%s", c.baseURL, operationID)

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if attempt > c.maxPollRetries {
				return 0, services.Wrap(services.ErrResolution, "assetcloud", "await",
					fmt.Sprintf("operation %s not resolved after %d polls", operationID, attempt), nil)
			}
			c.sleep(c.initialPoll * time.Duration(attempt*attempt))
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, services.Wrap(services.ErrTransport, "assetcloud", "await", "build request", err)
		}
		httpReq.Header.Set("x-api-key", c.creds.APIKey)

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return 0, services.Wrap(services.ErrTransport, "assetcloud", "await", "execute request", err)
		}

		if resp.StatusCode != http.StatusOK {
			statusErr := c.statusError("await", resp)
			resp.Body.Close()
			return 0, statusErr
		}
		var op operationResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&op)
		resp.Body.Close()
		if decodeErr != nil {
			return 0, services.Wrap(services.ErrTransport, "assetcloud", "await", "decode response", decodeErr)
		}

		if op.Response == nil || op.Response.AssetID == "" {
			continue
		}
		id, err := strconv.ParseUint(op.Response.AssetID, 10, 64)
		if err != nil {
			return 0, services.Wrap(services.ErrTransport, "assetcloud", "await",
				fmt.Sprintf("unparsable asset id %q", op.Response.AssetID), err)
		}
		return id, nil
	}
}

func (c *Client) statusError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := fmt.Sprintf("service returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return services.Wrap(services.ErrRateLimited, "assetcloud", operation, message, nil)
	case resp.StatusCode == http.StatusBadRequest && strings.Contains(string(body), "moderated"):
		return services.Wrap(services.ErrModerated, "assetcloud", operation, message, nil)
	default:
		return services.Wrap(services.ErrTransport, "assetcloud", operation, message, nil)
	}
}

func isModerated(err error) bool {
	return errors.Is(err, services.ErrModerated)
}
