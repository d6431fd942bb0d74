// Package rest implements the outbound HTTP client for the translation
// backend wire contract.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
	"github.com/anuvad-labs/anuvad-go/internal/logger"
	"github.com/anuvad-labs/anuvad-go/internal/metrics"
)

const adminAuthHeader = "X-Admin-Auth"

// Client talks to the translation backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the backend client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // optional; Timeout is ignored when set
	Logger     *zap.Logger
}

// NewClient creates a backend client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		logger:     logger,
	}
}

type createJobResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type statusResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateJob submits a document plus processing parameters as a single
// multipart request and returns the opaque job handle. It never retries.
func (c *Client) CreateJob(ctx context.Context, req domain.UploadRequest, file io.Reader) (domain.JobHandle, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", req.Filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		fields := map[string]string{
			"language":  string(req.Language),
			"direction": string(req.Direction),
			"mode":      string(req.Mode),
		}
		for k, v := range fields {
			if err := mw.WriteField(k, v); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", pr)
	if err != nil {
		return domain.JobHandle{}, fmt.Errorf("create upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	var out createJobResponse
	if err := c.do(httpReq, "upload", &out); err != nil {
		return domain.JobHandle{}, err
	}
	return domain.JobHandle{JobID: out.JobID, Message: out.Message}, nil
}

// JobStatus queries the current job state. Safe to repeat at any cadence;
// polling a terminal job returns the same snapshot with no side effects.
func (c *Client) JobStatus(ctx context.Context, jobID string) (domain.Job, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/status/"+url.PathEscape(jobID), nil)
	if err != nil {
		return domain.Job{}, fmt.Errorf("create status request: %w", err)
	}

	var out statusResponse
	if err := c.do(httpReq, "status", &out); err != nil {
		return domain.Job{}, err
	}
	return domain.Job{
		ID:       jobID,
		Status:   domain.Status(out.Status),
		Progress: out.Progress,
		Message:  out.Message,
	}, nil
}

// Artifact fetches the binary result as a stream. A 200 with a zero-length
// body is reported as ErrEmptyArtifact, not success. The caller owns the
// returned stream and must close it.
func (c *Client) Artifact(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error) {
	return c.fetchStream(ctx, artifactPath(jobID, kind), "artifact", kind)
}

// Preview fetches the inline renderable stream. Read-only and safely
// repeatable; may run concurrently with active polling.
func (c *Client) Preview(ctx context.Context, jobID string, kind domain.ArtifactKind) (io.ReadCloser, error) {
	path := fmt.Sprintf("/api/preview/%s/%s", kind, url.PathEscape(jobID))
	return c.fetchStream(ctx, path, "preview", kind)
}

func artifactPath(jobID string, kind domain.ArtifactKind) string {
	if kind == domain.ArtifactOriginal {
		return "/api/original/" + url.PathEscape(jobID)
	}
	return "/api/download/" + url.PathEscape(jobID)
}

func (c *Client) fetchStream(ctx context.Context, path, op string, kind domain.ArtifactKind) (io.ReadCloser, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(op, "transport_error", start)
		return nil, fmt.Errorf("%s request failed: %w", op, domain.ErrTransport)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		c.observe(op, fmt.Sprintf("%d", resp.StatusCode), start)
		return nil, c.parseError(ctx, resp)
	}

	// Chunked responses report -1 here; countingBody catches those at EOF.
	if resp.ContentLength == 0 {
		resp.Body.Close()
		c.observe(op, "empty", start)
		return nil, fmt.Errorf("%s %s for job: %w", kind, op, domain.ErrEmptyArtifact)
	}

	c.observe(op, "ok", start)
	return &countingBody{body: resp.Body, kind: string(kind)}, nil
}

// Dashboard loads the full usage snapshot for the given credential.
func (c *Client) Dashboard(ctx context.Context, credential string) (domain.Ledger, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/admin/dashboard", nil)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("create dashboard request: %w", err)
	}
	httpReq.Header.Set(adminAuthHeader, credential)

	var out domain.Ledger
	if err := c.do(httpReq, "dashboard", &out); err != nil {
		return domain.Ledger{}, err
	}
	return out, nil
}

// ResetUsage zeroes the server ledger. Irreversible server-side.
func (c *Client) ResetUsage(ctx context.Context, credential string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/reset-usage", nil)
	if err != nil {
		return fmt.Errorf("create reset request: %w", err)
	}
	httpReq.Header.Set(adminAuthHeader, credential)

	var out ackResponse
	return c.do(httpReq, "reset_usage", &out)
}

// ChangePassword rotates the admin secret. The backend re-verifies the
// current secret independently of the credential header.
func (c *Client) ChangePassword(ctx context.Context, credential, currentPassword, newPassword string) error {
	body, err := json.Marshal(map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	})
	if err != nil {
		return fmt.Errorf("marshal password change: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/admin/change-password", strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("create password change request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(adminAuthHeader, credential)

	var out ackResponse
	return c.do(httpReq, "change_password", &out)
}

// Ping checks backend availability via the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	var out struct {
		Status string `json:"status"`
	}
	return c.do(httpReq, "health", &out)
}

// do executes a JSON request, recording transport metrics and decoding
// the response into out on success.
func (c *Client) do(req *http.Request, op string, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "transport_error", start)
		return fmt.Errorf("%s request failed: %w", op, domain.ErrTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.observe(op, fmt.Sprintf("%d", resp.StatusCode), start)
		return c.parseError(req.Context(), resp)
	}

	c.observe(op, "ok", start)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op, status string, start time.Time) {
	metrics.BackendRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// parseError maps a non-success response to a domain error. Structured
// detail is shown verbatim when present, else a generic fallback. A
// request-scoped logger in ctx takes precedence over the client's own.
func (c *Client) parseError(ctx context.Context, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := extractDetail(body)

	if resp.StatusCode == http.StatusUnauthorized {
		if detail != "" {
			return fmt.Errorf("%s: %w", detail, domain.ErrUnauthorized)
		}
		return domain.ErrUnauthorized
	}
	if resp.StatusCode == http.StatusNotFound && strings.Contains(strings.ToLower(detail), "job not found") {
		return fmt.Errorf("%s: %w", detail, domain.ErrJobNotFound)
	}

	logger.FromContextOr(ctx, c.logger).Warn("backend returned error",
		zap.Int("status", resp.StatusCode),
		zap.String("detail", detail),
	)
	return domain.NewBackendError(resp.StatusCode, detail)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}

// countingBody feeds the artifact byte counter as the stream is
// consumed. A stream that ends without yielding a single byte is
// reported as ErrEmptyArtifact, covering chunked responses whose
// emptiness is invisible until EOF.
type countingBody struct {
	body  io.ReadCloser
	kind  string
	total int64
}

func (b *countingBody) Read(p []byte) (int, error) {
	n, err := b.body.Read(p)
	if n > 0 {
		b.total += int64(n)
		metrics.ArtifactBytesTotal.WithLabelValues(b.kind).Add(float64(n))
	}
	if err == io.EOF && b.total == 0 {
		return n, fmt.Errorf("%s stream ended without data: %w", b.kind, domain.ErrEmptyArtifact)
	}
	return n, err
}

func (b *countingBody) Close() error { return b.body.Close() }
