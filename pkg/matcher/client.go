// Package matcher is the client of the remote invoice combination matcher.
package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cisan/caripiutang/pkg/models"
	"github.com/cisan/caripiutang/pkg/submission"
)

const (
	processPath  = "/api/process"
	uploadPath   = "/api/upload"
	userAgent    = "caripiutang/1.0"
	maxErrorBody = 64 * 1024
)

// Client talks to the matcher service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// NewClient returns a Client for baseURL. A non-positive timeout leaves
// requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if timeout < 0 {
		timeout = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  log.Named("matcher"),
	}, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// ResolveURL turns a service location into an absolute URL.
func (c *Client) ResolveURL(location string) string {
	if isAbsolute(location) {
		return location
	}
	return JoinURL(c.BaseURL, location)
}

// Process submits a workbook (by path or by upload id) with the given
// targets and returns the match summary.
func (c *Client) Process(ctx context.Context, sub models.Submission) (*models.Result, error) {
	if len(sub.Targets) == 0 {
		return nil, ErrNoTargets
	}
	if sub.FilePath == "" && sub.UploadID == "" {
		return nil, ErrNoSource
	}
	maxInvoices := sub.MaxInvoices
	if maxInvoices == 0 {
		maxInvoices = submission.DefaultMaxInvoices
	}

	fields := map[string]string{
		"targets":      strings.Join(sub.Targets, ","),
		"tolerance":    strconv.Itoa(submission.ClampTolerance(sub.Tolerance)),
		"max_invoices": strconv.Itoa(submission.ClampMaxInvoices(maxInvoices)),
	}
	filePath := sub.FilePath
	if sub.UploadID != "" {
		fields["upload_id"] = sub.UploadID
		filePath = ""
	}

	body, contentType, err := buildMultipart(fields, filePath)
	if err != nil {
		return nil, err
	}

	c.logger().Info("process request",
		zap.Int("targets", len(sub.Targets)),
		zap.String("tolerance", fields["tolerance"]),
		zap.String("max_invoices", fields["max_invoices"]),
		zap.Bool("upload_id", sub.UploadID != ""),
	)

	var result models.Result
	if err := c.doJSON(ctx, http.MethodPost, processPath, body, contentType, &result); err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	c.logger().Info("process response",
		zap.Bool("found", result.Found),
		zap.Int("total_rows", result.TotalRows),
		zap.String("file_name", result.FileName),
	)
	return &result, nil
}

// Upload stores a workbook on the service for later Process calls.
func (c *Client) Upload(ctx context.Context, filePath string) (*models.Upload, error) {
	body, contentType, err := buildMultipart(nil, filePath)
	if err != nil {
		return nil, err
	}

	var up models.Upload
	if err := c.doJSON(ctx, http.MethodPost, uploadPath, body, contentType, &up); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	c.logger().Info("uploaded workbook", zap.String("upload_id", up.ID), zap.String("file_name", up.FileName))
	return &up, nil
}

// DeleteUpload removes a stored workbook. It reports false when the service
// no longer had it.
func (c *Client) DeleteUpload(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("delete upload: %w", ErrNoSource)
	}

	var out struct {
		Deleted bool `json:"deleted"`
	}
	p := uploadPath + "/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodDelete, p, nil, "", &out); err != nil {
		return false, fmt.Errorf("delete upload: %w", err)
	}
	c.logger().Info("deleted upload", zap.String("upload_id", id), zap.Bool("deleted", out.Deleted))
	return out.Deleted, nil
}

// Download fetches the result artifact at location into destDir and returns
// the written path. The file appears only once fully written.
func (c *Client) Download(ctx context.Context, location, destDir string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("download: empty location")
	}
	target := c.ResolveURL(location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("download: creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("download: %w", parseAPIError(resp.StatusCode, data))
	}

	name := downloadName(resp.Header.Get("Content-Disposition"), req.URL.Path)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: creating %s: %w", destDir, err)
	}

	tmp, err := os.CreateTemp(destDir, "."+name+".*.part")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	written, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", fmt.Errorf("download: writing %s: %w", name, copyErr)
	}

	dest := filepath.Join(destDir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}

	c.logger().Info("downloaded result", zap.String("path", dest), zap.Int64("bytes", written))
	return dest, nil
}

// downloadName picks a safe local file name from the response headers or the
// request path.
func downloadName(disposition, urlPath string) string {
	var name string
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			name = params["filename"]
		}
	}
	if name == "" {
		name = path.Base(urlPath)
	}
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "" || name == "." || name == "/" || name == string(filepath.Separator) {
		name = "hasil.xlsx"
	}
	return name
}

func buildMultipart(fields map[string]string, filePath string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range []string{"upload_id", "targets", "tolerance", "max_invoices"} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", key, err)
		}
	}

	if filePath != "" {
		if _, err := ValidateWorkbook(filePath); err != nil {
			return nil, "", err
		}
		f, err := os.Open(filePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", filePath, err)
		}
		defer f.Close()

		part, err := w.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			return nil, "", fmt.Errorf("creating file part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", filePath, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) doJSON(ctx context.Context, method, p string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, JoinURL(c.BaseURL, p), body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger().Warn("request failed", zap.String("method", method), zap.String("path", p), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.logger().Debug("response",
		zap.String("method", method),
		zap.String("path", p),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseAPIError(resp.StatusCode, data)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
