package clientcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a facerelay server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Upload posts one observation, with the file at opts.FilePath when set.
// The multipart body is streamed from disk.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) (*Record, error) {
	var file io.Reader
	if opts.FilePath != "" {
		f, err := os.Open(opts.FilePath) //#nosec G304 -- FilePath is user-provided input
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		file = f
	}

	fileName := opts.FileName
	if fileName == "" && opts.FilePath != "" {
		fileName = filepath.Base(opts.FilePath)
	}

	pr, pw := io.Pipe()
	defer func() { _ = pr.Close() }()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(mw, opts, fileName, file))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var rec Record
	if err := c.do(req, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

func writeUploadForm(mw *multipart.Writer, opts UploadOptions, fileName string, file io.Reader) error {
	fields := [][2]string{
		{"age", opts.Age},
		{"gender", opts.Gender},
		{"mood", opts.Mood},
		{"recognizestate", opts.RecognizeState},
		{"recognizedname", opts.RecognizedName},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if file != nil {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("write file part: %w", err)
		}
	}

	return mw.Close()
}

// LatestData returns the most recent record. A server with no uploads
// yields an error matching ErrNotFound.
func (c *Client) LatestData(ctx context.Context) (*LatestData, error) {
	var data LatestData
	if err := c.getJSON(ctx, "/data", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DownloadFile downloads the file of the most recent record.
// If opts.LocalPath is "-", the content is returned via the io.ReadCloser and must be closed by the caller.
// Otherwise, the content is written to the file and the io.ReadCloser is nil.
func (c *Client) DownloadFile(ctx context.Context, opts DownloadOptions) (*DownloadResult, io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/file", http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, nil, parseServerError(resp.StatusCode, body)
	}

	result := &DownloadResult{
		FileName:    fileNameFromDisposition(resp.Header.Get("Content-Disposition")),
		ETag:        strings.Trim(resp.Header.Get("ETag"), `"`),
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}

	if opts.LocalPath == "-" {
		result.LocalPath = "-"
		return result, resp.Body, nil
	}

	localPath := opts.LocalPath
	if localPath == "" {
		localPath = result.FileName
	}
	if localPath == "" {
		localPath = "latest"
	}
	result.LocalPath = localPath

	dir := filepath.Dir(localPath)
	if dir != "" && dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
			_ = resp.Body.Close()
			return nil, nil, fmt.Errorf("create directory: %w", mkdirErr)
		}
	}

	file, createErr := os.Create(localPath) //#nosec G304 -- localPath is user-provided input
	if createErr != nil {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("create file: %w", createErr)
	}

	written, copyErr := io.Copy(file, resp.Body)
	_ = resp.Body.Close()
	if copyErr != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("write file: %w", copyErr)
	}

	if closeErr := file.Close(); closeErr != nil {
		return nil, nil, fmt.Errorf("close file: %w", closeErr)
	}

	result.Size = written
	return result, nil, nil
}

// fileNameFromDisposition extracts a safe base file name from a
// Content-Disposition header, or "" if there is none.
func fileNameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := filepath.Base(params["filename"])
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// SetUpdateName stores the pending name on the server.
func (c *Client) SetUpdateName(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	form := url.Values{"name": {name}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/update-name", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, &serverMessage{})
}

// UpdateName returns the pending name.
func (c *Client) UpdateName(ctx context.Context) (*UpdateName, error) {
	var resp struct {
		UpdateName string `json:"updatename"`
	}
	if err := c.getJSON(ctx, "/getupdatename", &resp); err != nil {
		return nil, err
	}

	if resp.UpdateName == unsetName {
		return &UpdateName{}, nil
	}
	return &UpdateName{Name: resp.UpdateName, Set: true}, nil
}

// ClearUpdateName removes the pending name.
func (c *Client) ClearUpdateName(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/clearupdatename", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, &serverMessage{})
}

// SetUploadInterval sets how often the detector uploads, in seconds.
func (c *Client) SetUploadInterval(ctx context.Context, seconds int) (int, error) {
	return c.setInterval(ctx, "/set-interval", seconds)
}

// SetRecognitionInterval sets how often the detector runs recognition, in seconds.
func (c *Client) SetRecognitionInterval(ctx context.Context, seconds int) (int, error) {
	return c.setInterval(ctx, "/set-recognition-interval", seconds)
}

func (c *Client) setInterval(ctx context.Context, path string, seconds int) (int, error) {
	if seconds <= 0 {
		return 0, ErrInvalidInterval
	}

	body := `{"interval":` + strconv.Itoa(seconds) + `}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var msg serverMessage
	if err := c.do(req, &msg); err != nil {
		return 0, err
	}
	return msg.Interval, nil
}

// Intervals returns the current pacing hints.
func (c *Client) Intervals(ctx context.Context) (*Intervals, error) {
	var intervals Intervals
	if err := c.getJSON(ctx, "/intervals", &intervals); err != nil {
		return nil, err
	}
	return &intervals, nil
}

// Health returns the server liveness report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.getJSON(ctx, "/", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

// do executes req and decodes a 200 JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseServerError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// parseServerError extracts error message from server response.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var se serverError
	if json.Unmarshal(body, &se) == nil {
		apiErr.Code = se.Error
		apiErr.Message = se.Message
	}

	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Message
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when nothing was uploaded yet, or the latest
	// upload carried no file (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrInvalidRequest is returned when the server rejects a form or body (422).
	ErrInvalidRequest = &APIError{StatusCode: http.StatusUnprocessableEntity}

	// ErrTooLarge is returned when the upload exceeds the server limit (413).
	ErrTooLarge = &APIError{StatusCode: http.StatusRequestEntityTooLarge}
)
