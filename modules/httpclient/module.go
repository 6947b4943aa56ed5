// Package httpclient registers HTTP functions under the "http." prefix. A
// client is created once with http.client and passed as the first argument
// to the other functions, so they share its connection pool.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/specialistvlad/fnreg/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Client is a handle to a shared *http.Client.
type Client struct {
	c *http.Client
}

// Deref returns the underlying client.
func (c Client) Deref() *http.Client {
	return c.c
}

func init() {
	erased.RegisterHandle[Client]("http_client")
}

// Response is the plain-data result of a request.
type Response struct {
	StatusCode int    `cty:"status_code"`
	Status     string `cty:"status"`
	Body       string `cty:"body"`
}

// NewClient creates a client with the given timeout, such as "5s".
func NewClient(timeout string) (Client, error) {
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return Client{}, fmt.Errorf("invalid timeout: %w", err)
	}
	return Client{c: &http.Client{
		Timeout: d,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}}, nil
}

// Request sends a request with an optional body and returns the response.
// Any status code is a successful call.
func Request(c Client, method, url, body string) (Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), strings.ToUpper(method), url, reader)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	return do(c, req)
}

// Get sends a GET request.
func Get(c Client, url string) (Response, error) {
	return Request(c, http.MethodGet, url, "")
}

// Upload PUTs the file at path to url, typically a pre-signed object storage
// URL. Anything but 200 OK is an error.
func Upload(c Client, path, url string) (Response, error) {
	file, err := os.Open(path)
	if err != nil {
		return Response{}, fmt.Errorf("failed to open source file '%s': %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return Response{}, fmt.Errorf("failed to get file stats for '%s': %w", path, err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, url, file)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create upload request: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = stat.Size()

	slog.Debug("Uploading file.", "source", path, "size", stat.Size(), "contentType", contentType)
	resp, err := do(c, req)
	if err != nil {
		return Response{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, fmt.Errorf("upload failed with status: %s", resp.Status)
	}
	return resp, nil
}

// closeIdle drops the client's idle connections.
func closeIdle(c *http.Client) bool {
	c.CloseIdleConnections()
	return true
}

func do(c Client, req *http.Request) (Response, error) {
	if c.c == nil {
		return Response{}, fmt.Errorf("http client handle is empty")
	}

	slog.Debug("Making HTTP request.", "method", req.Method, "url", req.URL.String())
	resp, err := c.c.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response body: %w", err)
	}
	slog.Debug("Received HTTP response.", "status", resp.Status)

	return Response{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}, nil
}

// Register registers the functions with the table.
func (m *Module) Register(t *registry.Table) {
	t.MustRegister("http.client").SetAdaptedBody(adapt.FuncE1(NewClient))
	t.MustRegister("http.get").SetAdaptedBody(adapt.FuncE2(Get))
	t.MustRegister("http.request").SetAdaptedBody(adapt.FuncE3(func(c Client, method, url string) (Response, error) {
		return Request(c, method, url, "")
	}))
	t.MustRegister("http.send").SetAdaptedBody(adapt.FuncE3(func(c Client, url, body string) (Response, error) {
		return Request(c, http.MethodPost, url, body)
	}))
	t.MustRegister("http.upload").SetAdaptedBody(adapt.FuncE3(Upload))
	t.MustRegister("http.close").SetAdaptedBody(adapt.IndirectMethod0[Client](closeIdle))
}
