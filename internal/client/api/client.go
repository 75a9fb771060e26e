// Package api implements the HTTP client the marketplace client talks to the
// backend through. It owns the base URL, bearer-token attachment, the
// {success, data, message} response envelope, and the classification of
// failures into typed errors (see errors.go).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/campusmarket/internal/common"
)

// TokenSource supplies the persisted bearer token and lets the client discard
// it when the server answers 401. An empty token means "no credentials".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// envelope is the backend's uniform response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client is the HTTP client wrapper. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New builds a Client for the given base URL (e.g. "http://localhost:5001/api").
// tokens may be nil for a client that never authenticates.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Get issues a GET request and unmarshals the envelope's data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, "application/json", r, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, "application/json", r, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, out)
}

// FileUpload is one part of a multipart image upload.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// PostMultipart uploads the given files under the field name "images" and
// unmarshals the envelope's data into out.
func (c *Client) PostMultipart(ctx context.Context, path string, files []FileUpload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, f.Name))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("building multipart body: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("building multipart body: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, w.FormDataContentType(), &buf, out)
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(b), nil
}

// do runs one request/response cycle. Error classification order matters:
// status-specific handling takes precedence over the generic fallback.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthHeaderName, common.AuthScheme+" "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	// The envelope is decoded best-effort: error responses without a valid
	// body still classify by status below.
	var env envelope
	_ = json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.tokens != nil {
			_ = c.tokens.Clear(ctx)
		}
		return newError(ErrUnauthorized, "Session expired. Please login again.", resp.StatusCode)

	case resp.StatusCode == http.StatusBadRequest && env.Message != "":
		return newError(ErrValidation, env.Message, resp.StatusCode)

	case resp.StatusCode >= 500:
		return newError(ErrServer, "Server error. Please try again later.", resp.StatusCode)

	case resp.StatusCode >= 400 && env.Message != "":
		return newError(ErrRequestFailed, env.Message, resp.StatusCode)

	case resp.StatusCode >= 400:
		return newError(ErrRequestFailed, "Something went wrong. Please try again.", resp.StatusCode)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Something went wrong. Please try again."
		}
		return newError(ErrRequestFailed, msg, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// classifyTransport maps request-level failures (no HTTP response at all) to
// timeout or network errors.
func classifyTransport(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return newError(ErrTimeout, "Request timeout. Please try again.", 0)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return newError(ErrNetwork, "Network error. Backend not reachable.", 0)
}
