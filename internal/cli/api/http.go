package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Envelope is the common response wrapper of the market server.
type Envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ErrorResponse is the body of a domain error.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// Page mirrors the server page shape.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// Endpoint joins the server base URL and a path.
func Endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Do sends a request with an optional JSON payload. A non-empty token is sent as a bearer token.
func Do(ctx context.Context, method, url string, payload any, token string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, b, nil
}

// PostJSON sends a JSON POST request.
func PostJSON(ctx context.Context, url string, payload any, token string) (int, []byte, error) {
	return Do(ctx, http.MethodPost, url, payload, token)
}

// GetJSON sends a GET request.
func GetJSON(ctx context.Context, url, token string) (int, []byte, error) {
	return Do(ctx, http.MethodGet, url, nil, token)
}

// Call performs the request and decodes envelope data into dst (dst may be nil).
// Non-200 responses are turned into errors carrying the server message.
func Call(ctx context.Context, method, url string, payload any, token string, dst any) error {
	status, body, err := Do(ctx, method, url, payload, token)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return ServerError(status, body)
	}
	return Decode(body, dst)
}

// Decode unpacks envelope data into dst.
func Decode(body []byte, dst any) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// APIError is a non-200 answer of the market server.
type APIError struct {
	Status  int
	Code    string // domain error code, empty for envelope and raw errors
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// ServerError builds an *APIError from a failed response. Domain errors keep their code.
func ServerError(status int, body []byte) error {
	var e ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.ErrorCode != "" {
		return &APIError{Status: status, Code: e.ErrorCode, Message: e.Message}
	}
	var env Envelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		return &APIError{Status: status, Message: env.Message}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("server status %d: %s", status, strings.TrimSpace(string(body)))}
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}
