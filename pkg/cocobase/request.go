package cocobase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// bodyEncoding selects how request bodies are put on the wire.
type bodyEncoding int

const (
	// envelopeBody wraps the body as {"data": body}. Document endpoints.
	envelopeBody bodyEncoding = iota

	// plainBody sends the body as is. Auth endpoints.
	plainBody
)

func (e bodyEncoding) encode(body any) ([]byte, error) {
	if e == envelopeBody {
		body = map[string]any{"data": body}
	}
	return json.Marshal(body)
}

// isNilBody reports whether body is nil, including a nil map, slice or
// pointer stored in the interface.
func isNilBody(body any) bool {
	if body == nil {
		return true
	}
	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// request sends one JSON request and decodes a 2xx response into out. A nil
// body sends no body; a nil out discards the response. When out is set, an
// empty response body is an error.
func (c *Client) request(ctx context.Context, method, path string, body any, enc bodyEncoding, out any) error {
	endpoint := c.baseURL + path
	logger := c.logger.With("request_id", uuid.NewString(), "method", method, "url", endpoint)

	var bodyReader io.Reader
	if !isNilBody(body) {
		b, err := enc.encode(body)
		if err != nil {
			return &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("request failed", "error", err, "duration", time.Since(start))
		return &TransportError{Method: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	logger.Debug("request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp.StatusCode, endpoint, method, respBody)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return &TransportError{Method: method, URL: endpoint, Err: ErrEmptyResponse}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
