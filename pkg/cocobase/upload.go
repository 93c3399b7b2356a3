package cocobase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cocobase/cocobase-go/pkg/models"
)

const uploadPath = "/files/upload-file"

// UploadFile sends the contents of r as the "file" field of a multipart
// form. Only the API key is sent; the bearer token is not.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (models.UploadResult, error) {
	endpoint := c.baseURL + uploadPath

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, &TransportError{Method: http.MethodPost, URL: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: http.MethodPost, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Debug("file upload rejected", "filename", filename, "status", resp.StatusCode)
		return nil, &UploadError{StatusCode: resp.StatusCode}
	}

	var result models.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TransportError{Method: http.MethodPost, URL: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	c.logger.Debug("file uploaded", "filename", filename)
	return result, nil
}
