package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "growmate/internal/errors"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 512
)

// getJSON performs a GET and decodes a 2xx JSON body into dst. Any other
// outcome is reported as an UpstreamError for service.
func getJSON(ctx context.Context, httpClient *http.Client, service, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return &apperrors.UpstreamError{Service: service, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &apperrors.UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &apperrors.UpstreamError{Service: service, Message: "malformed response: " + err.Error()}
	}
	return nil
}

func orDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultTimeout}
}
