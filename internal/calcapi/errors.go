package calcapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error represents a structured error returned by the calc API.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("calcapi: %s (code=%s status=%d)", e.Message, e.Code, e.Status)
}

// errorEnvelope matches the server's {"error": {...}} wrapper.
type errorEnvelope struct {
	Error Error `json:"error"`
}

// decodeError materializes a calc API error from a non-2xx HTTP response.
func decodeError(resp *http.Response) error {
	if resp == nil {
		return errors.New("calcapi: nil response")
	}

	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		joined := errors.Join(readErr, closeErr)
		return fmt.Errorf("calcapi: read error response: %w", joined)
	}
	if closeErr != nil {
		return fmt.Errorf("calcapi: close error response: %w", closeErr)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return &Error{
			Status:  resp.StatusCode,
			Code:    resp.Status,
			Message: string(body),
		}
	}

	apiErr := envelope.Error
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode
	}
	if apiErr.Code == "" {
		apiErr.Code = resp.Status
	}
	return &apiErr
}
