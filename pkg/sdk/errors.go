package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is returned whenever the platform answers with an unexpected
// HTTP status. It carries the status code and the message from the
// service's JSON error envelope, plus an optional underlying cause.
type Error struct {
	// StatusCode is the HTTP status returned by the service.
	StatusCode int

	// Msg is the service-provided error message, or the raw response
	// body when no envelope could be decoded.
	Msg string

	// Err is the underlying cause, when one exists.
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
		if e.Err != nil {
			return fmt.Sprintf("%d %s: %s", e.StatusCode, msg, e.Err)
		}
		return fmt.Sprintf("%d %s", e.StatusCode, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %s: %s", e.StatusCode, http.StatusText(e.StatusCode), msg, e.Err)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// decodeError maps a non-expected response into *Error. The platform's
// services answer errors with {"error": "...", "message": "..."}; message
// wins when both are present.
func decodeError(statusCode int, body []byte) error {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			msg = envelope.Message
		case envelope.Error != "":
			msg = envelope.Error
		}
	}

	return &Error{
		StatusCode: statusCode,
		Msg:        msg,
	}
}
