package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the backend has no task with the requested id
var ErrNotFound = errors.New("task not found")

// TransportError is a network failure or a non-2xx response. Message holds
// the backend's error payload when one was sent.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil && !(e.StatusCode != 0 && errors.Is(e.Err, ErrNotFound)) {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendMessage returns the backend-supplied message carried by err, if any
func BackendMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message
	}
	return ""
}

// IsNotFound reports whether err means the task does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// parseErrorBody extracts a human-readable message from an error response.
// Spring-style {"message": ...}, {"error": ...}, a bare JSON string, or plain
// text are all accepted.
func parseErrorBody(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	switch body[0] {
	case '{':
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &obj); err == nil {
			if obj.Message != "" {
				return obj.Message
			}
			if obj.Error != "" {
				return obj.Error
			}
			return ""
		}
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return string(body)
}
