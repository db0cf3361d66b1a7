package restc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRequest matches every failed backend call.
	ErrRequest = errors.New("request failed")
	// ErrNotFound matches a RequestError carrying a 404 status.
	ErrNotFound = errors.New("resource not found")
)

// RequestError describes a failed backend call. StatusCode is zero when no
// response was received.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is reports ErrRequest for any RequestError and ErrNotFound for a 404.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequest:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

type errorBody struct {
	ErrorMessage string `json:"error_message"`
}

// errorMessage extracts the backend's error_message, if the body carries one.
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return eb.ErrorMessage
}
