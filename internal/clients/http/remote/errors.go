// Package remote holds the error taxonomy shared by the upstream service
// gateways. A 404 or 422 from an upstream carries a JSON body with a
// `message` field; anything else is a transport fault and is not translated
// into a business error.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound marks a remote 404: the addressed entity does not exist.
	ErrNotFound = errors.New("remote entity not found")
	// ErrInvalidInput marks a remote 422: the upstream rejected the request
	// as semantically invalid.
	ErrInvalidInput = errors.New("remote invalid input")
)

// StatusError is any unexpected upstream status. It is terminal and
// surfaces as a server-side fault, never as a client-input fault.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned unexpected status %d: %s", e.Service, e.Status, e.Body)
}

type errorBody struct {
	Message string `json:"message"`
}

// TranslateStatus maps a non-2xx upstream response onto the gateway error
// taxonomy. The message is taken from the error body's `message` field; when
// the body is not parseable the fallback text is used instead.
func TranslateStatus(service string, status int, body []byte) error {
	msg := errorMessage(body, fmt.Sprintf("%s responded with status %d", service, status))
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	default:
		return &StatusError{Service: service, Status: status, Body: msg}
	}
}

func errorMessage(body []byte, fallback string) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(parsed.Message); msg != "" {
		return msg
	}
	return fallback
}
