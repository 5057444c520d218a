package dataclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mrlokans/qotd/internal/clientconfig"
)

var (
	ErrNotFound     = errors.New("question not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRemoteNotConfigured means remote mode was requested without a URL and key.
	ErrRemoteNotConfigured = fmt.Errorf(
		"remote mode requires an API URL and key: set %s and %s, or run `qotd config set` to create %s",
		clientconfig.EnvAPIURL, clientconfig.EnvAPIKey, clientconfig.FileName,
	)

	// ErrRemoteNotReady means Client was called in remote mode before EnsureRemoteConfigReady.
	ErrRemoteNotReady = errors.New("remote client requested before remote configuration was resolved")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TransportError is a request that never got a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a non-success response from the API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

func (e *ServerError) HTTPStatus() int {
	return e.StatusCode
}
