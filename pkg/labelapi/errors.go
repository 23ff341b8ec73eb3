package labelapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrServer is wrapped by every [*APIError].
	ErrServer = errors.New("server error")

	// ErrRequest is returned when the backend could not be reached or did not
	// answer with a usable JSON document.
	ErrRequest = errors.New("request failed")

	// ErrUnsuccessful is returned when the backend reports success=false
	// without an error message.
	ErrUnsuccessful = errors.New("request unsuccessful")
)

// APIError is an error message reported by the backend.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error {
	return ErrServer
}

// Message returns the user-facing message of err: the backend's own message
// for an [*APIError], or the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return err.Error()
}
