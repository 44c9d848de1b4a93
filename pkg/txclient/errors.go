package txclient

import "fmt"

// HTTPError is a non-2xx response. Message is the most specific text the body
// offered, or "HTTP error! status: N" when it offered none.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// StatusError is a 2xx response whose JSON status field reports failure.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// TransportError means the request never produced a response.
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

// DecodeError means a 2xx body was not the expected JSON.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
