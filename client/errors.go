package client

import "fmt"

// TransportError reports a request that could not be completed or whose
// response could not be decoded.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportError(op string, url string, err error) error {
	return &TransportError{Op: op, URL: url, Err: err}
}
