package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	// KindUnknown is returned by KindOf for errors that are not APIErrors.
	KindUnknown ErrorKind = iota

	// KindSendRequest is a transport-level failure: the request could not be
	// sent, or the response body could not be read or decoded.
	KindSendRequest

	// KindWebRequest plays the same role as KindSendRequest on the
	// single-threaded cooperative host.
	KindWebRequest

	// KindBadRequest is an application-level rejection: the response
	// envelope carried a status other than "success".
	KindBadRequest
)

// StatusSuccess is the only envelope status that marks a payload as authoritative.
const StatusSuccess = "success"

func (k ErrorKind) String() string {
	switch k {
	case KindSendRequest:
		return "send request error"
	case KindWebRequest:
		return "web request error"
	case KindBadRequest:
		return "bad request"
	default:
		return "unknown"
	}
}

// APIError is the single error type delivered for failed operations.
type APIError struct {
	Kind ErrorKind

	// Message is a static diagnostic, set for KindBadRequest.
	Message string

	// Status is the envelope status received with a KindBadRequest.
	Status string

	// Err is the underlying cause for transport errors.
	Err error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindSendRequest:
		return fmt.Sprintf("unable to send request: %v", e.Err)
	case KindWebRequest:
		return fmt.Sprintf("unable to send web request: %v", e.Err)
	case KindBadRequest:
		return "request failed: " + e.Message
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Message
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// SendRequestError wraps a transport failure.
func SendRequestError(err error) *APIError {
	return &APIError{Kind: KindSendRequest, Err: err}
}

// WebRequestError wraps a transport failure seen on the cooperative host.
func WebRequestError(err error) *APIError {
	return &APIError{Kind: KindWebRequest, Err: err}
}

// BadRequest reports an envelope whose status was not "success".
func BadRequest(status string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: "unknown error", Status: status}
}

// KindOf returns the kind of the first APIError in err's chain.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
