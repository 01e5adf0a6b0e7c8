package schema

import (
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ErrKind classifies an Error
type ErrKind int

// Error is the single structured error returned by the client and the node.
// Detail carries the original response or failure detail.
type Error struct {
	Kind    ErrKind        `json:"kind"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
	Err     error          `json:"-"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrKindLogin     ErrKind = iota // bad credentials, unreachable host, non-JSON login response
	ErrKindParameter                // malformed user input, detected before any request
	ErrKindRequest                  // transport failure or non-2xx status
	ErrKindAPI                      // DSM returned success=false
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewLoginError(message string, detail map[string]any, err error) *Error {
	return &Error{Kind: ErrKindLogin, Message: message, Detail: detail, Err: err}
}

func NewParameterError(message string, err error) *Error {
	return &Error{Kind: ErrKindParameter, Message: message, Err: err}
}

func NewRequestError(message string, detail map[string]any, err error) *Error {
	return &Error{Kind: ErrKindRequest, Message: message, Detail: detail, Err: err}
}

// NewAPIError returns an error for a DSM envelope with success=false. The
// message includes the text for the DSM error code of the given api.
func NewAPIError(api string, resp *Response) *Error {
	detail := map[string]any{"api": api}
	message := fmt.Sprintf("%s failed", api)
	if resp != nil && resp.Error != nil {
		detail["code"] = resp.Error.Code
		if len(resp.Error.Errors) > 0 {
			detail["errors"] = resp.Error.Errors
		}
		message = fmt.Sprintf("%s failed: %s (code %d)", api, ErrorText(api, resp.Error.Code), resp.Error.Code)
	}
	return &Error{Kind: ErrKindAPI, Message: message, Detail: detail}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (k ErrKind) String() string {
	switch k {
	case ErrKindLogin:
		return "login"
	case ErrKindParameter:
		return "parameter"
	case ErrKindRequest:
		return "request"
	case ErrKindAPI:
		return "api"
	default:
		return "unknown"
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
