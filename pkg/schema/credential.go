package schema

import (
	"net/url"
	"strings"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Credential is the configured connection to a DSM host. It is supplied once
// per execution and not modified.
type Credential struct {
	BaseURL         string `json:"baseUrl"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	AllowSelfSigned bool   `json:"allowSelfSigned"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Credential) String() string {
	if c.Password != "" {
		c.Password = "********"
	}
	return types.Stringify(c)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks the base URL is an absolute http or https URL and that a
// username and password are present.
func (c Credential) Validate() error {
	if c.BaseURL == "" {
		return NewParameterError("missing base URL", httpresponse.ErrBadRequest.With("baseUrl is required"))
	} else if u, err := url.Parse(c.BaseURL); err != nil {
		return NewParameterError("invalid base URL", httpresponse.ErrBadRequest.Withf("baseUrl: %v", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return NewParameterError("invalid base URL", httpresponse.ErrBadRequest.Withf("baseUrl scheme must be http or https, got %q", u.Scheme))
	} else if u.Host == "" {
		return NewParameterError("invalid base URL", httpresponse.ErrBadRequest.Withf("baseUrl %q has no host", c.BaseURL))
	}
	if strings.TrimSpace(c.Username) == "" {
		return NewParameterError("missing username", httpresponse.ErrBadRequest.With("username is required"))
	}
	if c.Password == "" {
		return NewParameterError("missing password", httpresponse.ErrBadRequest.With("password is required"))
	}
	return nil
}

// Endpoint returns the base URL without a trailing slash, so that paths such
// as AuthPath can be appended directly.
func (c Credential) Endpoint() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}
