package httpclient

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a DSM File Station client that wraps the base HTTP client. It is
// bound to one credential; session ids are passed explicitly to each call.
type Client struct {
	*client.Client
	cred schema.Credential
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new File Station client for the credential. The base URL of
// the credential is the endpoint, e.g. "https://nas.local:5001". When the
// credential allows self-signed certificates, TLS verification is skipped.
func New(cred schema.Credential, opts ...client.ClientOpt) (*Client, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	// Skip verification ahead of any caller option which wraps the transport
	clientOpts := make([]client.ClientOpt, 0, len(opts)+2)
	if cred.AllowSelfSigned {
		clientOpts = append(clientOpts, client.OptSkipVerify())
	}
	clientOpts = append(clientOpts, opts...)
	clientOpts = append(clientOpts, client.OptEndpoint(cred.Endpoint()))

	cl, err := client.New(clientOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{Client: cl, cred: cred}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Credential returns the credential the client is bound to
func (c *Client) Credential() schema.Credential {
	return c.cred
}
