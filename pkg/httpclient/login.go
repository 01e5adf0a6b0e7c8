package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Login authenticates with the credential and returns a session id. The
// login is a form POST to the auth endpoint. When the response is not JSON
// (for example an HTML page from a QuickConnect relay) the request is made
// once more without decoding, so the error can carry the raw text.
func (c *Client) Login(ctx context.Context) (string, error) {
	values := c.loginValues()
	path := client.OptPath(splitPath(schema.AuthPath)...)

	// Perform request
	var response envelopeUnmarshaler
	if err := c.DoWithContext(ctx, newFormPayload(values, ""), &response, path); err != nil {
		return "", schema.NewLoginError("DSM login failed", map[string]any{"error": err.Error()}, err)
	}

	// Not JSON: fetch the raw body once more
	if response.err != nil {
		var raw bufferUnmarshaler
		if err := c.DoWithContext(ctx, newFormPayload(values, "*/*"), &raw, path); err != nil {
			return "", schema.NewLoginError("DSM login failed", response.detail(), err)
		}
		return "", schema.NewLoginError("DSM login failed (non-JSON response)", map[string]any{"raw": raw.buf.String()}, response.err)
	}

	// Not successful
	if !response.resp.Success {
		message := "DSM login failed"
		if response.resp.Error != nil {
			message = fmt.Sprintf("DSM login failed: %s (code %d)", schema.ErrorText(schema.APIAuth, response.resp.Error.Code), response.resp.Error.Code)
		}
		return "", schema.NewLoginError(message, response.detail(), nil)
	}

	// Extract the session id
	var data schema.LoginData
	if err := response.resp.Decode(&data); err != nil {
		return "", schema.NewLoginError("DSM login failed", response.detail(), err)
	} else if data.Sid == "" {
		return "", schema.NewLoginError("DSM login failed: missing sid", response.detail(), nil)
	}

	// Return success
	return data.Sid, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) loginValues() url.Values {
	values := make(url.Values)
	values.Set("api", schema.APIAuth)
	values.Set("method", schema.MethodLogin)
	values.Set("version", strconv.Itoa(schema.AuthVersion))
	values.Set("account", c.cred.Username)
	values.Set("passwd", c.cred.Password)
	values.Set("session", schema.AuthSession)
	values.Set("format", schema.AuthFormat)
	return values
}
