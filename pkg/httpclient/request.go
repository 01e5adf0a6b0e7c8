package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// RequestOptions describes a call to the DSM webapi with an existing session
type RequestOptions struct {
	Method string      // defaults to GET
	Path   string      // path relative to the base URL, e.g. schema.EntryPath
	Query  url.Values  // query parameters
	Header http.Header // additional headers, applied after the session cookie
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RequestJSON performs a request with the session id and returns the decoded
// DSM envelope. Transport failures, non-2xx responses and bodies which are not
// JSON return a request error; an envelope with success=false returns an api
// error.
func (c *Client) RequestJSON(ctx context.Context, sid string, req RequestOptions) (*schema.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	return c.do(ctx, client.NewRequestEx(method, types.ContentTypeJSON), req, c.requestOpts(sid, req)...)
}

// RequestBinary performs a request with the session id and returns the body
// as bytes. No JSON decoding is attempted.
func (c *Client) RequestBinary(ctx context.Context, sid string, req RequestOptions) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var response bufferUnmarshaler
	if err := c.DoWithContext(ctx, client.NewRequestEx(method, ""), &response, c.requestOpts(sid, req)...); err != nil {
		return nil, requestErr(req, err)
	}

	// DSM reports download failures as a JSON envelope with a 200 status
	if isJSON(response.header) {
		var env schema.Response
		if err := json.Unmarshal(response.buf.Bytes(), &env); err == nil && !env.Success && env.Error != nil {
			return nil, schema.NewAPIError(req.Query.Get("api"), &env)
		}
	}

	// Return success
	return response.buf.Bytes(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// do performs a request and decodes the DSM envelope
func (c *Client) do(ctx context.Context, payload client.Payload, req RequestOptions, opts ...client.RequestOpt) (*schema.Response, error) {
	var response envelopeUnmarshaler
	if err := c.DoWithContext(ctx, payload, &response, opts...); err != nil {
		return nil, requestErr(req, err)
	} else if response.err != nil {
		return nil, schema.NewRequestError("invalid JSON response", response.detail(), response.err)
	} else if !response.resp.Success {
		return nil, schema.NewAPIError(req.Query.Get("api"), &response.resp)
	}

	// Return success
	return &response.resp, nil
}

// requestOpts returns the path, query and headers for a request. The session
// cookie is set first so that caller headers take precedence.
func (c *Client) requestOpts(sid string, req RequestOptions) []client.RequestOpt {
	opts := []client.RequestOpt{
		client.OptPath(splitPath(req.Path)...),
		client.OptReqHeader("Cookie", schema.SessionCookie+"="+sid),
	}
	if len(req.Query) > 0 {
		opts = append(opts, client.OptQuery(req.Query))
	}
	for key, values := range req.Header {
		for _, value := range values {
			opts = append(opts, client.OptReqHeader(key, value))
		}
	}
	return opts
}

// requestErr wraps a transport or status error
func requestErr(req RequestOptions, err error) error {
	detail := map[string]any{
		"path":  req.Path,
		"error": err.Error(),
	}
	if api := req.Query.Get("api"); api != "" {
		detail["api"] = api
	}
	return schema.NewRequestError("DSM request failed", detail, err)
}

// splitPath returns the segments of a path for client.OptPath
func splitPath(path string) []any {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	result := make([]any, 0, len(segments))
	for _, segment := range segments {
		result = append(result, segment)
	}
	return result
}

// isJSON returns true if the response declares a JSON content type
func isJSON(header http.Header) bool {
	if header == nil {
		return false
	}
	return strings.HasPrefix(header.Get(types.ContentTypeHeader), types.ContentTypeJSON)
}
