package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MultipartOptions describes a file upload with an existing session
type MultipartOptions struct {
	Path          string     // path relative to the base URL, e.g. schema.EntryPath
	Query         url.Values // query parameters
	Dest          string     // destination folder on the NAS
	Overwrite     bool       // overwrite an existing file
	CreateParents bool       // create missing parent folders
	FileName      string     // file name of the file part
	Data          []byte     // file content
}

// uploadForm is the multipart body. The encoder writes the fields in
// declaration order and DSM requires the file part to be last.
type uploadForm struct {
	Path          string       `json:"path"`
	CreateParents string       `json:"create_parents"`
	Overwrite     string       `json:"overwrite"`
	File          []types.File `json:"file"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// PostMultipart uploads a file with the session id as multipart/form-data
// and returns the decoded DSM envelope. Errors are returned as for
// RequestJSON.
func (c *Client) PostMultipart(ctx context.Context, sid string, req MultipartOptions) (*schema.Response, error) {
	opts := RequestOptions{Method: http.MethodPost, Path: req.Path, Query: req.Query}

	// Stamp Content-Length on the file part, DSM rejects uploads without a size
	h := textproto.MIMEHeader{}
	h.Set(types.ContentLengthHeader, strconv.Itoa(len(req.Data)))

	// Build a streaming multipart payload with the file part last
	upload := uploadForm{
		Path:          req.Dest,
		CreateParents: strconv.FormatBool(req.CreateParents),
		Overwrite:     strconv.FormatBool(req.Overwrite),
		File: []types.File{{
			Path:        req.FileName,
			Body:        io.NopCloser(bytes.NewReader(req.Data)),
			ContentType: schema.MIMEType(req.FileName, req.Data),
			Header:      h,
		}},
	}
	payload, err := client.NewStreamingMultipartRequest(&upload, types.ContentTypeJSON)
	if err != nil {
		return nil, requestErr(opts, err)
	}

	// Perform request
	return c.do(ctx, payload, opts, append(c.requestOpts(sid, opts), client.OptNoTimeout())...)
}
