package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// envelopeUnmarshaler reads the whole response body and decodes it as a DSM
// envelope. A body which is not JSON is kept in raw, with the decode error in
// err, rather than failing the request.
type envelopeUnmarshaler struct {
	resp schema.Response
	raw  []byte
	err  error
}

// bufferUnmarshaler reads the whole response body into a buffer, without
// any decoding.
type bufferUnmarshaler struct {
	header http.Header
	buf    bytes.Buffer
}

var _ client.Unmarshaler = (*envelopeUnmarshaler)(nil)
var _ client.Unmarshaler = (*bufferUnmarshaler)(nil)

///////////////////////////////////////////////////////////////////////////////
// INTERFACE IMPLEMENTATION

func (r *envelopeUnmarshaler) Unmarshal(_ http.Header, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	r.raw = data
	r.err = json.Unmarshal(data, &r.resp)
	return nil
}

func (r *bufferUnmarshaler) Unmarshal(header http.Header, reader io.Reader) error {
	r.header = header
	r.buf.Reset()
	_, err := io.Copy(&r.buf, reader)
	return err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// detail returns the response as structured data for an error
func (r *envelopeUnmarshaler) detail() map[string]any {
	if r.err != nil {
		return map[string]any{"raw": string(r.raw)}
	}
	var body map[string]any
	if err := json.Unmarshal(r.raw, &body); err != nil || body == nil {
		return map[string]any{"value": string(r.raw)}
	}
	return body
}
