package httpclient

import (
	"net/http"
	"net/url"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// formPayload implements client.Payload for POST requests with an
// application/x-www-form-urlencoded body.
type formPayload struct {
	body   *strings.Reader
	accept string
}

var _ client.Payload = (*formPayload)(nil)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newFormPayload(values url.Values, accept string) *formPayload {
	return &formPayload{body: strings.NewReader(values.Encode()), accept: accept}
}

///////////////////////////////////////////////////////////////////////////////
// INTERFACE IMPLEMENTATION

func (p *formPayload) Method() string {
	return http.MethodPost
}

func (p *formPayload) Accept() string {
	if p.accept != "" {
		return p.accept
	}
	return types.ContentTypeJSON
}

func (p *formPayload) Type() string {
	return contentTypeForm
}

func (p *formPayload) Read(b []byte) (int, error) {
	return p.body.Read(b)
}
