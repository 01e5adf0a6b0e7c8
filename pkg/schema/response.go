package schema

import (
	"encoding/json"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Response is the envelope returned by every DSM webapi call
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

type ResponseError struct {
	Code   int              `json:"code"`
	Errors []map[string]any `json:"errors,omitempty"`
}

// LoginData is the data of a successful SYNO.API.Auth login
type LoginData struct {
	Sid          string `json:"sid"`
	DeviceID     string `json:"did,omitempty"`
	IsPortalPort bool   `json:"is_portal_port,omitempty"`
}

// ListData is the data of a SYNO.FileStation.List list call
type ListData struct {
	Total  int    `json:"total"`
	Offset int    `json:"offset"`
	Files  []File `json:"files"`
}

type File struct {
	Path       string         `json:"path"`
	Name       string         `json:"name"`
	IsDir      bool           `json:"isdir"`
	Additional map[string]any `json:"additional,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Response) String() string {
	return types.Stringify(r)
}

func (d ListData) String() string {
	return types.Stringify(d)
}

func (f File) String() string {
	return types.Stringify(f)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Decode unmarshals the envelope data into v. An absent data member leaves v
// unchanged.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// Map returns the envelope as a generic JSON object, the form in which
// results are handed back to the host.
func (r *Response) Map() map[string]any {
	result := map[string]any{"success": r.Success}
	if len(r.Data) > 0 {
		var data any
		if err := json.Unmarshal(r.Data, &data); err == nil {
			result["data"] = data
		}
	}
	if r.Error != nil {
		errmap := map[string]any{"code": r.Error.Code}
		if len(r.Error.Errors) > 0 {
			errmap["errors"] = r.Error.Errors
		}
		result["error"] = errmap
	}
	return result
}

// DataMap returns the envelope data as a generic JSON object, or the whole
// envelope when the data is not an object.
func (r *Response) DataMap() map[string]any {
	var data map[string]any
	if err := r.Decode(&data); err != nil || data == nil {
		return r.Map()
	}
	return data
}
