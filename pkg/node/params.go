package node

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// params reads the parameters of one item from the host, falling back to
// the defaults of the node description
type params struct {
	host  Host
	index int
	desc  NodeDescription
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (p params) String(name string) (string, error) {
	switch v := p.value(name).(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", paramErr(name, "expected a string, got %T", v)
	}
}

// Required returns a string parameter which must not be empty
func (p params) Required(name string) (string, error) {
	v, err := p.String(name)
	if err != nil {
		return "", err
	} else if strings.TrimSpace(v) == "" {
		return "", paramErr(name, "a value is required")
	}
	return v, nil
}

func (p params) Int(name string) (int, error) {
	switch v := p.value(name).(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, paramErr(name, "expected an integer, got %v", v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, paramErr(name, "expected an integer, got %q", v)
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, paramErr(name, "expected an integer, got %q", v)
		}
		return n, nil
	default:
		return 0, paramErr(name, "expected a number, got %T", v)
	}
}

func (p params) Bool(name string) (bool, error) {
	switch v := p.value(name).(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, paramErr(name, "expected a boolean, got %q", v)
		}
		return b, nil
	default:
		return false, paramErr(name, "expected a boolean, got %T", v)
	}
}

////////////////////////////////////////////////////////////////////////////////
// REQUESTS

func (p params) listRequest() (schema.ListRequest, error) {
	var req schema.ListRequest
	var err error
	if req.Path, err = p.Required(ParamPath); err != nil {
		return req, err
	}
	if req.Offset, err = p.Int(ParamOffset); err != nil {
		return req, err
	} else if req.Offset < 0 {
		return req, paramErr(ParamOffset, "must not be negative")
	}
	if req.Limit, err = p.Int(ParamLimit); err != nil {
		return req, err
	} else if req.Limit < 1 || req.Limit > schema.MaxListLimit {
		return req, paramErr(ParamLimit, "must be between 1 and %d", schema.MaxListLimit)
	}
	return req, nil
}

func (p params) createFolderRequest() (schema.CreateFolderRequest, error) {
	req := schema.CreateFolderRequest{ForceParent: true}
	var err error
	if req.Path, err = p.Required(ParamTargetPath); err != nil {
		return req, err
	}
	if req.Name, err = p.String(ParamFolderName); err != nil {
		return req, err
	} else if req.Name = strings.TrimSpace(req.Name); req.Name == "" {
		req.Name = schema.DefaultFolderName
	} else if strings.Contains(req.Name, "/") {
		return req, paramErr(ParamFolderName, "must not contain %q", "/")
	}
	return req, nil
}

// uploadRequest returns the request without data, and the name of the
// binary property which holds the file
func (p params) uploadRequest() (schema.UploadRequest, string, error) {
	req := schema.UploadRequest{CreateParents: true}
	var err error
	if req.Path, err = p.Required(ParamTargetPath); err != nil {
		return req, "", err
	}
	if req.Overwrite, err = p.Bool(ParamOverwrite); err != nil {
		return req, "", err
	}
	property, err := p.Required(ParamBinaryProperty)
	if err != nil {
		return req, "", err
	}
	return req, property, nil
}

// downloadRequest returns the request and the name of the binary property
// which receives the file
func (p params) downloadRequest() (schema.DownloadRequest, string, error) {
	var req schema.DownloadRequest
	var err error
	if req.Path, err = p.Required(ParamPath); err != nil {
		return req, "", err
	}
	property, err := p.Required(ParamBinaryProperty)
	if err != nil {
		return req, "", err
	}
	return req, property, nil
}

func (p params) deleteRequest() (schema.DeleteRequest, error) {
	var req schema.DeleteRequest
	var err error
	if req.Path, err = p.Required(ParamPath); err != nil {
		return req, err
	}
	if req.Recursive, err = p.Bool(ParamRecursiveDelete); err != nil {
		return req, err
	}
	return req, nil
}

func (p params) moveRequest() (schema.MoveRequest, error) {
	req := schema.MoveRequest{RemoveSource: true, Overwrite: true}
	raw, err := p.String(ParamSourcePaths)
	if err != nil {
		return req, err
	}
	if req.Paths, err = schema.ParseSourcePaths(raw); err != nil {
		return req, err
	}
	if req.Dest, err = p.Required(ParamTargetPath); err != nil {
		return req, err
	}
	return req, nil
}

func (p params) renameRequest() (schema.RenameRequest, error) {
	var req schema.RenameRequest
	var err error
	if req.Path, err = p.Required(ParamPath); err != nil {
		return req, err
	}
	if req.Name, err = p.Required(ParamNewName); err != nil {
		return req, err
	} else if strings.Contains(req.Name, "/") {
		return req, paramErr(ParamNewName, "must not contain %q", "/")
	}
	return req, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (p params) value(name string) any {
	if v, ok := p.host.Parameter(name, p.index); ok {
		return v
	}
	if prop, ok := p.desc.Property(name); ok {
		return prop.Default
	}
	return nil
}

func paramErr(name, format string, args ...any) error {
	return schema.NewParameterError(fmt.Sprintf("invalid parameter %q", name), httpresponse.ErrBadRequest.Withf(format, args...))
}
