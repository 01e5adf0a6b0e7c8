package schema

import (
	"encoding/json"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Operation selects the File Station call made for each item
type Operation string

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	OpList         Operation = "list"
	OpCreateFolder Operation = "createFolder"
	OpUpload       Operation = "upload"
	OpDownload     Operation = "download"
	OpDelete       Operation = "delete"
	OpMove         Operation = "move"
	OpRename       Operation = "rename"
)

// Operations in the order presented to the host
var Operations = []Operation{
	OpCreateFolder, OpDelete, OpDownload, OpList, OpMove, OpRename, OpUpload,
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ParseOperation returns the operation with the given value
func ParseOperation(v string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == v {
			return op, nil
		}
	}
	return "", NewParameterError("unknown operation", httpresponse.ErrBadRequest.Withf("operation %q", v))
}

// API returns the DSM API name called by the operation
func (op Operation) API() string {
	switch op {
	case OpList:
		return APIList
	case OpCreateFolder:
		return APICreateFolder
	case OpUpload:
		return APIUpload
	case OpDownload:
		return APIDownload
	case OpDelete:
		return APIDelete
	case OpMove:
		return APIMove
	case OpRename:
		return APIRename
	default:
		return ""
	}
}

func (op Operation) String() string {
	return string(op)
}

// ParseSourcePaths parses a JSON array of path strings, as entered for the
// move operation.
func ParseSourcePaths(v string) ([]string, error) {
	var paths []string
	if err := json.Unmarshal([]byte(v), &paths); err != nil || paths == nil {
		return nil, NewParameterError(`"Source Paths (JSON Array)" must be a JSON array of strings`, httpresponse.ErrBadRequest.Withf("sourcePaths: %q", v))
	}
	return paths, nil
}
