package node

import (
	"context"

	// Packages
	synology "github.com/mutablelogic/go-synology"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Host is the workflow runtime which invokes the node. It supplies the
// credential, the parameter values for each item and the binary store.
type Host interface {
	// Credential returns the configured DSM connection
	Credential(context.Context) (schema.Credential, error)

	// Parameter returns the value of a node parameter for the item at index,
	// or false if the parameter is not set and the default applies
	Parameter(name string, index int) (any, bool)

	// Binary returns the store for binary attachments
	Binary() synology.BinaryStore
}

// StaticHost is a host where every item has the same parameters, with
// optional per-item overrides
type StaticHost struct {
	Cred      schema.Credential
	Params    map[string]any
	Overrides []map[string]any // indexed by item
	Store     synology.BinaryStore
}

var _ Host = (*StaticHost)(nil)

////////////////////////////////////////////////////////////////////////////////
// INTERFACE IMPLEMENTATION

func (h *StaticHost) Credential(context.Context) (schema.Credential, error) {
	return h.Cred, nil
}

func (h *StaticHost) Parameter(name string, index int) (any, bool) {
	if index >= 0 && index < len(h.Overrides) {
		if v, ok := h.Overrides[index][name]; ok {
			return v, true
		}
	}
	v, ok := h.Params[name]
	return v, ok
}

func (h *StaticHost) Binary() synology.BinaryStore {
	return h.Store
}
