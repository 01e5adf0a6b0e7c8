package node

import (
	"context"
	"sort"
	"sync"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Handler is a node type which a host can execute
type Handler interface {
	// Description returns the node type description
	Description() NodeDescription

	// Execute runs the node over the input items
	Execute(context.Context, Host, []schema.Item) ([]schema.Item, error)
}

// Factory creates a handler with options
type Factory func(...Opt) (Handler, error)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

func init() {
	Register(schema.NodeTypeName, func(opts ...Opt) (Handler, error) {
		return New(opts...)
	})
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Register adds a node type, replacing any existing factory for the name
func Register(nodeType string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[nodeType] = f
}

// NewHandler creates a handler for a registered node type
func NewHandler(nodeType string, opts ...Opt) (Handler, error) {
	mu.RLock()
	f, ok := registry[nodeType]
	mu.RUnlock()
	if !ok {
		return nil, httpresponse.ErrNotFound.Withf("node type %q", nodeType)
	}
	return f(opts...)
}

// Types returns the registered node type names in order
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	result := make([]string, 0, len(registry))
	for name := range registry {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
