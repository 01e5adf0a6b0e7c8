package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Item is one workflow record, consumed or produced by the node
type Item struct {
	JSON   map[string]any     `json:"json"`
	Binary map[string]*Binary `json:"binary,omitempty"`
}

// Binary is an attachment on an item. The content is either inline in Data
// or held by a binary store under Key.
type Binary struct {
	Key      string `json:"key,omitempty"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	FileSize int64  `json:"fileSize"`
	Data     []byte `json:"data,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewItem returns an item with the given JSON payload
func NewItem(json map[string]any) Item {
	if json == nil {
		json = map[string]any{}
	}
	return Item{JSON: json}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (i Item) String() string {
	return types.Stringify(i)
}

func (b Binary) String() string {
	if len(b.Data) > 0 {
		b.Data = nil
	}
	return types.Stringify(b)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithBinary returns a copy of the item with the attachment set under name
func (i Item) WithBinary(name string, b *Binary) Item {
	binary := make(map[string]*Binary, len(i.Binary)+1)
	for k, v := range i.Binary {
		binary[k] = v
	}
	binary[name] = b
	i.Binary = binary
	return i
}
