package schema_test

import (
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func TestRequestPathArrays(t *testing.T) {
	assert.Equal(t, `[]`, schema.MoveRequest{}.Query().Get("path"))
	assert.Equal(t, `["/a","/b \"c\""]`, schema.MoveRequest{Paths: []string{"/a", `/b "c"`}}.Query().Get("path"))
	assert.Equal(t, `["/x/y.txt"]`, schema.DeleteRequest{Path: "/x/y.txt"}.Query().Get("path"))

	q := schema.RenameRequest{Path: "/x/y.txt", Name: "z.txt"}.Query()
	assert.Equal(t, `["/x/y.txt"]`, q.Get("path"))
	assert.Equal(t, `["z.txt"]`, q.Get("name"))
}
