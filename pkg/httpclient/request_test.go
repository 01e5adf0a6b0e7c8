package httpclient

import (
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []any{"webapi", "auth.cgi"}, splitPath(schema.AuthPath))
	assert.Equal(t, []any{"webapi", "entry.cgi"}, splitPath(schema.EntryPath+"/"))
}
