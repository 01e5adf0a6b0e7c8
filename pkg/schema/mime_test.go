package schema_test

import (
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func TestMIMEType(t *testing.T) {
	assert.Equal(t, "text/markdown", schema.MIMEType("README.md", nil))
	assert.Equal(t, "image/png", schema.MIMEType("x.png", nil))
	assert.Equal(t, "text/plain; charset=utf-8", schema.MIMEType("noext", []byte("hello")))
	assert.Equal(t, "application/octet-stream", schema.MIMEType("noext", []byte{0x00, 0x01, 0x02}))
}
