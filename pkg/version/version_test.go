package version_test

import (
	"runtime"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-synology/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	t.Run("Tag", func(t *testing.T) {
		version.GitTag, version.GitBranch = "v1.2.3", "main"
		defer func() { version.GitTag, version.GitBranch = "", "" }()
		assert.Equal(t, "v1.2.3", version.Version())
	})
	t.Run("Branch", func(t *testing.T) {
		version.GitBranch = "main"
		defer func() { version.GitBranch = "" }()
		assert.Equal(t, "main", version.Version())
	})
	t.Run("Fallback", func(t *testing.T) {
		assert.NotEmpty(t, version.Version())
	})
}

func TestGet(t *testing.T) {
	version.GitHash = "abcdef"
	defer func() { version.GitHash = "" }()

	info := version.Get("synology")
	assert.Equal(t, "synology", info.Name)
	assert.Equal(t, runtime.Version(), info.Compiler)
	assert.Equal(t, "abcdef", info.Hash)
	assert.Equal(t, version.Version(), info.Version)
	assert.Contains(t, info.String(), `"name"`)
}
