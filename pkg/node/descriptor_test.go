package node_test

import (
	"encoding/json"
	"testing"

	// Packages
	node "github.com/mutablelogic/go-synology/pkg/node"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestNodeType(t *testing.T) {
	desc := node.NodeType()
	assert.Equal(t, "synologyFileStation", desc.Name)
	require.Len(t, desc.Credentials, 1)
	assert.Equal(t, "synologyDsmApi", desc.Credentials[0].Name)
	assert.True(t, desc.Credentials[0].Required)

	t.Run("Operations", func(t *testing.T) {
		prop, ok := desc.Property(node.ParamOperation)
		require.True(t, ok)
		assert.Equal(t, "list", prop.Default)
		require.Len(t, prop.Options, 7)
		for _, option := range prop.Options {
			_, err := schema.ParseOperation(option.Value)
			assert.NoError(t, err, option.Value)
		}
	})

	t.Run("Visible", func(t *testing.T) {
		tests := []struct {
			param string
			op    schema.Operation
			want  bool
		}{
			{node.ParamPath, schema.OpList, true},
			{node.ParamPath, schema.OpUpload, false},
			{node.ParamTargetPath, schema.OpMove, true},
			{node.ParamSourcePaths, schema.OpMove, true},
			{node.ParamSourcePaths, schema.OpDelete, false},
			{node.ParamBinaryProperty, schema.OpDownload, true},
			{node.ParamFolderName, schema.OpCreateFolder, true},
			{node.ParamOperation, schema.OpRename, true},
		}
		for _, test := range tests {
			prop, ok := desc.Property(test.param)
			require.True(t, ok, test.param)
			assert.Equal(t, test.want, prop.Visible(test.op), "%s for %s", test.param, test.op)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		defaults := map[string]any{
			node.ParamPath:            "/",
			node.ParamOffset:          0,
			node.ParamLimit:           50,
			node.ParamTargetPath:      "/",
			node.ParamFolderName:      "new-folder",
			node.ParamBinaryProperty:  "data",
			node.ParamOverwrite:       true,
			node.ParamRecursiveDelete: true,
			node.ParamNewName:         "new-name",
		}
		for name, want := range defaults {
			prop, ok := desc.Property(name)
			require.True(t, ok, name)
			assert.Equal(t, want, prop.Default, name)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := json.Marshal(desc)
		require.NoError(t, err)
		var v map[string]any
		require.NoError(t, json.Unmarshal(data, &v))
		assert.Equal(t, "Synology File Station", v["displayName"])
		assert.Len(t, v["properties"], len(desc.Properties))
	})
}

func TestCredentialType(t *testing.T) {
	desc := node.CredentialType()
	assert.Equal(t, "synologyDsmApi", desc.Name)

	var names []string
	for _, prop := range desc.Properties {
		names = append(names, prop.Name)
	}
	assert.Equal(t, []string{"baseUrl", "username", "password", "allowSelfSigned"}, names)
	assert.Equal(t, true, desc.Properties[2].TypeOptions["password"])

	// The smoke test is the POST form login
	assert.Equal(t, "POST", desc.Test.Method)
	assert.Equal(t, "/webapi/auth.cgi", desc.Test.URL)
	assert.Equal(t, "SYNO.API.Auth", desc.Test.Form["api"])
	assert.Equal(t, "7", desc.Test.Form["version"])
}
