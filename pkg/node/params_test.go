package node

import (
	"encoding/json"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func newParams(values map[string]any) params {
	return params{host: &StaticHost{Params: values}, desc: NodeType()}
}

func TestParamsInt(t *testing.T) {
	tests := []struct {
		value   any
		want    int
		wantErr bool
	}{
		{10, 10, false},
		{int64(10), 10, false},
		{float64(10), 10, false},
		{float64(10.5), 0, true},
		{json.Number("10"), 10, false},
		{" 10 ", 10, false},
		{"ten", 0, true},
		{true, 0, true},
	}
	for _, test := range tests {
		got, err := newParams(map[string]any{"limit": test.value}).Int("limit")
		if test.wantErr {
			assert.Error(t, err, "%v", test.value)
		} else if assert.NoError(t, err, "%v", test.value) {
			assert.Equal(t, test.want, got)
		}
	}
}

func TestParamsBool(t *testing.T) {
	p := newParams(map[string]any{"a": true, "b": "false", "c": 1})
	v, err := p.Bool("a")
	require.NoError(t, err)
	assert.True(t, v)
	v, err = p.Bool("b")
	require.NoError(t, err)
	assert.False(t, v)
	_, err = p.Bool("c")
	assert.Error(t, err)

	// Default from the description
	v, err = p.Bool(ParamOverwrite)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestParamsString(t *testing.T) {
	p := newParams(map[string]any{"a": "x", "b": 5, "c": []string{"x"}, "d": "  "})
	v, err := p.String("a")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	v, err = p.String("b")
	require.NoError(t, err)
	assert.Equal(t, "5", v)
	_, err = p.String("c")
	assert.Error(t, err)
	_, err = p.Required("d")
	assert.Error(t, err)
	v, err = p.String("unknown")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestParamsOverrides(t *testing.T) {
	host := &StaticHost{
		Params:    map[string]any{"path": "/a"},
		Overrides: []map[string]any{nil, {"path": "/b"}},
	}
	for i, want := range []string{"/a", "/b", "/a"} {
		v, err := params{host: host, index: i, desc: NodeType()}.String("path")
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestParamsRequests(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		req, err := newParams(map[string]any{"path": "/photo"}).listRequest()
		require.NoError(t, err)
		assert.Equal(t, "/photo", req.Path)
		assert.Equal(t, 0, req.Offset)
		assert.Equal(t, 50, req.Limit)
	})
	t.Run("Upload", func(t *testing.T) {
		req, property, err := newParams(map[string]any{"targetPath": "/x", "overwrite": false}).uploadRequest()
		require.NoError(t, err)
		assert.Equal(t, "/x", req.Path)
		assert.False(t, req.Overwrite)
		assert.True(t, req.CreateParents)
		assert.Equal(t, "data", property)
	})
	t.Run("Move", func(t *testing.T) {
		req, err := newParams(map[string]any{"sourcePaths": `["/a","/b"]`, "targetPath": "/dest"}).moveRequest()
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/b"}, req.Paths)
		assert.True(t, req.RemoveSource)
		assert.True(t, req.Overwrite)
	})
	t.Run("DownloadName", func(t *testing.T) {
		assert.Equal(t, "b.txt", downloadName("/a/b.txt"))
		assert.Equal(t, "file", downloadName("/a/"))
		assert.Equal(t, "x", downloadName("x"))
	})
}
