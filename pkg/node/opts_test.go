package node_test

import (
	"context"
	"testing"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	dsmtest "github.com/mutablelogic/go-synology/pkg/dsmtest"
	node "github.com/mutablelogic/go-synology/pkg/node"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestWithClientOpts(t *testing.T) {
	srv := dsmtest.NewServer(dsmtest.WithFile("/share/a.txt", []byte("a")))
	defer srv.Close()

	n := newNode(t, node.WithClientOpts(client.OptTimeout(5*time.Second)), node.WithClientOpts())
	host := newHost(srv, map[string]any{"operation": "list", "path": "/share"})
	result, err := n.Execute(context.Background(), host, items(1))
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.EqualValues(t, 1, result[0].JSON["total"])
	assert.Equal(t, 1, srv.Count(schema.APIList))
}
