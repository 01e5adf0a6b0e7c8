package httpclient_test

import (
	"context"
	"testing"

	// Packages
	dsmtest "github.com/mutablelogic/go-synology/pkg/dsmtest"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

const sid = dsmtest.DefaultSid

func TestList(t *testing.T) {
	c, srv := newTestClient(t,
		dsmtest.WithFile("/photo/a.jpg", []byte("a")),
		dsmtest.WithFile("/photo/b.jpg", []byte("bb")),
		dsmtest.WithFile("/photo/2024/c.jpg", []byte("ccc")),
	)

	data, err := c.List(context.Background(), sid, schema.ListRequest{Path: "/photo", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, data.Total)
	require.Len(t, data.Files, 3)
	assert.Equal(t, "/photo/2024", data.Files[0].Path)
	assert.True(t, data.Files[0].IsDir)
	assert.Equal(t, "a.jpg", data.Files[1].Name)

	// Exact query
	requests := srv.Requests()
	require.Len(t, requests, 1)
	q := requests[0].Query
	assert.Equal(t, "GET", requests[0].Method)
	assert.Equal(t, schema.EntryPath, requests[0].Path)
	assert.Equal(t, "SYNO.FileStation.List", q.Get("api"))
	assert.Equal(t, "2", q.Get("version"))
	assert.Equal(t, "list", q.Get("method"))
	assert.Equal(t, "/photo", q.Get("folder_path"))
	assert.Equal(t, "0", q.Get("offset"))
	assert.Equal(t, "50", q.Get("limit"))
	assert.Equal(t, "size,owner,time,real_path", q.Get("additional"))
	assert.Len(t, q, 7)
}

func TestListPaging(t *testing.T) {
	c, _ := newTestClient(t,
		dsmtest.WithFile("/d/1", nil),
		dsmtest.WithFile("/d/2", nil),
		dsmtest.WithFile("/d/3", nil),
	)
	data, err := c.List(context.Background(), sid, schema.ListRequest{Path: "/d", Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, data.Total)
	assert.Equal(t, 1, data.Offset)
	require.Len(t, data.Files, 1)
	assert.Equal(t, "/d/2", data.Files[0].Path)
}

func TestListMissingFolder(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.List(context.Background(), sid, schema.ListRequest{Path: "/missing", Limit: 50})
	require.Error(t, err)
	assert.Equal(t, schema.ErrKindAPI, errKind(t, err))
	assert.Contains(t, err.Error(), "code 408")
}

func TestCreateFolder(t *testing.T) {
	c, srv := newTestClient(t)
	resp, err := c.CreateFolder(context.Background(), sid, schema.CreateFolderRequest{Path: "/photo", Name: "2025", ForceParent: true})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, srv.Folder("/photo/2025"))

	q := srv.Requests()[0].Query
	assert.Equal(t, "SYNO.FileStation.CreateFolder", q.Get("api"))
	assert.Equal(t, "create", q.Get("method"))
	assert.Equal(t, "/photo", q.Get("folder_path"))
	assert.Equal(t, "2025", q.Get("name"))
	assert.Equal(t, "true", q.Get("force_parent"))
}

func TestDelete(t *testing.T) {
	c, srv := newTestClient(t, dsmtest.WithFile("/x/y.txt", []byte("y")))
	resp, err := c.Delete(context.Background(), sid, schema.DeleteRequest{Path: "/x/y.txt"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	_, exists := srv.File("/x/y.txt")
	assert.False(t, exists)

	q := srv.Requests()[0].Query
	assert.Equal(t, "SYNO.FileStation.Delete", q.Get("api"))
	assert.Equal(t, "delete", q.Get("method"))
	assert.Equal(t, `["/x/y.txt"]`, q.Get("path"))
	assert.Equal(t, "false", q.Get("recursive"))
}

func TestMove(t *testing.T) {
	c, srv := newTestClient(t,
		dsmtest.WithFile("/a/1.txt", []byte("1")),
		dsmtest.WithFile("/a/2.txt", []byte("2")),
	)
	resp, err := c.Move(context.Background(), sid, schema.MoveRequest{
		Paths:        []string{"/a/1.txt", "/a/2.txt"},
		Dest:         "/b",
		RemoveSource: true,
		Overwrite:    true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]any{"taskid": "FileStation_000001"}, resp.DataMap())

	q := srv.Requests()[0].Query
	assert.Equal(t, "SYNO.FileStation.Move", q.Get("api"))
	assert.Equal(t, "start", q.Get("method"))
	assert.Equal(t, `["/a/1.txt","/a/2.txt"]`, q.Get("path"))
	assert.Equal(t, "/b", q.Get("dest_folder_path"))
	assert.Equal(t, "true", q.Get("remove_src"))
	assert.Equal(t, "true", q.Get("overwrite"))

	data, exists := srv.File("/b/2.txt")
	assert.True(t, exists)
	assert.Equal(t, []byte("2"), data)
	_, exists = srv.File("/a/1.txt")
	assert.False(t, exists)
}

func TestRename(t *testing.T) {
	c, srv := newTestClient(t, dsmtest.WithFile("/a/old.txt", []byte("x")))
	resp, err := c.Rename(context.Background(), sid, schema.RenameRequest{Path: "/a/old.txt", Name: "new.txt"})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	q := srv.Requests()[0].Query
	assert.Equal(t, "SYNO.FileStation.Rename", q.Get("api"))
	assert.Equal(t, "rename", q.Get("method"))
	assert.Equal(t, `["/a/old.txt"]`, q.Get("path"))
	assert.Equal(t, `["new.txt"]`, q.Get("name"))

	_, exists := srv.File("/a/new.txt")
	assert.True(t, exists)
}

func TestUpload(t *testing.T) {
	c, srv := newTestClient(t)
	resp, err := c.Upload(context.Background(), sid, schema.UploadRequest{
		Path:          "/photo",
		FileName:      "a.txt",
		CreateParents: true,
		Data:          []byte("hello"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, sid, req.Cookie)
	assert.Equal(t, "SYNO.FileStation.Upload", req.Query.Get("api"))
	assert.Equal(t, "upload", req.Query.Get("method"))

	// Form fields precede the file part
	require.NotEmpty(t, req.Fields)
	assert.Equal(t, "file", req.Fields[len(req.Fields)-1])
	assert.Equal(t, "/photo", req.Form.Get("path"))
	assert.Equal(t, "true", req.Form.Get("create_parents"))
	assert.Equal(t, "false", req.Form.Get("overwrite"))
	assert.Equal(t, "a.txt", req.FileName)

	data, exists := srv.File("/photo/a.txt")
	assert.True(t, exists)
	assert.Equal(t, []byte("hello"), data)
}

func TestUploadExisting(t *testing.T) {
	c, _ := newTestClient(t, dsmtest.WithFile("/photo/a.txt", []byte("old")))
	_, err := c.Upload(context.Background(), sid, schema.UploadRequest{Path: "/photo", FileName: "a.txt", Data: []byte("new")})
	require.Error(t, err)
	assert.Equal(t, schema.ErrKindAPI, errKind(t, err))

	_, err = c.Upload(context.Background(), sid, schema.UploadRequest{Path: "/photo", FileName: "a.txt", Overwrite: true, Data: []byte("new")})
	require.NoError(t, err)
}

func TestDownload(t *testing.T) {
	c, srv := newTestClient(t)

	// Upload then download the same bytes
	content := []byte{0x00, 0x01, 0xFF, 'x'}
	_, err := c.Upload(context.Background(), sid, schema.UploadRequest{Path: "/bin", FileName: "blob.bin", CreateParents: true, Data: content})
	require.NoError(t, err)

	data, err := c.Download(context.Background(), sid, schema.DownloadRequest{Path: "/bin/blob.bin"})
	require.NoError(t, err)
	assert.Equal(t, content, data)

	q := srv.Requests()[1].Query
	assert.Equal(t, "SYNO.FileStation.Download", q.Get("api"))
	assert.Equal(t, "download", q.Get("method"))
	assert.Equal(t, "/bin/blob.bin", q.Get("path"))
	assert.Equal(t, "download", q.Get("mode"))
}

func TestDownloadMissing(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.Download(context.Background(), sid, schema.DownloadRequest{Path: "/missing.txt"})
	require.Error(t, err)
	assert.Equal(t, schema.ErrKindAPI, errKind(t, err))
}
