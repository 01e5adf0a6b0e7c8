package httpclient

import (
	"context"

	// Packages
	synology "github.com/mutablelogic/go-synology"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var _ synology.FileStation = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// List returns a page of the files in a folder, with size, owner, time and
// real path attributes.
func (c *Client) List(ctx context.Context, sid string, req schema.ListRequest) (*schema.ListData, error) {
	resp, err := c.RequestJSON(ctx, sid, RequestOptions{
		Path:  schema.EntryPath,
		Query: req.Query(),
	})
	if err != nil {
		return nil, err
	}
	var data schema.ListData
	if err := resp.Decode(&data); err != nil {
		return nil, schema.NewRequestError("invalid list response", map[string]any{"api": schema.APIList}, err)
	}
	return &data, nil
}

// CreateFolder creates a folder named req.Name within req.Path
func (c *Client) CreateFolder(ctx context.Context, sid string, req schema.CreateFolderRequest) (*schema.Response, error) {
	return c.RequestJSON(ctx, sid, RequestOptions{
		Path:  schema.EntryPath,
		Query: req.Query(),
	})
}

// Upload writes req.Data to a file named req.FileName within req.Path
func (c *Client) Upload(ctx context.Context, sid string, req schema.UploadRequest) (*schema.Response, error) {
	return c.PostMultipart(ctx, sid, MultipartOptions{
		Path:          schema.EntryPath,
		Query:         req.Query(),
		Dest:          req.Path,
		Overwrite:     req.Overwrite,
		CreateParents: req.CreateParents,
		FileName:      req.FileName,
		Data:          req.Data,
	})
}

// Download returns the content of a file
func (c *Client) Download(ctx context.Context, sid string, req schema.DownloadRequest) ([]byte, error) {
	return c.RequestBinary(ctx, sid, RequestOptions{
		Path:  schema.EntryPath,
		Query: req.Query(),
	})
}

// Delete removes a file or folder
func (c *Client) Delete(ctx context.Context, sid string, req schema.DeleteRequest) (*schema.Response, error) {
	return c.RequestJSON(ctx, sid, RequestOptions{
		Path:  schema.EntryPath,
		Query: req.Query(),
	})
}

// Move starts a background task which moves files or folders into a
// destination folder. The response carries the task id.
func (c *Client) Move(ctx context.Context, sid string, req schema.MoveRequest) (*schema.Response, error) {
	return c.RequestJSON(ctx, sid, RequestOptions{
		Path:  schema.EntryPath,
		Query: req.Query(),
	})
}

// Rename gives a file or folder a new name
func (c *Client) Rename(ctx context.Context, sid string, req schema.RenameRequest) (*schema.Response, error) {
	return c.RequestJSON(ctx, sid, RequestOptions{
		Path:  schema.EntryPath,
		Query: req.Query(),
	})
}
