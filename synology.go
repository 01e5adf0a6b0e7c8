package synology

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// INTERFACES

// FileStation is the interface for the DSM File Station API. Every call other
// than Login takes the session id returned by Login.
type FileStation interface {
	// Authenticate and return a session id
	Login(context.Context) (string, error)

	// Folders and files
	List(context.Context, string, schema.ListRequest) (*schema.ListData, error)
	CreateFolder(context.Context, string, schema.CreateFolderRequest) (*schema.Response, error)
	Upload(context.Context, string, schema.UploadRequest) (*schema.Response, error)
	Download(context.Context, string, schema.DownloadRequest) ([]byte, error)
	Delete(context.Context, string, schema.DeleteRequest) (*schema.Response, error)
	Move(context.Context, string, schema.MoveRequest) (*schema.Response, error)
	Rename(context.Context, string, schema.RenameRequest) (*schema.Response, error)
}

// BinaryStore holds the binary attachments of workflow items. The host
// supplies one to the node for reading upload payloads and writing downloads.
type BinaryStore interface {
	// Read returns the content of a binary attachment
	Read(context.Context, *schema.Binary) ([]byte, error)

	// Write stores content under the given file name and returns the attachment
	Write(context.Context, string, []byte) (*schema.Binary, error)
}
