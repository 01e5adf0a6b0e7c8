package schema

import (
	"encoding/json"
	"net/url"
	"strconv"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ListRequest struct {
	Path   string `json:"folder_path"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type CreateFolderRequest struct {
	Path        string `json:"folder_path"`
	Name        string `json:"name"`
	ForceParent bool   `json:"force_parent"`
}

type UploadRequest struct {
	Path          string `json:"path"`
	Overwrite     bool   `json:"overwrite"`
	CreateParents bool   `json:"create_parents"`
	FileName      string `json:"filename"`
	Data          []byte `json:"-"`
}

type DownloadRequest struct {
	Path string `json:"path"`
}

type DeleteRequest struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

type MoveRequest struct {
	Paths        []string `json:"path"`
	Dest         string   `json:"dest_folder_path"`
	RemoveSource bool     `json:"remove_src"`
	Overwrite    bool     `json:"overwrite"`
}

type RenameRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

////////////////////////////////////////////////////////////////////////////////
// QUERY

// Query returns the entry.cgi query for listing a folder
func (r ListRequest) Query() url.Values {
	q := apiQuery(APIList, "list")
	q.Set("folder_path", r.Path)
	q.Set("offset", strconv.Itoa(r.Offset))
	q.Set("limit", strconv.Itoa(r.Limit))
	q.Set("additional", ListAdditional)
	return q
}

// Query returns the entry.cgi query for creating a folder
func (r CreateFolderRequest) Query() url.Values {
	q := apiQuery(APICreateFolder, "create")
	q.Set("folder_path", r.Path)
	q.Set("name", r.Name)
	q.Set("force_parent", strconv.FormatBool(r.ForceParent))
	return q
}

// Query returns the entry.cgi query for an upload. The same values are also
// sent as form fields ahead of the file part.
func (r UploadRequest) Query() url.Values {
	q := apiQuery(APIUpload, "upload")
	q.Set("path", r.Path)
	q.Set("overwrite", strconv.FormatBool(r.Overwrite))
	q.Set("create_parents", strconv.FormatBool(r.CreateParents))
	return q
}

// Query returns the entry.cgi query for downloading a file
func (r DownloadRequest) Query() url.Values {
	q := apiQuery(APIDownload, "download")
	q.Set("path", r.Path)
	q.Set("mode", "download")
	return q
}

// Query returns the entry.cgi query for deleting a file or folder
func (r DeleteRequest) Query() url.Values {
	q := apiQuery(APIDelete, "delete")
	q.Set("path", jsonArray(r.Path))
	q.Set("recursive", strconv.FormatBool(r.Recursive))
	return q
}

// Query returns the entry.cgi query for starting a move task
func (r MoveRequest) Query() url.Values {
	q := apiQuery(APIMove, "start")
	q.Set("path", jsonArray(r.Paths...))
	q.Set("dest_folder_path", r.Dest)
	q.Set("remove_src", strconv.FormatBool(r.RemoveSource))
	q.Set("overwrite", strconv.FormatBool(r.Overwrite))
	return q
}

// Query returns the entry.cgi query for renaming a file or folder
func (r RenameRequest) Query() url.Values {
	q := apiQuery(APIRename, "rename")
	q.Set("path", jsonArray(r.Path))
	q.Set("name", jsonArray(r.Name))
	return q
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ListRequest) String() string {
	return types.Stringify(r)
}

func (r CreateFolderRequest) String() string {
	return types.Stringify(r)
}

func (r UploadRequest) String() string {
	return types.Stringify(r)
}

func (r DownloadRequest) String() string {
	return types.Stringify(r)
}

func (r DeleteRequest) String() string {
	return types.Stringify(r)
}

func (r MoveRequest) String() string {
	return types.Stringify(r)
}

func (r RenameRequest) String() string {
	return types.Stringify(r)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func apiQuery(api, method string) url.Values {
	q := make(url.Values)
	q.Set("api", api)
	q.Set("method", method)
	q.Set("version", strconv.Itoa(FileStationVersion))
	return q
}

// jsonArray encodes paths as a JSON array of strings, the form DSM expects
// for multi-path parameters. An empty list encodes as [].
func jsonArray(v ...string) string {
	if v == nil {
		v = []string{}
	}
	data, _ := json.Marshal(v)
	return string(data)
}
