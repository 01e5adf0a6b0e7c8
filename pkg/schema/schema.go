package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

const (
	SchemaName = "synology"

	// Registered type names for the host
	NodeTypeName       = "synologyFileStation"
	CredentialTypeName = "synologyDsmApi"

	// DSM CGI endpoints, relative to the credential base URL
	AuthPath  = "/webapi/auth.cgi"
	EntryPath = "/webapi/entry.cgi"

	// Session cookie carrying the sid on every File Station call
	SessionCookie = "id"
)

const (
	// Authentication
	APIAuth     = "SYNO.API.Auth"
	AuthVersion = 7
	AuthSession = "FileStation"
	AuthFormat  = "sid"
	MethodLogin = "login"

	// File Station
	APIList         = "SYNO.FileStation.List"
	APICreateFolder = "SYNO.FileStation.CreateFolder"
	APIUpload       = "SYNO.FileStation.Upload"
	APIDownload     = "SYNO.FileStation.Download"
	APIDelete       = "SYNO.FileStation.Delete"
	APIMove         = "SYNO.FileStation.Move"
	APIRename       = "SYNO.FileStation.Rename"

	// All File Station calls use version 2
	FileStationVersion = 2
)

const (
	// ListAdditional is the set of additional file attributes requested on list
	ListAdditional = "size,owner,time,real_path"

	// DefaultFolderName is the name given to folders created without a name
	DefaultFolderName = "new-folder"

	// DefaultUploadName is the file name used when an attachment has none
	DefaultUploadName = "upload.bin"

	// DefaultDownloadName is the file name used when a path has no last segment
	DefaultDownloadName = "file"

	// Listing bounds accepted by the node
	DefaultListLimit = 50
	MaxListLimit     = 5000
)
