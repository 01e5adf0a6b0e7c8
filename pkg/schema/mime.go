package schema

import (
	"mime"
	"net/http"
	"path"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// wellKnownMIME maps file extensions that Go's mime package may not know about
// (especially on macOS) to their canonical MIME type.
var wellKnownMIME = map[string]string{
	".md":   "text/markdown",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".toml": "application/toml",
	".heic": "image/heic",
	".mkv":  "video/x-matroska",
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// MIMEByExt returns the MIME type for a file extension, consulting wellKnownMIME
// first and then the system MIME database.
func MIMEByExt(ext string) string {
	if ct, ok := wellKnownMIME[ext]; ok {
		return ct
	}
	return mime.TypeByExtension(ext)
}

// MIMEType returns the MIME type for a file, preferring the extension and
// falling back to sniffing the first 512 bytes of content.
func MIMEType(name string, data []byte) string {
	if ct := MIMEByExt(path.Ext(name)); ct != "" && ct != types.ContentTypeBinary {
		return ct
	}
	return http.DetectContentType(data)
}
