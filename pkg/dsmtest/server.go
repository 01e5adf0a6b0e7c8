// Package dsmtest provides an in-memory DSM File Station server for tests.
// It implements the auth and entry endpoints used by the client, records
// every request, and stores uploaded files so they can be downloaded again.
package dsmtest

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Server is a fake DSM host
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	username  string
	password  string
	sid       string
	loginBody string
	files     map[string][]byte
	folders   map[string]bool
	requests  []Request
}

// Request is a recorded request
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Form     url.Values // url-encoded or multipart form fields
	Fields   []string   // multipart part names in order
	FileName string     // multipart file name
	Cookie   string     // value of the "id" cookie
}

// Opt is a functional option for the server
type Opt func(*Server)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultUsername = "admin"
	DefaultPassword = "secret"
	DefaultSid      = "sid-0123456789"

	contentTypeJSON = "application/json; charset=utf-8"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewServer starts a plain HTTP fake DSM host. Close it when done.
func NewServer(opts ...Opt) *Server {
	s := newServer(opts...)
	s.Server = httptest.NewServer(s)
	return s
}

// NewTLSServer starts a fake DSM host with a self-signed certificate
func NewTLSServer(opts ...Opt) *Server {
	s := newServer(opts...)
	s.Server = httptest.NewTLSServer(s)
	return s
}

func newServer(opts ...Opt) *Server {
	s := &Server{
		username: DefaultUsername,
		password: DefaultPassword,
		sid:      DefaultSid,
		files:    make(map[string][]byte),
		folders:  map[string]bool{"/": true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithAccount sets the account accepted by login
func WithAccount(username, password string) Opt {
	return func(s *Server) {
		s.username, s.password = username, password
	}
}

// WithSid sets the session id returned by login
func WithSid(sid string) Opt {
	return func(s *Server) {
		s.sid = sid
	}
}

// WithLoginBody makes every login return body as text/html with status 200
func WithLoginBody(body string) Opt {
	return func(s *Server) {
		s.loginBody = body
	}
}

// WithFile seeds a file, creating its parent folders
func WithFile(p string, data []byte) Opt {
	return func(s *Server) {
		s.putFile(p, data)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Credential returns a credential for the server with the default account
func (s *Server) Credential() schema.Credential {
	return schema.Credential{
		BaseURL:         s.URL,
		Username:        s.username,
		Password:        s.password,
		AllowSelfSigned: s.TLS != nil,
	}
}

// Requests returns the recorded requests in order
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns the number of recorded requests for an api name
func (s *Server) Count(api string) int {
	var n int
	for _, req := range s.Requests() {
		if req.Query.Get("api") == api || req.Form.Get("api") == api {
			n++
		}
	}
	return n
}

// File returns the content of a stored file
func (s *Server) File(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path.Clean(p)]
	return data, ok
}

// Folder returns true if a folder exists
func (s *Server) Folder(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folders[path.Clean(p)]
}

///////////////////////////////////////////////////////////////////////////////
// HTTP HANDLER

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
	}
	if cookie, err := r.Cookie(schema.SessionCookie); err == nil {
		req.Cookie = cookie.Value
	}

	// Read the form, keeping the order of multipart parts
	var file []byte
	if mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		form, fields, name, data, err := readMultipart(r.Body, params["boundary"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Form, req.Fields, req.FileName, file = form, fields, name, data
	} else if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Form = r.PostForm
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	switch r.URL.Path {
	case schema.AuthPath:
		s.login(w, req)
	case schema.EntryPath:
		if req.Cookie != s.sid {
			writeError(w, 119)
			return
		}
		s.entry(w, req, file)
	default:
		http.NotFound(w, r)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Server) login(w http.ResponseWriter, req Request) {
	if s.loginBody != "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, s.loginBody)
		return
	}
	values := req.Form
	if values == nil {
		values = req.Query
	}
	switch {
	case values.Get("api") != schema.APIAuth || values.Get("method") != schema.MethodLogin:
		writeError(w, 102)
	case values.Get("version") != strconv.Itoa(schema.AuthVersion):
		writeError(w, 104)
	case values.Get("account") != s.username || values.Get("passwd") != s.password:
		writeError(w, 400)
	default:
		writeData(w, schema.LoginData{Sid: s.sid})
	}
}

func (s *Server) entry(w http.ResponseWriter, req Request, file []byte) {
	q := req.Query
	if q.Get("version") != strconv.Itoa(schema.FileStationVersion) {
		writeError(w, 104)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch q.Get("api") {
	case schema.APIList:
		s.list(w, q)
	case schema.APICreateFolder:
		folder := path.Join(q.Get("folder_path"), q.Get("name"))
		if !s.folders[path.Clean(q.Get("folder_path"))] && q.Get("force_parent") != "true" {
			writeError(w, 408)
			return
		}
		s.mkdirAll(folder)
		writeData(w, map[string]any{"folders": []schema.File{{Path: folder, Name: path.Base(folder), IsDir: true}}})
	case schema.APIUpload:
		dest := req.Form.Get("path")
		if dest == "" {
			dest = q.Get("path")
		}
		if req.FileName == "" {
			writeError(w, 1802)
			return
		}
		target := path.Join(dest, req.FileName)
		if _, exists := s.files[target]; exists && req.Form.Get("overwrite") != "true" {
			writeError(w, 1805)
			return
		}
		s.putFile(target, file)
		writeData(w, map[string]any{})
	case schema.APIDownload:
		data, ok := s.files[path.Clean(q.Get("path"))]
		if !ok {
			writeError(w, 408)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(data)
	case schema.APIDelete:
		var paths []string
		if err := json.Unmarshal([]byte(q.Get("path")), &paths); err != nil {
			writeError(w, 400)
			return
		}
		for _, p := range paths {
			s.remove(path.Clean(p), q.Get("recursive") == "true")
		}
		writeData(w, map[string]any{})
	case schema.APIMove:
		var paths []string
		if err := json.Unmarshal([]byte(q.Get("path")), &paths); err != nil {
			writeError(w, 400)
			return
		}
		dest := path.Clean(q.Get("dest_folder_path"))
		s.mkdirAll(dest)
		for _, p := range paths {
			if data, ok := s.files[path.Clean(p)]; ok {
				s.files[path.Join(dest, path.Base(p))] = data
				if q.Get("remove_src") == "true" {
					delete(s.files, path.Clean(p))
				}
			}
		}
		writeData(w, map[string]any{"taskid": "FileStation_000001"})
	case schema.APIRename:
		var paths, names []string
		if err := json.Unmarshal([]byte(q.Get("path")), &paths); err != nil {
			writeError(w, 400)
			return
		} else if err := json.Unmarshal([]byte(q.Get("name")), &names); err != nil || len(names) != len(paths) {
			writeError(w, 400)
			return
		}
		files := make([]schema.File, 0, len(paths))
		for i, p := range paths {
			src, dst := path.Clean(p), path.Join(path.Dir(path.Clean(p)), names[i])
			data, ok := s.files[src]
			if !ok {
				writeError(w, 408)
				return
			}
			delete(s.files, src)
			s.files[dst] = data
			files = append(files, schema.File{Path: dst, Name: names[i]})
		}
		writeData(w, map[string]any{"files": files})
	default:
		writeError(w, 102)
	}
}

func (s *Server) list(w http.ResponseWriter, q url.Values) {
	folder := path.Clean(q.Get("folder_path"))
	if !s.folders[folder] {
		writeError(w, 408)
		return
	}

	// Immediate children, sorted by path
	var files []schema.File
	for p := range s.folders {
		if p != folder && path.Dir(p) == folder {
			files = append(files, schema.File{Path: p, Name: path.Base(p), IsDir: true})
		}
	}
	for p, data := range s.files {
		if path.Dir(p) == folder {
			files = append(files, schema.File{Path: p, Name: path.Base(p), Additional: map[string]any{"size": len(data)}})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	// Page
	total := len(files)
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset = min(max(offset, 0), total)
	files = files[offset:]
	if limit > 0 && limit < len(files) {
		files = files[:limit]
	}
	writeData(w, schema.ListData{Total: total, Offset: offset, Files: files})
}

func (s *Server) putFile(p string, data []byte) {
	p = path.Clean(p)
	s.mkdirAll(path.Dir(p))
	s.files[p] = append([]byte(nil), data...)
}

func (s *Server) mkdirAll(p string) {
	for p = path.Clean(p); ; p = path.Dir(p) {
		s.folders[p] = true
		if p == "/" || p == "." {
			return
		}
	}
}

func (s *Server) remove(p string, recursive bool) {
	delete(s.files, p)
	if !s.folders[p] {
		return
	}
	prefix := strings.TrimSuffix(p, "/") + "/"
	if !recursive {
		for child := range s.files {
			if strings.HasPrefix(child, prefix) {
				return
			}
		}
	}
	for child := range s.files {
		if strings.HasPrefix(child, prefix) {
			delete(s.files, child)
		}
	}
	for child := range s.folders {
		if child == p || strings.HasPrefix(child, prefix) {
			delete(s.folders, child)
		}
	}
}

func readMultipart(r io.Reader, boundary string) (url.Values, []string, string, []byte, error) {
	form := make(url.Values)
	var fields []string
	var name string
	var data []byte
	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, "", nil, err
		}
		value, err := io.ReadAll(part)
		if err != nil {
			return nil, nil, "", nil, err
		}
		fields = append(fields, part.FormName())
		if part.FileName() != "" {
			name, data = part.FileName(), value
		} else {
			form.Add(part.FormName(), string(value))
		}
	}
	return form, fields, name, data, nil
}

func writeData(w http.ResponseWriter, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	json.NewEncoder(w).Encode(schema.Response{Success: true, Data: body})
}

func writeError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	json.NewEncoder(w).Encode(schema.Response{Success: false, Error: &schema.ResponseError{Code: code}})
}
