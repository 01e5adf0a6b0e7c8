package node

import (
	"slices"

	// Packages
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// PropertyType is the kind of form field presented by the host
type PropertyType string

// Property is a form field of a node or credential
type Property struct {
	DisplayName      string          `json:"displayName"`
	Name             string          `json:"name"`
	Type             PropertyType    `json:"type"`
	Default          any             `json:"default"`
	Required         bool            `json:"required,omitempty"`
	NoDataExpression bool            `json:"noDataExpression,omitempty"`
	Placeholder      string          `json:"placeholder,omitempty"`
	Description      string          `json:"description,omitempty"`
	TypeOptions      map[string]any  `json:"typeOptions,omitempty"`
	Options          []Option        `json:"options,omitempty"`
	DisplayOptions   *DisplayOptions `json:"displayOptions,omitempty"`
}

// Option is a choice of an options property
type Option struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Action      string `json:"action,omitempty"`
	Description string `json:"description,omitempty"`
}

// DisplayOptions shows a property only when other properties have one of
// the listed values
type DisplayOptions struct {
	Show map[string][]string `json:"show"`
}

// CredentialRef names a credential type used by a node
type CredentialRef struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// NodeDescription describes a node type to the host
type NodeDescription struct {
	DisplayName  string            `json:"displayName"`
	Name         string            `json:"name"`
	Group        []string          `json:"group"`
	Version      int               `json:"version"`
	Description  string            `json:"description"`
	Defaults     map[string]string `json:"defaults"`
	UsableAsTool bool              `json:"usableAsTool"`
	Inputs       []string          `json:"inputs"`
	Outputs      []string          `json:"outputs"`
	Credentials  []CredentialRef   `json:"credentials"`
	Properties   []Property        `json:"properties"`
}

// CredentialDescription describes a credential type to the host. The
// smoke test performs a login with the credential.
type CredentialDescription struct {
	Name             string      `json:"name"`
	DisplayName      string      `json:"displayName"`
	DocumentationURL string      `json:"documentationUrl"`
	Properties       []Property  `json:"properties"`
	Test             TestRequest `json:"test"`
}

// TestRequest is the request made by the credential smoke test
type TestRequest struct {
	Method string            `json:"method"`
	URL    string            `json:"url"`
	Form   map[string]string `json:"form"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	TypeString  PropertyType = "string"
	TypeNumber  PropertyType = "number"
	TypeBoolean PropertyType = "boolean"
	TypeOptions PropertyType = "options"
)

// Parameter names
const (
	ParamOperation       = "operation"
	ParamPath            = "path"
	ParamOffset          = "offset"
	ParamLimit           = "limit"
	ParamTargetPath      = "targetPath"
	ParamFolderName      = "folderName"
	ParamBinaryProperty  = "binaryProperty"
	ParamOverwrite       = "overwrite"
	ParamRecursiveDelete = "recursiveDelete"
	ParamSourcePaths     = "sourcePaths"
	ParamNewName         = "newName"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// NodeType returns the description of the File Station node
func NodeType() NodeDescription {
	return NodeDescription{
		DisplayName:  "Synology File Station",
		Name:         schema.NodeTypeName,
		Group:        []string{"transform"},
		Version:      1,
		Description:  "List/Upload/Download/Create/Delete via Synology File Station API",
		Defaults:     map[string]string{"name": "Synology File Station"},
		UsableAsTool: true,
		Inputs:       []string{"main"},
		Outputs:      []string{"main"},
		Credentials:  []CredentialRef{{Name: schema.CredentialTypeName, Required: true}},
		Properties: []Property{
			{
				DisplayName:      "Operation",
				Name:             ParamOperation,
				Type:             TypeOptions,
				NoDataExpression: true,
				Options: []Option{
					{Name: "Create Folder", Value: string(schema.OpCreateFolder), Action: "Create a folder", Description: "Create a folder"},
					{Name: "Delete", Value: string(schema.OpDelete), Action: "Delete a file or folder", Description: "Delete a file or folder"},
					{Name: "Download", Value: string(schema.OpDownload), Action: "Download a file", Description: "Download a file"},
					{Name: "List", Value: string(schema.OpList), Action: "List files and folders", Description: "List files and folders"},
					{Name: "Move", Value: string(schema.OpMove), Action: "Move files or folders", Description: "Move files or folders"},
					{Name: "Rename", Value: string(schema.OpRename), Action: "Rename a file or folder", Description: "Rename a file or folder"},
					{Name: "Upload", Value: string(schema.OpUpload), Action: "Upload a file", Description: "Upload a file"},
				},
				Default: string(schema.OpList),
			},
			{
				DisplayName:    "Path",
				Name:           ParamPath,
				Type:           TypeString,
				Default:        "/",
				Required:       true,
				DisplayOptions: show(schema.OpList, schema.OpDownload, schema.OpDelete, schema.OpRename),
				Description:    "For List: folder path. For Download/Delete/Rename: full path to the file/folder.",
			},
			{
				DisplayName:    "Offset",
				Name:           ParamOffset,
				Type:           TypeNumber,
				TypeOptions:    map[string]any{"minValue": 0},
				Default:        0,
				DisplayOptions: show(schema.OpList),
				Description:    "Starting offset for listing",
			},
			{
				DisplayName:    "Limit",
				Name:           ParamLimit,
				Type:           TypeNumber,
				TypeOptions:    map[string]any{"minValue": 1, "maxValue": schema.MaxListLimit},
				Default:        schema.DefaultListLimit,
				DisplayOptions: show(schema.OpList),
				Description:    "Max number of results to return",
			},
			{
				DisplayName:    "Target Path",
				Name:           ParamTargetPath,
				Type:           TypeString,
				Default:        "/",
				Required:       true,
				DisplayOptions: show(schema.OpUpload, schema.OpCreateFolder, schema.OpMove),
				Description:    "Target folder path",
			},
			{
				DisplayName:    "Folder Name",
				Name:           ParamFolderName,
				Type:           TypeString,
				Default:        schema.DefaultFolderName,
				DisplayOptions: show(schema.OpCreateFolder),
				Description:    "Name of the folder to create within the target path",
			},
			{
				DisplayName:    "Binary Property",
				Name:           ParamBinaryProperty,
				Type:           TypeString,
				Default:        "data",
				Required:       true,
				DisplayOptions: show(schema.OpUpload, schema.OpDownload),
				Description:    "Binary property containing the file to upload or where to store the downloaded file",
			},
			{
				DisplayName:    "Overwrite",
				Name:           ParamOverwrite,
				Type:           TypeBoolean,
				Default:        true,
				DisplayOptions: show(schema.OpUpload),
			},
			{
				DisplayName:    "Recursive Delete",
				Name:           ParamRecursiveDelete,
				Type:           TypeBoolean,
				Default:        true,
				DisplayOptions: show(schema.OpDelete),
				Description:    "Whether to delete folders recursively",
			},
			{
				DisplayName:    "Source Paths (JSON Array)",
				Name:           ParamSourcePaths,
				Type:           TypeString,
				Default:        `["/path/from1","/path/from2"]`,
				Required:       true,
				DisplayOptions: show(schema.OpMove),
				Description:    `JSON array of files/folders to move. Example: ["/folder/a.txt","/folder/b.txt"].`,
			},
			{
				DisplayName:    "New Name",
				Name:           ParamNewName,
				Type:           TypeString,
				Default:        "new-name",
				Required:       true,
				DisplayOptions: show(schema.OpRename),
			},
		},
	}
}

// CredentialType returns the description of the DSM credential
func CredentialType() CredentialDescription {
	return CredentialDescription{
		Name:             schema.CredentialTypeName,
		DisplayName:      "Synology DSM API",
		DocumentationURL: "https://kb.synology.com/en-global/DSM/tutorial/How_to_use_File_Station_API",
		Properties: []Property{
			{
				DisplayName: "Base URL",
				Name:        "baseUrl",
				Type:        TypeString,
				Default:     "https://your-nas.quickconnect.to",
				Placeholder: "https://your-nas:5001",
				Description: "QuickConnect/DDNS/VPN base URL.",
			},
			{
				DisplayName: "Username",
				Name:        "username",
				Type:        TypeString,
				Default:     "",
				Required:    true,
			},
			{
				DisplayName: "Password / App Password",
				Name:        "password",
				Type:        TypeString,
				TypeOptions: map[string]any{"password": true},
				Default:     "",
				Required:    true,
				Description: "Use a DSM 7 Application Password if 2FA is enabled.",
			},
			{
				DisplayName: "Allow Self-signed TLS",
				Name:        "allowSelfSigned",
				Type:        TypeBoolean,
				Default:     false,
				Description: "Skip TLS verification (not recommended).",
			},
		},
		Test: TestRequest{
			Method: "POST",
			URL:    schema.AuthPath,
			Form: map[string]string{
				"api":     schema.APIAuth,
				"method":  schema.MethodLogin,
				"version": "7",
				"account": "={{$credentials.username}}",
				"passwd":  "={{$credentials.password}}",
				"session": schema.AuthSession,
				"format":  schema.AuthFormat,
			},
		},
	}
}

// Property returns the property with the given name
func (d NodeDescription) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Visible returns true if the property is shown for the operation
func (p Property) Visible(op schema.Operation) bool {
	if p.DisplayOptions == nil {
		return true
	}
	values, ok := p.DisplayOptions.Show[ParamOperation]
	if !ok {
		return true
	}
	return slices.Contains(values, string(op))
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (d NodeDescription) String() string {
	return types.Stringify(d)
}

func (d CredentialDescription) String() string {
	return types.Stringify(d)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func show(ops ...schema.Operation) *DisplayOptions {
	values := make([]string, 0, len(ops))
	for _, op := range ops {
		values = append(values, string(op))
	}
	return &DisplayOptions{Show: map[string][]string{ParamOperation: values}}
}
