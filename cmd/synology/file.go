package main

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"

	// Packages
	node "github.com/mutablelogic/go-synology/pkg/node"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type FileCommands struct {
	List     ListCommand     `cmd:"" name:"ls" group:"FILES" help:"List a folder"`
	Mkdir    MkdirCommand    `cmd:"" group:"FILES" help:"Create a folder"`
	Upload   UploadCommand   `cmd:"" group:"FILES" help:"Upload a local file to a folder"`
	Download DownloadCommand `cmd:"" group:"FILES" help:"Download a file"`
	Delete   DeleteCommand   `cmd:"" name:"rm" group:"FILES" help:"Delete a file or folder"`
	Move     MoveCommand     `cmd:"" name:"mv" group:"FILES" help:"Move files or folders into a folder"`
	Rename   RenameCommand   `cmd:"" group:"FILES" help:"Rename a file or folder"`
}

type ListCommand struct {
	Path   string `arg:"" optional:"" default:"/" help:"Folder path"`
	Offset int    `name:"offset" default:"0" help:"Index of the first entry"`
	Limit  int    `name:"limit" default:"50" help:"Maximum number of entries"`
}

type MkdirCommand struct {
	Path string `arg:"" help:"Parent folder path"`
	Name string `arg:"" optional:"" help:"Folder name"`
}

type UploadCommand struct {
	File        string `arg:"" type:"existingfile" help:"Local file"`
	Path        string `arg:"" help:"Destination folder"`
	NoOverwrite bool   `name:"no-overwrite" help:"Fail when the file exists"`
}

type DownloadCommand struct {
	Path   string `arg:"" help:"Remote file path"`
	Output string `name:"output" short:"o" help:"Local file, or - for standard output"`
}

type DeleteCommand struct {
	Path      string `arg:"" help:"Path to delete"`
	Recursive bool   `name:"recursive" short:"r" help:"Delete folder contents"`
}

type MoveCommand struct {
	Dest string   `arg:"" help:"Destination folder"`
	Src  []string `arg:"" help:"Paths to move"`
}

type RenameCommand struct {
	Path string `arg:"" help:"Path to rename"`
	Name string `arg:"" help:"New name"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ListCommand) Run(ctx *Globals) error {
	return ctx.executeOne(map[string]any{
		node.ParamOperation: schema.OpList.String(),
		node.ParamPath:      cmd.Path,
		node.ParamOffset:    cmd.Offset,
		node.ParamLimit:     cmd.Limit,
	}, schema.NewItem(nil))
}

func (cmd *MkdirCommand) Run(ctx *Globals) error {
	params := map[string]any{
		node.ParamOperation:  schema.OpCreateFolder.String(),
		node.ParamTargetPath: cmd.Path,
	}
	if cmd.Name != "" {
		params[node.ParamFolderName] = cmd.Name
	}
	return ctx.executeOne(params, schema.NewItem(nil))
}

func (cmd *UploadCommand) Run(ctx *Globals) error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return err
	}
	store, err := ctx.BinaryStore()
	if err != nil {
		return err
	}
	binary, err := store.Write(ctx.ctx, filepath.Base(cmd.File), data)
	if err != nil {
		return err
	}
	defer store.Delete(ctx.ctx, binary)

	return ctx.executeOne(map[string]any{
		node.ParamOperation:      schema.OpUpload.String(),
		node.ParamTargetPath:     cmd.Path,
		node.ParamOverwrite:      !cmd.NoOverwrite,
		node.ParamBinaryProperty: "data",
	}, schema.NewItem(nil).WithBinary("data", binary))
}

func (cmd *DownloadCommand) Run(ctx *Globals) error {
	result, err := ctx.Execute(map[string]any{
		node.ParamOperation:      schema.OpDownload.String(),
		node.ParamPath:           cmd.Path,
		node.ParamBinaryProperty: "data",
	}, []schema.Item{schema.NewItem(nil)})
	if err != nil {
		return err
	}
	binary := result[0].Binary["data"]
	if binary == nil {
		return httpresponse.ErrInternalError.Withf("no binary returned for %q", cmd.Path)
	}
	store, err := ctx.BinaryStore()
	if err != nil {
		return err
	}
	data, err := store.Read(ctx.ctx, binary)
	if err != nil {
		return err
	}
	defer store.Delete(ctx.ctx, binary)

	// Write to standard output or to a local file
	switch cmd.Output {
	case "-":
		_, err = ctx.out.Write(data)
		return err
	case "":
		cmd.Output = binary.FileName
		if cmd.Output == "" {
			cmd.Output = remoteName(cmd.Path)
		}
	}
	if err := os.WriteFile(cmd.Output, data, 0o644); err != nil {
		return err
	}
	return ctx.prettyJSON(map[string]any{
		"path":     cmd.Path,
		"output":   cmd.Output,
		"mimeType": binary.MimeType,
		"fileSize": binary.FileSize,
	})
}

func (cmd *DeleteCommand) Run(ctx *Globals) error {
	return ctx.executeOne(map[string]any{
		node.ParamOperation:       schema.OpDelete.String(),
		node.ParamPath:            cmd.Path,
		node.ParamRecursiveDelete: cmd.Recursive,
	}, schema.NewItem(nil))
}

func (cmd *MoveCommand) Run(ctx *Globals) error {
	paths, err := json.Marshal(cmd.Src)
	if err != nil {
		return err
	}
	return ctx.executeOne(map[string]any{
		node.ParamOperation:   schema.OpMove.String(),
		node.ParamSourcePaths: string(paths),
		node.ParamTargetPath:  cmd.Dest,
	}, schema.NewItem(nil))
}

func (cmd *RenameCommand) Run(ctx *Globals) error {
	return ctx.executeOne(map[string]any{
		node.ParamOperation: schema.OpRename.String(),
		node.ParamPath:      cmd.Path,
		node.ParamNewName:   cmd.Name,
	}, schema.NewItem(nil))
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// executeOne runs the node over one item and prints its JSON
func (app *Globals) executeOne(params map[string]any, item schema.Item) error {
	result, err := app.Execute(params, []schema.Item{item})
	if err != nil {
		return err
	}
	return app.prettyJSON(result[0].JSON)
}

// remoteName returns the last segment of a remote path
func remoteName(p string) string {
	if name := path.Base(p); name != "/" && name != "." {
		return name
	}
	return schema.DefaultDownloadName
}
