package main

import (
	"encoding/json"
	"os"

	// Packages
	node "github.com/mutablelogic/go-synology/pkg/node"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type NodeCommands struct {
	Test     TestCommand     `cmd:"" group:"NODE" help:"Test the credential with a login"`
	Describe DescribeCommand `cmd:"" group:"NODE" help:"Print the node and credential descriptions"`
	Run      RunCommand      `cmd:"" group:"NODE" help:"Run an operation over items read from a file"`
}

type TestCommand struct{}

type DescribeCommand struct{}

type RunCommand struct {
	Operation string            `arg:"" help:"Operation (list, createFolder, upload, download, delete, move, rename)"`
	Param     map[string]string `name:"param" short:"p" help:"Node parameter as key=value"`
	Items     string            `name:"items" type:"existingfile" help:"JSON file with an array of input items"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *TestCommand) Run(ctx *Globals) error {
	n, err := ctx.Node()
	if err != nil {
		return err
	}
	cred := ctx.Credential()
	if err := n.TestCredential(ctx.ctx, cred); err != nil {
		return err
	}
	return ctx.prettyJSON(map[string]any{
		"url":  cred.Endpoint(),
		"user": cred.Username,
		"ok":   true,
	})
}

func (cmd *DescribeCommand) Run(ctx *Globals) error {
	return ctx.prettyJSON(map[string]any{
		"types":      node.Types(),
		"node":       node.NodeType(),
		"credential": node.CredentialType(),
	})
}

func (cmd *RunCommand) Run(ctx *Globals) error {
	if _, err := schema.ParseOperation(cmd.Operation); err != nil {
		return err
	}

	// Parameters apply to every item
	params := make(map[string]any, len(cmd.Param)+1)
	for k, v := range cmd.Param {
		params[k] = v
	}
	params[node.ParamOperation] = cmd.Operation

	// Read the input items, or run over a single empty item
	items := []schema.Item{schema.NewItem(nil)}
	if cmd.Items != "" {
		data, err := os.ReadFile(cmd.Items)
		if err != nil {
			return err
		}
		items = nil
		if err := json.Unmarshal(data, &items); err != nil {
			return httpresponse.ErrBadRequest.Withf("%s: %v", cmd.Items, err)
		}
		for i := range items {
			if items[i].JSON == nil {
				items[i].JSON = map[string]any{}
			}
		}
	}

	result, err := ctx.Execute(params, items)
	if err != nil {
		return err
	}
	return ctx.prettyJSON(result)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (app *Globals) prettyJSON(v any) error {
	enc := json.NewEncoder(app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
