package main

import (
	// Packages
	version "github.com/mutablelogic/go-synology/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommands struct {
	Version VersionCommand `cmd:"" group:"MISC" help:"Print version information"`
}

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	name := ctx.vars["EXEC"]
	if name == "" {
		name = "synology"
	}
	return ctx.prettyJSON(version.Get(name))
}
