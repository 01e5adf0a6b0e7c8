package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	binstore "github.com/mutablelogic/go-synology/pkg/binstore"
	node "github.com/mutablelogic/go-synology/pkg/node"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	URL      string        `name:"url" env:"SYNOLOGY_URL" help:"DSM base URL, for example https://nas.local:5001"`
	User     string        `name:"user" env:"SYNOLOGY_USER" help:"DSM account name"`
	Password string        `name:"password" env:"SYNOLOGY_PASSWORD" help:"DSM password or application password"`
	Insecure bool          `name:"insecure" env:"SYNOLOGY_INSECURE" help:"Allow a self-signed TLS certificate"`
	Store    string        `name:"store" env:"SYNOLOGY_STORE" default:"mem://binary" help:"Binary store URL (mem://, file://, s3://)"`
	Timeout  time.Duration `name:"timeout" default:"30s" help:"HTTP request timeout"`
	Debug    bool          `help:"Enable debug output"`
	Trace    bool          `help:"Trace HTTP requests"`

	vars   kong.Vars `kong:"-"` // Variables for kong
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
	out    io.Writer
	store  *binstore.Store
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewApp(app Globals, vars kong.Vars) *Globals {
	// Set the vars
	app.vars = vars

	// Create the context
	// This context is cancelled when the process receives a SIGINT or SIGTERM
	app.ctx, app.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Structured logging to stderr
	level := slog.LevelInfo
	if app.Debug {
		level = slog.LevelDebug
	}
	app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	app.out = os.Stdout

	// Return the app
	return &app
}

func (app *Globals) Close() error {
	var result error
	if app.store != nil {
		result = errors.Join(result, app.store.Close())
		app.store = nil
	}
	app.cancel()

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

func (app *Globals) Context() context.Context {
	return app.ctx
}

// Credential returns the DSM credential from the global flags
func (app *Globals) Credential() schema.Credential {
	return schema.Credential{
		BaseURL:         app.URL,
		Username:        app.User,
		Password:        app.Password,
		AllowSelfSigned: app.Insecure,
	}
}

// Node returns a node executor which logs to stderr
func (app *Globals) Node() (*node.Node, error) {
	opts := []client.ClientOpt{}
	if app.Trace {
		opts = append(opts, client.OptTrace(os.Stderr, false))
	}
	if app.Timeout > 0 {
		opts = append(opts, client.OptTimeout(app.Timeout))
	}
	return node.New(node.WithLogger(app.logger), node.WithClientOpts(opts...))
}

// BinaryStore opens the binary store on first use
func (app *Globals) BinaryStore() (*binstore.Store, error) {
	if app.store != nil {
		return app.store, nil
	}
	store, err := binstore.New(app.ctx, app.Store, binstore.WithCreateDir())
	if err != nil {
		return nil, err
	}
	app.store = store
	return store, nil
}

// Execute runs the node with the same parameters for every item
func (app *Globals) Execute(params map[string]any, items []schema.Item) ([]schema.Item, error) {
	n, err := app.Node()
	if err != nil {
		return nil, err
	}
	store, err := app.BinaryStore()
	if err != nil {
		return nil, err
	}
	host := &node.StaticHost{
		Cred:   app.Credential(),
		Params: params,
		Store:  store,
	}
	return n.Execute(app.ctx, host, items)
}
