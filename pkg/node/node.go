package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	synology "github.com/mutablelogic/go-synology"
	httpclient "github.com/mutablelogic/go-synology/pkg/httpclient"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	attribute "go.opentelemetry.io/otel/attribute"
	metric "go.opentelemetry.io/otel/metric"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Node executes File Station operations for a host
type Node struct {
	opts
}

// call performs the network part of one item
type call func(context.Context, synology.FileStation, string) (schema.Item, error)

var _ Handler = (*Node)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a File Station node
func New(opts ...Opt) (*Node, error) {
	self := new(Node)

	// Apply options
	if opt, err := applyOpts(opts); err != nil {
		return nil, err
	} else {
		self.opts = opt
	}

	// Return success
	return self, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Description returns the node type description
func (n *Node) Description() NodeDescription {
	return NodeType()
}

// TestCredential performs a login with the credential, returning an error
// if the credential is not accepted
func (n *Node) TestCredential(ctx context.Context, cred schema.Credential) (err error) {
	child, endFunc := otel.StartSpan(n.tracer, ctx, spanName("TestCredential"))
	defer func() { endFunc(err) }()

	client, err := httpclient.New(cred, n.clientOpts...)
	if err != nil {
		return err
	}
	if _, err = client.Login(child); err != nil {
		return err
	}

	// Return success
	n.logger.InfoContext(ctx, "credential accepted", "url", cred.Endpoint(), "user", cred.Username)
	return nil
}

// Execute runs the selected operation over the items in order and returns
// one output item per input item. Parameters of every item are validated
// first, then the node logs in once. The first failing item aborts the run.
func (n *Node) Execute(ctx context.Context, host Host, items []schema.Item) ([]schema.Item, error) {
	desc := n.Description()

	// The operation is the same for every item
	opname, err := params{host: host, index: 0, desc: desc}.String(ParamOperation)
	if err != nil {
		return nil, err
	}
	op, err := schema.ParseOperation(opname)
	if err != nil {
		return nil, err
	}

	// Validate parameters for every item before any request is made
	calls := make([]call, 0, len(items))
	for i, item := range items {
		fn, err := n.prepare(op, params{host: host, index: i, desc: desc}, item, host.Binary())
		if err != nil {
			n.count(ctx, op, err)
			n.logger.DebugContext(ctx, "invalid parameters", "operation", op, "index", i, "error", err)
			return nil, err
		}
		calls = append(calls, fn)
	}

	// Log in once
	cred, err := host.Credential(ctx)
	if err != nil {
		return nil, err
	}
	client, err := httpclient.New(cred, n.clientOpts...)
	if err != nil {
		return nil, err
	}
	sid, err := n.login(ctx, client)
	if err != nil {
		return nil, err
	}
	n.logger.InfoContext(ctx, "logged in", "url", cred.Endpoint(), "operation", op, "items", len(items))

	// Run the items in order
	results := make([]schema.Item, 0, len(calls))
	for i, fn := range calls {
		result, err := n.run(ctx, op, i, fn, client, sid)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	// Return success
	return results, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (n *Node) login(ctx context.Context, fs synology.FileStation) (sid string, err error) {
	child, endFunc := otel.StartSpan(n.tracer, ctx, spanName("Login"))
	defer func() { endFunc(err) }()
	return fs.Login(child)
}

func (n *Node) run(ctx context.Context, op schema.Operation, index int, fn call, fs synology.FileStation, sid string) (result schema.Item, err error) {
	child, endFunc := otel.StartSpan(n.tracer, ctx, spanName(string(op)))
	defer func() {
		n.count(ctx, op, err)
		endFunc(err)
	}()

	n.logger.DebugContext(ctx, "execute", "operation", op, "index", index)
	if result, err = fn(child, fs, sid); err != nil {
		n.logger.DebugContext(ctx, "failed", "operation", op, "index", index, "error", err)
	}
	return result, err
}

// prepare validates the parameters of one item and returns the call which
// performs it
func (n *Node) prepare(op schema.Operation, p params, item schema.Item, store synology.BinaryStore) (call, error) {
	switch op {
	case schema.OpList:
		req, err := p.listRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, fs synology.FileStation, sid string) (schema.Item, error) {
			data, err := fs.List(ctx, sid, req)
			if err != nil {
				return schema.Item{}, err
			}
			return listItem(data)
		}, nil
	case schema.OpCreateFolder:
		req, err := p.createFolderRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, fs synology.FileStation, sid string) (schema.Item, error) {
			return envelopeItem(fs.CreateFolder(ctx, sid, req))
		}, nil
	case schema.OpUpload:
		req, property, err := p.uploadRequest()
		if err != nil {
			return nil, err
		}
		binary, exists := item.Binary[property]
		if !exists || binary == nil {
			return nil, schema.NewParameterError(fmt.Sprintf("no binary data in property %q", property), nil)
		}
		return func(ctx context.Context, fs synology.FileStation, sid string) (schema.Item, error) {
			data, err := readBinary(ctx, store, binary)
			if err != nil {
				return schema.Item{}, schema.NewParameterError(fmt.Sprintf("cannot read binary data in property %q", property), err)
			}
			req.Data = data
			if req.FileName = binary.FileName; req.FileName == "" {
				req.FileName = schema.DefaultUploadName
			}
			return envelopeItem(fs.Upload(ctx, sid, req))
		}, nil
	case schema.OpDownload:
		req, property, err := p.downloadRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, fs synology.FileStation, sid string) (schema.Item, error) {
			data, err := fs.Download(ctx, sid, req)
			if err != nil {
				return schema.Item{}, err
			}
			binary, err := writeBinary(ctx, store, downloadName(req.Path), data)
			if err != nil {
				return schema.Item{}, schema.NewRequestError("cannot store downloaded file", map[string]any{"path": req.Path}, err)
			}
			return schema.NewItem(nil).WithBinary(property, binary), nil
		}, nil
	case schema.OpDelete:
		req, err := p.deleteRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, fs synology.FileStation, sid string) (schema.Item, error) {
			return envelopeItem(fs.Delete(ctx, sid, req))
		}, nil
	case schema.OpMove:
		req, err := p.moveRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, fs synology.FileStation, sid string) (schema.Item, error) {
			return envelopeItem(fs.Move(ctx, sid, req))
		}, nil
	case schema.OpRename:
		req, err := p.renameRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, fs synology.FileStation, sid string) (schema.Item, error) {
			return envelopeItem(fs.Rename(ctx, sid, req))
		}, nil
	default:
		return nil, schema.NewParameterError(fmt.Sprintf("unsupported operation %q", op), nil)
	}
}

// count records an executed item, and a failure when err is not nil
func (n *Node) count(ctx context.Context, op schema.Operation, err error) {
	if n.items == nil {
		return
	}
	n.items.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", string(op))))
	if err != nil {
		kind := "unknown"
		var e *schema.Error
		if errors.As(err, &e) {
			kind = e.Kind.String()
		}
		n.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", string(op)), attribute.String("kind", kind)))
	}
}

// listItem returns the data of a list response as an item
func listItem(data *schema.ListData) (schema.Item, error) {
	var result map[string]any
	if raw, err := json.Marshal(data); err != nil {
		return schema.Item{}, err
	} else if err := json.Unmarshal(raw, &result); err != nil {
		return schema.Item{}, err
	}
	return schema.NewItem(result), nil
}

// envelopeItem returns the whole DSM envelope as an item
func envelopeItem(resp *schema.Response, err error) (schema.Item, error) {
	if err != nil {
		return schema.Item{}, err
	}
	return schema.NewItem(resp.Map()), nil
}

// readBinary returns inline data, or reads the attachment from the store
func readBinary(ctx context.Context, store synology.BinaryStore, b *schema.Binary) ([]byte, error) {
	if store != nil {
		return store.Read(ctx, b)
	} else if len(b.Data) == 0 && b.Key != "" {
		return nil, httpresponse.ErrInternalError.Withf("no binary store for key %q", b.Key)
	}
	return b.Data, nil
}

// writeBinary stores data in the store, or inline when there is no store
func writeBinary(ctx context.Context, store synology.BinaryStore, name string, data []byte) (*schema.Binary, error) {
	if store == nil {
		return &schema.Binary{
			FileName: name,
			MimeType: schema.MIMEType(name, data),
			FileSize: int64(len(data)),
			Data:     data,
		}, nil
	}
	return store.Write(ctx, name, data)
}

// downloadName returns the last segment of a path
func downloadName(path string) string {
	if name := path[strings.LastIndex(path, "/")+1:]; name != "" {
		return name
	}
	return schema.DefaultDownloadName
}

func spanName(op string) string {
	return schema.SchemaName + ".node." + op
}
