// Package binstore holds the binary attachments of workflow items in a
// gocloud blob bucket. Supported URL schemes are mem://, file:// and s3://:
//
//   - "mem://binary"
//   - "file:///var/lib/synology/binary"
//   - "s3://my-bucket/prefix?region=us-east-1"
//
// Each attachment is written under a random key and read back by that key.
package binstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"syscall"

	// Packages
	aws "github.com/aws/aws-sdk-go-v2/aws"
	config "github.com/aws/aws-sdk-go-v2/config"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	uuid "github.com/google/uuid"
	synology "github.com/mutablelogic/go-synology"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	otelaws "go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	blob "gocloud.dev/blob"
	s3blob "gocloud.dev/blob/s3blob"
	gcerrors "gocloud.dev/gcerrors"

	// Drivers
	_ "gocloud.dev/blob/fileblob" // file:// URLs
	_ "gocloud.dev/blob/memblob"  // mem:// URLs
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Store struct {
	*opt
	bucket *blob.Bucket
	prefix string // key prefix for s3 and mem, empty for file://
}

var _ synology.BinaryStore = (*Store)(nil)

const (
	metaFileName = "filename"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New opens a binary store for a bucket URL. For s3:// URLs the AWS SDK is
// configured from the options when any are given, otherwise from the URL.
func New(ctx context.Context, u string, opts ...Opt) (*Store, error) {
	self := new(Store)

	// Set the options
	if url, err := url.Parse(u); err != nil {
		return nil, err
	} else if opt, err := apply(url, opts...); err != nil {
		return nil, err
	} else {
		self.opt = opt
	}

	// For s3 and mem the path is a key prefix, for file it is the directory
	if self.url.Scheme != "file" {
		self.prefix = strings.Trim(self.url.Path, "/")
	}

	// Open the bucket
	var bucket *blob.Bucket
	var err error
	switch {
	case self.url.Scheme == "s3" && self.opt.s3():
		var client *s3.Client
		if client, err = self.s3Client(ctx); err == nil {
			bucket, err = s3blob.OpenBucket(ctx, client, self.url.Host, nil)
		}
	case self.url.Scheme == "file":
		openURL := &url.URL{Scheme: "file", Path: self.url.Path, RawQuery: self.url.RawQuery}
		if self.createDir {
			q := openURL.Query()
			q.Set("create_dir", "true")
			openURL.RawQuery = q.Encode()
		}
		bucket, err = blob.OpenBucket(ctx, openURL.String())
	default:
		openURL := *self.url
		openURL.Path = ""
		openURL.RawPath = ""
		bucket, err = blob.OpenBucket(ctx, openURL.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	self.bucket = bucket

	// Return success
	return self, nil
}

// Close the store
func (s *Store) Close() error {
	var result error
	if s.bucket != nil {
		result = errors.Join(result, s.bucket.Close())
		s.bucket = nil
	}

	// Return any errors
	return result
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// URL returns the store location, without any query parameters
func (s *Store) URL() *url.URL {
	u := *s.url
	u.RawQuery = ""
	return &u
}

// Write stores data and returns the attachment which refers to it. The
// MIME type is derived from the file name, or sniffed from the data.
func (s *Store) Write(ctx context.Context, name string, data []byte) (*schema.Binary, error) {
	if name == "" {
		return nil, httpresponse.ErrBadRequest.With("missing file name")
	}
	key := uuid.NewString()
	mimetype := schema.MIMEType(name, data)
	if err := s.bucket.WriteAll(ctx, s.storageKey(key), data, &blob.WriterOptions{
		ContentType: mimetype,
		Metadata:    map[string]string{metaFileName: name},
	}); err != nil {
		return nil, blobErr(err, key)
	}

	// Return success
	return &schema.Binary{
		Key:      key,
		FileName: name,
		MimeType: mimetype,
		FileSize: int64(len(data)),
	}, nil
}

// Read returns the content of an attachment. Inline data is returned as is,
// otherwise the content is read from the bucket by key.
func (s *Store) Read(ctx context.Context, b *schema.Binary) ([]byte, error) {
	if b == nil {
		return nil, httpresponse.ErrBadRequest.With("missing binary data")
	} else if len(b.Data) > 0 {
		return b.Data, nil
	} else if b.Key == "" {
		if b.FileSize == 0 {
			return []byte{}, nil
		}
		return nil, httpresponse.ErrBadRequest.Withf("binary %q has no key", b.FileName)
	}
	data, err := s.bucket.ReadAll(ctx, s.storageKey(b.Key))
	if err != nil {
		return nil, blobErr(err, b.Key)
	}

	// Return success
	return data, nil
}

// Delete removes an attachment from the bucket. Inline attachments are
// ignored.
func (s *Store) Delete(ctx context.Context, b *schema.Binary) error {
	if b == nil || b.Key == "" {
		return nil
	}
	return blobErr(s.bucket.Delete(ctx, s.storageKey(b.Key)), b.Key)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// s3Client returns an S3 client from the options. A custom endpoint uses
// path-style addressing.
func (s *Store) s3Client(ctx context.Context) (*s3.Client, error) {
	var cfg aws.Config
	if s.awsConfig != nil {
		cfg = *s.awsConfig
	} else {
		var loadOpts []func(*config.LoadOptions) error
		if s.region != "" {
			loadOpts = append(loadOpts, config.WithRegion(s.region))
		} else if region := s.url.Query().Get("region"); region != "" {
			loadOpts = append(loadOpts, config.WithRegion(region))
		}
		if s.profile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(s.profile))
		}
		if loaded, err := config.LoadDefaultConfig(ctx, loadOpts...); err != nil {
			return nil, err
		} else {
			cfg = loaded
		}
	}

	// Credentials
	if s.anonymous {
		cfg.Credentials = aws.AnonymousCredentials{}
	} else if s.credentials != nil {
		cfg.Credentials = s.credentials
	}

	// Tracing
	if s.tracerProvider != nil {
		otelaws.AppendMiddlewares(&cfg.APIOptions, otelaws.WithTracerProvider(s.tracerProvider))
	}

	// Create the client
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if o.Region == "" {
			o.Region = "us-east-1"
		}
		if s.endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(s.endpoint)
		}
	}), nil
}

// storageKey returns the bucket key for an attachment key
func (s *Store) storageKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// blobErr wraps a go-cloud blob error with the appropriate httpresponse error
func blobErr(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EISDIR) || errors.Is(err, syscall.EEXIST) {
		return httpresponse.ErrBadRequest.Withf("cannot write binary %q", key)
	}
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return httpresponse.ErrNotFound.Withf("binary %q not found", key)
	case gcerrors.PermissionDenied:
		return httpresponse.ErrForbidden.Withf("permission denied for binary %q", key)
	case gcerrors.InvalidArgument:
		return httpresponse.ErrBadRequest.Withf("invalid argument for binary %q: %v", key, err)
	default:
		return httpresponse.ErrInternalError.Withf("binary store: %v", err)
	}
}
