package binstore

import (
	"fmt"
	"net/url"

	// Packages
	aws "github.com/aws/aws-sdk-go-v2/aws"
	credentials "github.com/aws/aws-sdk-go-v2/credentials"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type opt struct {
	url            *url.URL
	awsConfig      *aws.Config
	region         string
	profile        string
	endpoint       string                  // raw endpoint URL for S3-compatible services
	credentials    aws.CredentialsProvider // static credentials, overrides the default chain
	anonymous      bool
	createDir      bool // file:// stores only
	tracerProvider trace.TracerProvider // when set, AWS SDK middleware is injected
}

type Opt func(*opt) error

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func apply(url *url.URL, opts ...Opt) (*opt, error) {
	o := opt{url: url}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	// Return success
	return &o, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithEndpoint sets the endpoint for S3-compatible services such as MinIO.
// Path-style addressing is used with a custom endpoint.
func WithEndpoint(endpoint string) Opt {
	return func(o *opt) error {
		if endpoint == "" {
			return nil
		} else if u, err := url.Parse(endpoint); err != nil {
			return err
		} else if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint must be http:// or https://, got %q", endpoint)
		} else {
			o.endpoint = u.String()
		}
		return nil
	}
}

// WithRegion sets the AWS region for s3:// stores
func WithRegion(region string) Opt {
	return func(o *opt) error {
		o.region = region
		return nil
	}
}

// WithProfile selects a profile from the shared AWS configuration files
func WithProfile(profile string) Opt {
	return func(o *opt) error {
		o.profile = profile
		return nil
	}
}

// WithStaticCredentials uses an access key instead of the default
// credentials chain
func WithStaticCredentials(key, secret, session string) Opt {
	return func(o *opt) error {
		if key == "" || secret == "" {
			return fmt.Errorf("static credentials require a key and a secret")
		}
		o.credentials = credentials.NewStaticCredentialsProvider(key, secret, session)
		return nil
	}
}

// WithAnonymous forces anonymous credentials, for public buckets and
// S3-compatible services without authentication
func WithAnonymous() Opt {
	return func(o *opt) error {
		o.anonymous = true
		return nil
	}
}

// WithAWSConfig provides an AWS SDK v2 Config directly. The region, profile
// and default credential chain are then not loaded.
func WithAWSConfig(cfg aws.Config) Opt {
	return func(o *opt) error {
		o.awsConfig = &cfg
		return nil
	}
}

// WithTracerProvider adds OpenTelemetry middleware to the S3 client so each
// S3 API call produces a span
func WithTracerProvider(provider trace.TracerProvider) Opt {
	return func(o *opt) error {
		o.tracerProvider = provider
		return nil
	}
}

// WithCreateDir creates the directory of a file:// store if it does not
// exist. Other schemes ignore it.
func WithCreateDir() Opt {
	return func(o *opt) error {
		o.createDir = true
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// s3 returns true if the AWS SDK needs to be configured explicitly, rather
// than through the URL opener
func (o *opt) s3() bool {
	return o.awsConfig != nil || o.region != "" || o.profile != "" || o.endpoint != "" || o.credentials != nil || o.anonymous || o.tracerProvider != nil
}
