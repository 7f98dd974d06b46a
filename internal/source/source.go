// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package source opens documents by URI.
package source

import (
	"context"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/nil-go/opskit/provider/file"
	"github.com/nil-go/opskit/provider/s3"
)

// Source reads and watches the raw content of a document.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	Watch(ctx context.Context, onChange func([]byte)) error
	String() string
}

// New returns an S3 source for `s3://` URIs and a file source otherwise.
func New(uri string, opts ...Option) Source {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}

	if !strings.HasPrefix(uri, "s3://") {
		return file.New(uri, file.WithLogger(option.logger))
	}

	s3Opts := []s3.Option{s3.WithLogger(option.logger)}
	if !reflect.ValueOf(option.awsConfig).IsZero() {
		s3Opts = append(s3Opts, s3.WithAWSConfig(option.awsConfig))
	}
	if option.region != "" {
		s3Opts = append(s3Opts, s3.WithRegion(option.region))
	}

	return s3.New(uri, s3Opts...)
}

// WithLogger provides the slog.Logger for the source, slog.Default() if unset.
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithAWSConfig provides the AWS Config for `s3://` URIs.
func WithAWSConfig(config aws.Config) Option {
	return func(options *options) {
		options.awsConfig = config
	}
}

// WithRegion sets the region for `s3://` URIs, overriding the one in the AWS Config.
func WithRegion(region string) Option {
	return func(options *options) {
		options.region = region
	}
}

type (
	// Option configures how a source is opened.
	Option  func(*options)
	options struct {
		logger    *slog.Logger
		awsConfig aws.Config
		region    string
	}
)
